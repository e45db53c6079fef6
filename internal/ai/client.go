package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const defaultMaxTokens = 4096

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client — чат-клиент генеративной модели. Возвращает текст ответа и
// сырое тело ответа API для диагностики.
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, []byte, error)
}

func resolveMaxTokens(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxTokens
}

// postJSON отправляет JSON-запрос и возвращает тело ответа со статусом.
func postJSON(ctx context.Context, httpClient *http.Client, endpoint string, headers map[string]string, payload interface{}) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}

	request.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, 0, err
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, response.StatusCode, err
	}

	return responseBody, response.StatusCode, nil
}
