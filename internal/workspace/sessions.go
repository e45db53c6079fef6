package workspace

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions хранит рабочие области по пользователям.
type Sessions struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]*Workspace
}

// NewSessions создает реестр рабочих областей.
func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[uuid.UUID]*Workspace)}
}

// Get возвращает рабочую область пользователя, создавая ее при первом
// обращении.
func (s *Sessions) Get(userID uuid.UUID) *Workspace {
	s.mu.RLock()
	ws, ok := s.byUser[userID]
	s.mu.RUnlock()
	if ok {
		return ws
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.byUser[userID]; ok {
		return ws
	}

	ws = New()
	s.byUser[userID] = ws
	return ws
}
