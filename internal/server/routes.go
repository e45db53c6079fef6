package server

import (
	"github.com/labstack/echo/v4"

	"example.com/obra-budget/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	workspaceHandler *handlers.WorkspaceHandler,
	scheduleHandler *handlers.ScheduleHandler,
	optimizeHandler *handlers.OptimizeHandler,
	budgetHandler *handlers.BudgetHandler,
	aiHandler *handlers.AIHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	ws := api.Group("/workspace", authMiddleware)
	ws.GET("", workspaceHandler.State)
	ws.PATCH("/config", workspaceHandler.UpdateConfig)
	ws.PUT("/payment-terms", workspaceHandler.UpdatePaymentTerms)
	ws.POST("/items", workspaceHandler.AddItem)
	ws.PATCH("/items/:itemId", workspaceHandler.UpdateItem)
	ws.DELETE("/items/:itemId", workspaceHandler.DeleteItem)

	schedule := api.Group("/schedule", authMiddleware)
	schedule.GET("", scheduleHandler.Get)
	schedule.POST("/regenerate", scheduleHandler.Regenerate)
	schedule.PATCH("/tasks/:taskId", scheduleHandler.UpdateTask)
	schedule.POST("/tasks/:taskId/delay", scheduleHandler.ReportDelay)

	optimize := api.Group("/optimize", authMiddleware)
	optimize.POST("/scan", optimizeHandler.Scan)
	optimize.POST("/apply", optimizeHandler.Apply)

	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("", budgetHandler.List)
	budgets.POST("", budgetHandler.Save)
	budgets.GET("/:budgetId", budgetHandler.Get)
	budgets.POST("/:budgetId/load", budgetHandler.Load)
	budgets.PATCH("/:budgetId/status", budgetHandler.UpdateStatus)
	budgets.DELETE("/:budgetId", budgetHandler.Delete)
	budgets.GET("/:budgetId/export/json", budgetHandler.ExportJSON)
	budgets.GET("/:budgetId/export/csv", budgetHandler.ExportCSV)

	catalog := api.Group("/catalog", authMiddleware)
	catalog.GET("/search", workspaceHandler.SearchCatalog)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	aiGroup := api.Group("/ai", authMiddleware, aiRateLimiter)
	aiGroup.POST("/generate-items", aiHandler.GenerateItems)
}
