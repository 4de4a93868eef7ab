package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskpro-api/internal/client"
	"taskpro-api/internal/config"
	"taskpro-api/internal/handler"
	"taskpro-api/internal/metrics"
	"taskpro-api/internal/middleware"
	"taskpro-api/internal/service"
	"taskpro-api/internal/store"
)

// Setup wires the whole HTTP surface: services over the app-state store,
// their handlers, and the route tree under the configured base path.
func Setup(
	cfg *config.Config,
	db *gorm.DB,
	st *store.Store,
	gateway *store.Gateway,
	notifier client.NotifierClient,
	textGen client.TextGenClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	// Initialize services
	boardService := service.NewBoardService(st, m, logger)
	directoryService := service.NewDirectoryService(st, gateway, cfg.JWT, m, logger)
	documentService := service.NewDocumentService(st, logger)
	automationService := service.NewAutomationService(st, logger)
	searchService := service.NewSearchService(st, m, logger)
	chatService := service.NewChatService(st, textGen, m, logger)

	// Initialize WebSocket hub and connect it to the chat service
	hub := handler.NewHub(logger)
	chatService.SetBroadcaster(hub)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(boardService)
	authHandler := handler.NewAuthHandler(directoryService)
	userHandler := handler.NewUserHandler(directoryService)
	documentHandler := handler.NewDocumentHandler(documentService)
	automationHandler := handler.NewAutomationHandler(automationService)
	chatHandler := handler.NewChatHandler(chatService)
	searchHandler := handler.NewSearchHandler(searchService)
	settingsHandler := handler.NewSettingsHandler(gateway)
	healthHandler := handler.NewHealthHandler(db)
	wsHandler := handler.NewWSHandler(hub, st, chatService, cfg.JWT.Secret, logger)

	// Health endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/health", healthHandler.Health)

		// Auth routes
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// WebSocket endpoint, token rides in the query string
		api.GET("/ws/chat/:conversationId", wsHandler.HandleWebSocket)

		// Authenticated routes
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(cfg.JWT.Secret))
		{
			authenticated.POST("/auth/logout", authHandler.Logout)

			// Board routes
			authenticated.GET("/board", taskHandler.GetBoard)
			authenticated.GET("/tasks", taskHandler.ListTasks)
			authenticated.POST("/tasks", taskHandler.CreateTask)
			authenticated.GET("/tasks/:taskId", taskHandler.GetTask)
			authenticated.PATCH("/tasks/:taskId", taskHandler.UpdateTask)
			authenticated.POST("/tasks/:taskId/move", taskHandler.MoveTask)
			authenticated.DELETE("/tasks/:taskId", taskHandler.DeleteTask)

			// Team directory routes
			authenticated.GET("/users", userHandler.ListUsers)
			authenticated.POST("/users", userHandler.CreateUser)
			authenticated.GET("/users/:userId", userHandler.GetUser)
			authenticated.PATCH("/users/:userId", userHandler.UpdateUser)
			authenticated.DELETE("/users/:userId", userHandler.DeleteUser)

			// Document routes
			authenticated.GET("/documents", documentHandler.ListDocuments)
			authenticated.POST("/documents", documentHandler.SaveDocument)
			authenticated.GET("/documents/:documentId", documentHandler.GetDocument)
			authenticated.PUT("/documents/:documentId/content", documentHandler.SaveContent)
			authenticated.DELETE("/documents/:documentId", documentHandler.DeleteDocument)

			// Automation routes
			authenticated.GET("/automations", automationHandler.ListRules)
			authenticated.GET("/automations/catalog", automationHandler.Catalog)
			authenticated.POST("/automations", automationHandler.SaveRule)
			authenticated.POST("/automations/:ruleId/toggle", automationHandler.ToggleRule)
			authenticated.DELETE("/automations/:ruleId", automationHandler.DeleteRule)

			// Chat routes
			authenticated.GET("/conversations", chatHandler.ListConversations)
			authenticated.POST("/conversations", chatHandler.StartConversation)
			authenticated.GET("/conversations/:conversationId/messages", chatHandler.ListMessages)
			authenticated.POST("/conversations/:conversationId/messages", chatHandler.SendMessage)

			// Search
			authenticated.POST("/search", searchHandler.Search)

			// Client preference settings
			authenticated.GET("/settings/:key", settingsHandler.GetSetting)
			authenticated.PUT("/settings/:key", settingsHandler.PutSetting)
			authenticated.DELETE("/settings/:key", settingsHandler.DeleteSetting)
		}
	}

	return r
}
