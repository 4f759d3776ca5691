package app

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/docs"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/ai"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/config"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/handlers"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/pdf"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/realtime"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/repositories"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/routes"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to reach database: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	stageRepo := repositories.NewStageRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// === Realtime ===
	hub := realtime.NewHub()

	// === Optional integrations ===
	var tgService *services.TelegramService
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		tgService, err = services.NewTelegramService(cfg.Telegram.BotToken)
		if err != nil {
			log.Printf("[app] telegram disabled: %v", err)
			tgService = nil
		}
	}

	var emailService services.EmailService
	if cfg.Email.Enabled {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		)
	}

	aiClient := ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.RequestTimeout)

	// === Services ===
	jwtSecret := []byte(cfg.JWT.Secret)
	authService := services.NewAuthService(jwtSecret, cfg.JWT.TTL)
	userService := services.NewUserService(userRepo, taskRepo, commentRepo, authService, emailService)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, hub, tgService)
	activityService := services.NewActivityService(activityRepo, hub)
	taskService := services.NewTaskService(taskRepo, stageRepo, userRepo, notificationService, activityService, aiClient)
	stageService := services.NewStageService(stageRepo, taskRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, notificationService, activityService, hub)
	reportService := services.NewReportService(stageRepo, taskRepo)

	pdfGen := pdf.NewReportGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	stageHandler := handlers.NewStageHandler(stageService)
	commentHandler := handlers.NewCommentHandler(commentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	aiHandler := handlers.NewAIHandler(aiClient)
	reportHandler := handlers.NewReportHandler(reportService, pdfGen)
	wsHandler := handlers.NewWSHandler(hub, jwtSecret)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		jwtSecret,
		authHandler,
		userHandler,
		taskHandler,
		stageHandler,
		commentHandler,
		notificationHandler,
		activityHandler,
		aiHandler,
		reportHandler,
		wsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
