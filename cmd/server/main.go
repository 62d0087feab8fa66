package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"photo-ai-backend/internal/config"
	"photo-ai-backend/internal/database"
	"photo-ai-backend/internal/falai"
	"photo-ai-backend/internal/handlers"
	"photo-ai-backend/internal/middleware"
	"photo-ai-backend/internal/storage"
	"photo-ai-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Run migrations before opening the ORM connection.
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	st := store.New(db)

	queue := falai.NewClient(cfg.FalQueueURL, cfg.FalKey, cfg.WebhookBaseURL)

	uploader, err := storage.NewUploader(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.BucketName, cfg.S3UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	presignHandler := handlers.NewPresignHandler(uploader)
	trainingHandler := handlers.NewTrainingHandler(queue, st)
	generateHandler := handlers.NewGenerateHandler(queue, st)
	packsHandler := handlers.NewPacksHandler(st)
	imagesHandler := handlers.NewImagesHandler(st)
	webhookHandler := handlers.NewWebhookHandler(st, cfg.WebhookToken)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/health", handlers.HealthHandler)

	// User-facing routes require a caller identity.
	authed := router.Group("/")
	authed.Use(middleware.AuthMiddleware(cfg.AuthJWTSecret))
	authed.GET("/pre-signed-url", presignHandler.GetPresignedURL)
	authed.POST("/ai/training", trainingHandler.Train)
	authed.POST("/ai/generate", generateHandler.Generate)
	authed.POST("/pack/generate", generateHandler.GenerateFromPack)
	authed.GET("/pack/bulk", packsHandler.ListPacks)
	authed.GET("/image/bulk", imagesHandler.ListImages)

	// Provider callbacks authenticate with the shared webhook token instead.
	router.POST("/fal-ai/webhook/train", webhookHandler.HandleTrainWebhook)
	router.POST("/fal-ai/webhook/image", webhookHandler.HandleImageWebhook)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
