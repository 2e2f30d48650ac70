package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pulseboard/backend/internal/config"
	"github.com/pulseboard/backend/internal/handlers"
	"github.com/pulseboard/backend/internal/logger"
	"github.com/pulseboard/backend/internal/middleware"
	"github.com/pulseboard/backend/internal/repository"
	"github.com/pulseboard/backend/internal/service"
	"github.com/pulseboard/backend/pkg/ollama"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Load the event log, then start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
	})
	logger.SetDefault(log)

	log.Info("starting pulse API server",
		logger.String("env", cfg.Server.Env),
		logger.String("csv_path", cfg.Data.CSVPath))

	// Open the in-memory event store and seed it from the CSV event log
	db, err := repository.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer db.Close()

	eventRepo := repository.NewEventRepository(db)

	loaded, skipped, err := repository.SeedFromCSV(cmd.Context(), eventRepo, cfg.Data.CSVPath, log)
	if err != nil {
		return fmt.Errorf("failed to seed event store: %w", err)
	}
	log.Info("event log loaded",
		logger.Int("events", loaded),
		logger.Int("skipped", skipped))

	// Initialize services
	eventService := service.NewEventService(eventRepo)
	metricsService := service.NewMetricsService(eventRepo)
	deterministic := service.NewDeterministicExplainer()

	// The model explainer is optional; the deterministic one always works
	var modelExplainer service.TextExplainer
	if cfg.Ollama.URL != "" {
		client := ollama.NewClient(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout())
		modelExplainer = service.NewModelExplainer(client, log)
	}
	if modelExplainer == nil || !modelExplainer.Available() {
		log.Warn("model explainer not available, using rule-based explanations")
	}

	// Initialize handlers
	usersHandler := handlers.NewUsersHandler(metricsService, deterministic, modelExplainer)
	eventHandler := handlers.NewEventHandler(eventService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.SecurityHeaders(cfg.Server.Env))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/users", usersHandler.GetUsers)
		v1.GET("/users/:user_id/metrics", usersHandler.GetUserMetrics)
		v1.POST("/users/:user_id/explain", usersHandler.ExplainUserMetrics)

		v1.POST("/events", eventHandler.CreateEvent)
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
