package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drivent/hotel-booking/internal/cache"
	"github.com/drivent/hotel-booking/internal/config"
	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/handlers"
	"github.com/drivent/hotel-booking/internal/middleware"
	"github.com/drivent/hotel-booking/internal/services"
	"github.com/drivent/hotel-booking/pkg/jwt"
	"github.com/drivent/hotel-booking/pkg/mq"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting hotel booking service")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	db, err := database.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := database.InitializeDBSchema(context.Background(), db); err != nil {
			logger.Fatalf("Failed to initialize schema: %v", err)
		}
		logger.Info("Database schema ready")
	}

	// Optional Redis listing cache
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Cache)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, listing cache disabled")
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.WithField("addr", cfg.Cache.Addr).Info("Listing cache enabled")
	}
	listings := cache.New(redisClient, cfg.Cache.Prefix, cfg.Cache.TTL, logger)

	// Initialize repositories
	bookingRepository := database.NewBookingRepository(db)
	roomRepository := database.NewRoomRepository(db)
	hotelRepository := database.NewHotelRepository(db)
	enrollmentRepository := database.NewEnrollmentRepository(db)
	ticketRepository := database.NewTicketRepository(db)
	sessionRepository := database.NewSessionRepository(db)

	// Initialize services
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	eligibilityService := services.NewEligibilityService(enrollmentRepository, ticketRepository)
	capacityService := services.NewRoomCapacityService(roomRepository, bookingRepository)
	bookingService := services.NewBookingService(
		bookingRepository,
		capacityService,
		eligibilityService,
		cfg.Booking.CapacityMode,
		logger,
	)
	hotelService := services.NewHotelService(hotelRepository, roomRepository, eligibilityService, listings, logger)
	logger.WithField("capacity_mode", cfg.Booking.CapacityMode).Info("Booking service initialized")

	// Optional booking events
	if cfg.Broker.URL != "" {
		publisher, err := mq.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.WithError(err).Warn("RabbitMQ unavailable, booking events disabled")
		} else {
			defer publisher.Close()
			bookingService.WithEvents(services.NewBookingEvents(publisher))
			logger.WithField("exchange", cfg.Broker.Exchange).Info("Booking events enabled")
		}
	}

	// Audit log and its retention job
	var cronService *services.CronService
	if cfg.Audit.Enabled {
		auditService := services.NewAuditService(db)
		bookingService.WithAuditor(auditService)

		cronService = services.NewCronService(auditService, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, logger)
		if err := cronService.Start(); err != nil {
			logger.Fatalf("Failed to start cron service: %v", err)
		}
	}

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	hotelHandler := handlers.NewHotelHandler(hotelService, logger)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check and metrics endpoints
	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionRepository, logger)

	booking := router.Group("/booking", authMiddleware)
	{
		booking.GET("", bookingHandler.GetBooking)
		booking.POST("", bookingHandler.CreateBooking)
		booking.PUT("/:bookingId", bookingHandler.UpdateBooking)
	}

	hotels := router.Group("/hotels", authMiddleware)
	{
		hotels.GET("", hotelHandler.ListHotels)
		hotels.GET("/:hotelId", hotelHandler.ListRooms)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if cronService != nil {
		cronService.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": time.Since(start).Milliseconds(),
			"user_agent": c.Request.UserAgent(),
			"request_id": c.GetString(middleware.RequestIDKey),
		}

		// Add user context if available
		if userID, exists := c.Get("user_id"); exists {
			fields["user_id"] = userID
		}

		entry := logger.WithFields(fields)

		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}

// containsWildcard reports whether origins allows any origin
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
