package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/config"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	"github.com/yourusername/elearning-api/internal/event"
	"github.com/yourusername/elearning-api/internal/handler"
	"github.com/yourusername/elearning-api/internal/logger"
	"github.com/yourusername/elearning-api/internal/metrics"
	"github.com/yourusername/elearning-api/internal/middleware"
	redisRepo "github.com/yourusername/elearning-api/internal/repository/redis"
	"github.com/yourusername/elearning-api/internal/service"
	"github.com/yourusername/elearning-api/internal/storage"
	"github.com/yourusername/elearning-api/pkg/auth"
	"github.com/yourusername/elearning-api/pkg/database"
)

func main() {
	logger.Init(gin.Mode())

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Info().Str("path", configPath).Msg("Загрузка конфигурации")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище: PostgreSQL или MongoDB, миграции применяются при старте
	repos, err := storage.Open(ctx, cfg.Database, storage.Options{
		Migrate:        true,
		MigrationsPath: database.DefaultMigrationsPath,
		Debug:          gin.Mode() != gin.ReleaseMode,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open storage")
	}
	log.Info().Str("driver", repos.Driver).Msg("Storage connected")

	// Redis необязателен: без него нет кеша, блокировки отправки и rate limit
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository = redisRepo.NewNoopCache()
	var submitCounter middleware.WindowCounter
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		redisCache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize CacheRepo")
		}
		cacheRepo = redisCache
		submitCounter = redisCache
		log.Info().Msg("Successfully connected to Redis")
	} else {
		log.Warn().Msg("Redis is not configured, running without cache and submit lock")
	}

	// Публикация событий и письма - необязательные побочные эффекты выдачи сертификата
	var publisher event.Publisher = event.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbit, err := event.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		publisher = rabbit
	}

	var notifier service.Notifier = service.NoopNotifier{}
	if cfg.Email.Enabled {
		resendNotifier, err := service.NewResendNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize email notifier")
		}
		notifier = resendNotifier
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize JWTService")
	}

	// Сервисы
	certService := service.NewCertificateService(repos.Certificates, repos.Users, repos.Courses, publisher, notifier, cfg.PublicBaseURL)
	quizService := service.NewQuizService(repos.Quizzes, cacheRepo, certService, service.QuizConfig{
		DefaultPassingScore: cfg.Quiz.DefaultPassingScore,
		SubmitLockTTL:       cfg.Quiz.SubmitLockTTL,
		QuizCacheTTL:        cfg.Quiz.QuizCacheTTL,
	})
	courseService := service.NewCourseService(repos.Courses, repos.Purchases)

	// Роутер
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinLogger(), metrics.GinMiddleware())

	if gin.Mode() == gin.ReleaseMode {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Warn().Err(err).Msg("Failed to set trusted proxies")
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Warn().Err(err).Msg("Failed to set trusted proxies")
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handler.Health)
	router.GET("/metrics", metrics.Handler())

	rateLimiter := middleware.NewRateLimiter(submitCounter)
	handler.Routes{
		Quizzes:      handler.NewQuizHandler(quizService),
		Certificates: handler.NewCertificateHandler(certService),
		Courses:      handler.NewCourseHandler(courseService),
		Auth:         middleware.NewAuthMiddleware(jwtService),
		SubmitLimit:  rateLimiter.Limit(middleware.SubmitRateLimitConfig(cfg.Quiz.SubmitRateLimit, cfg.Quiz.SubmitRateWindow)),
	}.Register(router)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := certService.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Certificate notifications did not finish before shutdown")
	}
	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing event publisher")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis client")
		}
	}
	if err := repos.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error closing storage")
	}

	log.Info().Msg("Server exited properly")
}
