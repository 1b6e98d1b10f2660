package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/config"
	"github.com/yourusername/elearning-api/internal/logger"
	redisRepo "github.com/yourusername/elearning-api/internal/repository/redis"
	"github.com/yourusername/elearning-api/internal/seed"
	"github.com/yourusername/elearning-api/internal/service"
	"github.com/yourusername/elearning-api/internal/storage"
	"github.com/yourusername/elearning-api/pkg/auth"
	"github.com/yourusername/elearning-api/pkg/database"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	migrationsPath := flag.String("source", database.DefaultMigrationsPath, "migrations source URL")
	flag.Parse()

	logger.Init("debug")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repos, err := storage.Open(ctx, cfg.Database, storage.Options{Migrate: true, MigrationsPath: *migrationsPath})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer repos.Close(context.Background())

	courseService := service.NewCourseService(repos.Courses, repos.Purchases)
	// Кеш викторин не нужен: сидер только создает данные
	quizService := service.NewQuizService(repos.Quizzes, redisRepo.NewNoopCache(), nil, service.QuizConfig{
		DefaultPassingScore: cfg.Quiz.DefaultPassingScore,
	})

	result, err := seed.NewSeeder(courseService, quizService, repos.Users).Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}

	if result.Skipped {
		log.Info().Msg("Catalog already seeded")
	} else {
		log.Info().Int("courses", result.CoursesCreated).Str("driver", repos.Driver).Msg("Catalog seeded")
	}

	// Токен разработчика для ручной проверки API
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Warn().Err(err).Msg("JWT secret is not configured, skipping development token")
		return
	}
	token, err := jwtService.GenerateToken(result.Admin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate development token")
	}
	fmt.Printf("Admin: %s / %s\nToken: %s\n", seed.AdminEmail, seed.AdminPassword, token)
}
