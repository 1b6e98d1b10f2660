package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/config"
	"github.com/yourusername/elearning-api/internal/logger"
	"github.com/yourusername/elearning-api/pkg/database"
)

// Утилита управления схемой PostgreSQL:
//
//	migrate up           применить все миграции
//	migrate down         откатить одну миграцию
//	migrate force N      снять dirty-состояние, выставив версию N
//	migrate version      показать текущую версию
func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "путь к файлу конфигурации")
	source := flag.String("source", database.DefaultMigrationsPath, "источник миграций")
	flag.Parse()

	logger.Init(os.Getenv("GIN_MODE"))

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-config path] [-source url] up|down|force N|version")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Ошибка загрузки конфигурации")
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.Database.Driver).Msg("[Migrate] Миграции нужны только для PostgreSQL")
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Не удалось открыть соединение")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("[Migrate] База данных недоступна")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Не удалось создать драйвер")
	}

	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)
	if err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Не удалось создать экземпляр migrate")
	}

	if err := run(m, flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("[Migrate] Ошибка")
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		if err := m.Steps(-1); err != nil {
			return err
		}
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version")
		}
		var version int
		if _, err := fmt.Sscanf(args[1], "%d", &version); err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("[Migrate] Текущая версия схемы")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
