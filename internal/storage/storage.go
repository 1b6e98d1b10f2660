package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yourusername/elearning-api/internal/config"
	"github.com/yourusername/elearning-api/internal/domain/repository"
	mongorepo "github.com/yourusername/elearning-api/internal/repository/mongo"
	"github.com/yourusername/elearning-api/internal/repository/postgres"
	"github.com/yourusername/elearning-api/pkg/database"
)

// Repositories - набор репозиториев для выбранного драйвера хранилища
type Repositories struct {
	Users        repository.UserRepository
	Courses      repository.CourseRepository
	Purchases    repository.PurchaseRepository
	Quizzes      repository.QuizRepository
	Certificates repository.CertificateRepository

	// Driver - имя используемого драйвера (postgres или mongo)
	Driver string

	closeFn func(ctx context.Context) error
}

// Close освобождает соединения хранилища
func (r *Repositories) Close(ctx context.Context) error {
	if r.closeFn == nil {
		return nil
	}
	return r.closeFn(ctx)
}

// Options управляет подготовкой схемы при открытии хранилища
type Options struct {
	// Migrate применяет SQL-миграции (postgres) или создает индексы (mongo)
	Migrate        bool
	MigrationsPath string
	Debug          bool
}

// Open подключается к хранилищу, указанному в конфигурации
func Open(ctx context.Context, cfg config.DatabaseConfig, opts Options) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg, opts)
	case config.DriverMongo:
		return openMongo(ctx, cfg, opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(cfg config.DatabaseConfig, opts Options) (*Repositories, error) {
	db, err := database.NewPostgresDB(cfg.PostgresConnectionString(), opts.Debug)
	if err != nil {
		return nil, err
	}
	if opts.Migrate {
		path := opts.MigrationsPath
		if path == "" {
			path = database.DefaultMigrationsPath
		}
		if err := database.MigrateDB(db, path); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("[Storage] Используется PostgreSQL")
	return &Repositories{
		Users:        postgres.NewUserRepo(db),
		Courses:      postgres.NewCourseRepo(db),
		Purchases:    postgres.NewPurchaseRepo(db),
		Quizzes:      postgres.NewQuizRepo(db),
		Certificates: postgres.NewCertificateRepo(db),
		Driver:       config.DriverPostgres,
		closeFn: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig, opts Options) (*Repositories, error) {
	client, err := database.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)
	if opts.Migrate {
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	log.Info().Str("db", cfg.MongoDB).Msg("[Storage] Используется MongoDB")
	return &Repositories{
		Users:        mongorepo.NewUserRepo(db),
		Courses:      mongorepo.NewCourseRepo(db),
		Purchases:    mongorepo.NewPurchaseRepo(db),
		Quizzes:      mongorepo.NewQuizRepo(db),
		Certificates: mongorepo.NewCertificateRepo(db),
		Driver:       config.DriverMongo,
		closeFn:      client.Disconnect,
	}, nil
}
