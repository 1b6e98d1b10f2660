package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config хранит все настройки приложения
type Config struct {
	Server        ServerConfig   `mapstructure:"server"`
	Database      DatabaseConfig `mapstructure:"database"`
	Redis         RedisConfig    `mapstructure:"redis"`
	JWT           JWTConfig      `mapstructure:"jwt"`
	Quiz          QuizConfig     `mapstructure:"quiz"`
	RabbitMQ      RabbitMQConfig `mapstructure:"rabbitmq"`
	Email         EmailConfig    `mapstructure:"email"`
	CORS          CORSConfig     `mapstructure:"cors"`
	PublicBaseURL string         `mapstructure:"public_base_url"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // секунды
	WriteTimeout int    `mapstructure:"write_timeout"` // секунды
}

// DatabaseConfig содержит настройки хранилища (PostgreSQL или MongoDB)
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	MongoURI string `mapstructure:"mongo_uri"`
	MongoDB  string `mapstructure:"mongo_db"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Пустой список и пустой Addr отключают Redis.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // миллисекунды
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // миллисекунды
}

// Enabled сообщает, задан ли адрес Redis
func (r RedisConfig) Enabled() bool {
	return len(r.Addrs) > 0 || r.Addr != ""
}

// JWTConfig содержит настройки проверки JWT (HS256)
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
}

// QuizConfig содержит настройки проверки викторин
type QuizConfig struct {
	DefaultPassingScore int           `mapstructure:"default_passing_score"`
	SubmitLockTTL       time.Duration `mapstructure:"submit_lock_ttl"`
	QuizCacheTTL        time.Duration `mapstructure:"quiz_cache_ttl"`
	SubmitRateLimit     int           `mapstructure:"submit_rate_limit"`  // запросов за окно
	SubmitRateWindow    time.Duration `mapstructure:"submit_rate_window"` // окно лимита
}

// RabbitMQConfig содержит настройки публикации доменных событий
type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// EmailConfig содержит настройки отправки писем через Resend
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	APIKey   string `mapstructure:"api_key"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

// CORSConfig содержит список разрешённых источников
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения (нужен golang-migrate и lib/pq)
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// setDefaults задаёт значения по умолчанию
func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("database.driver", DriverPostgres)
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.mongo_db", "elearning")
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("jwt.expiration_hrs", 24)
	vip.SetDefault("quiz.default_passing_score", 70)
	vip.SetDefault("quiz.submit_lock_ttl", 15*time.Second)
	vip.SetDefault("quiz.quiz_cache_ttl", 5*time.Minute)
	vip.SetDefault("quiz.submit_rate_limit", 10)
	vip.SetDefault("quiz.submit_rate_window", time.Minute)
	vip.SetDefault("rabbitmq.exchange", "elearning.events")
	vip.SetDefault("email.from_name", "E-Learning")
	vip.SetDefault("public_base_url", "http://localhost:8080")
	vip.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// bindEnv привязывает переменные окружения ЯВНО
func bindEnv(vip *viper.Viper) {
	bindings := map[string]string{
		// Server
		"server.port": "SERVER_PORT",
		// Database
		"database.driver":    "DATABASE_DRIVER",
		"database.host":      "DATABASE_HOST",
		"database.port":      "DATABASE_PORT",
		"database.user":      "DATABASE_USER",
		"database.password":  "DATABASE_PASSWORD",
		"database.dbname":    "DATABASE_DBNAME",
		"database.sslmode":   "DATABASE_SSLMODE",
		"database.mongo_uri": "MONGO_URI",
		"database.mongo_db":  "MONGO_DB",
		// Redis
		"redis.mode":        "REDIS_MODE",
		"redis.addrs":       "REDIS_ADDRS",
		"redis.addr":        "REDIS_ADDR",
		"redis.password":    "REDIS_PASSWORD",
		"redis.db":          "REDIS_DB",
		"redis.master_name": "REDIS_MASTER_NAME",
		// JWT
		"jwt.secret":         "JWT_SECRET",
		"jwt.expiration_hrs": "JWT_EXPIRATION_HRS",
		// Quiz
		"quiz.default_passing_score": "QUIZ_DEFAULT_PASSING_SCORE",
		"quiz.submit_lock_ttl":       "QUIZ_SUBMIT_LOCK_TTL",
		"quiz.quiz_cache_ttl":        "QUIZ_CACHE_TTL",
		// RabbitMQ
		"rabbitmq.enabled":  "RABBITMQ_ENABLED",
		"rabbitmq.url":      "RABBITMQ_URL",
		"rabbitmq.exchange": "RABBITMQ_EXCHANGE",
		// Email
		"email.enabled":   "EMAIL_ENABLED",
		"email.api_key":   "RESEND_API_KEY",
		"email.from":      "EMAIL_FROM",
		"email.from_name": "EMAIL_FROM_NAME",
		// Прочее
		"public_base_url":      "PUBLIC_BASE_URL",
		"cors.allowed_origins": "CORS_ALLOWED_ORIGINS",
	}
	for key, env := range bindings {
		_ = vip.BindEnv(key, env)
	}
}

// Load загружает конфигурацию из .env, файла и переменных окружения
func Load(configPath string) (*Config, error) {
	// .env необязателен: в Docker переменные передаются напрямую
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("[Config] Файл .env не найден, используются переменные окружения")
	}

	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Не страшно, если файла нет, т.к. есть BindEnv
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Warn().Str("path", configPath).Msg("[Config] Файл конфигурации не найден, используются переменные окружения/умолчания")
			} else {
				log.Warn().Err(err).Str("path", configPath).Msg("[Config] Не удалось прочитать файл конфигурации")
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Значения из env приходят строкой через запятую
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("driver", cfg.Database.Driver).
		Str("db_host", cfg.Database.Host).
		Str("db_name", cfg.Database.DBName).
		Bool("redis_enabled", cfg.Redis.Enabled()).
		Bool("rabbitmq_enabled", cfg.RabbitMQ.Enabled).
		Bool("email_enabled", cfg.Email.Enabled).
		Str("port", cfg.Server.Port).
		Msg("[Config] Конфигурация загружена")

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required in config (check JWT_SECRET env var)")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("mongo uri is required when database.driver=mongo (check MONGO_URI env var)")
		}
	default:
		return fmt.Errorf("unsupported database driver %q (expected %s or %s)", c.Database.Driver, DriverPostgres, DriverMongo)
	}

	if c.Quiz.DefaultPassingScore < 1 || c.Quiz.DefaultPassingScore > 100 {
		return fmt.Errorf("quiz.default_passing_score must be between 1 and 100, got %d", c.Quiz.DefaultPassingScore)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq url is required when rabbitmq is enabled (check RABBITMQ_URL env var)")
	}
	if c.Email.Enabled && (c.Email.APIKey == "" || c.Email.From == "") {
		return fmt.Errorf("email api key and sender are required when email is enabled (check RESEND_API_KEY, EMAIL_FROM env vars)")
	}
	return nil
}

// splitList раскладывает значения вида "a,b" на отдельные элементы
func splitList(values []string) []string {
	var result []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
