package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  port: "9090"
database:
  driver: postgres
  host: localhost
  user: elearning
  password: secret
  dbname: elearning
redis:
  addr: "localhost:6379"
jwt:
  secret: test-secret
quiz:
  default_passing_score: 80
  submit_lock_ttl: 20s
public_base_url: "https://learn.example.com/"
cors:
  allowed_origins:
    - "https://learn.example.com"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, testConfigYAML)

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port, "Порт по умолчанию")
	assert.Equal(t, 80, cfg.Quiz.DefaultPassingScore)
	assert.Equal(t, 20*time.Second, cfg.Quiz.SubmitLockTTL)
	assert.Equal(t, 5*time.Minute, cfg.Quiz.QuizCacheTTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "https://learn.example.com", cfg.PublicBaseURL, "Завершающий слеш обрезается")
	assert.Equal(t, []string{"https://learn.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, testConfigYAML)
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  user: u
  dbname: d
`)

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverPostgres, Host: "h", User: "u", DBName: "d"},
			JWT:      JWTConfig{Secret: "s"},
			Quiz:     QuizConfig{DefaultPassingScore: 70},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid postgres", func(c *Config) {}, false},
		{"mongo without uri", func(c *Config) { c.Database.Driver = DriverMongo }, true},
		{"mongo with uri", func(c *Config) { c.Database.Driver = DriverMongo; c.Database.MongoURI = "mongodb://localhost" }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"passing score zero", func(c *Config) { c.Quiz.DefaultPassingScore = 0 }, true},
		{"passing score above 100", func(c *Config) { c.Quiz.DefaultPassingScore = 101 }, true},
		{"rabbitmq without url", func(c *Config) { c.RabbitMQ.Enabled = true }, true},
		{"email without key", func(c *Config) { c.Email.Enabled = true; c.Email.From = "a@b.c" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_ConnectionStrings(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.PostgresConnectionString())
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", d.PostgresURL())
}
