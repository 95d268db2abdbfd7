package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoadByPath_Success(t *testing.T) {
	os.Setenv("DB_PASSWORD", "mypassword")
	os.Setenv("JWT_SECRET", "mysecret")
	defer os.Unsetenv("DB_PASSWORD")
	defer os.Unsetenv("JWT_SECRET")

	content := `
env: "local"
http_server:
  address: "localhost:8080"
  timeout: "4s"
  idle_timeout: "60s"
  rate_limit: 50
database:
  host: "localhost"
  port: 5432
  user: "postgres"
  name: "tama"
jwt:
  token_ttl: 60
redis:
  addr: "localhost:6379"
  ttl: "10m"
kafka:
  brokers:
    - "localhost:9092"
  transactions_topic: "transactions"
  orders_topic: "orders"
push:
  gateway_url: "https://exp.host/--/api/v2/push/send"
  batch_size: 100
  workers: 2
upload:
  url: "https://api.cloudinary.com/v1_1/tama-clothing/auto/upload"
  preset: "tama_unsigned"
migrations:
  path: "./migrations"
`
	tmpFile, err := os.CreateTemp("", "config_test_*.yaml")
	assert.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString(content)
	assert.NoError(t, err)
	err = tmpFile.Close()
	assert.NoError(t, err)

	cfg := config.MustLoadByPath(tmpFile.Name())

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 4*time.Second, cfg.HTTPServer.Timeout)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.Equal(t, 50, cfg.HTTPServer.RateLimit)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "tama", cfg.Database.Name)
	assert.Equal(t, "mypassword", cfg.Database.Password)
	assert.Equal(t, 60, cfg.JWT.TokenTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "transactions", cfg.Kafka.TransactionsTopic)
	assert.Equal(t, 100, cfg.Push.BatchSize)
	assert.Equal(t, 2, cfg.Push.Workers)
	assert.Equal(t, "tama_unsigned", cfg.Upload.Preset)
	assert.Equal(t, "./migrations", cfg.Migrations.Path)
}

func TestMustLoadByPath_FileNotFound(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadByPath("non_existent_config.yaml")
	})
}
