package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env-default:"development"`
	HTTPServer HTTPServerConfig `yaml:"http_server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Push       PushConfig       `yaml:"push"`
	Upload     UploadConfig     `yaml:"upload"`
	Migrations MigrationsConfig `yaml:"migrations"`
}

type HTTPServerConfig struct {
	Address      string        `yaml:"address" env-default:"localhost:8080"`
	Timeout      time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
	RateLimit    int           `yaml:"rate_limit" env-default:"100"` // requests per second
	AllowOrigins []string      `yaml:"allow_origins" env-default:"*"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"-" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env-required:"true"`
}

type JWTConfig struct {
	Secret   string `yaml:"-" env:"JWT_SECRET" env-required:"true"`
	TokenTTL int    `yaml:"token_ttl" env-default:"60"` // minutes
}

type RedisConfig struct {
	Addr string        `yaml:"addr" env-default:"localhost:6379"`
	TTL  time.Duration `yaml:"ttl" env-default:"5m"`
}

type KafkaConfig struct {
	Brokers           []string `yaml:"brokers" env-default:"localhost:9092"`
	TransactionsTopic string   `yaml:"transactions_topic" env-default:"transactions"`
	OrdersTopic       string   `yaml:"orders_topic" env-default:"orders"`
}

// PushConfig points at the Expo-compatible push gateway.
type PushConfig struct {
	GatewayURL string        `yaml:"gateway_url" env-default:"https://exp.host/--/api/v2/push/send"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
	BatchSize  int           `yaml:"batch_size" env-default:"100"`
	Workers    int           `yaml:"workers" env-default:"4"`
}

// UploadConfig points at the CDN upload API (Cloudinary unsigned preset).
type UploadConfig struct {
	URL     string        `yaml:"url" env-default:"https://api.cloudinary.com/v1_1/tama-clothing/auto/upload"`
	Preset  string        `yaml:"preset" env-default:"tama_unsigned"`
	Folder  string        `yaml:"folder" env-default:"tama-clothing"`
	Timeout time.Duration `yaml:"timeout" env-default:"30s"`
}

type MigrationsConfig struct {
	Path string `yaml:"path" env-default:"./migrations"`
}

// MustLoad loads the config from the path given by the -config flag or
// CONFIG_PATH, and panics when it cannot.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	return MustLoadByPath(configPath)
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file not found: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can't read config file %s", configPath)
	}

	return &cfg
}
