package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
}

type DatabasesConfig struct {
	// Driver is postgres, mysql or sqlite.
	Driver       string     `yaml:"driver"`
	SQLitePath   string     `yaml:"sqlite_path"`
	Master       DBConfig   `yaml:"master"`
	Replicas     []DBConfig `yaml:"replicas"`
	MaxOpenConns int        `yaml:"max_open_conns"`
	MaxIdleConns int        `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	ProfileTTL time.Duration `yaml:"profile_ttl"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type BackendConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type LogsConfig struct {
	Level string `yaml:"level"`
}

type FriendsConfig struct {
	ConflictRetries       int  `yaml:"conflict_retries"`
	AnnotateWorkers       int  `yaml:"annotate_workers"`
	SearchLimit           int  `yaml:"search_limit"`
	SymmetricAcceptedFeed bool `yaml:"symmetric_accepted_feed"`
	// CounterReconcileInterval is how often cached counters are checked against
	// the database. Zero or negative disables the worker.
	CounterReconcileInterval time.Duration `yaml:"counter_reconcile_interval"`
}

type ConfigSchema struct {
	Databases DatabasesConfig `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Backend   BackendConfig   `yaml:"backend"`
	Auth      AuthConfig      `yaml:"auth"`
	Logs      LogsConfig      `yaml:"logs"`
	Friends   FriendsConfig   `yaml:"friends"`
}

var AppConfig *ConfigSchema

// LoadConfig reads the yaml file, applies .env/environment overrides and defaults,
// and stores the result in AppConfig.
func LoadConfig(filePath string) error {
	cfg, err := ReadConfig(filePath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func ReadConfig(filePath string) (*ConfigSchema, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	cfg := &ConfigSchema{}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", filePath, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *ConfigSchema) {
	cfg.Databases.Driver = getEnv("DB_DRIVER", cfg.Databases.Driver)
	cfg.Databases.SQLitePath = getEnv("DB_SQLITE_PATH", cfg.Databases.SQLitePath)
	cfg.Databases.Master.Host = getEnv("DB_HOST", cfg.Databases.Master.Host)
	cfg.Databases.Master.Port = getEnvAsInt("DB_PORT", cfg.Databases.Master.Port)
	cfg.Databases.Master.User = getEnv("DB_USER", cfg.Databases.Master.User)
	cfg.Databases.Master.Password = getEnv("DB_PASSWORD", cfg.Databases.Master.Password)
	cfg.Databases.Master.DBName = getEnv("DB_NAME", cfg.Databases.Master.DBName)

	cfg.Redis.Host = getEnv("REDIS_HOST", cfg.Redis.Host)
	cfg.Redis.Port = getEnvAsInt("REDIS_PORT", cfg.Redis.Port)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Backend.Port = getEnvAsInt("SERVER_PORT", cfg.Backend.Port)
	cfg.Logs.Level = getEnv("LOG_LEVEL", cfg.Logs.Level)
}

func applyDefaults(cfg *ConfigSchema) {
	if cfg.Databases.Driver == "" {
		cfg.Databases.Driver = "postgres"
	}
	if cfg.Databases.Driver == "sqlite" && cfg.Databases.SQLitePath == "" {
		cfg.Databases.SQLitePath = "encuentros.db"
	}
	if cfg.Databases.Master.Host == "" {
		cfg.Databases.Master.Host = "localhost"
	}
	if cfg.Databases.Master.Port == 0 {
		switch cfg.Databases.Driver {
		case "mysql":
			cfg.Databases.Master.Port = 3306
		default:
			cfg.Databases.Master.Port = 5432
		}
	}
	if cfg.Databases.MaxOpenConns == 0 {
		cfg.Databases.MaxOpenConns = 25
	}
	if cfg.Databases.MaxIdleConns == 0 {
		cfg.Databases.MaxIdleConns = 5
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.ProfileTTL == 0 {
		cfg.Redis.ProfileTTL = 10 * time.Minute
	}
	if cfg.RabbitMQ.Exchange == "" {
		cfg.RabbitMQ.Exchange = "friendship_events"
	}
	if cfg.Backend.Port == 0 {
		cfg.Backend.Port = 8080
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Friends.ConflictRetries <= 0 {
		cfg.Friends.ConflictRetries = 3
	}
	if cfg.Friends.AnnotateWorkers <= 0 {
		cfg.Friends.AnnotateWorkers = 8
	}
	if cfg.Friends.SearchLimit <= 0 {
		cfg.Friends.SearchLimit = 50
	}
}

func (c *ConfigSchema) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Backend.Host, c.Backend.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer in %s=%q, keeping %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
