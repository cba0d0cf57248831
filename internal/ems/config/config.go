package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Env      string
	LogLevel string
	MongoURI string
	Port     string
	DBName   string
	Storage  string

	// Transactions requires a replica set or sharded cluster.
	Transactions bool

	EmployeesCollection   string
	ManagerLogsCollection string
	SelfLogsCollection    string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	UploadDir      string
	MaxUploadBytes int64

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:          getEnv("GO_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Port:         getEnv("PORT", "8080"),
		DBName:       getEnv("DB_NAME", "ems"),
		Storage:      strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongo)),
		Transactions: getEnvBool("MONGO_TRANSACTIONS", false),

		EmployeesCollection:   getEnv("COLLECTION_EMPLOYEES", "employees"),
		ManagerLogsCollection: getEnv("COLLECTION_MANAGER_LOGS", "managerlogs"),
		SelfLogsCollection:    getEnv("COLLECTION_SELF_LOGS", "employeeupdatelogs"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = "dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Validate() error {
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageMemory, c.Storage)
	}
	if c.Storage == StorageMongo && c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getEnvDuration accepts plain seconds or a Go duration string.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		d, err := time.ParseDuration(valStr)
		if err == nil {
			return d
		}
		return fallback
	}
	return time.Duration(val) * time.Second
}
