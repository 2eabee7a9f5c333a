package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends
const (
	BackendSQL  = "sql"
	BackendGORM = "gorm"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	StoreBackend string
	EnvFile      string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("survey-basket", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.StoreBackend, "store", "", "Store backend (sql or gorm)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Path to a .env file (default .env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env values never override variables already set in the environment
	if cfg.EnvFile == "" {
		cfg.EnvFile = os.Getenv("ENV_FILE")
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = BackendSQL
		}
	}
	switch cfg.StoreBackend {
	case BackendSQL:
	case BackendGORM:
		if cfg.DatabaseType != "postgres" {
			return Config{}, errors.New("gorm store backend requires DATABASE_TYPE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported store backend %q (use sql or gorm)", cfg.StoreBackend)
	}

	return cfg, nil
}

// loadEnvFile loads KEY=VALUE pairs into the environment. A missing file is fine.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
