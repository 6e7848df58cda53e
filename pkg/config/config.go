package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ReferenceSourceCSV      = "csv"
	ReferenceSourcePostgres = "postgres"
	ReferenceSourceNone     = "none"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Artifacts ArtifactConfig
	Reference ReferenceConfig
	Database  DatabaseConfig
	JWT       JWTConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type ArtifactConfig struct {
	// Dir holds the exported model files and an optional manifest.yaml.
	Dir string
}

type ReferenceConfig struct {
	Source  string
	CSVPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	// SecretKey enables bearer auth on the API when set.
	SecretKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Smart Stock Decision System"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		},
		Artifacts: ArtifactConfig{
			Dir: getEnv("ARTIFACT_DIR", "./artifacts"),
		},
		Reference: ReferenceConfig{
			Source:  strings.ToLower(getEnv("REFERENCE_SOURCE", ReferenceSourceCSV)),
			CSVPath: getEnv("REFERENCE_CSV_PATH", "./data/segmented_products.csv"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "smart_stock"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
	}

	if cfg.Artifacts.Dir == "" {
		return nil, errors.New("missing artifact directory")
	}

	switch cfg.Reference.Source {
	case ReferenceSourceCSV:
		if cfg.Reference.CSVPath == "" {
			return nil, errors.New("missing reference csv path")
		}
	case ReferenceSourcePostgres:
		if cfg.Database.Password == "" {
			return nil, errors.New("missing database password")
		}
	case ReferenceSourceNone:
	default:
		return nil, errors.New("unknown reference source: " + cfg.Reference.Source)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
