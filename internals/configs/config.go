// file: internals/configs/config.go
package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting. It is built once at startup
// and passed explicitly into the pieces that need it; nothing reads the
// environment after Load returns.
type Config struct {
	Env  string
	Port string

	Database DatabaseConfig
	JWT      JWTConfig
	Backup   BackupConfig
	OSS      OSSConfig
	Email    EmailConfig

	FrontendURL string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

// DSN builds the Postgres connection string with a statement timeout, same
// shape the deployment uses behind PgBouncer.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=eduanalytics&options=-c statement_timeout=3000",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
	Issuer    string
}

type BackupConfig struct {
	// Dir is where finished archives live; TempDir is for restore extraction.
	Dir     string
	TempDir string
}

// OSSConfig enables remote archive upload when all fields are set.
type OSSConfig struct {
	Endpoint        string
	Bucket          string
	AccessKeyID     string
	AccessKeySecret string
}

func (o OSSConfig) Enabled() bool {
	return o.Endpoint != "" && o.Bucket != "" && o.AccessKeyID != "" && o.AccessKeySecret != ""
}

type EmailConfig struct {
	SendgridKey string
	FromName    string
	FromAddress string
}

// Load reads .env (when present) and materializes the Config. In production
// a missing JWT_SECRET is fatal; elsewhere we warn and keep going so local
// setups still boot.
func Load() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[CONFIG] no .env file, using system environment")
		}
	}

	cfg := &Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("PORT", "3000"),
		Database: DatabaseConfig{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getenv("DB_HOST", "127.0.0.1"),
			Port:     getenv("DB_PORT", "5432"),
			Name:     getenv("DB_NAME", "eduanalytics"),
			SSLMode:  getenv("DB_SSLMODE", "require"),
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			ExpiresIn: durationEnv("JWT_EXPIRES_HOURS", 30*24*time.Hour),
			Issuer:    getenv("JWT_ISSUER", "eduanalytics-sa"),
		},
		Backup: BackupConfig{
			Dir:     getenv("BACKUP_DIR", "backups"),
			TempDir: getenv("BACKUP_TEMP_DIR", "temp"),
		},
		OSS: OSSConfig{
			Endpoint:        os.Getenv("OSS_ENDPOINT"),
			Bucket:          os.Getenv("OSS_BACKUP_BUCKET"),
			AccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
		},
		Email: EmailConfig{
			SendgridKey: os.Getenv("SENDGRID_API_KEY"),
			FromName:    getenv("EMAIL_FROM_NAME", "EduAnalytics SA"),
			FromAddress: getenv("EMAIL_FROM_ADDRESS", "noreply@eduanalytics.co.za"),
		},
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.JWT.Secret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("[CONFIG] JWT_SECRET not set, using insecure development secret")
		cfg.JWT.Secret = "edu-analytics-development-secret"
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	h, err := strconv.Atoi(v)
	if err != nil || h <= 0 {
		return def
	}
	return time.Duration(h) * time.Hour
}
