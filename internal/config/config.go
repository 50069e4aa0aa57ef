package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Backup struct {
		Dir       string `mapstructure:"dir"`
		Retention int    `mapstructure:"retention"`

		R2 struct {
			Enabled   bool   `mapstructure:"enabled"`
			Endpoint  string `mapstructure:"endpoint"`
			AccessKey string `mapstructure:"access_key"`
			SecretKey string `mapstructure:"secret_key"`
			Bucket    string `mapstructure:"bucket"`
			Region    string `mapstructure:"region"`
		} `mapstructure:"r2"`
	} `mapstructure:"backup"`

	Export struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"export"`

	Notifications struct {
		IntervalMinutes int `mapstructure:"interval_minutes"`
	} `mapstructure:"notifications"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", filepath.Join("data", "cotton.db"))
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "cotton-backend")
	v.SetDefault("backup.dir", filepath.Join("data", "backups"))
	v.SetDefault("backup.retention", 10)
	v.SetDefault("backup.r2.region", "auto")
	v.SetDefault("export.dir", filepath.Join("data", "exports"))
	v.SetDefault("notifications.interval_minutes", 5)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database path from environment
	if path := os.Getenv("DB_PATH"); path != "" {
		cfg.Database.Path = path
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		if cfg.JWT.Secret == "" {
			log.Fatal("JWT_SECRET not set in config file or environment")
		}
	}

	// R2 credentials come from the environment, never the config file
	if cfg.Backup.R2.Enabled {
		if key := os.Getenv("R2_ACCESS_KEY"); key != "" {
			cfg.Backup.R2.AccessKey = key
		}
		if secret := os.Getenv("R2_SECRET_KEY"); secret != "" {
			cfg.Backup.R2.SecretKey = secret
		}
		if cfg.Backup.R2.AccessKey == "" || cfg.Backup.R2.SecretKey == "" {
			log.Printf("[Config] R2 enabled but credentials missing, disabling off-site backups")
			cfg.Backup.R2.Enabled = false
		}
	}

	return &cfg
}
