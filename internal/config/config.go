package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Voucherdesk"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"voucherdesk"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AuthSecret  string        `envconfig:"AUTH_SECRET"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
		UploadDir   string        `envconfig:"UPLOAD_DIR" default:"./uploads"`
		PublicURL   string        `envconfig:"PUBLIC_URL" default:"http://localhost:8080"`
	}

	// Client holds the settings of the terminal client.
	Client struct {
		APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api/v1"`
		APITimeout     time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
		LocalDBPath    string        `envconfig:"LOCAL_DB_PATH" default:"voucherdesk.db"`
		ReconcileDelay time.Duration `envconfig:"RECONCILE_DELAY" default:"1500ms"`
		ToastTTL       time.Duration `envconfig:"TOAST_TTL" default:"4s"`
		ExportDir      string        `envconfig:"EXPORT_DIR" default:"./exports"`
		LogFile        string        `envconfig:"LOG_FILE" default:"voucherdesk.log"`
		ConfirmDecline bool          `envconfig:"CONFIRM_DECLINE" default:"false"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Client.ReconcileDelay < 0 {
		return nil, fmt.Errorf("RECONCILE_DELAY must not be negative, got %s", cfg.Client.ReconcileDelay)
	}

	return &cfg, nil
}
