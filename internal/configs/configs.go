/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, port, CORS allowed origins, the optional shared
invite code, and the sticker upload backend.
*/
package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Upload backend selectors for AppConfig.UploadBackend.
const (
	UploadBackendDisk = "disk"
	UploadBackendS3   = "s3"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`

	// InviteCode is the shared secret every handshake must present.
	// When empty the server is open and handshakes are never rejected.
	InviteCode string `env:"INVITE_CODE"`

	// Security Settings
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Sticker Upload Settings
	UploadBackend string `env:"UPLOAD_BACKEND" envDefault:"disk"`
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`

	// S3 Storage Settings (required only when UploadBackend is "s3")
	S3BucketName      string `env:"S3_BUCKET_NAME"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary validation.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *AppConfig) validate() error {
	if cfg.Port < 1024 || cfg.Port > 65535 {
		return fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	switch cfg.UploadBackend {
	case UploadBackendDisk:
		if cfg.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR must not be empty when the disk upload backend is selected")
		}

	case UploadBackendS3:
		for name, value := range map[string]string{
			"S3_BUCKET_NAME":       cfg.S3BucketName,
			"S3_ENDPOINT":          cfg.S3Endpoint,
			"S3_ACCESS_KEY_ID":     cfg.S3AccessKeyID,
			"S3_SECRET_ACCESS_KEY": cfg.S3SecretAccessKey,
		} {
			if value == "" {
				return fmt.Errorf("%s environment variable is required when the s3 upload backend is selected", name)
			}
		}

	default:
		return fmt.Errorf("unknown upload backend %q (expected %q or %q)", cfg.UploadBackend, UploadBackendDisk, UploadBackendS3)
	}

	return nil
}
