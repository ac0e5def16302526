package configs

import (
	"os"
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "INVITE_CODE", "ALLOWED_ORIGINS",
		"UPLOAD_BACKEND", "UPLOAD_DIR",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		// t.Setenv registers the restore; the unset makes defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.InviteCode != "" {
		t.Errorf("invite code should default to empty, got %q", cfg.InviteCode)
	}
	if cfg.UploadBackend != UploadBackendDisk {
		t.Errorf("upload backend = %q, want %q", cfg.UploadBackend, UploadBackendDisk)
	}
}

func TestLoadConfigPortValidation(t *testing.T) {
	for _, port := range []string{"80", "70000", "notaport"} {
		t.Run(port, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv("PORT", port)

			if _, err := LoadConfig(); err == nil {
				t.Fatalf("PORT=%s accepted", port)
			}
		})
	}
}

func TestLoadConfigS3BackendRequiresCredentials(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPLOAD_BACKEND", "s3")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("s3 backend accepted without credentials")
	}

	t.Setenv("S3_BUCKET_NAME", "stickers")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("fully configured s3 backend rejected: %v", err)
	}
	if cfg.UploadBackend != UploadBackendS3 {
		t.Fatalf("upload backend = %q", cfg.UploadBackend)
	}
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("UPLOAD_BACKEND", "carrier-pigeon")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("unknown upload backend accepted")
	}
}

func TestLoadConfigOriginsSplit(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("allowed origins = %v", cfg.AllowedOrigins)
	}
}
