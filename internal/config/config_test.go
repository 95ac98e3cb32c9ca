package config

import (
	"testing"

	"github.com/fotokiosk/kiosk/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"KIOSK_DATABASE_PATH", "KIOSK_PRINT_BASE_PATH", "KIOSK_TEMP_UPLOAD_DIR",
		"KIOSK_SMART_ORIENTATION", "KIOSK_RENDER_TIMEOUT_SECONDS", "KIOSK_RETENTION_DAYS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Database.Path != "kiosk.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Paths.PrintBase != "hotfolder" {
		t.Errorf("print base = %q", cfg.Paths.PrintBase)
	}
	if cfg.Paths.TempUploads != "temp_uploads" {
		t.Errorf("temp uploads = %q", cfg.Paths.TempUploads)
	}
	if !cfg.Render.SmartOrientation {
		t.Error("smart orientation should default on")
	}
	if cfg.Render.TimeoutSeconds != constants.DefaultRenderTimeoutSeconds {
		t.Errorf("timeout = %d", cfg.Render.TimeoutSeconds)
	}
	if cfg.Render.RetentionDays != constants.RetentionDays {
		t.Errorf("retention = %d", cfg.Render.RetentionDays)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KIOSK_DATABASE_PATH", "/data/orders.db")
	t.Setenv("KIOSK_PRINT_BASE_PATH", "/mnt/hotfolder")
	t.Setenv("KIOSK_SMART_ORIENTATION", "false")
	t.Setenv("KIOSK_RENDER_TIMEOUT_SECONDS", "15")
	t.Setenv("KIOSK_RETENTION_DAYS", "7")

	cfg := Load()

	if cfg.Database.Path != "/data/orders.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Paths.PrintBase != "/mnt/hotfolder" {
		t.Errorf("print base = %q", cfg.Paths.PrintBase)
	}
	if cfg.Render.SmartOrientation {
		t.Error("smart orientation should be off")
	}
	if cfg.Render.TimeoutSeconds != 15 {
		t.Errorf("timeout = %d", cfg.Render.TimeoutSeconds)
	}
	if cfg.Render.RetentionDays != 7 {
		t.Errorf("retention = %d", cfg.Render.RetentionDays)
	}
}

func TestEnvInt_RejectsInvalid(t *testing.T) {
	t.Setenv("KIOSK_TEST_INT", "not-a-number")
	if got := envInt("KIOSK_TEST_INT", 42); got != 42 {
		t.Errorf("envInt = %d, want default 42", got)
	}

	t.Setenv("KIOSK_TEST_INT", "-5")
	if got := envInt("KIOSK_TEST_INT", 42); got != 42 {
		t.Errorf("envInt with negative = %d, want default 42", got)
	}
}
