package config

import (
	"os"
	"strconv"

	"github.com/fotokiosk/kiosk/internal/constants"
)

type Config struct {
	Database DatabaseConfig
	Paths    PathsConfig
	Render   RenderConfig
}

type DatabaseConfig struct {
	Path string // SQLite database file
}

type PathsConfig struct {
	// PrintBase is the hot-folder root watched by the print spooler; one
	// subdirectory per print format.
	PrintBase string
	// TempUploads holds browser-uploaded photos until the retention sweep.
	TempUploads string
}

type RenderConfig struct {
	// SmartOrientation auto-rotates never-edited photos whose orientation
	// mismatches the print format. A heuristic, so it stays configurable.
	SmartOrientation bool
	// TimeoutSeconds bounds a single photo render during dispatch.
	TimeoutSeconds int
	// RetentionDays is the temp-upload sweep window.
	RetentionDays int
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean with a default.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// envString reads an environment variable with a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: envString("KIOSK_DATABASE_PATH", "kiosk.db"),
		},
		Paths: PathsConfig{
			PrintBase:   envString("KIOSK_PRINT_BASE_PATH", "hotfolder"),
			TempUploads: envString("KIOSK_TEMP_UPLOAD_DIR", "temp_uploads"),
		},
		Render: RenderConfig{
			SmartOrientation: envBool("KIOSK_SMART_ORIENTATION", true),
			TimeoutSeconds:   envInt("KIOSK_RENDER_TIMEOUT_SECONDS", constants.DefaultRenderTimeoutSeconds),
			RetentionDays:    envInt("KIOSK_RETENTION_DAYS", constants.RetentionDays),
		},
	}
}
