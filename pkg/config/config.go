package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chargedcycleworks/service-intake/pkg/utils"
)

const (
	AppName = "service-intake"

	DefaultBaseURL          = "https://aiservicewriter-production.up.railway.app"
	DefaultRequestTimeoutMS = 30000
	DefaultOrganization     = "Charged Cycle Works"
	DefaultFormVersion      = "16"
	DefaultPort             = "5000"
	DefaultUploadDir        = "uploads"
)

// Config holds all application configuration values
type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	OrganizationName string
	FormVersion      string

	// Mock backend
	Port           string
	UploadDir      string
	AllowedOrigins []string

	States *StateSet
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		BaseURL:          strings.TrimRight(envOr("INTAKE_BASE_URL", DefaultBaseURL), "/"),
		RequestTimeout:   time.Duration(envInt("INTAKE_REQUEST_TIMEOUT_MS", DefaultRequestTimeoutMS)) * time.Millisecond,
		OrganizationName: envOr("INTAKE_ORGANIZATION", DefaultOrganization),
		FormVersion:      envOr("INTAKE_FORM_VERSION", DefaultFormVersion),
		Port:             envOr("PORT", DefaultPort),
		UploadDir:        envOr("UPLOAD_DIR", DefaultUploadDir),
		AllowedOrigins:   splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		States:           DefaultStates(),
	}
}

// CheckBackend reports whether BaseURL is usable as an absolute http(s) URL.
func (c *Config) CheckBackend() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("error parsing INTAKE_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("INTAKE_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		utils.Logger.Warnf("Invalid %s '%s', defaulting to %d", key, raw, fallback)
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
