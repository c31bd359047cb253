// Package config loads server settings from the environment.
//
// A .env file in the working directory is read first (if present) so local
// development does not need exported variables; real environment variables
// always win over the file. Every key has a default except the ones a chosen
// backend requires, and the whole struct is checked with validator tags after
// loading so a bad deployment fails at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/sakif/portfolio/internal/auth"
)

// Backend names accepted by BACKEND.
const (
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendPostgREST = "postgrest"
	BackendFile      = "file"
)

// Config is the full set of server settings. The env tag names the variable
// each field is read from; validation errors are reported with that name.
type Config struct {
	Port    int    `env:"PORT"    validate:"min=1,max=65535"`
	Backend string `env:"BACKEND" validate:"oneof=sqlite postgres postgrest file"`

	DBPath          string `env:"DB_PATH"           validate:"required_if=Backend sqlite"`
	DatabaseURL     string `env:"DATABASE_URL"      validate:"required_if=Backend postgres"`
	PostgRESTURL    string `env:"POSTGREST_URL"     validate:"required_if=Backend postgrest"`
	PostgRESTAPIKey string `env:"POSTGREST_API_KEY"`
	ContentFile     string `env:"CONTENT_FILE"      validate:"required_if=Backend file"`

	StaticDir   string `env:"STATIC_DIR"`
	SiteName    string `env:"SITE_NAME"    validate:"required"`
	SiteTagline string `env:"SITE_TAGLINE"`
	SiteAbout   string `env:"SITE_ABOUT"`

	JWTSecret         string `env:"JWT_SECRET"          validate:"omitempty,min=16"`
	AdminUsername     string `env:"ADMIN_USERNAME"      validate:"required_with=AdminPasswordHash"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" validate:"required_with=AdminUsername"`
	CookieSecure      bool   `env:"COOKIE_SECURE"`

	UnlockRatePerMinute int `env:"UNLOCK_RATE_PER_MINUTE" validate:"min=0"`
	UnlockBurst         int `env:"UNLOCK_BURST"           validate:"min=1"`

	LogLevel       string        `env:"LOG_LEVEL"       validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"LOG_FORMAT"      validate:"oneof=text json"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
}

// AdminEnabled reports whether the admin API can be mounted.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// Load reads .env (when present) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from lookup, applying defaults for unset keys.
func FromEnv(lookup func(string) string) (*Config, error) {
	e := &env{lookup: lookup}

	cfg := &Config{
		Port:    e.int("PORT", 8080),
		Backend: strings.ToLower(e.string("BACKEND", BackendSQLite)),

		DBPath:          e.string("DB_PATH", "data/portfolio.db"),
		DatabaseURL:     e.string("DATABASE_URL", ""),
		PostgRESTURL:    e.string("POSTGREST_URL", ""),
		PostgRESTAPIKey: e.string("POSTGREST_API_KEY", ""),
		ContentFile:     e.string("CONTENT_FILE", ""),

		StaticDir:   e.string("STATIC_DIR", "static"),
		SiteName:    e.string("SITE_NAME", "Portfolio"),
		SiteTagline: e.string("SITE_TAGLINE", ""),
		SiteAbout:   e.string("SITE_ABOUT", ""),

		JWTSecret:         e.string("JWT_SECRET", ""),
		AdminUsername:     e.string("ADMIN_USERNAME", ""),
		AdminPasswordHash: e.string("ADMIN_PASSWORD_HASH", ""),
		CookieSecure:      e.bool("COOKIE_SECURE", false),

		UnlockRatePerMinute: e.int("UNLOCK_RATE_PER_MINUTE", 10),
		UnlockBurst:         e.int("UNLOCK_BURST", 5),

		LogLevel:       strings.ToLower(e.string("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(e.string("LOG_FORMAT", "text")),
		RequestTimeout: e.duration("REQUEST_TIMEOUT", 15*time.Second),
	}
	if len(e.errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(e.errs...))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks field constraints and that ADMIN_PASSWORD_HASH really is a
// bcrypt hash, so a pasted plaintext password fails here and not at login.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		msgs := make([]error, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Errorf("%s: failed %q (value %q)", fe.Field(), fe.Tag(), redact(fe)))
		}
		return fmt.Errorf("config: %w", errors.Join(msgs...))
	}

	if c.AdminPasswordHash != "" {
		if err := auth.ValidateHash(c.AdminPasswordHash); err != nil {
			return fmt.Errorf("config: ADMIN_PASSWORD_HASH: %w", err)
		}
	}
	return nil
}

func redact(fe validator.FieldError) string {
	switch fe.Field() {
	case "JWT_SECRET", "ADMIN_PASSWORD_HASH", "POSTGREST_API_KEY", "DATABASE_URL":
		return "<redacted>"
	}
	return fmt.Sprint(fe.Value())
}

// env reads typed values and remembers every parse failure, so one run
// reports all bad keys at once.
type env struct {
	lookup func(string) string
	errs   []error
}

func (e *env) string(key, def string) string {
	if v := strings.TrimSpace(e.lookup(key)); v != "" {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	raw := strings.TrimSpace(e.lookup(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return n
}

func (e *env) bool(key string, def bool) bool {
	raw := strings.TrimSpace(e.lookup(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(e.lookup(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return def
	}
	return d
}
