package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/arsenal/internal/catalog"
	"github.com/starford/arsenal/internal/render"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app" koanf:"app"`
	Catalog CatalogConfig     `yaml:"catalog" koanf:"catalog"`
	SQLite  SQLiteConfig      `yaml:"sqlite" koanf:"sqlite"`
	Auth    AuthConfig        `yaml:"auth" koanf:"auth"`
	UI      UIConfig          `yaml:"ui" koanf:"ui"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return c.UI.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" koanf:"log_level"`
	HTTP     HTTPConfig `yaml:"http" koanf:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port        int      `yaml:"port" koanf:"port"`
	CORSOrigins []string `yaml:"cors_origins" koanf:"cors_origins"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// CatalogConfig says where the catalog document comes from. Path wins over URL.
type CatalogConfig struct {
	Path         string        `yaml:"path" koanf:"path"`
	URL          string        `yaml:"url" koanf:"url"`
	Watch        bool          `yaml:"watch" koanf:"watch"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
}

// Validate validates the catalog configuration.
func (c *CatalogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.When(c.URL == "", validation.Required.Error("path or url is required"))),
		validation.Field(&c.URL, is.URL),
		validation.Field(&c.FetchTimeout, validation.Min(time.Duration(0))),
	)
}

// Source returns the catalog source described by the configuration.
func (c *CatalogConfig) Source() catalog.Source {
	if c.Path != "" {
		return catalog.Source{Path: c.Path}
	}
	return catalog.Source{URL: c.URL, Timeout: c.FetchTimeout}
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration for the JSON API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode" koanf:"mode"`
	Token string `yaml:"token" koanf:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// UIConfig holds the browser page settings.
type UIConfig struct {
	Locale string `yaml:"locale" koanf:"locale"`
	Title  string `yaml:"title" koanf:"title"`
}

// Validate validates the UI configuration.
func (c *UIConfig) Validate() error {
	locales := make([]any, 0, len(render.Locales()))
	for _, l := range render.Locales() {
		locales = append(locales, l)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Locale, validation.Required, validation.In(locales...)),
		validation.Field(&c.Title, validation.Required, validation.Length(1, 80)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Catalog: CatalogConfig{
			Path:         "./data/catalog.json",
			Watch:        true,
			FetchTimeout: 10 * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: "./arsenal.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		UI: UIConfig{
			Locale: render.DefaultLocale,
			Title:  "Arsenal",
		},
	}
}
