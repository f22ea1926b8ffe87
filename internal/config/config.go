package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gearplug/eventbrite-go/client"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prefix is the environment variable prefix, e.g. EVENTBRITE_CLIENT_ID.
const Prefix = "EVENTBRITE"

// Config holds the settings shared by the CLI and the MCP server.
// Environment variables are automatically parsed from the EVENTBRITE_ prefix.
type Config struct {
	// OAuth application
	ClientID     string `envconfig:"CLIENT_ID" default:""`
	ClientSecret string `envconfig:"CLIENT_SECRET" default:""`
	RedirectURI  string `envconfig:"REDIRECT_URI" default:""`
	AccessToken  string `envconfig:"ACCESS_TOKEN" default:""`

	// Hosts
	APIURL  string `envconfig:"API_URL" default:"https://www.eventbriteapi.com/v3/"`
	AuthURL string `envconfig:"AUTH_URL" default:"https://www.eventbrite.com/oauth/"`

	// HTTP
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// MCP server
	MCPName            string        `envconfig:"MCP_NAME" default:"eventbrite-mcp-server"`
	MCPVersion         string        `envconfig:"MCP_VERSION" default:"0.1.0"`
	MCPAddr            string        `envconfig:"MCP_ADDR" default:":11547"`
	MCPShutdownTimeout time.Duration `envconfig:"MCP_SHUTDOWN_TIMEOUT" default:"10s"`
	MCPReadTimeout     time.Duration `envconfig:"MCP_READ_TIMEOUT" default:"5s"`
	MCPIdleTimeout     time.Duration `envconfig:"MCP_IDLE_TIMEOUT" default:"120s"`
}

// New creates a new Config by parsing environment variables.
// Example: EVENTBRITE_CLIENT_ID, EVENTBRITE_ACCESS_TOKEN
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("auth_url", cfg.AuthURL).
		Str("client_id", cfg.ClientID).
		Bool("client_secret_present", cfg.ClientSecret != "").
		Bool("access_token_present", cfg.AccessToken != "").
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns a config pointing at the given fake API root
// (for example an httptest server URL).
func NewForTesting(root string) *Config {
	root = strings.TrimSuffix(root, "/")
	return &Config{
		ClientID:           "test-client",
		ClientSecret:       "test-secret",
		RedirectURI:        "http://localhost/callback",
		AccessToken:        "test-token",
		APIURL:             root + "/v3/",
		AuthURL:            root + "/oauth/",
		HTTPTimeout:        5 * time.Second,
		LogLevel:           "debug",
		LogFormat:          "console",
		MCPName:            "eventbrite-mcp-server",
		MCPVersion:         "test",
		MCPAddr:            "127.0.0.1:0",
		MCPShutdownTimeout: time.Second,
		MCPReadTimeout:     time.Second,
		MCPIdleTimeout:     time.Second,
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.APIURL, "/") {
		return fmt.Errorf("%s_API_URL must end with /: %q", Prefix, c.APIURL)
	}
	if !strings.HasSuffix(c.AuthURL, "/") {
		return fmt.Errorf("%s_AUTH_URL must end with /: %q", Prefix, c.AuthURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%s_HTTP_TIMEOUT must be > 0", Prefix)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported %s_LOG_FORMAT: %s", Prefix, c.LogFormat)
	}
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c *Config) Level() zerolog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ClientOptions maps the configuration to client construction options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithAPIURL(c.APIURL),
		client.WithAuthURL(c.AuthURL),
		client.WithHTTPTimeout(c.HTTPTimeout),
		client.WithDebugLogging(c.Debug),
		client.WithLogger(log.Logger),
	}
	if c.AccessToken != "" {
		opts = append(opts, client.WithAccessToken(c.AccessToken))
	}
	return opts
}

// NewClient builds an Eventbrite client from the configuration.
func (c *Config) NewClient(extra ...client.Option) (*client.Client, error) {
	return client.New(c.ClientID, c.ClientSecret, c.RedirectURI, append(c.ClientOptions(), extra...)...)
}
