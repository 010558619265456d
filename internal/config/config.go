// Package config loads DevFinder's startup configuration.
//
// Every setting can be given as a flag or as an environment variable; kong
// resolves both in one pass. The GitHub token is the only required value:
// without it no request can be served, so Load refuses to return a Config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sakif/devfinder/internal/apperror"
)

// DefaultLogin is the account shown when the page is loaded without a query.
const DefaultLogin = "kentcdodds"

// Config holds everything the server needs at startup.
type Config struct {
	Port          int           `help:"HTTP port to listen on." env:"PORT" default:"8080"`
	GitHubToken   string        `name:"github-api-token" help:"GitHub API token used for GraphQL queries." env:"GITHUB_API_TOKEN"`
	GitHubHost    string        `name:"github-host" help:"GitHub host (github.com or a GHES hostname)." env:"GITHUB_HOST" default:"github.com"`
	GitHubTimeout time.Duration `name:"github-timeout" help:"Timeout for a single GitHub request." env:"GITHUB_TIMEOUT" default:"10s"`
	DefaultLogin  string        `name:"default-login" help:"Login shown when no query is given." env:"DEFAULT_LOGIN" default:"kentcdodds"`
	LogLevel      string        `name:"log-level" help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`
	LogFormat     string        `name:"log-format" help:"Log format (text, json)." env:"LOG_FORMAT" default:"text" enum:"text,json"`
}

// Load parses args (normally os.Args[1:]) plus the environment and validates
// the result.
func Load(args []string, options ...kong.Option) (Config, error) {
	var cfg Config

	options = append([]kong.Option{
		kong.Name("devfinder"),
		kong.Description("Search GitHub accounts and browse their top repositories."),
		kong.UsageOnError(),
	}, options...)

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return Config{}, fmt.Errorf("building flag parser: %w", err)
	}
	if _, err := parser.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parsing flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings that flag parsing cannot.
// Surrounding whitespace is stripped from string settings first.
func (c *Config) Validate() error {
	c.GitHubToken = strings.TrimSpace(c.GitHubToken)
	c.DefaultLogin = strings.TrimSpace(c.DefaultLogin)

	if c.GitHubToken == "" {
		return &apperror.ConfigError{
			Field:   "GITHUB_API_TOKEN",
			Message: "must be set (flag --github-api-token)",
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return &apperror.ConfigError{
			Field:   "PORT",
			Message: fmt.Sprintf("%d is not a valid TCP port", c.Port),
		}
	}
	if c.GitHubTimeout < 0 {
		return &apperror.ConfigError{
			Field:   "GITHUB_TIMEOUT",
			Message: "must not be negative",
		}
	}
	if c.DefaultLogin == "" {
		c.DefaultLogin = DefaultLogin
	}
	if c.GitHubHost == "" {
		c.GitHubHost = "github.com"
	}
	return nil
}
