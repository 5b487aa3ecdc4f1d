// Package config handles scholarsync configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultUserID is the Google Scholar profile used when none is configured.
	DefaultUserID = "s55YrBYAAAAJ"

	// DefaultHost serves both the profile pages and the canonical profile URL.
	DefaultHost = "https://scholar.google.co.kr"

	// DefaultLanguage is the hl parameter of the canonical profile URL.
	DefaultLanguage = "ko"

	DefaultSummaryPath      = "scholar-data.json"
	DefaultPublicationsPath = "publications-data.json"
	DefaultConfigFile       = "scholarsync.yml"

	// DefaultTimeout bounds every HTTP request.
	DefaultTimeout = 30 * time.Second
)

// Provider names.
const (
	ProviderLibrary = "library"
	ProviderScrape  = "scrape"
)

// ValidProviders lists the supported provider names.
var ValidProviders = []string{ProviderLibrary, ProviderScrape}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration of one run.
type Config struct {
	UserID   string `yaml:"user_id" env:"SCHOLAR_USER_ID"`
	Provider string `yaml:"provider" env:"SCHOLAR_PROVIDER"`
	Host     string `yaml:"host" env:"SCHOLAR_HOST"`
	Language string `yaml:"language" env:"SCHOLAR_LANG"`

	SummaryPath      string `yaml:"summary_path" env:"SCHOLAR_SUMMARY_PATH"`
	PublicationsPath string `yaml:"publications_path" env:"SCHOLAR_PUBLICATIONS_PATH"`
	HistoryPath      string `yaml:"history_path,omitempty" env:"SCHOLAR_HISTORY_PATH"` // empty disables history

	Timeout time.Duration `yaml:"timeout" env:"SCHOLAR_TIMEOUT"`
	// RequestInterval is the minimum gap between requests; zero means unpaced.
	RequestInterval time.Duration `yaml:"request_interval,omitempty" env:"SCHOLAR_REQUEST_INTERVAL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UserID:           DefaultUserID,
		Provider:         ProviderLibrary,
		Host:             DefaultHost,
		Language:         DefaultLanguage,
		SummaryPath:      DefaultSummaryPath,
		PublicationsPath: DefaultPublicationsPath,
		Timeout:          DefaultTimeout,
	}
}

// ResolvedUserID returns the configured profile ID, or DefaultUserID when empty.
func (c *Config) ResolvedUserID() string {
	if id := strings.TrimSpace(c.UserID); id != "" {
		return id
	}
	return DefaultUserID
}

// ProfileURL returns the canonical profile URL for the configured user.
func (c *Config) ProfileURL() string {
	return ProfileURL(c.Host, c.ResolvedUserID(), c.Language)
}

// ProfileURL renders {host}/citations?user={id}&hl={lang}.
func ProfileURL(host, userID, lang string) string {
	host = strings.TrimRight(host, "/")
	if lang == "" {
		return fmt.Sprintf("%s/citations?user=%s", host, url.QueryEscape(userID))
	}
	return fmt.Sprintf("%s/citations?user=%s&hl=%s", host, url.QueryEscape(userID), url.QueryEscape(lang))
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if !isValidProvider(c.Provider) {
		return fmt.Errorf("%w: provider %q (valid: %s)", ErrInvalidConfig, c.Provider, strings.Join(ValidProviders, ", "))
	}
	u, err := url.Parse(c.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: host %q is not an absolute URL", ErrInvalidConfig, c.Host)
	}
	if c.SummaryPath == "" {
		return fmt.Errorf("%w: summary_path is empty", ErrInvalidConfig)
	}
	if c.Provider == ProviderLibrary && c.PublicationsPath == "" {
		return fmt.Errorf("%w: publications_path is empty", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	if c.RequestInterval < 0 {
		return fmt.Errorf("%w: request_interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

func isValidProvider(name string) bool {
	for _, p := range ValidProviders {
		if p == name {
			return true
		}
	}
	return false
}
