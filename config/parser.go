package config

import (
	"os"
	"strings"
	"time"

	"github.com/expfactory/expanalysis/internal/hujsonx"
	"github.com/expfactory/expanalysis/internal/resultsapi"
	"github.com/pkg/errors"
)

// EnvAccessToken is the environment variable overriding the access token.
const EnvAccessToken = "EXPANALYSIS_TOKEN"

// DefaultTimeoutSeconds is the default timeout of each request.
const DefaultTimeoutSeconds = 60

// ReadConfig reads the configuration from the path
func ReadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := ParseConfig(b)
	if err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	c.path = path
	return c, nil
}

// ParseConfig returns config from JSON bytes, possibly containing comments.
func ParseConfig(b []byte) (*Config, error) {
	var c Config

	if err := hujsonx.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrap(err, "parsing json")
	}

	if err := c.Default(); err != nil {
		return nil, errors.Wrap(err, "defaulting")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating")
	}

	return &c, nil
}

// Config is the configuration for fetching results
type Config struct {
	// Comment is ignored and allows to document the file.
	Comment string `json:"_"`

	// ResultsURL is the URL of the first results page.
	ResultsURL string `json:"results_url"`

	// AccessToken is the API access token.
	AccessToken string `json:"access_token"`

	// AccessTokenFile is a file containing the access token, used
	// when AccessToken is empty. Relative to the config file.
	AccessTokenFile string `json:"access_token_file"`

	// MaxPages is the maximum number of pages to fetch.
	MaxPages int `json:"max_pages"`

	// TimeoutSeconds is the timeout of each request.
	TimeoutSeconds int `json:"timeout_seconds"`

	// UserAgent is the User-Agent header to send.
	UserAgent string `json:"user_agent"`

	path string
}

// Path returns the path from which we read the config, if any.
func (c *Config) Path() string {
	return c.path
}

// Default config settings
func (c *Config) Default() error {
	if c.ResultsURL == "" {
		c.ResultsURL = resultsapi.DefaultBaseURL
	}
	if c.MaxPages == 0 {
		c.MaxPages = resultsapi.DefaultMaxPages
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}

// Validate the config file
func (c *Config) Validate() error {
	if c.MaxPages < 0 {
		return errors.Errorf("max_pages must not be negative: %d", c.MaxPages)
	}
	if c.TimeoutSeconds < 0 {
		return errors.Errorf("timeout_seconds must not be negative: %d", c.TimeoutSeconds)
	}
	if !strings.HasPrefix(c.ResultsURL, "http://") && !strings.HasPrefix(c.ResultsURL, "https://") {
		return errors.Errorf("results_url is not an HTTP URL: %q", c.ResultsURL)
	}
	return nil
}

// Timeout returns the request timeout as a [time.Duration].
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
