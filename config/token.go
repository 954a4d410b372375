package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// AccessTokenValue returns the access token. The EXPANALYSIS_TOKEN
// environment variable wins over access_token, which wins over the
// content of access_token_file.
func (c *Config) AccessTokenValue() (string, error) {
	if token := strings.TrimSpace(os.Getenv(EnvAccessToken)); token != "" {
		return token, nil
	}
	if c.AccessToken != "" {
		return c.AccessToken, nil
	}
	if c.AccessTokenFile == "" {
		return "", nil
	}
	path := c.AccessTokenFile
	if !filepath.IsAbs(path) && c.path != "" {
		path = filepath.Join(filepath.Dir(c.path), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading access token file")
	}
	return strings.TrimSpace(string(data)), nil
}
