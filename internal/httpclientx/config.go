package httpclientx

import "github.com/expfactory/expanalysis/internal/model"

// Config contains configuration shared by [GetJSON] and [GetRaw].
//
// The zero value is invalid; initialize the MANDATORY fields.
type Config struct {
	// Authorization contains the OPTIONAL Authorization header value to use.
	Authorization string

	// Client is the MANDATORY [model.HTTPClient] to use.
	Client model.HTTPClient

	// Logger is the MANDATORY [model.Logger] to use.
	Logger model.Logger

	// MaxBodySize is the OPTIONAL maximum response body size. When zero
	// or negative we use [DefaultMaxBodySize].
	MaxBodySize int64

	// UserAgent is the MANDATORY User-Agent header value to use.
	UserAgent string
}

// DefaultMaxBodySize is the default maximum response body size.
const DefaultMaxBodySize = 1 << 26

func (c *Config) maxBodySize() int64 {
	if c.MaxBodySize > 0 {
		return c.MaxBodySize
	}
	return DefaultMaxBodySize
}
