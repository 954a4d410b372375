package httpclientx

//
// getraw.go - GET a raw response.
//

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrRequestFailed indicates that the server returned >= 400.
type ErrRequestFailed struct {
	// StatusCode is the status code that failed.
	StatusCode int
}

var _ error = &ErrRequestFailed{}

// Error implements error.
func (err *ErrRequestFailed) Error() string {
	return "httpx: request failed"
}

// IsUnauthorized returns whether the status code indicates that
// the server refused our credentials.
func (err *ErrRequestFailed) IsUnauthorized() bool {
	return err.StatusCode == http.StatusUnauthorized || err.StatusCode == http.StatusForbidden
}

// ErrTruncated indicates that the response body exceeds the maximum body size.
var ErrTruncated = errors.New("httpx: truncated response body")

// GetRaw sends a GET request and reads a raw response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - config is the config to use;
//
// - URL is the URL to use.
//
// This function either returns an error or a valid Output.
func GetRaw(ctx context.Context, config *Config, URL string) ([]byte, error) {
	// construct the request to use
	req, err := http.NewRequestWithContext(ctx, "GET", URL, nil)
	if err != nil {
		return nil, err
	}

	// get raw response body
	return do(req, config)
}

func do(req *http.Request, config *Config) ([]byte, error) {
	// optionally assign authorization
	if value := config.Authorization; value != "" {
		req.Header.Set("Authorization", value)
	}

	// assign the user agent
	req.Header.Set("User-Agent", config.UserAgent)

	// say that we're accepting gzip encoded bodies
	req.Header.Set("Accept-Encoding", "gzip")

	// say that we want JSON
	req.Header.Set("Accept", "application/json")

	// log what we're about to do
	config.Logger.Debugf("httpx: %s %s", req.Method, req.URL.String())

	// get the response
	resp, err := config.Client.Do(req)

	// handle the case of failure
	if err != nil {
		return nil, err
	}

	// make sure we close the response body
	defer resp.Body.Close()

	// handle the case of HTTP error
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		config.Logger.Debugf("httpx: %s %s: %d", req.Method, req.URL.String(), resp.StatusCode)
		return nil, &ErrRequestFailed{resp.StatusCode}
	}

	// make sure we handle decompression
	var baseReader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzreader, err := gzip.NewReader(baseReader)
		if err != nil {
			return nil, err
		}
		baseReader = gzreader
	}

	// read the body without exceeding the maximum body size
	limit := config.maxBodySize()
	rawrespbody, err := io.ReadAll(io.LimitReader(baseReader, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(rawrespbody)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTruncated, limit)
	}

	config.Logger.Debugf("httpx: %s %s: read %d bytes", req.Method, req.URL.String(), len(rawrespbody))
	return rawrespbody, nil
}
