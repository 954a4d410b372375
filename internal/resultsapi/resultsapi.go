// Package resultsapi fetches results from the Experiment Factory results API.
//
// The API is paginated: each page is a JSON object containing a list of
// results and the URL of the next page, or null when there are no more
// pages. We fetch pages sequentially and never retry.
package resultsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/expfactory/expanalysis/internal/httpclientx"
	"github.com/expfactory/expanalysis/internal/model"
)

// DefaultBaseURL is the default results API URL.
const DefaultBaseURL = "https://expfactory.org/api/results"

// DefaultMaxPages is the default maximum number of pages we fetch.
const DefaultMaxPages = 10000

var (
	// ErrMissingToken indicates that the access token is empty.
	ErrMissingToken = errors.New("resultsapi: missing access token")

	// ErrUnauthorized indicates that the API refused the access token.
	ErrUnauthorized = errors.New("resultsapi: unauthorized")

	// ErrTooManyPages indicates we have fetched more than MaxPages pages.
	ErrTooManyPages = errors.New("resultsapi: too many pages")
)

// Client is a results API client.
//
// Construct using [NewClient] or initialize the MANDATORY fields.
type Client struct {
	// AccessToken is the MANDATORY access token.
	AccessToken string

	// BaseURL is the MANDATORY URL of the first page.
	BaseURL string

	// HTTPClient is the MANDATORY HTTP client to use.
	HTTPClient model.HTTPClient

	// Logger is the MANDATORY logger to use.
	Logger model.Logger

	// MaxPages is the OPTIONAL maximum number of pages to fetch. When
	// zero or negative, we use [DefaultMaxPages].
	MaxPages int

	// OnPage is the OPTIONAL callback invoked after each page with
	// the 1-based page number and the estimated total number of pages.
	OnPage func(page int, total int)

	// UserAgent is the MANDATORY User-Agent header to use.
	UserAgent string
}

// NewClient creates a new [*Client] using the default base URL.
func NewClient(token string, logger model.Logger) *Client {
	return &Client{
		AccessToken: token,
		BaseURL:     DefaultBaseURL,
		HTTPClient:  http.DefaultClient,
		Logger:      model.ValidLoggerOrDefault(logger),
		MaxPages:    DefaultMaxPages,
		OnPage:      nil,
		UserAgent:   model.HTTPHeaderUserAgent,
	}
}

func (c *Client) maxPages() int {
	if c.MaxPages > 0 {
		return c.MaxPages
	}
	return DefaultMaxPages
}

// FetchAll fetches all the pages and returns the accumulated results. On
// failure, it returns the results accumulated so far along with the error.
func (c *Client) FetchAll(ctx context.Context) ([]model.RawResult, error) {
	// make sure we have a token
	if c.AccessToken == "" {
		return nil, ErrMissingToken
	}

	// create the shared configuration
	config := &httpclientx.Config{
		Authorization: "token " + c.AccessToken,
		Client:        c.HTTPClient,
		Logger:        model.ValidLoggerOrDefault(c.Logger),
		UserAgent:     c.UserAgent,
	}

	results := []model.RawResult{}
	nextURL := c.BaseURL
	for page := 1; nextURL != ""; page++ {
		// make sure we are not looping forever
		if page > c.maxPages() {
			return results, fmt.Errorf("%w: more than %d pages", ErrTooManyPages, c.maxPages())
		}

		// stop as soon as the context is done
		if err := ctx.Err(); err != nil {
			return results, err
		}

		// fetch the current page
		config.Logger.Debugf("resultsapi: fetching page %d", page)
		resp, err := httpclientx.GetJSON[*model.ResultsPage](ctx, config, nextURL)
		if err != nil {
			return results, c.mapError(err)
		}

		// accumulate and report progress
		results = append(results, resp.Results...)
		if c.OnPage != nil {
			c.OnPage(page, estimateTotalPages(resp, page, len(results)))
		}

		// figure out the next page
		nextURL = ""
		if resp.Next != nil && *resp.Next != "" {
			next, err := resolveURL(c.BaseURL, *resp.Next)
			if err != nil {
				return results, err
			}
			nextURL = next
		}
	}

	config.Logger.Infof("resultsapi: fetched %d results", len(results))
	return results, nil
}

func (c *Client) mapError(err error) error {
	var failure *httpclientx.ErrRequestFailed
	if errors.As(err, &failure) && failure.IsUnauthorized() {
		return fmt.Errorf("%w: status code %d", ErrUnauthorized, failure.StatusCode)
	}
	return err
}

// estimateTotalPages uses the count of results and the size of the pages
// fetched so far. The last page is the one without a next URL.
func estimateTotalPages(resp *model.ResultsPage, page, fetched int) int {
	if resp.Next == nil || *resp.Next == "" {
		return page
	}
	perPage := int64(fetched) / int64(page)
	if resp.Count <= 0 || perPage <= 0 {
		return page + 1
	}
	total := int((resp.Count + perPage - 1) / perPage)
	return max(total, page+1)
}

func resolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
