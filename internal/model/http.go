package model

//
// HTTP definitions
//

import "net/http"

// HTTPHeaderUserAgent is the default User-Agent header.
const HTTPHeaderUserAgent = "expanalysis/0.1 (+https://github.com/expfactory/expanalysis)"

// HTTPClient is an [*http.Client] like structure.
type HTTPClient interface {
	// Do sends the given request and returns the response.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes the idle connections.
	CloseIdleConnections()
}
