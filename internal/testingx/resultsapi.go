package testingx

//
// Fake Experiment Factory results API.
//

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/runtimex"
)

// ResultsAPI is a fake paginated results API. It serves the configured
// records in pages of PageSize records and requires the Token.
//
// The zero value is not ready to use; construct using [NewResultsAPI].
//
// This struct methods panics for several errors. Only use for testing purposes!
type ResultsAPI struct {
	// FailPage is the OPTIONAL 1-based page number for which we return FailStatus.
	FailPage int

	// FailStatus is the status code returned for FailPage.
	FailStatus int

	// PageSize is the number of records per page.
	PageSize int

	// Token is the access token clients must send.
	Token string

	// mu provides mutual exclusion.
	mu sync.Mutex

	// records contains the records to serve.
	records []model.RawResult

	// requests counts the number of requests.
	requests int
}

// NewResultsAPI creates a new [*ResultsAPI] serving the given records.
func NewResultsAPI(token string, pageSize int, records []model.RawResult) *ResultsAPI {
	runtimex.Assert(pageSize > 0, "pageSize must be positive")
	return &ResultsAPI{
		PageSize: pageSize,
		Token:    token,
		records:  records,
	}
}

// Requests returns the number of requests served so far.
func (h *ResultsAPI) Requests() int {
	defer h.mu.Unlock()
	h.mu.Lock()
	return h.requests
}

// NewMux constructs an [*http.ServeMux] configured with the correct routing.
func (h *ResultsAPI) NewMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/results", h)
	return mux
}

// ServeHTTP implements [http.Handler].
func (h *ResultsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// make sure the method is OK
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	// count this request
	h.mu.Lock()
	h.requests++
	h.mu.Unlock()

	// make sure the client is authorized
	if r.Header.Get("Authorization") != "token "+h.Token {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	// figure out the page number
	page := 1
	if value := r.URL.Query().Get("page"); value != "" {
		num, err := strconv.Atoi(value)
		if err != nil || num <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		page = num
	}

	// possibly inject a failure
	if h.FailPage > 0 && page == h.FailPage {
		w.WriteHeader(h.FailStatus)
		return
	}

	// select the records belonging to this page
	start := (page - 1) * h.PageSize
	if start > len(h.records) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	end := min(start+h.PageSize, len(h.records))

	// prepare response
	response := &model.ResultsPage{
		Count:   int64(len(h.records)),
		Results: h.records[start:end],
	}
	if response.Results == nil {
		response.Results = []model.RawResult{}
	}
	if end < len(h.records) {
		next := fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page+1)
		response.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("http://%s%s?page=%d", r.Host, r.URL.Path, page-1)
		response.Previous = &prev
	}

	// send response
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(runtimex.Try1(json.Marshal(response)))
}

// ResultsFixturePath returns the path of the results fixture.
func ResultsFixturePath() string {
	_, filename, _, good := runtime.Caller(0)
	runtimex.Assert(good, "runtime.Caller failed")
	return filepath.Join(filepath.Dir(filename), "testdata", "results.json")
}

// MustLoadResultsFixture loads the results fixture, which contains 44
// runs of a variety of experiments from two batteries.
func MustLoadResultsFixture() []model.RawResult {
	data := runtimex.Try1(os.ReadFile(ResultsFixturePath()))
	var records []model.RawResult
	runtimex.Try0(json.Unmarshal(data, &records))
	return records
}
