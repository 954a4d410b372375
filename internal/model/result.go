package model

//
// Raw result records
//

// Names of the well-known top-level fields of a [RawResult]. The same
// names are used as column names by the tables built from results.
const (
	FieldBattery    = "battery"
	FieldBrowser    = "browser"
	FieldCompleted  = "completed"
	FieldData       = "data"
	FieldDatetime   = "datetime"
	FieldExperiment = "experiment"
	FieldFinishtime = "finishtime"
	FieldLanguage   = "language"
	FieldPlatform   = "platform"
	FieldWorker     = "worker"
)

// RawResult is a result record as returned by the results API. There is one
// record per experiment run. The well-known fields are:
//
// - battery: object with a "name";
//
// - experiment: object with an "exp_id";
//
// - worker: object with an "id";
//
// - completed: whether the worker completed the run;
//
// - finishtime and datetime: timestamp strings;
//
// - data: either a list of trials or a question-id to response mapping.
//
// Any other field is kept verbatim until cleaning.
type RawResult map[string]any

// ResultsPage is a page returned by the paginated results API.
type ResultsPage struct {
	// Count is the OPTIONAL total number of results.
	Count int64 `json:"count"`

	// Next is the URL of the next page or nil when there
	// are no more pages to fetch.
	Next *string `json:"next"`

	// Previous is the URL of the previous page, if any.
	Previous *string `json:"previous"`

	// Results contains the results in this page.
	Results []RawResult `json:"results"`
}
