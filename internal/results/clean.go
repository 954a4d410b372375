package results

import (
	"encoding/json"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// IncidentalColumns are the columns removed by [Clean].
var IncidentalColumns = []string{
	model.FieldCompleted,
	model.FieldLanguage,
	model.FieldPlatform,
	model.FieldBrowser,
}

// Clean cleans a results table built by [Build]:
//
// 1. keeps only the completed runs;
//
// 2. removes the [IncidentalColumns];
//
// 3. uses finishtime as the time column, falling back to datetime, and
// removes runs without a time;
//
// 4. reduces battery to its name, experiment to its exp_id, and worker to its id;
//
// 5. stringifies the time;
//
// 6. removes runs with empty data, emitting a warning for each of them.
//
// Returns [ErrAlreadyCleaned] when there is no completed column.
func Clean(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	logger = model.ValidLoggerOrDefault(logger)

	// make sure we have not already cleaned these results
	if !tbl.HasColumn(model.FieldCompleted) {
		return nil, ErrAlreadyCleaned
	}

	// remove partially completed experiments
	out := tbl.Filter(func(_ int, row frame.Row) bool {
		return isTrue(row[model.FieldCompleted])
	})
	out = out.DropColumns(IncidentalColumns...)

	// use finishtime as the time column
	hasDatetime := out.HasColumn(model.FieldDatetime)
	out = out.WithColumn(model.FieldFinishtime, func(_ int, row frame.Row) any {
		value := row[model.FieldFinishtime]
		if frame.IsNull(value) && hasDatetime {
			value = row[model.FieldDatetime]
		}
		return value
	})
	out = out.DropNA(nil, model.FieldFinishtime)

	// reduce the identifiers and stringify the time
	out = out.Map(func(_ int, row frame.Row) frame.Row {
		row[model.FieldBattery] = identifier(row[model.FieldBattery], "name")
		row[model.FieldExperiment] = identifier(row[model.FieldExperiment], "exp_id")
		row[model.FieldWorker] = identifier(row[model.FieldWorker], "id")
		row[model.FieldFinishtime] = frame.ToString(row[model.FieldFinishtime])
		row[model.FieldData] = model.NewRunData(row[model.FieldData])
		return row
	})

	// remove the runs without data
	out = out.Filter(func(_ int, row frame.Row) bool {
		data := model.NewRunData(row[model.FieldData])
		if data.IsEmpty() {
			logger.Warnf("results: removing run without data: battery=%s experiment=%s worker=%s finishtime=%s",
				row[model.FieldBattery], row[model.FieldExperiment], row[model.FieldWorker],
				row[model.FieldFinishtime])
			return false
		}
		return true
	})

	logger.Debugf("results: %d of %d runs survived cleaning", out.Len(), tbl.Len())
	return out, nil
}

// identifier reduces a nested identifier object to the given key. We also
// accept the JSON serialization of the object, which is what we read back
// from delimited text files. Any other value is converted to string as is.
func identifier(value any, key string) string {
	if s, ok := value.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "{") {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(s), &decoded); err == nil {
			value = decoded
		}
	}
	if m, ok := value.(map[string]any); ok {
		return frame.ToString(m[key])
	}
	return frame.ToString(value)
}

func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	if f, good := frame.ToFloat(value); good {
		return f == 1
	}
	return false
}

// LoadOptions contains options for [Load].
type LoadOptions struct {
	// Clean indicates whether to call [Clean].
	Clean bool

	// Logger is the OPTIONAL logger to use.
	Logger model.Logger
}

// Load builds the results table and optionally cleans it. Results
// that are already clean are returned as is.
func Load(records []model.RawResult, opts *LoadOptions) (*frame.Table, error) {
	if opts == nil {
		opts = &LoadOptions{Clean: true}
	}
	tbl, err := Build(records)
	if err != nil {
		return nil, err
	}
	if !opts.Clean {
		return tbl, nil
	}
	return cleanIfNeeded(tbl, opts.Logger)
}

func cleanIfNeeded(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	cleaned, err := Clean(tbl, logger)
	switch {
	case err == ErrAlreadyCleaned:
		model.ValidLoggerOrDefault(logger).Debugf("results: already cleaned")
		return tbl, nil
	case err != nil:
		return nil, err
	default:
		return cleaned, nil
	}
}
