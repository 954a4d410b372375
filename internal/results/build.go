// Package results builds, cleans, and filters tables of results.
//
// A results table contains one row per experiment run. After cleaning, the
// battery, experiment, worker, and finishtime columns are strings, and the
// data column contains a [*model.RunData].
package results

import (
	"sort"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// IdentifierColumns are the columns identifying a run.
var IdentifierColumns = []string{
	model.FieldBattery,
	model.FieldExperiment,
	model.FieldWorker,
	model.FieldFinishtime,
}

// Build builds a results table from the given records. The columns are
// the union of the records fields sorted by name. The data field of each
// record is resolved into a [*model.RunData].
func Build(records []model.RawResult) (*frame.Table, error) {
	// make sure we have records
	if len(records) <= 0 {
		return nil, &ValidationError{Reason: "no results"}
	}

	// create the union of all the fields
	fields := map[string]bool{model.FieldData: true}
	for _, record := range records {
		for key := range record {
			fields[key] = true
		}
	}
	var columns []string
	for key := range fields {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	// create one row per record
	rows := make([]frame.Row, 0, len(records))
	for _, record := range records {
		row := make(frame.Row, len(columns))
		for _, col := range columns {
			row[col] = record[col]
		}
		row[model.FieldData] = model.NewRunData(record[model.FieldData])
		rows = append(rows, row)
	}
	tbl := frame.New(columns, rows)

	// make sure the required fields exist
	if err := Validate(tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

// Validate returns a [*ValidationError] when the table lacks any of the
// given columns. Without fields, we check for battery, experiment, worker,
// and at least one among finishtime and datetime.
func Validate(tbl *frame.Table, fields ...string) error {
	checkTime := len(fields) <= 0
	if checkTime {
		fields = []string{model.FieldBattery, model.FieldExperiment, model.FieldWorker}
	}
	missing := tbl.MissingColumns(fields...)
	if checkTime && !tbl.HasColumn(model.FieldFinishtime) && !tbl.HasColumn(model.FieldDatetime) {
		missing = append(missing, model.FieldFinishtime)
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// FromTable normalizes a table read from a file, where the data column
// may contain a JSON string, into a results table. The identifier columns
// are converted to strings.
func FromTable(tbl *frame.Table) (*frame.Table, error) {
	if err := Validate(tbl); err != nil {
		return nil, err
	}
	if !tbl.HasColumn(model.FieldData) {
		return nil, &ValidationError{Missing: []string{model.FieldData}}
	}
	out := tbl.WithColumn(model.FieldData, func(_ int, row frame.Row) any {
		return model.NewRunData(row[model.FieldData])
	})
	for _, col := range IdentifierColumns {
		col := col // per-iteration copy (pre-Go 1.22 loop semantics)
		if !out.HasColumn(col) {
			continue
		}
		out = out.WithColumn(col, func(_ int, row frame.Row) any {
			if frame.IsNull(row[col]) {
				return nil
			}
			return frame.ToString(row[col])
		})
	}
	return out, nil
}

// RunData returns the data of the idx-th row of a results table.
func RunData(tbl *frame.Table, idx int) *model.RunData {
	return model.NewRunData(tbl.Value(idx, model.FieldData))
}
