package results

import (
	"slices"
	"strings"
	"time"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// FinishtimeMode controls how we filter by finishtime.
type FinishtimeMode int

const (
	// FinishtimeByWorker keeps all the runs of a worker whose earliest
	// finishtime is at or after the threshold.
	FinishtimeByWorker = FinishtimeMode(iota)

	// FinishtimeByRow keeps the runs whose finishtime is at or after the threshold.
	FinishtimeByRow
)

// Filters selects runs from a results table. Empty fields select everything.
type Filters struct {
	// Templates contains the templates to keep (e.g., "sequential").
	Templates []string

	// Workers contains the worker IDs to keep.
	Workers []string

	// Batteries contains the battery names to keep.
	Batteries []string

	// Experiments contains the experiment IDs to keep.
	Experiments []string

	// Finishtime is the OPTIONAL earliest finishtime to keep.
	Finishtime string

	// FinishtimeMode controls how we apply Finishtime.
	FinishtimeMode FinishtimeMode

	// Reset indicates that [*Dataset.Filter] should start from the
	// original results rather than from the current ones.
	Reset bool
}

// IsEmpty returns whether the filters select everything.
func (f *Filters) IsEmpty() bool {
	return len(f.Templates) <= 0 && len(f.Workers) <= 0 && len(f.Batteries) <= 0 &&
		len(f.Experiments) <= 0 && f.Finishtime == ""
}

// merge returns the filters obtained by applying other after f.
func (f *Filters) merge(other *Filters) *Filters {
	out := &Filters{
		Templates:      mergeValues(f.Templates, other.Templates),
		Workers:        mergeValues(f.Workers, other.Workers),
		Batteries:      mergeValues(f.Batteries, other.Batteries),
		Experiments:    mergeValues(f.Experiments, other.Experiments),
		Finishtime:     f.Finishtime,
		FinishtimeMode: f.FinishtimeMode,
	}
	if other.Finishtime != "" {
		out.Finishtime = other.Finishtime
		out.FinishtimeMode = other.FinishtimeMode
	}
	return out
}

// mergeValues combines two successive selections: the latter one
// restricts the former one.
func mergeValues(former, latter []string) []string {
	if len(latter) > 0 {
		return slices.Clone(latter)
	}
	return slices.Clone(former)
}

// SortColumns are the columns by which we sort the results.
var SortColumns = []string{
	model.FieldBattery,
	model.FieldExperiment,
	model.FieldWorker,
	model.FieldFinishtime,
}

// Apply applies the filters in order: template, worker, battery,
// experiment, and finishtime. Each requested value must exist in the
// table being filtered, otherwise we return a [*SelectionError].
func Apply(tbl *frame.Table, f *Filters) (*frame.Table, error) {
	var err error
	if len(f.Templates) > 0 {
		if tbl, err = SelectTemplate(tbl, f.Templates...); err != nil {
			return nil, err
		}
	}
	if len(f.Workers) > 0 {
		if tbl, err = SelectWorker(tbl, f.Workers...); err != nil {
			return nil, err
		}
	}
	if len(f.Batteries) > 0 {
		if tbl, err = SelectBattery(tbl, f.Batteries...); err != nil {
			return nil, err
		}
	}
	if len(f.Experiments) > 0 {
		if tbl, err = SelectExperiment(tbl, f.Experiments...); err != nil {
			return nil, err
		}
	}
	if f.Finishtime != "" {
		tbl = SelectFinishtime(tbl, f.Finishtime, f.FinishtimeMode)
	}
	return tbl.SortBy(SortColumns...), nil
}

// SelectBattery keeps the runs belonging to the given batteries.
func SelectBattery(tbl *frame.Table, batteries ...string) (*frame.Table, error) {
	return selectByColumn(tbl, model.FieldBattery, batteries)
}

// SelectExperiment keeps the runs of the given experiments.
func SelectExperiment(tbl *frame.Table, experiments ...string) (*frame.Table, error) {
	return selectByColumn(tbl, model.FieldExperiment, experiments)
}

// SelectWorker keeps the runs of the given workers.
func SelectWorker(tbl *frame.Table, workers ...string) (*frame.Table, error) {
	return selectByColumn(tbl, model.FieldWorker, workers)
}

func selectByColumn(tbl *frame.Table, column string, values []string) (*frame.Table, error) {
	if err := requireValues(column, tbl.UniqueStrings(column), values); err != nil {
		return nil, err
	}
	out := tbl.Filter(func(_ int, row frame.Row) bool {
		return slices.Contains(values, frame.ToString(row[column]))
	})
	return out.SortBy(SortColumns...), nil
}

// SelectTemplate keeps the runs whose data has one of the given templates.
func SelectTemplate(tbl *frame.Table, templates ...string) (*frame.Table, error) {
	var available []string
	for idx := 0; idx < tbl.Len(); idx++ {
		template := string(RunData(tbl, idx).Template)
		if !slices.Contains(available, template) {
			available = append(available, template)
		}
	}
	if err := requireValues("template", available, templates); err != nil {
		return nil, err
	}
	out := tbl.Filter(func(_ int, row frame.Row) bool {
		return slices.Contains(templates, string(model.NewRunData(row[model.FieldData]).Template))
	})
	return out.SortBy(SortColumns...), nil
}

func requireValues(field string, available, wanted []string) error {
	var missing []string
	for _, value := range wanted {
		if !slices.Contains(available, value) {
			missing = append(missing, value)
		}
	}
	if len(missing) > 0 {
		return &SelectionError{Field: field, Missing: missing}
	}
	return nil
}

// SelectFinishtime keeps the runs at or after the given finishtime
// according to the given mode.
func SelectFinishtime(tbl *frame.Table, finishtime string, mode FinishtimeMode) *frame.Table {
	var out *frame.Table
	switch mode {
	case FinishtimeByRow:
		out = tbl.Filter(func(_ int, row frame.Row) bool {
			return CompareTimes(frame.ToString(row[model.FieldFinishtime]), finishtime) >= 0
		})
	default:
		earliest := make(map[string]string)
		for _, row := range tbl.Rows() {
			worker := frame.ToString(row[model.FieldWorker])
			value := frame.ToString(row[model.FieldFinishtime])
			if current, found := earliest[worker]; !found || CompareTimes(value, current) < 0 {
				earliest[worker] = value
			}
		}
		out = tbl.Filter(func(_ int, row frame.Row) bool {
			return CompareTimes(earliest[frame.ToString(row[model.FieldWorker])], finishtime) >= 0
		})
	}
	return out.SortBy(SortColumns...)
}

// timeLayouts are the layouts we use to parse finishtime values.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTime parses a finishtime value.
func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CompareTimes compares two finishtime values as times when both
// parse and as strings otherwise.
func CompareTimes(a, b string) int {
	ta, goodA := ParseTime(a)
	tb, goodB := ParseTime(b)
	if goodA && goodB {
		return ta.Compare(tb)
	}
	return strings.Compare(a, b)
}
