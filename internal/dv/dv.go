// Package dv contains the definitions shared by the dependent variable
// (DV) calculators of each experiment.
package dv

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/montanaflynn/stats"
)

// Result is the result of computing the DVs of a single worker.
type Result struct {
	// Values maps each DV name to its value.
	Values map[string]float64

	// Description is a human readable description of the DVs.
	Description string
}

// NewResult creates a new empty [*Result].
func NewResult(description string) *Result {
	return &Result{Values: make(map[string]float64), Description: description}
}

// Set sets the value of a DV.
func (r *Result) Set(name string, value float64) *Result {
	r.Values[name] = value
	return r
}

// Names returns the sorted DV names.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	var parts []string
	for _, name := range r.Names() {
		parts = append(parts, fmt.Sprintf("%s=%.4g", name, r.Values[name]))
	}
	return strings.Join(parts, " ")
}

// Func computes the DVs of the trials of a single worker.
type Func func(tbl *frame.Table) (*Result, error)

var (
	// ErrMultipleWorkers indicates that a DV function received the trials of several workers.
	ErrMultipleWorkers = errors.New("dv: more than one worker")

	// ErrNoTrials indicates that there are no usable trials.
	ErrNoTrials = errors.New("dv: no usable trials")

	// ErrMissingColumn indicates that a required column is missing.
	ErrMissingColumn = errors.New("dv: missing column")
)

// SingleWorker returns the only worker of the given trials, or
// [ErrMultipleWorkers] when there are more.
func SingleWorker(tbl *frame.Table) (string, error) {
	workers := tbl.UniqueStrings(model.FieldWorker)
	switch len(workers) {
	case 0:
		return "", ErrNoTrials
	case 1:
		return workers[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrMultipleWorkers, strings.Join(workers, ", "))
	}
}

// RequireColumns returns an error wrapping [ErrMissingColumn] if any of
// the given columns does not exist.
func RequireColumns(tbl *frame.Table, columns ...string) error {
	if missing := tbl.MissingColumns(columns...); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Where returns the rows where column equals value.
func Where(tbl *frame.Table, column string, value any) *frame.Table {
	return tbl.Filter(func(_ int, row frame.Row) bool {
		return frame.Equal(row[column], value)
	})
}

// Mean returns the mean of the numeric values of a column.
func Mean(tbl *frame.Table, column string) (float64, error) {
	mean, err := stats.Mean(frame.Floats(tbl.Column(column)))
	if errors.Is(err, stats.EmptyInputErr) {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNoTrials, column)
	}
	return mean, err
}

// Median returns the median of the numeric values of a column.
func Median(tbl *frame.Table, column string) (float64, error) {
	median, err := stats.Median(frame.Floats(tbl.Column(column)))
	if errors.Is(err, stats.EmptyInputErr) {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNoTrials, column)
	}
	return median, err
}

// Variance returns the sample variance of the numeric values of a column.
func Variance(tbl *frame.Table, column string) (float64, error) {
	values := frame.Floats(tbl.Column(column))
	if len(values) < 2 {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNoTrials, column)
	}
	return stats.SampleVariance(values)
}

// ResponseTrials returns the trials with a non-negative reaction time, that
// is, the trials in which the worker responded.
func ResponseTrials(tbl *frame.Table) *frame.Table {
	return tbl.Filter(func(_ int, row frame.Row) bool {
		rt, good := frame.ToFloat(row["rt"])
		return good && rt >= 0
	})
}

// Truthy converts booleans and numbers to float64 so that accuracy
// columns work both before and after cleaning.
func Truthy(value any) (float64, bool) {
	if b, ok := value.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return frame.ToFloat(value)
}

// Accuracy returns the mean of a column containing booleans or 0/1 values.
func Accuracy(tbl *frame.Table, column string) (float64, error) {
	var sum float64
	var count int
	for _, value := range tbl.Column(column) {
		if f, good := Truthy(value); good {
			sum += f
			count++
		}
	}
	if count <= 0 {
		return math.NaN(), fmt.Errorf("%w: %s", ErrNoTrials, column)
	}
	return sum / float64(count), nil
}

// TestTrials returns the trials whose exp_stage is "test". When there is
// no exp_stage column, all trials are test trials.
func TestTrials(tbl *frame.Table) *frame.Table {
	if !tbl.HasColumn("exp_stage") {
		return tbl
	}
	return Where(tbl, "exp_stage", "test")
}

// CorrectTrials returns the trials whose correct column is true or 1.
func CorrectTrials(tbl *frame.Table) *frame.Table {
	return tbl.Filter(func(_ int, row frame.Row) bool {
		f, good := Truthy(row["correct"])
		return good && f == 1
	})
}
