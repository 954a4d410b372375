// Package summary computes descriptive statistics and DVs of trial tables.
package summary

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/registry"
	"github.com/montanaflynn/stats"
)

// ErrMissingColumn indicates that a column to describe does not exist.
var ErrMissingColumn = errors.New("summary: missing column")

// Stats contains the descriptive statistics of a column. Statistics
// that are not defined for the available values are NaN.
type Stats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// NewStats computes the [Stats] of the given values. The Std is the
// sample standard deviation.
func NewStats(values []float64) Stats {
	out := Stats{
		N:      len(values),
		Mean:   math.NaN(),
		Median: math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(values) <= 0 {
		return out
	}
	data := stats.Float64Data(values)
	out.Mean, _ = data.Mean()
	out.Median, _ = data.Median()
	out.Min, _ = data.Min()
	out.Max, _ = data.Max()
	if len(values) >= 2 {
		out.Std, _ = data.StandardDeviationSample()
	}
	return out
}

// Record contains the statistics of a group of rows.
type Record struct {
	// Experiment is the experiment name, if known.
	Experiment string `json:"experiment,omitempty"`

	// GroupBy contains the group by columns.
	GroupBy []string `json:"group_by,omitempty"`

	// Key contains the values of the group by columns.
	Key []any `json:"key,omitempty"`

	// Columns maps each described column to its statistics.
	Columns map[string]Stats `json:"columns"`
}

// KeyString returns the group key as a string.
func (r *Record) KeyString() string {
	var parts []string
	for idx, value := range r.Key {
		parts = append(parts, fmt.Sprintf("%s=%s", r.GroupBy[idx], frame.ToString(value)))
	}
	return strings.Join(parts, ",")
}

// Describe computes the [Stats] of the numeric values of each column for
// each group of rows sharing the same values of the groupBy columns. With
// no groupBy columns there is a single group.
func Describe(tbl *frame.Table, columns, groupBy []string) ([]*Record, error) {
	if missing := tbl.MissingColumns(append(append([]string{}, columns...), groupBy...)...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	var out []*Record
	for _, group := range tbl.GroupBy(groupBy...) {
		record := &Record{
			GroupBy: groupBy,
			Key:     group.Key,
			Columns: make(map[string]Stats),
		}
		for _, col := range columns {
			record.Columns[col] = NewStats(frame.Floats(group.Table.Column(col)))
		}
		out = append(out, record)
	}
	return out, nil
}

// Options contains options for [Experiment] and [DV].
type Options struct {
	// SkipPractice indicates whether to ignore the practice trials.
	SkipPractice bool

	// Logger is the OPTIONAL logger.
	Logger model.Logger

	// Overrides contains OPTIONAL overrides of the registered rules.
	Overrides *registry.Overrides
}

// ColumnStage contains the experiment stage of a trial.
const ColumnStage = "exp_stage"

// StagePractice is the [ColumnStage] of practice trials.
const StagePractice = "practice"

// Experiment describes the trials of the given experiment grouped by
// the registered group by columns. A missing rule is reported and the
// trials are not grouped.
func Experiment(tbl *frame.Table, experiment string, columns []string, opts *Options) ([]*Record, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := model.ValidLoggerOrDefault(opts.Logger)

	trials := selectExperiment(tbl, experiment, opts.SkipPractice)

	rule, found := opts.Overrides.Lookup(experiment)
	if !found {
		logger.Warnf("summary: no rule for %s: not grouping", experiment)
	}
	records, err := Describe(trials, columns, rule.GroupBy)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.Experiment = rule.Name
	}
	return records, nil
}

// selectExperiment returns the trials of the given experiment, optionally
// without the practice trials.
func selectExperiment(tbl *frame.Table, experiment string, skipPractice bool) *frame.Table {
	name := registry.CanonicalizeExperimentName(experiment)
	return tbl.Filter(func(_ int, row frame.Row) bool {
		if value, found := row[model.FieldExperiment]; found &&
			registry.CanonicalizeExperimentName(frame.ToString(value)) != name {
			return false
		}
		return !skipPractice || row[ColumnStage] != StagePractice
	})
}

// DV computes the DVs of the given experiment for each worker. A missing
// rule or DV function is reported and produces an empty result. Workers
// without usable trials are reported and skipped. Any other error
// aborts the computation.
func DV(tbl *frame.Table, experiment string, opts *Options) (map[string]*dv.Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := model.ValidLoggerOrDefault(opts.Logger)

	out := make(map[string]*dv.Result)
	rule, found := opts.Overrides.Lookup(experiment)
	if !found || rule.DV == nil {
		logger.Warnf("summary: no DV function for %s", experiment)
		return out, nil
	}

	trials := selectExperiment(tbl, experiment, opts.SkipPractice)
	for _, group := range trials.GroupBy(model.FieldWorker) {
		worker := group.KeyString()
		result, err := rule.DV(group.Table)
		if errors.Is(err, dv.ErrNoTrials) {
			logger.Warnf("summary: %s: worker %s: %s", rule.Name, worker, err.Error())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("summary: %s: worker %s: %w", rule.Name, worker, err)
		}
		out[worker] = result
	}
	return out, nil
}
