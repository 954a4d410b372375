// Package cleaning cleans the trial tables of a single experiment.
package cleaning

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/registry"
	"github.com/expfactory/expanalysis/internal/results"
)

// DefaultDropColumns contains the columns dropped by default.
var DefaultDropColumns = []string{
	"view_history",
	"stimulus",
	"trial_index",
	"internal_node_id",
	"stim_duration",
	"block_duration",
	"feedback_duration",
	"timing_post_trial",
	"exp_id",
}

// Columns used to compute whether a trial is correct.
const (
	ColumnCorrect         = "correct"
	ColumnCorrectResponse = "correct_response"
)

// ResponseColumns contains the columns that may contain the response.
var ResponseColumns = []string{"key_press", "clicked_on"}

// ErrMixedExperiments indicates that the table contains the trials of
// experiments other than the one being cleaned.
var ErrMixedExperiments = errors.New("cleaning: the table contains other experiments")

// Options contains options for [Clean].
type Options struct {
	// DropColumns contains the OPTIONAL columns to drop. When nil,
	// we use [DefaultDropColumns]. Use an empty slice to drop nothing.
	DropColumns []string

	// DropNA indicates whether to drop the rows in which every
	// non-identifier value is null.
	DropNA bool

	// Lookup indicates whether to normalize values with [LookupValue].
	Lookup bool

	// ReplaceCorrect indicates whether to compute the correct column
	// from correct_response and the response columns.
	ReplaceCorrect bool

	// Logger is the OPTIONAL logger.
	Logger model.Logger

	// Overrides contains OPTIONAL overrides of the registered rules.
	Overrides *registry.Overrides
}

// DefaultOptions returns the default [*Options].
func DefaultOptions() *Options {
	return &Options{
		DropColumns:    nil,
		DropNA:         true,
		Lookup:         true,
		ReplaceCorrect: true,
		Logger:         model.DiscardLogger,
		Overrides:      nil,
	}
}

// Clean cleans the trials of the given experiment. An empty experiment
// means that we do not know the experiment, hence we skip the
// post-processing and do not drop any row. The steps are:
//
// 1. post-processing using the registered rule;
//
// 2. dropping the columns in opts.DropColumns;
//
// 3. dropping the rows whose trial_id belongs to the rule drop rows;
//
// 4. dropping the rows in which all non-identifier values are null;
//
// 5. normalizing values using [LookupValue];
//
// 6. computing the correct column;
//
// 7. converting booleans to 0 and 1.
func Clean(tbl *frame.Table, experimentName string, opts *Options) (*frame.Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	logger := model.ValidLoggerOrDefault(opts.Logger)

	rule := &registry.Rule{}
	if experimentName != "" {
		var found bool
		rule, found = opts.Overrides.Lookup(experimentName)
		if !found {
			logger.Warnf("cleaning: no rule for %s: not post-processing and not dropping rows", experimentName)
		}
		if err := checkExperiment(tbl, experimentName); err != nil {
			return nil, err
		}
	}

	// 1. post-process
	if experimentName != "" {
		out, err := rule.PostFunc()(tbl, logger)
		if err != nil {
			return nil, fmt.Errorf("cleaning: %s: post-processing failed: %w", experimentName, err)
		}
		tbl = out
	}

	// 2. drop columns
	dropColumns := opts.DropColumns
	if dropColumns == nil {
		dropColumns = DefaultDropColumns
	}
	tbl = tbl.DropColumns(dropColumns...)

	// 3. drop rows
	if len(rule.DropRows) > 0 {
		tbl = tbl.Filter(func(_ int, row frame.Row) bool {
			value, found := row[experiment.ColumnTrialID]
			return !found || !slices.Contains(rule.DropRows, frame.ToString(value))
		})
	}

	// 4. drop empty rows
	if opts.DropNA {
		tbl = tbl.DropNA(results.IdentifierColumns)
	}

	// 5. normalize values
	if opts.Lookup {
		tbl = tbl.Map(func(_ int, row frame.Row) frame.Row {
			for key, value := range row {
				if !slices.Contains(results.IdentifierColumns, key) {
					row[key] = LookupValue(value)
				}
			}
			return row
		})
	}

	// 6. compute correct
	if opts.ReplaceCorrect {
		tbl = replaceCorrect(tbl, logger)
	}

	// 7. booleans to integers
	tbl = tbl.Map(func(_ int, row frame.Row) frame.Row {
		for key, value := range row {
			if b, ok := value.(bool); ok {
				row[key] = boolToInt(b)
			}
		}
		return row
	})

	logger.Debugf("cleaning: %s: %d rows, %d columns", experimentName, tbl.Len(), len(tbl.Columns()))
	return tbl, nil
}

func checkExperiment(tbl *frame.Table, experimentName string) error {
	if !tbl.HasColumn(model.FieldExperiment) {
		return nil
	}
	var others []string
	for _, value := range tbl.UniqueStrings(model.FieldExperiment) {
		if registry.CanonicalizeExperimentName(value) != registry.CanonicalizeExperimentName(experimentName) {
			others = append(others, value)
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("%w: %s", ErrMixedExperiments, strings.Join(others, ", "))
	}
	return nil
}

func replaceCorrect(tbl *frame.Table, logger model.Logger) *frame.Table {
	if !tbl.HasColumn(ColumnCorrectResponse) {
		return tbl
	}
	var responseColumns []string
	for _, col := range ResponseColumns {
		if tbl.HasColumn(col) {
			responseColumns = append(responseColumns, col)
		}
	}
	if len(responseColumns) <= 0 {
		return tbl
	}
	if tbl.HasColumn(ColumnCorrect) {
		logger.Warnf("cleaning: replacing the %s column", ColumnCorrect)
	}
	return tbl.WithColumn(ColumnCorrect, func(_ int, row frame.Row) any {
		expected := row[ColumnCorrectResponse]
		if frame.IsNull(expected) {
			return nil
		}
		for _, col := range responseColumns {
			if frame.Equal(expected, row[col]) {
				return 1.0
			}
		}
		return 0.0
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
