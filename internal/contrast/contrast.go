// Package contrast implements contrasts between two columns and
// formula based regressions over trial tables.
package contrast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/statsx"
)

var (
	// ErrMissingColumn indicates that a referenced column does not exist.
	ErrMissingColumn = errors.New("contrast: missing column")

	// ErrNotNumeric indicates that a column should be numeric but is not.
	ErrNotNumeric = errors.New("contrast: column is not numeric")
)

// Exclude maps a column name to the values whose rows we drop.
type Exclude map[string][]any

// Apply returns the rows of tbl not matching any excluded value.
func (e Exclude) Apply(tbl *frame.Table) *frame.Table {
	if len(e) <= 0 {
		return tbl
	}
	return tbl.Filter(func(idx int, row frame.Row) bool {
		for column, values := range e {
			for _, value := range values {
				if frame.Equal(row[column], value) {
					return false
				}
			}
		}
		return true
	})
}

// Kind is the kind of test performed by [Contrast].
type Kind string

const (
	// KindCorrelation is a Pearson correlation between numeric columns.
	KindCorrelation = Kind("correlation")

	// KindTTest is a Student t-test between two levels.
	KindTTest = Kind("ttest")

	// KindLevels means we only report the levels.
	KindLevels = Kind("levels")
)

// ContrastResult is the result of [Contrast].
type ContrastResult struct {
	Dependent   string   `json:"dependent"`
	Independent string   `json:"independent"`
	Kind        Kind     `json:"kind"`
	N           int      `json:"n"`
	Levels      []string `json:"levels,omitempty"`
	Correlation *float64 `json:"correlation,omitempty"`
	TStatistic  *float64 `json:"t_statistic,omitempty"`
	PValue      *float64 `json:"p_value,omitempty"`
}

// String returns a one line human readable description.
func (r *ContrastResult) String() string {
	switch r.Kind {
	case KindCorrelation:
		return fmt.Sprintf("%s ~ %s: correlation r=%.4f p=%.4g (n=%d)",
			r.Dependent, r.Independent, *r.Correlation, *r.PValue, r.N)
	case KindTTest:
		return fmt.Sprintf("%s ~ %s [%s]: t=%.4f p=%.4g (n=%d)",
			r.Dependent, r.Independent, strings.Join(r.Levels, " vs "), *r.TStatistic, *r.PValue, r.N)
	default:
		return fmt.Sprintf("%s ~ %s: %d levels: %s (n=%d)",
			r.Dependent, r.Independent, len(r.Levels), strings.Join(r.Levels, ", "), r.N)
	}
}

// Contrast compares the dep column with the ind column. We drop rows
// where either is missing, we drop excluded values, and then:
//
// 1. when both columns are numeric, we compute the Pearson correlation;
//
// 2. when ind has exactly two levels, we run a Student t-test of dep;
//
// 3. otherwise, we only report the levels of ind.
//
// A nil backend means [statsx.Gonum] and a nil logger means discarding logs.
func Contrast(tbl *frame.Table, dep, ind string, exclude Exclude,
	backend statsx.Backend, logger model.Logger) (*ContrastResult, error) {
	logger = model.ValidLoggerOrDefault(logger)
	if backend == nil {
		backend = statsx.Gonum{}
	}
	if missing := tbl.MissingColumns(dep, ind); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	tbl = exclude.Apply(tbl).DropNA(nil, dep, ind)
	result := &ContrastResult{Dependent: dep, Independent: ind, N: tbl.Len()}
	depValues, indValues := tbl.Column(dep), tbl.Column(ind)

	// 1. correlation
	if frame.CheckNumeric(depValues) && frame.CheckNumeric(indValues) {
		r, p, err := backend.Pearson(frame.Floats(depValues), frame.Floats(indValues))
		if err != nil {
			return nil, fmt.Errorf("contrast: correlation of %s and %s: %w", dep, ind, err)
		}
		result.Kind, result.Correlation, result.PValue = KindCorrelation, &r, &p
		return result, nil
	}

	levels := tbl.Unique(ind)
	for _, level := range levels {
		result.Levels = append(result.Levels, frame.ToString(level))
	}
	logger.Infof("contrast: %s has %d levels: %s", ind, len(levels), strings.Join(result.Levels, ", "))

	// 2. t-test
	if len(levels) == 2 {
		if !frame.CheckNumeric(depValues) {
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, dep)
		}
		var samples [2][]float64
		for idx, level := range levels {
			level := level // per-iteration copy (pre-Go 1.22 loop semantics)
			group := tbl.Filter(func(_ int, row frame.Row) bool {
				return frame.Equal(row[ind], level)
			})
			samples[idx] = frame.Floats(group.Column(dep))
		}
		t, p, err := backend.TTestInd(samples[0], samples[1])
		if err != nil {
			return nil, fmt.Errorf("contrast: t-test of %s by %s: %w", dep, ind, err)
		}
		result.Kind, result.TStatistic, result.PValue = KindTTest, &t, &p
		return result, nil
	}

	// 3. levels only
	result.Kind = KindLevels
	return result, nil
}
