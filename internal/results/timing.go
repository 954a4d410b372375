package results

//
// Timing and post-task questionnaires of jsPsych runs
//

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/montanaflynn/stats"
)

// ColumnTimeTaken is the column added by [TimeTaken].
const ColumnTimeTaken = "time_taken"

// ErrNoTimeElapsed indicates that a sequential run lacks the time_elapsed
// field in its last trial.
var ErrNoTimeElapsed = errors.New("results: time_elapsed not found")

// ErrNoTimeTaken indicates that the table lacks the time_taken column.
var ErrNoTimeTaken = errors.New("results: time_taken not found: use TimeTaken first")

// TimeTaken adds the time_taken column, containing the time_elapsed of
// the last trial of each sequential run converted to seconds. Runs with
// other templates get a missing value.
func TimeTaken(tbl *frame.Table) (*frame.Table, error) {
	var failure error
	out := tbl.WithColumn(ColumnTimeTaken, func(idx int, row frame.Row) any {
		data := model.NewRunData(row[model.FieldData])
		if data.Template != model.TemplateSequential {
			return nil
		}
		trial, _ := data.LastTrial(0)
		elapsed, good := frame.ToFloat(trial["time_elapsed"])
		if !good {
			if failure == nil {
				failure = fmt.Errorf("%w: experiment=%s worker=%s", ErrNoTimeElapsed,
					frame.ToString(row[model.FieldExperiment]), frame.ToString(row[model.FieldWorker]))
			}
			return nil
		}
		return elapsed / 1000.0
	})
	if failure != nil {
		return nil, failure
	}
	return out, nil
}

// MeanTimeTaken returns the mean time taken by each experiment in
// minutes, rounded to two decimal digits.
func MeanTimeTaken(tbl *frame.Table) (map[string]float64, error) {
	if !tbl.HasColumn(ColumnTimeTaken) {
		return nil, ErrNoTimeTaken
	}
	out := make(map[string]float64)
	for _, group := range tbl.GroupBy(model.FieldExperiment) {
		seconds, err := stats.Mean(frame.Floats(group.Table.Column(ColumnTimeTaken)))
		if err != nil {
			continue
		}
		out[group.KeyString()] = math.Round(seconds/60.0*100) / 100
	}
	return out, nil
}

// PostTaskResponses returns, for each worker and experiment, the responses
// to the post-task questionnaire, which is the second-to-last trial.
func PostTaskResponses(tbl *frame.Table) map[string]map[string]any {
	out := make(map[string]map[string]any)
	rows := tbl.SortBy(model.FieldWorker, model.FieldExperiment, model.FieldFinishtime).Rows()
	for _, row := range rows {
		worker := frame.ToString(row[model.FieldWorker])
		if _, found := out[worker]; !found {
			out[worker] = make(map[string]any)
		}
		trial, good := model.NewRunData(row[model.FieldData]).LastTrial(1)
		if !good {
			continue
		}
		responses, found := trial["responses"]
		if !found {
			continue
		}
		if s, ok := responses.(string); ok {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				responses = decoded
			}
		}
		out[worker][frame.ToString(row[model.FieldExperiment])] = responses
	}
	return out
}

// TimeUnit is the unit used by [TimeDiff].
type TimeUnit string

const (
	TimeUnitMinute = TimeUnit("min")
	TimeUnitHour   = TimeUnit("hour")
	TimeUnitDay    = TimeUnit("day")
)

var timeUnitSeconds = map[TimeUnit]float64{
	TimeUnitMinute: 60,
	TimeUnitHour:   3600,
	TimeUnitDay:    86400,
}

// ErrInvalidTime indicates that we cannot parse a time.
var ErrInvalidTime = errors.New("results: invalid time")

// TimeDiff returns the absolute time elapsed between two time points
// using the given unit.
func TimeDiff(t1, t2 string, unit TimeUnit) (float64, error) {
	divisor, found := timeUnitSeconds[unit]
	if !found {
		return 0, fmt.Errorf("results: unknown time unit %q", unit)
	}
	first, good := ParseTime(t1)
	if !good {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t1)
	}
	second, good := ParseTime(t2)
	if !good {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t2)
	}
	return math.Abs(second.Sub(first).Seconds()) / divisor, nil
}

// WorkersByExperiment returns the sorted workers for each experiment.
func WorkersByExperiment(tbl *frame.Table) map[string][]string {
	out := make(map[string][]string)
	for _, group := range tbl.GroupBy(model.FieldExperiment) {
		workers := group.Table.UniqueStrings(model.FieldWorker)
		sort.Strings(workers)
		out[group.KeyString()] = workers
	}
	return out
}
