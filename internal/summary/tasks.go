package summary

//
// Generic statistics of jsPsych tasks.
//

import (
	"errors"
	"fmt"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/montanaflynn/stats"
)

// ColumnTimeElapsed is the time since the beginning of the task in milliseconds.
const ColumnTimeElapsed = "time_elapsed"

// InstructionTrials contains the trial_id values of instruction trials.
var InstructionTrials = []string{"instruction", "instructions"}

// TaskStat contains the generic statistics of a task.
type TaskStat struct {
	// Experiment is the experiment name.
	Experiment string `json:"experiment"`

	// Minutes contains the statistics of the per worker task duration.
	Minutes Stats `json:"minutes"`

	// InstructionSeconds contains the statistics of the per worker
	// time spent until the end of the instructions.
	InstructionSeconds Stats `json:"instruction_seconds"`
}

// TaskStats computes the generic statistics of each task in an
// uncleaned trial table containing one or more experiments. We
// only consider the jsPsych tasks, which have a trial_id column.
// The result is sorted by experiment.
func TaskStats(tbl *frame.Table) ([]*TaskStat, error) {
	if !tbl.HasColumn(ColumnTimeElapsed) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnTimeElapsed)
	}
	var out []*TaskStat
	for _, group := range tbl.GroupBy(model.FieldExperiment) {
		trials := group.Table
		if len(trials.UniqueStrings(experiment.ColumnTrialID)) <= 0 {
			continue
		}
		instructions := trials.Filter(func(_ int, row frame.Row) bool {
			id := frame.ToString(row[experiment.ColumnTrialID])
			for _, value := range InstructionTrials {
				if id == value {
					return true
				}
			}
			return false
		})
		out = append(out, &TaskStat{
			Experiment:         group.KeyString(),
			Minutes:            NewStats(maxPerWorker(trials, 60000)),
			InstructionSeconds: NewStats(maxPerWorker(instructions, 1000)),
		})
	}
	return out, nil
}

// maxPerWorker returns the maximum time_elapsed of each worker divided by divisor.
func maxPerWorker(tbl *frame.Table, divisor float64) []float64 {
	var out []float64
	for _, group := range tbl.GroupBy(model.FieldWorker) {
		maxValue, err := stats.Max(frame.Floats(group.Table.Column(ColumnTimeElapsed)))
		if err != nil {
			continue
		}
		out = append(out, maxValue/divisor)
	}
	return out
}

// ErrCannotAverage indicates that a column is not numeric.
var ErrCannotAverage = errors.New("summary: cannot average a non numeric column")

// AverageVariable returns, for each experiment in a trial table, the mean
// of the given column. Experiments without the column are skipped.
func AverageVariable(tbl *frame.Table, column string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, group := range tbl.GroupBy(model.FieldExperiment) {
		values := group.Table.Column(column)
		var present []any
		for _, value := range values {
			if !frame.IsNull(value) {
				present = append(present, value)
			}
		}
		if len(present) <= 0 {
			continue
		}
		if !frame.CheckNumeric(present) {
			return nil, fmt.Errorf("%w: %s: %s", ErrCannotAverage, group.KeyString(), column)
		}
		out[group.KeyString()] = NewStats(frame.Floats(present)).Mean
	}
	return out, nil
}
