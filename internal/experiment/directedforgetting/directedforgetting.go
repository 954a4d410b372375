// Package directedforgetting contains the directed_forgetting experiment.
package directedforgetting

import (
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// Name is the experiment name.
const Name = "directed_forgetting"

// Columns used by this experiment.
const (
	ColumnCue       = "cue"
	ColumnStim      = "stim"
	ColumnStimTop   = "stim_top"
	ColumnStimBelow = "stim_bottom"
)

// TrialProbe is the trial_id of the probe trials.
const TrialProbe = "probe"

// GroupBy contains the columns to group by when summarizing.
var GroupBy = []string{"probe_type"}

// Post renames the stim column to cue and copies onto each probe trial the
// letters shown three trials before and the cue shown two trials before,
// so that probe trials are self contained.
func Post(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	tbl = tbl.Rename(map[string]string{ColumnStim: ColumnCue})
	sameRun := func(i, j int) bool {
		if j < 0 {
			return false
		}
		for _, col := range []string{model.FieldBattery, model.FieldWorker} {
			if !frame.Equal(tbl.Value(i, col), tbl.Value(j, col)) {
				return false
			}
		}
		return true
	}
	var count int
	out := tbl.Map(func(idx int, row frame.Row) frame.Row {
		if row[experiment.ColumnTrialID] != TrialProbe {
			return row
		}
		if sameRun(idx, idx-3) {
			row[ColumnStimBelow] = tbl.Value(idx-3, ColumnStimBelow)
			row[ColumnStimTop] = tbl.Value(idx-3, ColumnStimTop)
		}
		if sameRun(idx, idx-2) {
			row[ColumnCue] = tbl.Value(idx-2, ColumnCue)
		}
		count++
		return row
	})
	logger.Debugf("directedforgetting: filled %d probe trials", count)
	return out, nil
}
