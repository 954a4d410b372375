// Package stopsignal contains the stop signal family of experiments.
//
// The same post-processing applies to stop_signal, motor_selective_stop_signal
// and stim_selective_stop_signal. The DVs are only defined for stop_signal.
package stopsignal

import (
	"math"
	"sort"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"gonum.org/v1/gonum/stat"
)

// Experiment names.
const (
	Name               = "stop_signal"
	MotorSelectiveName = "motor_selective_stop_signal"
	StimSelectiveName  = "stim_selective_stop_signal"
)

// Columns used by the stop signal experiments.
const (
	ColumnDelay     = "SS_delay"
	ColumnKeyPress  = "key_press"
	ColumnStopped   = "stopped"
	ColumnTrialType = "SS_trial_type"
)

// Values of the [ColumnTrialType] column.
const (
	TrialGo   = "go"
	TrialStop = "stop"
)

// NoResponse is the key_press value of trials without a response.
const NoResponse = -1

// GroupBy contains the columns to group stop_signal by.
var GroupBy = []string{ColumnTrialType}

// MotorSelectiveGroupBy contains the columns to group motor_selective_stop_signal by.
var MotorSelectiveGroupBy = []string{ColumnTrialType, "condition"}

// Post adds the [ColumnStopped] column, which is true when the worker
// did not press any key.
func Post(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	if !tbl.HasColumn(ColumnKeyPress) {
		logger.Warnf("stopsignal: no %s column: cannot compute %s", ColumnKeyPress, ColumnStopped)
		return tbl, nil
	}
	return tbl.WithColumn(ColumnStopped, func(_ int, row frame.Row) any {
		return stopped(row)
	}), nil
}

func stopped(row frame.Row) bool {
	if value, found := row[ColumnStopped]; found {
		if f, good := dv.Truthy(value); good {
			return f == 1
		}
	}
	key, good := frame.ToFloat(row[ColumnKeyPress])
	return good && key == NoResponse
}

// DV computes the following DVs over the test trials:
//
// - go_rt: the mean reaction time of the go trials with a response;
//
// - stop_accuracy: the fraction of stop trials in which the worker stopped;
//
// - ssrt: the stop signal reaction time according to the integration
// method, that is, the quantile of the go reaction times at the
// probability of responding in stop trials, minus the mean stop
// signal delay.
func DV(tbl *frame.Table) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if err := dv.RequireColumns(tbl, ColumnTrialType, "rt"); err != nil {
		return nil, err
	}
	test := dv.TestTrials(tbl)
	goTrials := dv.ResponseTrials(dv.Where(test, ColumnTrialType, TrialGo))
	stopTrials := dv.Where(test, ColumnTrialType, TrialStop)

	goRT, err := dv.Mean(goTrials, "rt")
	if err != nil {
		return nil, err
	}
	if stopTrials.Empty() {
		return nil, dv.ErrNoTrials
	}
	var count int
	for _, row := range stopTrials.Rows() {
		if stopped(row) {
			count++
		}
	}
	stopAccuracy := float64(count) / float64(stopTrials.Len())

	result := dv.NewResult("stop signal: go reaction time, stop accuracy and SSRT")
	result.Set("go_rt", goRT)
	result.Set("stop_accuracy", stopAccuracy)
	result.Set("ssrt", math.NaN())

	if delay, err := dv.Mean(stopTrials, ColumnDelay); err == nil {
		rts := frame.Floats(goTrials.Column("rt"))
		sort.Float64s(rts)
		quantile := stat.Quantile(1-stopAccuracy, stat.Empirical, rts, nil)
		result.Set("ssrt", quantile-delay)
	}
	return result, nil
}
