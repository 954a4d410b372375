// Package choicereactiontime contains the choice_reaction_time experiment.
package choicereactiontime

import (
	"math"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
)

// Name is the experiment name.
const Name = "choice_reaction_time"

// DV computes the following DVs over the test trials with a response:
//
// - avg_rt: the mean reaction time in milliseconds;
//
// - accuracy: the fraction of correct trials;
//
// - drift, threshold, non_decision: the parameters of the EZ-diffusion
// model fitted on the correct reaction times in seconds, or NaN when
// the model cannot be fitted.
func DV(tbl *frame.Table) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if err := dv.RequireColumns(tbl, "rt", "correct"); err != nil {
		return nil, err
	}
	responded := dv.ResponseTrials(dv.TestTrials(tbl))
	avgRT, err := dv.Mean(responded, "rt")
	if err != nil {
		return nil, err
	}
	accuracy, err := dv.Accuracy(responded, "correct")
	if err != nil {
		return nil, err
	}
	result := dv.NewResult("choice reaction time: mean reaction time, accuracy and EZ-diffusion parameters")
	result.Set("avg_rt", avgRT)
	result.Set("accuracy", accuracy)
	result.Set("drift", math.NaN())
	result.Set("threshold", math.NaN())
	result.Set("non_decision", math.NaN())

	seconds := dv.CorrectTrials(responded).WithColumn("rt_seconds", func(_ int, row frame.Row) any {
		rt, _ := frame.ToFloat(row["rt"])
		return rt / 1000
	})
	mrt, err := dv.Mean(seconds, "rt_seconds")
	if err != nil {
		return result, nil
	}
	vrt, err := dv.Variance(seconds, "rt_seconds")
	if err != nil {
		return result, nil
	}
	params, err := dv.EZDiffusion(accuracy, vrt, mrt, responded.Len())
	if err != nil {
		return result, nil
	}
	result.Set("drift", params.Drift)
	result.Set("threshold", params.Threshold)
	result.Set("non_decision", params.NonDecision)
	return result, nil
}
