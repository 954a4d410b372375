// Package simplereactiontime contains the simple_reaction_time experiment.
package simplereactiontime

import (
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
)

// Name is the experiment name.
const Name = "simple_reaction_time"

// DV computes avg_rt, the mean reaction time of the test trials with a response.
func DV(tbl *frame.Table) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if err := dv.RequireColumns(tbl, "rt"); err != nil {
		return nil, err
	}
	rt, err := dv.Mean(dv.ResponseTrials(dv.TestTrials(tbl)), "rt")
	if err != nil {
		return nil, err
	}
	return dv.NewResult("simple reaction time: mean reaction time").Set("avg_rt", rt), nil
}
