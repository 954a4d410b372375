// Package adaptivenback contains the adaptive_n_back experiment.
package adaptivenback

import (
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
)

// Name is the experiment name.
const Name = "adaptive_n_back"

// ColumnLoad contains the n of the n-back block.
const ColumnLoad = "load"

// GroupBy contains the columns to group by when summarizing.
var GroupBy = []string{ColumnLoad}

// DV computes max_load, the maximum load reached in the test trials.
func DV(tbl *frame.Table) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if err := dv.RequireColumns(tbl, ColumnLoad); err != nil {
		return nil, err
	}
	loads := frame.Floats(dv.TestTrials(tbl).Column(ColumnLoad))
	if len(loads) <= 0 {
		return nil, dv.ErrNoTrials
	}
	maxLoad := loads[0]
	for _, load := range loads[1:] {
		maxLoad = max(maxLoad, load)
	}
	return dv.NewResult("adaptive n-back: maximum load reached").Set("max_load", maxLoad), nil
}
