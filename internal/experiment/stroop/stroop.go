// Package stroop contains the stroop experiment.
package stroop

import (
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/frame"
)

// Name is the experiment name.
const Name = "stroop"

// GroupBy contains the columns to group by when summarizing.
var GroupBy = []string{experiment.ColumnCondition}

// DV computes stroop_rt and stroop_correct.
func DV(tbl *frame.Table) (*dv.Result, error) {
	return experiment.ConflictDV(tbl, Name, "stroop interference effect: incongruent minus congruent")
}
