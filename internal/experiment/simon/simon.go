// Package simon contains the simon experiment.
package simon

import (
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/frame"
)

// Name is the experiment name.
const Name = "simon"

// GroupBy contains the columns to group by when summarizing.
var GroupBy = []string{experiment.ColumnCondition}

// DV computes simon_rt and simon_correct.
func DV(tbl *frame.Table) (*dv.Result, error) {
	return experiment.ConflictDV(tbl, Name, "simon effect: incongruent minus congruent")
}
