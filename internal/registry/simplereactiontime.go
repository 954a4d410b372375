package registry

//
// Registers the `simple_reaction_time' experiment.
//

import (
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/simplereactiontime"
)

func init() {
	AllRules[simplereactiontime.Name] = func() *Rule {
		return &Rule{
			Name:     simplereactiontime.Name,
			DropRows: experiment.DropRows("reset_trial"),
			DV:       simplereactiontime.DV,
		}
	}
}
