package registry

//
// Registers the `choice_reaction_time' experiment.
//

import (
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/choicereactiontime"
)

func init() {
	AllRules[choicereactiontime.Name] = func() *Rule {
		return &Rule{
			Name:     choicereactiontime.Name,
			DropRows: experiment.DropRows("practice_intro", "reset trial"),
			DV:       choicereactiontime.DV,
		}
	}
}
