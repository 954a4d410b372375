package registry

//
// Registers the `simon' experiment.
//

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/simon"
)

func init() {
	AllRules[simon.Name] = func() *Rule {
		return &Rule{
			Name:     simon.Name,
			DropRows: experiment.DropRows("reset_trial"),
			GroupBy:  slices.Clone(simon.GroupBy),
			DV:       simon.DV,
		}
	}
}
