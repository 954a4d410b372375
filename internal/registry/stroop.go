package registry

//
// Registers the `stroop' experiment.
//

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/stroop"
)

func init() {
	AllRules[stroop.Name] = func() *Rule {
		return &Rule{
			Name:     stroop.Name,
			DropRows: experiment.DropRows(),
			GroupBy:  slices.Clone(stroop.GroupBy),
			DV:       stroop.DV,
		}
	}
}
