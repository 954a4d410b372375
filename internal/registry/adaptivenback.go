package registry

//
// Registers the `adaptive_n_back' experiment.
//

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/adaptivenback"
)

func init() {
	AllRules[adaptivenback.Name] = func() *Rule {
		return &Rule{
			Name:     adaptivenback.Name,
			DropRows: experiment.DropRows("update_target", "update_delay", "delay_text"),
			GroupBy:  slices.Clone(adaptivenback.GroupBy),
			DV:       adaptivenback.DV,
		}
	}
}
