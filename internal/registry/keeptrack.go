package registry

//
// Registers the `keep_track' experiment.
//

import (
	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/keeptrack"
)

func init() {
	AllRules[keeptrack.Name] = func() *Rule {
		return &Rule{
			Name:     keeptrack.Name,
			DropRows: experiment.DropRows("practice_end", "stim"),
			Post:     keeptrack.Post,
			DV:       keeptrack.DV,
		}
	}
}
