package registry

//
// Registers the `directed_forgetting' experiment.
//

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/directedforgetting"
)

func init() {
	AllRules[directedforgetting.Name] = func() *Rule {
		return &Rule{
			Name:     directedforgetting.Name,
			DropRows: experiment.DropRows("ITI_fixation", "intro_test", "stim", "cue"),
			Post:     directedforgetting.Post,
			GroupBy:  slices.Clone(directedforgetting.GroupBy),
		}
	}
}
