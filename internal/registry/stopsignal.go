package registry

//
// Registers the stop signal family of experiments.
//

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/expfactory/expanalysis/internal/experiment/stopsignal"
)

func init() {
	AllRules[stopsignal.Name] = func() *Rule {
		return &Rule{
			Name:     stopsignal.Name,
			DropRows: experiment.DropRows("reset", "feedback"),
			Post:     stopsignal.Post,
			GroupBy:  slices.Clone(stopsignal.GroupBy),
			DV:       stopsignal.DV,
		}
	}
	AllRules[stopsignal.MotorSelectiveName] = func() *Rule {
		return &Rule{
			Name:     stopsignal.MotorSelectiveName,
			DropRows: experiment.DropRows("prompt_fixation", "feedback"),
			Post:     stopsignal.Post,
			GroupBy:  slices.Clone(stopsignal.MotorSelectiveGroupBy),
		}
	}
	AllRules[stopsignal.StimSelectiveName] = func() *Rule {
		return &Rule{
			Name:     stopsignal.StimSelectiveName,
			DropRows: experiment.DropRows("feedback"),
			Post:     stopsignal.Post,
		}
	}
}
