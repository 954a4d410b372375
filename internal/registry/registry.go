// Package registry contains the per-experiment processing rules.
//
// Each experiment registers itself in [AllRules] from an init function
// in its own file. Lookups never fail hard: a missing rule is reported
// to the caller, which warns and uses an empty rule.
package registry

import (
	"sort"
	"strings"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/experiment"
)

// Rule describes how to process the trials of an experiment.
type Rule struct {
	// Name is the MANDATORY canonical experiment name.
	Name string

	// DropRows is the OPTIONAL list of trial_id values to drop.
	DropRows []string

	// Post is the OPTIONAL post-processing function.
	Post experiment.PostFunc

	// GroupBy contains the OPTIONAL columns to group by when summarizing.
	GroupBy []string

	// DV is the OPTIONAL function computing the DVs of a single worker.
	DV dv.Func
}

// PostFunc returns the post-processing function or [experiment.Identity].
func (r *Rule) PostFunc() experiment.PostFunc {
	if r == nil || r.Post == nil {
		return experiment.Identity
	}
	return r.Post
}

// AllRules contains all the registered rules. Each entry constructs
// a fresh rule, so callers may modify what they obtain.
var AllRules = map[string]func() *Rule{}

// Lookup returns the rule of the given experiment and whether it exists.
// When there is no rule, Lookup returns an empty rule with the given name.
func Lookup(name string) (*Rule, bool) {
	name = CanonicalizeExperimentName(name)
	factory := AllRules[name]
	if factory == nil {
		return &Rule{Name: name}, false
	}
	return factory(), true
}

// Names returns the sorted names of the registered experiments.
func Names() []string {
	names := make([]string, 0, len(AllRules))
	for name := range AllRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalizeExperimentName allows code to provide experiment names
// in a more flexible way, where we have aliases.
//
// Users may write names such as "Stop Signal", so we convert to
// lowercase snake case here.
func CanonicalizeExperimentName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	switch name {
	case "stop_signal_task":
		name = "stop_signal"
	case "n_back", "adaptive_nback":
		name = "adaptive_n_back"
	case "3by2", "three_by_two":
		name = "threebytwo"
	default:
	}
	return name
}
