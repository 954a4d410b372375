package registry

//
// User-provided overrides of the registered rules.
//

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Override extends the rule of an experiment.
type Override struct {
	// DropRows contains additional trial_id values to drop.
	DropRows []string `yaml:"drop_rows"`

	// GroupBy contains additional columns to group by.
	GroupBy []string `yaml:"group_by"`
}

// Overrides contains the overrides of each experiment. The zero value
// and the nil pointer are valid and override nothing.
//
// The YAML format is the following:
//
//	experiments:
//	  stroop:
//	    drop_rows: [feedback]
//	    group_by: [condition, exp_stage]
type Overrides struct {
	Experiments map[string]Override `yaml:"experiments"`
}

// LoadOverrides reads [*Overrides] from the given YAML file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOverrides(data)
}

// ParseOverrides parses [*Overrides] from YAML.
func ParseOverrides(data []byte) (*Overrides, error) {
	var overrides Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("registry: cannot parse overrides: %w", err)
	}
	canonical := make(map[string]Override)
	for name, entry := range overrides.Experiments {
		name = CanonicalizeExperimentName(name)
		previous := canonical[name]
		canonical[name] = Override{
			DropRows: appendUnique(previous.DropRows, entry.DropRows...),
			GroupBy:  appendUnique(previous.GroupBy, entry.GroupBy...),
		}
	}
	overrides.Experiments = canonical
	return &overrides, nil
}

// Lookup is like the package level [Lookup] except that it extends the
// registered rule with the overrides. An experiment that is only named
// by the overrides is considered found.
func (o *Overrides) Lookup(name string) (*Rule, bool) {
	rule, found := Lookup(name)
	if o == nil {
		return rule, found
	}
	entry, good := o.Experiments[rule.Name]
	if !good {
		return rule, found
	}
	rule.DropRows = appendUnique(rule.DropRows, entry.DropRows...)
	rule.GroupBy = appendUnique(rule.GroupBy, entry.GroupBy...)
	return rule, true
}

func appendUnique(values []string, extra ...string) []string {
	out := slices.Clone(values)
	for _, value := range extra {
		if !slices.Contains(out, value) {
			out = append(out, value)
		}
	}
	return out
}
