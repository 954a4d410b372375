package registry

//
// Registers the jsPsych experiments that only need to drop rows.
//

import (
	"github.com/expfactory/expanalysis/internal/experiment"
)

// jspsychRule is a rule consisting of drop rows and group by columns.
type jspsychRule struct {
	dropRows []string
	groupBy  []string
}

var jspsychRules = map[string]jspsychRule{
	"angling_risk_task_always_sunny": {
		dropRows: experiment.DropRows("intro", "ask_fish", "set_fish"),
	},
	"attention_network_task": {
		dropRows: experiment.DropRows("spatialcue", "centercue", "doublecue", "nocue", "rest block", "intro"),
		groupBy:  []string{"cue", "flanker_type"},
	},
	"bickel_titrator": {
		dropRows: experiment.DropRows("update_delay", "update_mag", "gap"),
	},
	"columbia_card_task_cold": {
		dropRows: experiment.DropRows("calculate_reward", "reward", "end_instructions"),
	},
	"columbia_card_task_hot": {
		dropRows: experiment.DropRows("calculate_reward", "reward"),
	},
	"dietary_decision": {
		dropRows: experiment.DropRows("start_taste", "start_health"),
	},
	"digit_span": {
		dropRows: experiment.DropRows("start_reverse", "stim", "feedback"),
	},
	"dot_pattern_expectancy": {
		dropRows: experiment.DropRows("rest", "cue", "feedback"),
	},
	"go_nogo": {
		dropRows: experiment.DropRows("reset_trial"),
	},
	"hierarchical_rule": {
		dropRows: experiment.DropRows("feedback"),
	},
	"information_sampling_task": {
		dropRows: experiment.DropRows("DW_intro", "reset_round"),
	},
	"kirby": {
		dropRows: experiment.DropRows("prompt", "wait"),
	},
	"local_global_letter": {
		dropRows: experiment.DropRows(),
	},
	"probabilistic_selection": {
		dropRows: experiment.DropRows(),
	},
	"psychological_refractory_period_two_choices": {
		dropRows: experiment.DropRows(),
	},
	"recent_probes": {
		dropRows: experiment.DropRows("intro_test", "iti_fixation"),
	},
	"shift_task": {
		dropRows: experiment.DropRows(),
	},
	"spatial_span": {
		dropRows: experiment.DropRows("start_reverse_intro", "stim", "feedback"),
	},
	"threebytwo": {
		dropRows: experiment.DropRows("cue", "gap", "set_stims"),
		groupBy:  []string{"task_switch", "cue_switch"},
	},
	"tower_of_london": {
		dropRows: experiment.DropRows(),
	},
	"two_stage_decision": {
		dropRows: experiment.DropRows("wait", "first_stage_selected", "second_stage_selected", "wait_update_fb"),
	},
	"willingness_to_wait": {
		dropRows: experiment.DropRows(),
	},
	"writing_task": {
		// the writing task has a single free text trial
		dropRows: []string{},
	},
}

func init() {
	for name, entry := range jspsychRules {
		name, entry := name, entry // per-iteration copy (pre-Go 1.22 loop semantics)
		AllRules[name] = func() *Rule {
			return &Rule{
				Name:     name,
				DropRows: append([]string{}, entry.dropRows...),
				GroupBy:  append([]string{}, entry.groupBy...),
			}
		}
	}
}
