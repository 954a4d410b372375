package registry

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/expfactory/expanalysis/internal/experiment"
	"github.com/google/go-cmp/cmp"
)

func TestCanonicalizeExperimentName(t *testing.T) {
	cases := map[string]string{
		"stroop":           "stroop",
		" Stroop ":         "stroop",
		"Stop Signal":      "stop_signal",
		"stop-signal-task": "stop_signal",
		"N-Back":           "adaptive_n_back",
		"3by2":             "threebytwo",
	}
	for input, expect := range cases {
		if got := CanonicalizeExperimentName(input); got != expect {
			t.Fatal("for", input, "expected", expect, "got", got)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Run("for every registered experiment", func(t *testing.T) {
		for _, name := range Names() {
			rule, found := Lookup(name)
			if !found {
				t.Fatal("not found", name)
			}
			if rule.Name != name {
				t.Fatal("unexpected name", rule.Name, "for", name)
			}
			if rule.PostFunc() == nil {
				t.Fatal("nil post function for", name)
			}
		}
	})

	t.Run("for stop_signal", func(t *testing.T) {
		rule, found := Lookup("stop_signal")
		if !found {
			t.Fatal("expected to find stop_signal")
		}
		if rule.Post == nil || rule.DV == nil {
			t.Fatal("expected post and DV functions")
		}
		expect := experiment.DropRows("reset", "feedback")
		if diff := cmp.Diff(expect, rule.DropRows); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]string{"SS_trial_type"}, rule.GroupBy); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("for writing_task", func(t *testing.T) {
		rule, found := Lookup("writing_task")
		if !found {
			t.Fatal("expected to find writing_task")
		}
		if len(rule.DropRows) != 0 {
			t.Fatal("expected no rows to drop", rule.DropRows)
		}
	})

	t.Run("for an unknown experiment", func(t *testing.T) {
		rule, found := Lookup("bridge_game")
		if found {
			t.Fatal("did not expect to find bridge_game")
		}
		if rule.Name != "bridge_game" || rule.DropRows != nil || rule.DV != nil {
			t.Fatal("expected an empty rule", rule)
		}
		if rule.PostFunc() == nil {
			t.Fatal("expected the identity post function")
		}
	})

	t.Run("rules are constructed fresh", func(t *testing.T) {
		first, _ := Lookup("stroop")
		first.GroupBy[0] = "changed"
		first.DropRows = append(first.DropRows[:0], "changed")
		second, _ := Lookup("stroop")
		if second.GroupBy[0] != "condition" {
			t.Fatal("the registered group by columns have been modified")
		}
		if !slices.Contains(second.DropRows, "welcome") {
			t.Fatal("the registered drop rows have been modified")
		}
	})
}

func TestOverrides(t *testing.T) {
	const data = `
experiments:
  Stroop:
    drop_rows: [feedback, welcome]
    group_by: [exp_stage]
  bridge_game:
    drop_rows: [practice]
`

	t.Run("with valid YAML", func(t *testing.T) {
		overrides, err := ParseOverrides([]byte(data))
		if err != nil {
			t.Fatal(err)
		}

		rule, found := overrides.Lookup("stroop")
		if !found {
			t.Fatal("expected to find stroop")
		}
		if diff := cmp.Diff(experiment.DropRows("feedback"), rule.DropRows); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]string{"condition", "exp_stage"}, rule.GroupBy); diff != "" {
			t.Fatal(diff)
		}

		rule, found = overrides.Lookup("bridge_game")
		if !found {
			t.Fatal("expected to find bridge_game")
		}
		if diff := cmp.Diff([]string{"practice"}, rule.DropRows); diff != "" {
			t.Fatal(diff)
		}

		if _, found := overrides.Lookup("bis11_survey"); found {
			t.Fatal("did not expect to find bis11_survey")
		}
	})

	t.Run("with a nil pointer", func(t *testing.T) {
		var overrides *Overrides
		if _, found := overrides.Lookup("stroop"); !found {
			t.Fatal("expected to find stroop")
		}
	})

	t.Run("with invalid YAML", func(t *testing.T) {
		if _, err := ParseOverrides([]byte("experiments: [")); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "overrides.yaml")
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
		overrides, err := LoadOverrides(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(overrides.Experiments) != 2 {
			t.Fatal("unexpected number of experiments", len(overrides.Experiments))
		}
	})

	t.Run("from a nonexistent file", func(t *testing.T) {
		if _, err := LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Fatal("expected an error")
		}
	})
}
