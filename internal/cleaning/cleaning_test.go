package cleaning

import (
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/registry"
	"github.com/google/go-cmp/cmp"
)

func stopSignalTrial(trialID string, key float64, extra frame.Row) frame.Row {
	row := frame.Row{
		model.FieldBattery:    "Test Battery",
		model.FieldExperiment: "stop_signal",
		model.FieldWorker:     "w1",
		model.FieldFinishtime: "2016-04-11T10:00:00Z",
		"trial_id":            trialID,
		"key_press":           key,
		"rt":                  -1.0,
		"stimulus":            "<div class='centerbox'></div>",
		"trial_index":         1.0,
	}
	for key, value := range extra {
		row[key] = value
	}
	return row
}

func newStopSignalTrials() *frame.Table {
	return frame.FromRows([]frame.Row{
		stopSignalTrial("welcome", 13, nil),
		stopSignalTrial("stim", -1, frame.Row{"SS_trial_type": " Stop ", "correct_response": 66.0}),
		stopSignalTrial("stim", 66, frame.Row{"SS_trial_type": "go", "correct_response": 66.0, "rt": 415.0}),
		stopSignalTrial("stim", 71, frame.Row{"SS_trial_type": "go", "correct_response": 66.0, "rt": 479.0}),
		stopSignalTrial("reset", 13, nil),
		stopSignalTrial("feedback", 13, nil),
		stopSignalTrial("post task questions", 13, frame.Row{"responses": "{}"}),
	})
}

func TestCleanStopSignal(t *testing.T) {
	input := newStopSignalTrials()
	out, err := Clean(input, "stop_signal", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if out.Len() != 3 {
		t.Fatal("expected three rows, got", out.Len())
	}
	for _, col := range []string{"stimulus", "trial_index"} {
		if out.HasColumn(col) {
			t.Fatal("expected column to be dropped", col)
		}
	}
	if diff := cmp.Diff([]any{1, 0, 0}, out.Column("stopped")); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]any{0.0, 1.0, 0.0}, out.Column("correct")); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]any{"stop", "go", "go"}, out.Column("SS_trial_type")); diff != "" {
		t.Fatal(diff)
	}
	if input.Len() != 7 || !input.HasColumn("stimulus") || input.HasColumn("stopped") {
		t.Fatal("the input table has been modified")
	}
}

func TestCleanOptions(t *testing.T) {
	t.Run("with custom drop columns", func(t *testing.T) {
		opts := DefaultOptions()
		opts.DropColumns = []string{"rt"}
		out, err := Clean(newStopSignalTrials(), "stop_signal", opts)
		if err != nil {
			t.Fatal(err)
		}
		if out.HasColumn("rt") || !out.HasColumn("stimulus") {
			t.Fatal("unexpected columns", out.Columns())
		}
	})

	t.Run("without lookup", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Lookup = false
		out, err := Clean(newStopSignalTrials(), "stop_signal", opts)
		if err != nil {
			t.Fatal(err)
		}
		if out.Value(0, "SS_trial_type") != " Stop " {
			t.Fatal("expected the value not to be normalized")
		}
	})

	t.Run("without replacing correct", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ReplaceCorrect = false
		out, err := Clean(newStopSignalTrials(), "stop_signal", opts)
		if err != nil {
			t.Fatal(err)
		}
		if out.HasColumn("correct") {
			t.Fatal("did not expect a correct column")
		}
	})

	t.Run("with overrides", func(t *testing.T) {
		overrides, err := registry.ParseOverrides([]byte("experiments:\n  stop_signal:\n    drop_rows: [stim]\n"))
		if err != nil {
			t.Fatal(err)
		}
		opts := DefaultOptions()
		opts.Overrides = overrides
		out, err := Clean(newStopSignalTrials(), "stop_signal", opts)
		if err != nil {
			t.Fatal(err)
		}
		if !out.Empty() {
			t.Fatal("expected all rows to be dropped", out.Len())
		}
	})

	t.Run("with nil options", func(t *testing.T) {
		out, err := Clean(newStopSignalTrials(), "stop_signal", nil)
		if err != nil {
			t.Fatal(err)
		}
		if out.Len() != 3 {
			t.Fatal("expected three rows, got", out.Len())
		}
	})
}

func TestCleanWithoutExperiment(t *testing.T) {
	out, err := Clean(newStopSignalTrials(), "", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 7 {
		t.Fatal("expected no rows to be dropped", out.Len())
	}
	if out.HasColumn("stopped") {
		t.Fatal("did not expect post-processing")
	}
}

func TestCleanUnknownExperiment(t *testing.T) {
	rows := []frame.Row{
		{model.FieldExperiment: "bridge_game", model.FieldWorker: "w1", "trial_id": "welcome", "ACC": true},
		{model.FieldExperiment: "bridge_game", model.FieldWorker: "w1", "ACC": nil},
	}
	handler := memory.New()
	opts := DefaultOptions()
	opts.Logger = &log.Logger{Handler: handler, Level: log.DebugLevel}
	out, err := Clean(frame.FromRows(rows), "bridge_game", opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{1}, out.Column("ACC")); diff != "" {
		t.Fatal(diff)
	}
	var warnings int
	for _, entry := range handler.Entries {
		if entry.Level == log.WarnLevel {
			warnings++
		}
	}
	if warnings != 1 {
		t.Fatal("expected one warning, got", warnings)
	}
}

func TestCleanMixedExperiments(t *testing.T) {
	rows := []frame.Row{
		{model.FieldExperiment: "stroop", "trial_id": "stim"},
		{model.FieldExperiment: "simon", "trial_id": "stim"},
	}
	_, err := Clean(frame.FromRows(rows), "stroop", DefaultOptions())
	if !errors.Is(err, ErrMixedExperiments) {
		t.Fatal("unexpected error", err)
	}
}

func TestReplaceCorrectWarning(t *testing.T) {
	rows := []frame.Row{
		{"correct_response": 37.0, "key_press": 37.0, "correct": false},
		{"correct_response": nil, "key_press": 39.0, "correct": true},
	}
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}
	out := replaceCorrect(frame.FromRows(rows), logger)
	if diff := cmp.Diff([]any{1.0, nil}, out.Column("correct")); diff != "" {
		t.Fatal(diff)
	}
	if len(handler.Entries) != 1 || handler.Entries[0].Level != log.WarnLevel {
		t.Fatal("expected a warning")
	}
}

func TestLookupValue(t *testing.T) {
	cases := []struct {
		input  any
		expect any
	}{
		{"  Reaction Time ", "rt"},
		{"TRUE", 1},
		{"False", 0},
		{"Congruent", "congruent"},
		{"Cafe\u0301", "caf\u00e9"},
		{415.0, 415.0},
		{nil, nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.expect, LookupValue(tc.input)); diff != "" {
			t.Fatal(diff)
		}
	}
}
