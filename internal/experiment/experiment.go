// Package experiment contains common code for implementing experiments.
//
// Each subpackage implements the post-processing and the DVs of a
// behavioral experiment (or of a family of experiments).
package experiment

import (
	"slices"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// ColumnTrialID is the column identifying the kind of a jsPsych trial.
const ColumnTrialID = "trial_id"

// GenericDropRows contains the trial_id values that are not
// substantive for any jsPsych experiment.
var GenericDropRows = []string{
	"welcome",
	"text",
	"instruction",
	"attention_check",
	"end",
	"post task questions",
	"fixation",
	"practice_intro",
	"test_intro",
}

// DropRows returns the [GenericDropRows] followed by the given extra values.
func DropRows(extra ...string) []string {
	out := slices.Clone(GenericDropRows)
	for _, value := range extra {
		if !slices.Contains(out, value) {
			out = append(out, value)
		}
	}
	return out
}

// PostFunc post-processes the trials of an experiment.
type PostFunc func(tbl *frame.Table, logger model.Logger) (*frame.Table, error)

// Identity is the [PostFunc] returning the trials unchanged.
func Identity(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	return tbl, nil
}
