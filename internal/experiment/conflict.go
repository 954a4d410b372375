package experiment

import (
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
)

// ColumnCondition is the column containing the trial condition.
const ColumnCondition = "condition"

// Condition labels used by conflict tasks.
const (
	Congruent   = "congruent"
	Incongruent = "incongruent"
)

// ConflictDV computes the interference effects of a conflict task such as
// stroop or simon. The result contains:
//
// - <prefix>_rt: the median reaction time of the correct incongruent test
// trials minus the one of the correct congruent test trials;
//
// - <prefix>_correct: the accuracy of the incongruent test trials minus the
// accuracy of the congruent test trials.
func ConflictDV(tbl *frame.Table, prefix, description string) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if err := dv.RequireColumns(tbl, ColumnCondition, "rt", "correct"); err != nil {
		return nil, err
	}
	responded := dv.ResponseTrials(dv.TestTrials(tbl))
	congruent := dv.Where(responded, ColumnCondition, Congruent)
	incongruent := dv.Where(responded, ColumnCondition, Incongruent)

	congruentRT, err := dv.Median(dv.CorrectTrials(congruent), "rt")
	if err != nil {
		return nil, err
	}
	incongruentRT, err := dv.Median(dv.CorrectTrials(incongruent), "rt")
	if err != nil {
		return nil, err
	}
	congruentAcc, err := dv.Accuracy(congruent, "correct")
	if err != nil {
		return nil, err
	}
	incongruentAcc, err := dv.Accuracy(incongruent, "correct")
	if err != nil {
		return nil, err
	}

	result := dv.NewResult(description)
	result.Set(prefix+"_rt", incongruentRT-congruentRT)
	result.Set(prefix+"_correct", incongruentAcc-congruentAcc)
	return result, nil
}
