// Package extract expands the data of experiment runs into trial tables.
//
// A trial table contains one row per trial of a sequential run or per
// question of a survey, and every row carries the battery, experiment,
// worker, and finishtime of the run it belongs to.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/expfactory/expanalysis/internal/cleaning"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/results"
)

// Columns added to the questions of a survey.
const (
	ColumnQuestionID  = "question_id"
	ColumnQuestionNum = "question_num"
)

// ErrDuplicateDataset indicates that there is more than one run for the
// same battery, experiment, and worker.
var ErrDuplicateDataset = errors.New("extract: more than one dataset for the same battery, experiment, and worker")

// DuplicateError is the error returned when there is more than one run
// for the same battery, experiment, and worker.
type DuplicateError struct {
	// Groups contains the duplicated battery/experiment/worker groups.
	Groups []string
}

var _ error = &DuplicateError{}

// Error implements error.
func (err *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateDataset.Error(), strings.Join(err.Groups, ", "))
}

// Unwrap allows using errors.Is with [ErrDuplicateDataset].
func (err *DuplicateError) Unwrap() error {
	return ErrDuplicateDataset
}

// Options contains options for [Experiment].
type Options struct {
	// Clean indicates whether to clean each experiment using [cleaning.Clean].
	Clean bool

	// CleanOptions contains the OPTIONAL cleaning options.
	CleanOptions *cleaning.Options

	// Logger is the OPTIONAL logger.
	Logger model.Logger
}

// Experiment expands the runs of the given experiments of a results
// table into a trial table. When there are several experiments, the
// trial table contains their trials in the order of expIDs. An empty
// expIDs means all the experiments in the table, sorted by name.
func Experiment(tbl *frame.Table, expIDs []string, opts *Options) (*frame.Table, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := model.ValidLoggerOrDefault(opts.Logger)
	if len(expIDs) <= 0 {
		expIDs = tbl.UniqueStrings(model.FieldExperiment)
	}

	// make sure the experiments exist
	selected, err := results.SelectExperiment(tbl, expIDs...)
	if err != nil {
		return nil, err
	}

	// make sure there is a single run per battery, experiment, and worker
	if err := checkDuplicates(selected); err != nil {
		return nil, err
	}

	out := frame.New(results.IdentifierColumns, nil)
	for _, expID := range expIDs {
		expID := expID // per-iteration copy (pre-Go 1.22 loop semantics)
		runs := selected.Filter(func(_ int, row frame.Row) bool {
			return frame.ToString(row[model.FieldExperiment]) == expID
		}).SortBy(model.FieldWorker, model.FieldBattery)

		// expand each run
		var rows []frame.Row
		for _, run := range runs.Rows() {
			rows = append(rows, expandRun(run, expID, logger)...)
		}
		trials := frame.New(results.IdentifierColumns, rows)
		logger.Debugf("extract: %s: %d runs, %d rows", expID, runs.Len(), trials.Len())

		// optionally clean the trials
		if opts.Clean {
			trials, err = cleaning.Clean(trials, expID, cleanOptions(opts, logger))
			if err != nil {
				return nil, err
			}
		}
		out = out.Concat(trials)
	}
	return out, nil
}

func cleanOptions(opts *Options, logger model.Logger) *cleaning.Options {
	if opts.CleanOptions != nil {
		co := *opts.CleanOptions
		if co.Logger == nil {
			co.Logger = logger
		}
		return &co
	}
	co := cleaning.DefaultOptions()
	co.Logger = logger
	return co
}

func checkDuplicates(tbl *frame.Table) error {
	var groups []string
	for _, group := range tbl.GroupBy(model.FieldBattery, model.FieldExperiment, model.FieldWorker) {
		if group.Table.Len() > 1 {
			groups = append(groups, strings.ReplaceAll(group.KeyString(), ",", "/"))
		}
	}
	if len(groups) > 0 {
		return &DuplicateError{Groups: groups}
	}
	return nil
}

// expandRun returns the rows of a run stamped with the run identifiers.
func expandRun(run frame.Row, expID string, logger model.Logger) []frame.Row {
	data := model.NewRunData(run[model.FieldData])
	var rows []frame.Row
	switch data.Template {
	case model.TemplateSequential:
		rows = SequentialTrials(data.Trials)
	case model.TemplateSurvey:
		rows = SurveyQuestions(data.Questions, expID)
	default:
		logger.Warnf("extract: %s: worker %s: unknown data template, skipping run",
			expID, frame.ToString(run[model.FieldWorker]))
		return nil
	}
	for _, row := range rows {
		for _, col := range results.IdentifierColumns {
			row[col] = run[col]
		}
	}
	return rows
}

// SequentialTrials flattens the entries of a sequential run. When an entry
// contains a trialdata object, its fields are flattened onto the entry. A
// trialdata list produces a trial per element. A trialdata string is
// decoded as JSON first. An entry without trialdata is a trial.
func SequentialTrials(entries []any) []frame.Row {
	var rows []frame.Row
	for _, entry := range entries {
		object, ok := entry.(map[string]any)
		if !ok {
			rows = append(rows, frame.Row{"response": entry})
			continue
		}
		trialdata, found := object["trialdata"]
		if !found {
			rows = append(rows, frame.Row(object).Clone())
			continue
		}
		if s, ok := trialdata.(string); ok {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				trialdata = decoded
			}
		}
		switch v := trialdata.(type) {
		case map[string]any:
			rows = append(rows, flatten(object, v))
		case []any:
			for _, element := range v {
				if m, ok := element.(map[string]any); ok {
					rows = append(rows, flatten(object, m))
				}
			}
		default:
			rows = append(rows, frame.Row(object).Clone())
		}
	}
	return rows
}

func flatten(entry, trialdata map[string]any) frame.Row {
	row := make(frame.Row, len(entry)+len(trialdata))
	for key, value := range entry {
		if key != "trialdata" {
			row[key] = value
		}
	}
	for key, value := range trialdata {
		row[key] = value
	}
	return row
}

// SurveyQuestions returns a row per question sorted by the ordinal parsed
// from the question ID, which looks like "<expID>_<ordinal>". Questions
// without an ordinal come last sorted by ID. A response that is not an
// object is wrapped as {"response": value}.
func SurveyQuestions(questions map[string]any, expID string) []frame.Row {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(expID) + `_(\d+)`)
	type question struct {
		id      string
		ordinal int
		good    bool
		row     frame.Row
	}
	var list []question
	for id, answer := range questions {
		q := question{id: id}
		if m := pattern.FindStringSubmatch(id); m != nil {
			if num, err := strconv.Atoi(m[1]); err == nil {
				q.ordinal, q.good = num, true
			}
		}
		if object, ok := answer.(map[string]any); ok {
			q.row = frame.Row(object).Clone()
		} else {
			q.row = frame.Row{"response": answer}
		}
		q.row[ColumnQuestionID] = id
		if q.good {
			q.row[ColumnQuestionNum] = q.ordinal
		} else {
			q.row[ColumnQuestionNum] = nil
		}
		list = append(list, q)
	}
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch {
		case a.good && b.good && a.ordinal != b.ordinal:
			return a.ordinal < b.ordinal
		case a.good != b.good:
			return a.good
		default:
			return a.id < b.id
		}
	})
	rows := make([]frame.Row, 0, len(list))
	for _, q := range list {
		rows = append(rows, q.row)
	}
	return rows
}
