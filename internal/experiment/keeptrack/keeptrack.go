// Package keeptrack contains the keep_track experiment.
//
// In each block the worker sees a sequence of words and must then type
// the last word of each target category. We score the free text answer
// against the targets.
package keeptrack

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

// Name is the experiment name.
const Name = "keep_track"

// Columns read and written by [Post].
const (
	ColumnCorrectCount   = "correct_count"
	ColumnResponseTokens = "response_tokens"
	ColumnResponses      = "responses"
	ColumnScore          = "score"
	ColumnTargets        = "targets"
)

// Post scores each response trial, that is, each trial having both the
// responses and the targets columns. Other trials are unchanged.
func Post(tbl *frame.Table, logger model.Logger) (*frame.Table, error) {
	if missing := tbl.MissingColumns(ColumnResponses, ColumnTargets); len(missing) > 0 {
		logger.Warnf("keeptrack: missing columns: %s", strings.Join(missing, ", "))
		return tbl, nil
	}
	return tbl.Map(func(_ int, row frame.Row) frame.Row {
		targets, good := targetWords(row[ColumnTargets])
		if !good || frame.IsNull(row[ColumnResponses]) {
			return row
		}
		tokens := Tokenize(responseText(row[ColumnResponses]))
		count := CorrectCount(tokens, targets)
		var list []any
		for _, token := range tokens {
			list = append(list, token)
		}
		row[ColumnResponseTokens] = list
		row[ColumnCorrectCount] = count
		row[ColumnScore] = float64(count) / float64(len(targets))
		return row
	}), nil
}

// targetWords returns the lower case target words.
func targetWords(value any) ([]string, bool) {
	var values []any
	switch v := value.(type) {
	case []any:
		values = v
	case []string:
		for _, entry := range v {
			values = append(values, entry)
		}
	case string:
		if err := json.Unmarshal([]byte(v), &values); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}
	var out []string
	for _, entry := range values {
		if word := strings.ToLower(strings.TrimSpace(frame.ToString(entry))); word != "" {
			out = append(out, word)
		}
	}
	return out, len(out) > 0
}

// responseText returns the text typed by the worker. The responses are
// usually a JSON object mapping question ids to answers, in which case
// we join the answers ordered by question id.
func responseText(value any) string {
	var answers map[string]any
	switch v := value.(type) {
	case map[string]any:
		answers = v
	case string:
		if err := json.Unmarshal([]byte(v), &answers); err != nil {
			return v
		}
	default:
		return frame.ToString(v)
	}
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var parts []string
	for _, key := range keys {
		parts = append(parts, frame.ToString(answers[key]))
	}
	return strings.Join(parts, " ")
}

// Tokenize splits text into lower case words.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CorrectCount returns how many targets appear among the tokens.
func CorrectCount(tokens, targets []string) int {
	seen := make(map[string]bool)
	for _, token := range tokens {
		seen[token] = true
	}
	var count int
	for _, target := range targets {
		if seen[target] {
			count++
		}
	}
	return count
}

// DV computes score, the mean score of the response trials.
func DV(tbl *frame.Table) (*dv.Result, error) {
	if _, err := dv.SingleWorker(tbl); err != nil {
		return nil, err
	}
	if !tbl.HasColumn(ColumnScore) {
		out, err := Post(tbl, model.DiscardLogger)
		if err != nil {
			return nil, err
		}
		tbl = out
	}
	if err := dv.RequireColumns(tbl, ColumnScore); err != nil {
		return nil, err
	}
	score, err := dv.Mean(tbl, ColumnScore)
	if err != nil {
		return nil, err
	}
	return dv.NewResult("keep track: mean fraction of targets recalled").Set("score", score), nil
}
