package keeptrack

import (
	"errors"
	"testing"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTrials() *frame.Table {
	return frame.FromRows([]frame.Row{{
		model.FieldWorker: "w1",
		"trial_id":        "stim",
		"stim_word":       "green",
	}, {
		model.FieldWorker: "w1",
		"trial_id":        "response",
		ColumnResponses:   `{"Q0": "Cat green gold ,"}`,
		ColumnTargets:     []any{"cat", "green", "lion"},
	}, {
		model.FieldWorker: "w1",
		"trial_id":        "response",
		ColumnResponses:   `{"Q0": "Red lion Blue ,"}`,
		ColumnTargets:     []any{"red", "lion", "blue"},
	}, {
		model.FieldWorker: "w1",
		"trial_id":        "post task questions",
		ColumnResponses:   `{"Q0": "no problems", "Q1": "none"}`,
	}})
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Cat green-gold ,  Lion2")
	if diff := cmp.Diff([]string{"cat", "green", "gold", "lion2"}, got); diff != "" {
		t.Fatal(diff)
	}
	if got := Tokenize(" , "); len(got) != 0 {
		t.Fatal("expected no tokens", got)
	}
}

func TestPost(t *testing.T) {
	input := newTrials()
	out, err := Post(input, model.DiscardLogger)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{nil, 2, 3, nil}, out.Column(ColumnCorrectCount)); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]any{nil, 2.0 / 3, 1.0, nil}, out.Column(ColumnScore)); diff != "" {
		t.Fatal(diff)
	}
	expectTokens := []any{"cat", "green", "gold"}
	if diff := cmp.Diff(expectTokens, out.Value(1, ColumnResponseTokens)); diff != "" {
		t.Fatal(diff)
	}
	if input.HasColumn(ColumnScore) {
		t.Fatal("the input table has been modified")
	}

	t.Run("without targets", func(t *testing.T) {
		out, err := Post(newTrials().DropColumns(ColumnTargets), model.DiscardLogger)
		if err != nil {
			t.Fatal(err)
		}
		if out.HasColumn(ColumnScore) {
			t.Fatal("did not expect a score column")
		}
	})
}

func TestDV(t *testing.T) {
	t.Run("with response trials", func(t *testing.T) {
		result, err := DV(newTrials())
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(map[string]float64{"score": (2.0/3 + 1) / 2}, result.Values, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("without response trials", func(t *testing.T) {
		tbl := newTrials().Filter(func(idx int, row frame.Row) bool {
			return row["trial_id"] == "stim"
		})
		if _, err := DV(tbl); !errors.Is(err, dv.ErrMissingColumn) {
			t.Fatal("unexpected error", err)
		}
	})
}
