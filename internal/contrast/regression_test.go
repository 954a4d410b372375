package contrast

import (
	"errors"
	"strings"
	"testing"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/google/go-cmp/cmp"
)

func TestRegression(t *testing.T) {
	t.Run("with a numeric independent variable", func(t *testing.T) {
		result, err := Regression(newNumericTable(), "y ~ x", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.Fit.Method != "OLS" || result.Fit.N != 5 {
			t.Fatal("unexpected fit", result.Fit.Method, result.Fit.N)
		}
		if diff := cmp.Diff([]string{InterceptName, "x"}, result.Fit.Names); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]float64{2.2, 0.6}, result.Fit.Coefficients, approx); diff != "" {
			t.Fatal(diff)
		}
		summary := result.Summary()
		for _, expect := range []string{"Formula: y ~ x", "R-squared: 0.6000", "P>|t|"} {
			if !strings.Contains(summary, expect) {
				t.Fatal("missing", expect, "in", summary)
			}
		}
	})

	t.Run("with treatment coding", func(t *testing.T) {
		exclude := Exclude{"condition": {"neutral"}}
		result, err := Regression(newConditionTable(), "rt ~ C(condition)", exclude, nil)
		if err != nil {
			t.Fatal(err)
		}
		expectNames := []string{InterceptName, "C(condition)[T.incongruent]"}
		if diff := cmp.Diff(expectNames, result.Fit.Names); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]float64{2.5, 2.5}, result.Fit.Coefficients, approx); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff(2.545875386086578, result.Fit.Statistics[1], approx); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff(0.03833372531306378, result.Fit.PValues[1], approx); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]string{"C(condition)"}, result.Independent); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("without intercept", func(t *testing.T) {
		exclude := Exclude{"condition": {"neutral"}}
		result, err := Regression(newConditionTable(), "rt ~ condition - 1", exclude, nil)
		if err != nil {
			t.Fatal(err)
		}
		expectNames := []string{"condition[T.congruent]", "condition[T.incongruent]"}
		if diff := cmp.Diff(expectNames, result.Fit.Names); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]float64{2.5, 5}, result.Fit.Coefficients, approx); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a categorical dependent variable", func(t *testing.T) {
		var rows []frame.Row
		for idx, outcome := range []string{"no", "no", "yes", "no", "yes", "no", "yes", "yes"} {
			rows = append(rows, frame.Row{"x": idx + 1, "outcome": outcome})
		}
		result, err := Regression(frame.New([]string{"x", "outcome"}, rows), "outcome ~ x", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.Fit.Method != "Logit" || !result.Fit.Converged {
			t.Fatal("unexpected fit", result.Fit.Method, result.Fit.Converged)
		}
		if diff := cmp.Diff([]string{"no", "yes"}, result.Levels); diff != "" {
			t.Fatal(diff)
		}
		expect := []float64{-2.673379620893601, 0.594084360198578}
		if diff := cmp.Diff(expect, result.Fit.Coefficients, approx); diff != "" {
			t.Fatal(diff)
		}
		if !strings.Contains(result.Summary(), "Modeling: outcome=yes (reference no)") {
			t.Fatal("unexpected summary", result.Summary())
		}
	})

	t.Run("with numeric and categorical interaction", func(t *testing.T) {
		var rows []frame.Row
		for idx := 0; idx < 12; idx++ {
			condition := []string{"a", "b", "c"}[idx%3]
			rows = append(rows, frame.Row{"x": float64(idx), "condition": condition, "y": float64(idx*idx%7) + 1})
		}
		tbl := frame.New([]string{"x", "condition", "y"}, rows)
		result, err := Regression(tbl, "y ~ x*condition", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		expect := []string{
			InterceptName, "x", "condition[T.b]", "condition[T.c]",
			"x:condition[T.b]", "x:condition[T.c]",
		}
		if diff := cmp.Diff(expect, result.Fit.Names); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]string{"x", "condition"}, result.Independent); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a missing column", func(t *testing.T) {
		_, err := Regression(newNumericTable(), "y ~ antani", nil, nil)
		if !errors.Is(err, ErrMissingColumn) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with an invalid formula", func(t *testing.T) {
		_, err := Regression(newNumericTable(), "y", nil, nil)
		if !errors.Is(err, ErrFormula) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with log of non positive values", func(t *testing.T) {
		tbl := newNumericTable().Map(func(idx int, row frame.Row) frame.Row {
			row["x"] = 0
			return row
		})
		_, err := Regression(tbl, "y ~ log(x)", nil, nil)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("with a dependent variable with three levels", func(t *testing.T) {
		_, err := Regression(newConditionTable(), "condition ~ rt", nil, nil)
		if !errors.Is(err, ErrNotBinary) {
			t.Fatal("unexpected error", err)
		}
	})
}
