package contrast

//
// Formula based regressions.
//

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/statsx"
)

var (
	// ErrNotBinary indicates that a categorical dependent variable
	// does not have exactly two levels.
	ErrNotBinary = errors.New("contrast: dependent variable is not binary")

	// ErrInvalidValue indicates that a function is undefined for a value.
	ErrInvalidValue = errors.New("contrast: invalid value")
)

// InterceptName is the name of the intercept regressor.
const InterceptName = "Intercept"

// RegressionResult is the result of [Regression].
type RegressionResult struct {
	// Formula is the parsed formula.
	Formula *Formula

	// Independent contains the reported independent variables,
	// which exclude the interaction terms.
	Independent []string

	// Levels contains the reference and the modeled level of a
	// categorical dependent variable.
	Levels []string

	// Fit is the fitted model.
	Fit *statsx.Fit
}

// Summary renders the fitted model as a text table.
func (r *RegressionResult) Summary() string {
	var b strings.Builder
	fit := r.Fit
	fmt.Fprintf(&b, "Formula: %s\n", r.Formula.String())
	fmt.Fprintf(&b, "Method: %s  Observations: %d  Residual DF: %d\n", fit.Method, fit.N, fit.DFResidual)
	statName := "z"
	switch fit.Method {
	case "OLS":
		statName = "t"
		fmt.Fprintf(&b, "R-squared: %.4f  Adj. R-squared: %.4f\n", fit.RSquared, fit.AdjRSquared)
	default:
		fmt.Fprintf(&b, "Log-Likelihood: %.4f  Iterations: %d  Converged: %v\n",
			fit.LogLikelihood, fit.Iterations, fit.Converged)
		if len(r.Levels) == 2 {
			fmt.Fprintf(&b, "Modeling: %s=%s (reference %s)\n", r.Formula.Dependent.Name(), r.Levels[1], r.Levels[0])
		}
	}
	width := len(InterceptName)
	for _, name := range fit.Names {
		width = max(width, len(name))
	}
	line := strings.Repeat("-", width+48)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "%-*s %11s %11s %11s %11s\n", width, "", "coef", "std err", statName, "P>|"+statName+"|")
	fmt.Fprintln(&b, line)
	for idx, name := range fit.Names {
		fmt.Fprintf(&b, "%-*s %11.4f %11.4f %11.3f %11.3f\n", width, name,
			fit.Coefficients[idx], fit.StdErrors[idx], fit.Statistics[idx], fit.PValues[idx])
	}
	fmt.Fprintln(&b, line)
	return b.String()
}

// regressor is a column of the design matrix.
type regressor struct {
	name  string
	value func(row frame.Row) float64
}

// Regression fits the given formula over tbl. We drop the rows missing
// any referenced column or matching exclude. Categorical factors use the
// treatment coding with the smallest level as the reference. When the
// dependent variable is numeric we fit OLS, otherwise a binomial model
// with logit link where the largest of two levels is the success.
// A nil backend means [statsx.Gonum].
func Regression(tbl *frame.Table, formula string, exclude Exclude, backend statsx.Backend) (*RegressionResult, error) {
	if backend == nil {
		backend = statsx.Gonum{}
	}
	parsed, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	columns := parsed.Columns()
	if missing := tbl.MissingColumns(columns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	tbl = exclude.Apply(tbl).DropNA(nil, columns...)

	// 1. design matrix
	var regressors []regressor
	if parsed.Intercept {
		regressors = append(regressors, regressor{
			name:  InterceptName,
			value: func(frame.Row) float64 { return 1 },
		})
	}
	fullRank := !parsed.Intercept
	for _, term := range parsed.Terms {
		full := false
		if fullRank && !term.Interaction() && isCategorical(tbl, term.Factors[0]) {
			full, fullRank = true, false
		}
		more, err := encodeTerm(tbl, term, full)
		if err != nil {
			return nil, err
		}
		regressors = append(regressors, more...)
	}
	var names []string
	for _, r := range regressors {
		names = append(names, r.name)
	}
	var x [][]float64
	for _, row := range tbl.Rows() {
		values := make([]float64, 0, len(regressors))
		for _, r := range regressors {
			values = append(values, r.value(row))
		}
		x = append(x, values)
	}

	// 2. dependent variable and fit
	result := &RegressionResult{Formula: parsed, Independent: parsed.Independent()}
	dep := parsed.Dependent
	var y []float64
	if !isCategorical(tbl, dep) {
		if y, err = numericValues(tbl, dep); err != nil {
			return nil, err
		}
		if result.Fit, err = backend.OLS(names, x, y); err != nil {
			return nil, fmt.Errorf("contrast: OLS of %s: %w", formula, err)
		}
		return result, nil
	}
	levels := tbl.Unique(dep.Column)
	if len(levels) != 2 {
		return nil, fmt.Errorf("%w: %s has %d levels", ErrNotBinary, dep.Column, len(levels))
	}
	for _, level := range levels {
		result.Levels = append(result.Levels, frame.ToString(level))
	}
	for _, value := range tbl.Column(dep.Column) {
		y = append(y, indicator(frame.Equal(value, levels[1])))
	}
	if result.Fit, err = backend.Logit(names, x, y); err != nil {
		return nil, fmt.Errorf("contrast: logit of %s: %w", formula, err)
	}
	return result, nil
}

func isCategorical(tbl *frame.Table, factor Factor) bool {
	return factor.Categorical() || !frame.CheckNumeric(tbl.Column(factor.Column))
}

func indicator(value bool) float64 {
	if value {
		return 1
	}
	return 0
}

// encodeTerm returns the regressors of a term. Interactions are the
// products of the regressors of their factors.
func encodeTerm(tbl *frame.Table, term Term, full bool) ([]regressor, error) {
	out := []regressor{{value: func(frame.Row) float64 { return 1 }}}
	for _, factor := range term.Factors {
		encoded, err := encodeFactor(tbl, factor, full)
		if err != nil {
			return nil, err
		}
		var next []regressor
		for _, left := range out {
			left := left // per-iteration copy (pre-Go 1.22 loop semantics)
			for _, right := range encoded {
				right := right // per-iteration copy (pre-Go 1.22 loop semantics)
				name := right.name
				if left.name != "" {
					name = left.name + ":" + right.name
				}
				next = append(next, regressor{
					name: name,
					value: func(row frame.Row) float64 {
						return left.value(row) * right.value(row)
					},
				})
			}
		}
		out = next
	}
	return out, nil
}

// encodeFactor returns a single regressor for a numeric factor and
// one indicator per non-reference level for a categorical one.
func encodeFactor(tbl *frame.Table, factor Factor, full bool) ([]regressor, error) {
	if !isCategorical(tbl, factor) {
		if _, err := numericValues(tbl, factor); err != nil {
			return nil, err
		}
		return []regressor{{
			name: factor.Name(),
			value: func(row frame.Row) float64 {
				value, _ := ToFloatWith(factor.Func, row[factor.Column])
				return value
			},
		}}, nil
	}
	levels := tbl.Unique(factor.Column)
	if !full && len(levels) > 0 {
		levels = levels[1:]
	}
	var out []regressor
	for _, level := range levels {
		level := level // per-iteration copy (pre-Go 1.22 loop semantics)
		out = append(out, regressor{
			name: fmt.Sprintf("%s[T.%s]", factor.Name(), frame.ToString(level)),
			value: func(row frame.Row) float64 {
				return indicator(frame.Equal(row[factor.Column], level))
			},
		})
	}
	return out, nil
}

// numericValues returns the values of a numeric factor after applying
// its function and fails when the function is undefined for a value.
func numericValues(tbl *frame.Table, factor Factor) ([]float64, error) {
	var out []float64
	for idx, value := range tbl.Column(factor.Column) {
		converted, err := ToFloatWith(factor.Func, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s at row %d", err, factor.Name(), idx)
		}
		out = append(out, converted)
	}
	return out, nil
}

// ToFloatWith converts value to float64 and applies the given function.
func ToFloatWith(fx string, value any) (float64, error) {
	v, good := frame.ToFloat(value)
	if !good {
		return 0, fmt.Errorf("%w: %v is not a number", ErrNotNumeric, value)
	}
	switch fx {
	case FuncLog:
		v = math.Log(v)
	case FuncExp:
		v = math.Exp(v)
	case FuncSqrt:
		v = math.Sqrt(v)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s(%v)", ErrInvalidValue, fx, value)
	}
	return v, nil
}
