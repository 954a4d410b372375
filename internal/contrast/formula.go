package contrast

//
// Formula parsing.
//

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrFormula indicates that we cannot parse a formula.
var ErrFormula = errors.New("contrast: invalid formula")

// ErrMultipleDependents indicates that a formula has more than one dependent term.
var ErrMultipleDependents = errors.New("contrast: multiple dependent variables")

// Functions that a [Factor] may apply to its column.
const (
	FuncNone        = ""
	FuncLog         = "log"
	FuncExp         = "exp"
	FuncSqrt        = "sqrt"
	FuncCategorical = "C"
)

// Factor is a column optionally wrapped by a function.
type Factor struct {
	// Func is one of the Func constants.
	Func string

	// Column is the column name.
	Column string
}

// Name returns the factor name as used in the design matrix.
func (f Factor) Name() string {
	if f.Func == FuncNone {
		return f.Column
	}
	return f.Func + "(" + f.Column + ")"
}

// Categorical returns whether the factor is explicitly categorical.
func (f Factor) Categorical() bool {
	return f.Func == FuncCategorical
}

// Term is a product of one or more factors.
type Term struct {
	Factors []Factor
}

// Name returns the term name, joining factors with ":".
func (t Term) Name() string {
	var names []string
	for _, factor := range t.Factors {
		names = append(names, factor.Name())
	}
	return strings.Join(names, ":")
}

// Interaction returns whether the term is an interaction.
func (t Term) Interaction() bool {
	return len(t.Factors) > 1
}

// Formula is a parsed "dependent ~ terms" formula.
type Formula struct {
	// Dependent is the dependent variable.
	Dependent Factor

	// Terms contains the independent terms including interactions.
	Terms []Term

	// Intercept indicates whether the model has an intercept.
	Intercept bool
}

// Independent returns the names of the non-interaction terms.
func (f *Formula) Independent() (out []string) {
	for _, term := range f.Terms {
		if !term.Interaction() {
			out = append(out, term.Name())
		}
	}
	return
}

// Columns returns the distinct columns referenced by the formula.
func (f *Formula) Columns() []string {
	out := []string{f.Dependent.Column}
	for _, term := range f.Terms {
		for _, factor := range term.Factors {
			if !slices.Contains(out, factor.Column) {
				out = append(out, factor.Column)
			}
		}
	}
	return out
}

// String returns the canonical representation of the formula.
func (f *Formula) String() string {
	var terms []string
	if !f.Intercept {
		terms = append(terms, "0")
	}
	for _, term := range f.Terms {
		terms = append(terms, term.Name())
	}
	if len(terms) <= 0 {
		terms = append(terms, "1")
	}
	return f.Dependent.Name() + " ~ " + strings.Join(terms, " + ")
}

// ParseFormula parses a formula such as "rt ~ C(condition) * load + log(age) - 1".
//
// The left hand side must contain exactly one term. On the right hand side,
// terms are separated by "+", a "*" b expands to a + b + a:b, and "1", "0",
// and "-1" control the intercept. Factors are column names optionally wrapped
// by log, exp, sqrt, or C, possibly with a "np." or "numpy." prefix.
func ParseFormula(s string) (*Formula, error) {
	lhs, rhs, found := strings.Cut(s, "~")
	if !found || strings.Contains(rhs, "~") {
		return nil, fmt.Errorf("%w: %q: expected exactly one '~'", ErrFormula, s)
	}

	// 1. dependent variable
	deps, err := splitTop(lhs)
	if err != nil {
		return nil, err
	}
	switch {
	case len(deps) <= 0:
		return nil, fmt.Errorf("%w: %q: missing dependent variable", ErrFormula, s)
	case len(deps) > 1:
		return nil, fmt.Errorf("%w: %q", ErrMultipleDependents, s)
	case deps[0].negative:
		return nil, fmt.Errorf("%w: %q: negated dependent variable", ErrFormula, s)
	}
	dependent, err := parseFactor(deps[0].text)
	if err != nil {
		return nil, err
	}
	formula := &Formula{Dependent: dependent, Intercept: true}

	// 2. independent terms
	pieces, err := splitTop(rhs)
	if err != nil {
		return nil, err
	}
	if len(pieces) <= 0 {
		return nil, fmt.Errorf("%w: %q: missing independent variables", ErrFormula, s)
	}
	for _, piece := range pieces {
		switch piece.text {
		case "1":
			formula.Intercept = !piece.negative
			continue
		case "0":
			formula.Intercept = piece.negative
			continue
		}
		if piece.negative {
			return nil, fmt.Errorf("%w: %q: cannot remove %q", ErrFormula, s, piece.text)
		}
		terms, err := expandTerm(piece.text)
		if err != nil {
			return nil, err
		}
		for _, term := range terms {
			term := term // per-iteration copy (pre-Go 1.22 loop semantics)
			if !slices.ContainsFunc(formula.Terms, func(t Term) bool { return t.Name() == term.Name() }) {
				formula.Terms = append(formula.Terms, term)
			}
		}
	}
	return formula, nil
}

type signedText struct {
	negative bool
	text     string
}

// splitTop splits expr at the "+" and "-" operators outside parentheses.
func splitTop(expr string) ([]signedText, error) {
	var (
		out      []signedText
		depth    int
		negative bool
		current  strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			out = append(out, signedText{negative: negative, text: text})
		}
		current.Reset()
	}
	for _, r := range expr {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: %q: unbalanced parentheses", ErrFormula, expr)
			}
		case depth == 0 && (r == '+' || r == '-'):
			flush()
			negative = r == '-'
			continue
		}
		current.WriteRune(r)
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: %q: unbalanced parentheses", ErrFormula, expr)
	}
	flush()
	return out, nil
}

// expandTerm expands "a*b" into a, b, a:b and parses "a:b" interactions.
func expandTerm(text string) ([]Term, error) {
	var products []Term
	for _, piece := range strings.Split(text, "*") {
		var term Term
		for _, name := range strings.Split(piece, ":") {
			factor, err := parseFactor(name)
			if err != nil {
				return nil, err
			}
			term.Factors = append(term.Factors, factor)
		}
		products = append(products, term)
	}
	if len(products) == 1 {
		return products, nil
	}
	var out []Term
	for size := 1; size <= len(products); size++ {
		for _, combination := range combinations(len(products), size) {
			var term Term
			for _, idx := range combination {
				term.Factors = append(term.Factors, products[idx].Factors...)
			}
			out = append(out, term)
		}
	}
	return out, nil
}

// combinations returns the k-sized combinations of 0..n-1 in lexicographic order.
func combinations(n, k int) (out [][]int) {
	var recurse func(start int, current []int)
	recurse = func(start int, current []int) {
		if len(current) == k {
			out = append(out, slices.Clone(current))
			return
		}
		for idx := start; idx < n; idx++ {
			recurse(idx+1, append(current, idx))
		}
	}
	recurse(0, nil)
	return
}

var knownFuncs = []string{FuncLog, FuncExp, FuncSqrt, FuncCategorical}

func parseFactor(text string) (Factor, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Factor{}, fmt.Errorf("%w: empty factor", ErrFormula)
	}
	open := strings.IndexByte(text, '(')
	if open < 0 {
		if strings.ContainsAny(text, ")*:~ ") {
			return Factor{}, fmt.Errorf("%w: invalid column name %q", ErrFormula, text)
		}
		return Factor{Column: text}, nil
	}
	if !strings.HasSuffix(text, ")") {
		return Factor{}, fmt.Errorf("%w: invalid factor %q", ErrFormula, text)
	}
	name := strings.TrimSpace(text[:open])
	if name == "" {
		return Factor{}, fmt.Errorf("%w: parenthesised groups are not supported: %q", ErrFormula, text)
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, "numpy."), "np.")
	if !slices.Contains(knownFuncs, name) {
		return Factor{}, fmt.Errorf("%w: unsupported function %q", ErrFormula, name)
	}
	// C() may carry coding options after the column name
	inner, _, _ := strings.Cut(text[open+1:len(text)-1], ",")
	inner = strings.TrimSpace(inner)
	if inner == "" || strings.ContainsAny(inner, "()*:~ ") {
		return Factor{}, fmt.Errorf("%w: invalid factor %q", ErrFormula, text)
	}
	return Factor{Func: name, Column: inner}, nil
}
