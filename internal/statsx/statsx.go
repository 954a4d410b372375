// Package statsx contains the statistics backend used by contrasts
// and regressions.
package statsx

import (
	"errors"
)

var (
	// ErrNotEnoughData indicates there are too few observations.
	ErrNotEnoughData = errors.New("statsx: not enough data")

	// ErrLengthMismatch indicates that the inputs have different lengths.
	ErrLengthMismatch = errors.New("statsx: length mismatch")

	// ErrSingular indicates that the design matrix is singular.
	ErrSingular = errors.New("statsx: singular design matrix")

	// ErrNoVariance indicates that the data has zero variance.
	ErrNoVariance = errors.New("statsx: zero variance")
)

// Fit is the result of fitting a regression model.
type Fit struct {
	// Method is either "OLS" or "Logit".
	Method string

	// Names contains the names of the regressors.
	Names []string

	// Coefficients contains the estimated coefficients.
	Coefficients []float64

	// StdErrors contains the standard errors of the coefficients.
	StdErrors []float64

	// Statistics contains the t (OLS) or z (Logit) statistics.
	Statistics []float64

	// PValues contains the two-tailed p-values.
	PValues []float64

	// N is the number of observations.
	N int

	// DFResidual is the number of residual degrees of freedom.
	DFResidual int

	// RSquared is the coefficient of determination (OLS only).
	RSquared float64

	// AdjRSquared is the adjusted coefficient of determination (OLS only).
	AdjRSquared float64

	// LogLikelihood is the log-likelihood (Logit only).
	LogLikelihood float64

	// Iterations is the number of IRLS iterations (Logit only).
	Iterations int

	// Converged indicates whether IRLS converged (Logit only).
	Converged bool
}

// Backend computes statistical tests and fits regression models.
type Backend interface {
	// Pearson returns the Pearson correlation between x and y
	// and its two-tailed p-value.
	Pearson(x, y []float64) (r, p float64, err error)

	// TTestInd returns the Student t statistic for two independent
	// samples with equal variances and its two-tailed p-value.
	TTestInd(a, b []float64) (t, p float64, err error)

	// OLS fits y on the rows of x with ordinary least squares.
	OLS(names []string, x [][]float64, y []float64) (*Fit, error)

	// Logit fits a binomial model with logit link of y, whose values
	// must be 0 or 1, on the rows of x.
	Logit(names []string, x [][]float64, y []float64) (*Fit, error)
}
