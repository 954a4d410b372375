package statsx

//
// Backend implementation using gonum.
//

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gonum implements [Backend] using gonum.
type Gonum struct {
	// MaxIterations is the OPTIONAL maximum number of IRLS iterations.
	MaxIterations int

	// Tolerance is the OPTIONAL IRLS convergence tolerance.
	Tolerance float64
}

var _ Backend = Gonum{}

// Default values for [Gonum].
const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1e-8
)

// Pearson implements Backend.
func (g Gonum) Pearson(x, y []float64) (float64, float64, error) {
	if len(x) != len(y) {
		return 0, 0, ErrLengthMismatch
	}
	n := len(x)
	if n < 3 {
		return 0, 0, fmt.Errorf("%w: %d observations", ErrNotEnoughData, n)
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, 0, ErrNoVariance
	}
	r := stat.Correlation(x, y, nil)
	r = math.Max(-1, math.Min(1, r))
	if math.Abs(r) == 1 {
		return r, 0, nil
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	return r, twoTailedT(t, df), nil
}

// TTestInd implements Backend.
func (g Gonum) TTestInd(a, b []float64) (float64, float64, error) {
	n1, n2 := float64(len(a)), float64(len(b))
	if n1 < 1 || n2 < 1 || n1+n2 < 3 {
		return 0, 0, fmt.Errorf("%w: %d and %d observations", ErrNotEnoughData, len(a), len(b))
	}
	var ss float64
	for _, sample := range [][]float64{a, b} {
		if len(sample) >= 2 {
			ss += stat.Variance(sample, nil) * float64(len(sample)-1)
		}
	}
	df := n1 + n2 - 2
	pooled := ss / df
	if pooled == 0 {
		return 0, 0, ErrNoVariance
	}
	t := (stat.Mean(a, nil) - stat.Mean(b, nil)) / math.Sqrt(pooled*(1/n1+1/n2))
	return t, twoTailedT(t, df), nil
}

func twoTailedT(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.Survival(math.Abs(t))
}

func twoTailedZ(z float64) float64 {
	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

func newDesign(names []string, x [][]float64, y []float64) (*mat.Dense, *mat.VecDense, error) {
	n, k := len(x), len(names)
	if n != len(y) {
		return nil, nil, ErrLengthMismatch
	}
	if k <= 0 || n <= k {
		return nil, nil, fmt.Errorf("%w: %d observations and %d regressors", ErrNotEnoughData, n, k)
	}
	design := mat.NewDense(n, k, nil)
	for i, row := range x {
		if len(row) != k {
			return nil, nil, ErrLengthMismatch
		}
		design.SetRow(i, row)
	}
	return design, mat.NewVecDense(n, append([]float64{}, y...)), nil
}

// solve returns the least squares solution of design * beta = target.
func solve(design *mat.Dense, target *mat.VecDense) (*mat.VecDense, error) {
	_, k := design.Dims()
	var qr mat.QR
	qr.Factorize(design)
	beta := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(beta, false, target); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSingular, err.Error())
	}
	return beta, nil
}

// inverseGram returns the inverse of design' * design.
func inverseGram(design mat.Matrix) (*mat.Dense, error) {
	var gram, inverse mat.Dense
	gram.Mul(design.T(), design)
	if err := inverse.Inverse(&gram); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSingular, err.Error())
	}
	return &inverse, nil
}

// OLS implements Backend.
func (g Gonum) OLS(names []string, x [][]float64, y []float64) (*Fit, error) {
	design, target, err := newDesign(names, x, y)
	if err != nil {
		return nil, err
	}
	beta, err := solve(design, target)
	if err != nil {
		return nil, err
	}
	inverse, err := inverseGram(design)
	if err != nil {
		return nil, err
	}

	n, k := design.Dims()
	var fitted mat.VecDense
	fitted.MulVec(design, beta)
	var rss float64
	for i := 0; i < n; i++ {
		residual := y[i] - fitted.AtVec(i)
		rss += residual * residual
	}
	mean := stat.Mean(y, nil)
	var tss float64
	for _, value := range y {
		tss += (value - mean) * (value - mean)
	}
	df := n - k
	sigma2 := rss / float64(df)

	fit := &Fit{
		Method:      "OLS",
		Names:       append([]string{}, names...),
		N:           n,
		DFResidual:  df,
		RSquared:    math.NaN(),
		AdjRSquared: math.NaN(),
	}
	if tss > 0 {
		fit.RSquared = 1 - rss/tss
		fit.AdjRSquared = 1 - (1-fit.RSquared)*float64(n-1)/float64(df)
	}
	for j := 0; j < k; j++ {
		coef := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inverse.At(j, j))
		t := coef / se
		fit.Coefficients = append(fit.Coefficients, coef)
		fit.StdErrors = append(fit.StdErrors, se)
		fit.Statistics = append(fit.Statistics, t)
		fit.PValues = append(fit.PValues, twoTailedT(t, float64(df)))
	}
	return fit, nil
}

// Logit implements Backend using iteratively reweighted least squares.
func (g Gonum) Logit(names []string, x [][]float64, y []float64) (*Fit, error) {
	design, _, err := newDesign(names, x, y)
	if err != nil {
		return nil, err
	}
	for _, value := range y {
		if value != 0 && value != 1 {
			return nil, fmt.Errorf("statsx: logit: response must be 0 or 1, got %v", value)
		}
	}
	maxIterations := g.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	tolerance := g.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	n, k := design.Dims()
	beta := mat.NewVecDense(k, nil)
	weights := make([]float64, n)
	fit := &Fit{Method: "Logit", Names: append([]string{}, names...), N: n, DFResidual: n - k}

	for fit.Iterations < maxIterations {
		fit.Iterations++

		// compute the working weights and response
		var eta mat.VecDense
		eta.MulVec(design, beta)
		weighted := mat.NewDense(n, k, nil)
		target := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			mu := clampProbability(sigmoid(eta.AtVec(i)))
			weights[i] = mu * (1 - mu)
			sw := math.Sqrt(weights[i])
			z := eta.AtVec(i) + (y[i]-mu)/weights[i]
			for j := 0; j < k; j++ {
				weighted.Set(i, j, design.At(i, j)*sw)
			}
			target.SetVec(i, z*sw)
		}

		// solve the weighted least squares problem
		next, err := solve(weighted, target)
		if err != nil {
			return nil, err
		}
		var delta float64
		for j := 0; j < k; j++ {
			delta = math.Max(delta, math.Abs(next.AtVec(j)-beta.AtVec(j)))
		}
		beta = next
		if delta < tolerance {
			fit.Converged = true
			break
		}
	}

	// covariance from the final weights
	var eta mat.VecDense
	eta.MulVec(design, beta)
	weighted := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		mu := clampProbability(sigmoid(eta.AtVec(i)))
		sw := math.Sqrt(mu * (1 - mu))
		for j := 0; j < k; j++ {
			weighted.Set(i, j, design.At(i, j)*sw)
		}
		fit.LogLikelihood += y[i]*math.Log(mu) + (1-y[i])*math.Log(1-mu)
	}
	inverse, err := inverseGram(weighted)
	if err != nil {
		return nil, err
	}
	for j := 0; j < k; j++ {
		coef := beta.AtVec(j)
		se := math.Sqrt(inverse.At(j, j))
		z := coef / se
		fit.Coefficients = append(fit.Coefficients, coef)
		fit.StdErrors = append(fit.StdErrors, se)
		fit.Statistics = append(fit.Statistics, z)
		fit.PValues = append(fit.PValues, twoTailedZ(z))
	}
	return fit, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clampProbability(p float64) float64 {
	const epsilon = 1e-10
	return math.Max(epsilon, math.Min(1-epsilon, p))
}
