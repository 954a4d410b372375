package dv

//
// EZ-diffusion model (Wagenmakers, van der Maas, and Grasman, 2007).
//

import (
	"errors"
	"math"
)

// EZScale is the scaling parameter of the EZ-diffusion model.
const EZScale = 0.1

// ErrEZDiffusion indicates that the EZ-diffusion model is not defined
// for the given inputs.
var ErrEZDiffusion = errors.New("dv: cannot fit the EZ-diffusion model")

// EZParams contains the parameters of the EZ-diffusion model.
type EZParams struct {
	// Drift is the drift rate.
	Drift float64

	// Threshold is the boundary separation.
	Threshold float64

	// NonDecision is the non-decision time in seconds.
	NonDecision float64
}

// EZDiffusion fits the EZ-diffusion model given the proportion of correct
// responses pc among n trials, the variance of the correct reaction times
// vrt, and their mean mrt, both in seconds.
//
// The model is not defined for pc equal to 0, 0.5, or 1. We replace 1 with
// 1 - 1/(2n), 0 with 1/(2n), and 0.5 with 0.5 + 1/(2n).
func EZDiffusion(pc, vrt, mrt float64, n int) (*EZParams, error) {
	if n <= 0 || vrt <= 0 || math.IsNaN(pc) || math.IsNaN(vrt) || math.IsNaN(mrt) || pc < 0 || pc > 1 {
		return nil, ErrEZDiffusion
	}
	correction := 1 / (2 * float64(n))
	switch pc {
	case 1:
		pc = 1 - correction
	case 0:
		pc = correction
	case 0.5:
		pc = 0.5 + correction
	}
	s2 := EZScale * EZScale
	logit := math.Log(pc / (1 - pc))
	x := logit * (logit*pc*pc - logit*pc + pc - 0.5) / vrt
	drift := math.Copysign(1, pc-0.5) * EZScale * math.Pow(x, 0.25)
	threshold := s2 * logit / drift
	y := -drift * threshold / s2
	mdt := (threshold / (2 * drift)) * ((1 - math.Exp(y)) / (1 + math.Exp(y)))
	params := &EZParams{
		Drift:       drift,
		Threshold:   threshold,
		NonDecision: mrt - mdt,
	}
	if math.IsNaN(params.Drift) || math.IsNaN(params.Threshold) || math.IsNaN(params.NonDecision) {
		return nil, ErrEZDiffusion
	}
	return params, nil
}
