package dv

import (
	"errors"
	"math"
	"testing"
)

func TestEZDiffusion(t *testing.T) {
	t.Run("with the published example", func(t *testing.T) {
		// Wagenmakers et al. (2007), Pc = .802, VRT = .112, MRT = .723
		params, err := EZDiffusion(0.802, 0.112, 0.723, 100)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(params.Drift-0.0999) > 1e-3 {
			t.Fatal("unexpected drift", params.Drift)
		}
		if math.Abs(params.Threshold-0.1399) > 1e-3 {
			t.Fatal("unexpected threshold", params.Threshold)
		}
		if math.Abs(params.NonDecision-0.3) > 1e-2 {
			t.Fatal("unexpected non decision time", params.NonDecision)
		}
	})

	t.Run("with perfect accuracy", func(t *testing.T) {
		params, err := EZDiffusion(1, 0.05, 0.5, 20)
		if err != nil {
			t.Fatal(err)
		}
		if params.Drift <= 0 || params.Threshold <= 0 {
			t.Fatal("unexpected params", params)
		}
	})

	t.Run("with chance accuracy", func(t *testing.T) {
		if _, err := EZDiffusion(0.5, 0.05, 0.5, 20); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("with invalid inputs", func(t *testing.T) {
		for _, vrt := range []float64{0, -1, math.NaN()} {
			if _, err := EZDiffusion(0.8, vrt, 0.5, 20); !errors.Is(err, ErrEZDiffusion) {
				t.Fatal("unexpected error", err)
			}
		}
		if _, err := EZDiffusion(0.8, 0.1, 0.5, 0); !errors.Is(err, ErrEZDiffusion) {
			t.Fatal("unexpected error", err)
		}
	})
}
