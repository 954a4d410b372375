package dv

import (
	"errors"
	"math"
	"testing"

	"github.com/expfactory/expanalysis/internal/frame"
)

func TestSingleWorker(t *testing.T) {
	t.Run("with a single worker", func(t *testing.T) {
		tbl := frame.FromRows([]frame.Row{{"worker": "A1"}, {"worker": "A1"}})
		worker, err := SingleWorker(tbl)
		if err != nil {
			t.Fatal(err)
		}
		if worker != "A1" {
			t.Fatal("unexpected worker", worker)
		}
	})

	t.Run("with several workers", func(t *testing.T) {
		tbl := frame.FromRows([]frame.Row{{"worker": "A1"}, {"worker": "A2"}})
		if _, err := SingleWorker(tbl); !errors.Is(err, ErrMultipleWorkers) {
			t.Fatal("unexpected error", err)
		}
	})

	t.Run("without trials", func(t *testing.T) {
		if _, err := SingleWorker(frame.New(nil, nil)); !errors.Is(err, ErrNoTrials) {
			t.Fatal("unexpected error", err)
		}
	})
}

func TestMeanAndVariance(t *testing.T) {
	tbl := frame.FromRows([]frame.Row{{"rt": 1.0}, {"rt": 2.0}, {"rt": 3.0}, {"rt": "x"}})
	mean, err := Mean(tbl, "rt")
	if err != nil {
		t.Fatal(err)
	}
	if mean != 2 {
		t.Fatal("unexpected mean", mean)
	}
	variance, err := Variance(tbl, "rt")
	if err != nil {
		t.Fatal(err)
	}
	if variance != 1 {
		t.Fatal("unexpected variance", variance)
	}
	if _, err := Mean(tbl, "antani"); !errors.Is(err, ErrNoTrials) {
		t.Fatal("unexpected error", err)
	}
	if v, err := Variance(frame.FromRows([]frame.Row{{"rt": 1.0}}), "rt"); !errors.Is(err, ErrNoTrials) || !math.IsNaN(v) {
		t.Fatal("unexpected result", v, err)
	}
}

func TestMedian(t *testing.T) {
	tbl := frame.FromRows([]frame.Row{{"rt": 300.0}, {"rt": 100.0}, {"rt": nil}, {"rt": 900.0}, {"rt": 200.0}})
	median, err := Median(tbl, "rt")
	if err != nil {
		t.Fatal(err)
	}
	if median != 250 {
		t.Fatal("unexpected median", median)
	}
	if v, err := Median(tbl, "antani"); !errors.Is(err, ErrNoTrials) || !math.IsNaN(v) {
		t.Fatal("unexpected result", v, err)
	}
}

func TestResult(t *testing.T) {
	r := NewResult("test").Set("b", 2).Set("a", 1.5)
	if r.String() != "a=1.5 b=2" {
		t.Fatal("unexpected string", r.String())
	}
}

func TestResponseTrials(t *testing.T) {
	tbl := frame.FromRows([]frame.Row{{"rt": -1.0}, {"rt": 300.0}, {"rt": nil}})
	if got := ResponseTrials(tbl).Len(); got != 1 {
		t.Fatal("expected one trial, got", got)
	}
}

func TestAccuracy(t *testing.T) {
	tbl := frame.FromRows([]frame.Row{{"correct": true}, {"correct": 0}, {"correct": 1.0}, {"correct": nil}})
	acc, err := Accuracy(tbl, "correct")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(acc-2.0/3.0) > 1e-12 {
		t.Fatal("unexpected accuracy", acc)
	}
	if CorrectTrials(tbl).Len() != 2 {
		t.Fatal("expected two correct trials")
	}
}

func TestTestTrials(t *testing.T) {
	tbl := frame.FromRows([]frame.Row{{"exp_stage": "practice"}, {"exp_stage": "test"}})
	if TestTrials(tbl).Len() != 1 {
		t.Fatal("expected one test trial")
	}
	other := frame.FromRows([]frame.Row{{"rt": 1.0}})
	if TestTrials(other).Len() != 1 {
		t.Fatal("expected all trials")
	}
}
