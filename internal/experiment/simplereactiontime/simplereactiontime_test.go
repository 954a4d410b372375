package simplereactiontime

import (
	"errors"
	"testing"

	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

func TestDV(t *testing.T) {
	trial := func(stage string, rt float64) frame.Row {
		return frame.Row{model.FieldWorker: "w1", "exp_stage": stage, "rt": rt}
	}

	t.Run("with responses", func(t *testing.T) {
		tbl := frame.FromRows([]frame.Row{
			trial("practice", 100),
			trial("test", 300),
			trial("test", -1),
			trial("test", 400),
		})
		result, err := DV(tbl)
		if err != nil {
			t.Fatal(err)
		}
		if result.Values["avg_rt"] != 350 {
			t.Fatal("unexpected avg_rt", result.Values["avg_rt"])
		}
	})

	t.Run("without responses", func(t *testing.T) {
		tbl := frame.FromRows([]frame.Row{trial("test", -1)})
		if _, err := DV(tbl); !errors.Is(err, dv.ErrNoTrials) {
			t.Fatal("unexpected error", err)
		}
	})
}
