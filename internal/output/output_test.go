package output

import (
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/expfactory/expanalysis/internal/dv"
	"github.com/expfactory/expanalysis/internal/summary"
	"github.com/google/go-cmp/cmp"
)

func TestTypedEntries(t *testing.T) {
	handler := memory.New()
	log.SetHandler(handler)
	log.SetLevel(log.InfoLevel)

	SectionTitle("antani")
	Table("dataset", log.Fields{"records": 44})
	SummaryRecord(&summary.Record{Experiment: "stroop"})
	DVResult("w1", dv.NewResult("interference"))

	var types []string
	for _, entry := range handler.Entries {
		types = append(types, entry.Fields.Get("type").(string))
	}
	expect := []string{"section_title", "table", "summary_record", "dv_result"}
	if diff := cmp.Diff(expect, types); diff != "" {
		t.Fatal(diff)
	}
	if handler.Entries[1].Fields.Get("records") != 44 {
		t.Fatal("unexpected table fields", handler.Entries[1].Fields)
	}
}
