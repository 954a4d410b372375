package tabio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/google/go-cmp/cmp"
)

func newTestTable() *frame.Table {
	return frame.New([]string{"worker", "rt", "correct", "condition"}, []frame.Row{
		{"worker": "A1", "rt": 512.0, "correct": true, "condition": "congruent"},
		{"worker": "A1", "rt": nil, "correct": false, "condition": "incongruent"},
		{"worker": "A2", "rt": 733.5, "correct": true, "condition": "congruent, really"},
	})
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]Format{
		"a.csv":    FormatCSV,
		"a.TSV":    FormatTSV,
		"a.json":   FormatJSON,
		"a.cbor":   FormatCBOR,
		"a.sqlite": FormatSQLite,
		"a.db":     FormatSQLite,
	}
	for path, expect := range cases {
		got, err := FormatFromPath(path)
		if err != nil {
			t.Fatal(err)
		}
		if got != expect {
			t.Fatal("expected", expect, "got", got)
		}
	}
	if _, err := FormatFromPath("a.xlsx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatal("unexpected error", err)
	}
}

func TestExportImport(t *testing.T) {
	for _, ext := range []string{".csv", ".tsv", ".json", ".cbor", ".sqlite"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trials"+ext)
			tbl := newTestTable()
			if err := Export(tbl, path); err != nil {
				t.Fatal(err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatal(err)
			}
			if got.Len() != tbl.Len() {
				t.Fatal("expected", tbl.Len(), "rows, got", got.Len())
			}
			for _, col := range tbl.Columns() {
				if diff := cmp.Diff(tbl.Column(col), got.Column(col)); diff != "" {
					t.Fatal(col, diff)
				}
			}
		})
	}
}

func TestExportPreservesColumnsOrder(t *testing.T) {
	for _, ext := range []string{".csv", ".cbor", ".db"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trials"+ext)
			tbl := newTestTable()
			if err := Export(tbl, path); err != nil {
				t.Fatal(err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tbl.Columns(), got.Columns()); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestImportStringColumns(t *testing.T) {
	tbl := frame.New([]string{"worker", "rt"}, []frame.Row{
		{"worker": "007", "rt": 512.0},
		{"worker": nil, "rt": 733.5},
	})
	for _, ext := range []string{".csv", ".tsv"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "trials"+ext)
			if err := Export(tbl, path); err != nil {
				t.Fatal(err)
			}
			got, err := Import(path, "worker")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff([]any{"007", nil}, got.Column("worker")); diff != "" {
				t.Fatal(diff)
			}
			if diff := cmp.Diff([]any{512.0, 733.5}, got.Column("rt")); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestExportUnwrapsRunData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	tbl := frame.New([]string{"worker", "data"}, []frame.Row{{
		"worker": "A1",
		"data":   model.NewRunData([]any{map[string]any{"rt": 1.0}}),
	}})
	if err := Export(tbl, path); err != nil {
		t.Fatal(err)
	}
	got, err := Import(path)
	if err != nil {
		t.Fatal(err)
	}
	expect := []any{[]any{map[string]any{"rt": 1.0}}}
	if diff := cmp.Diff(expect, got.Column("data")); diff != "" {
		t.Fatal(diff)
	}
}

func TestExportWithUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trials.xlsx")
	if err := Export(newTestTable(), path); !errors.Is(err, ErrUnknownFormat) {
		t.Fatal("unexpected error", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("expected no file to be written")
	}
}

func TestImportNonexistentSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.sqlite")
	if _, err := Import(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("unexpected error", err)
	}
}

func TestParseCell(t *testing.T) {
	cases := []struct {
		input  string
		expect any
	}{
		{"", nil},
		{"True", true},
		{"false", false},
		{"12", 12.0},
		{"-0.5", -0.5},
		{"NaN", "NaN"},
		{"A07375212LC8D25XBGZ1J", "A07375212LC8D25XBGZ1J"},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.expect, parseCell(tc.input)); diff != "" {
			t.Fatal(tc.input, diff)
		}
	}
}

func TestReadRecords(t *testing.T) {
	dir := t.TempDir()

	t.Run("with a list", func(t *testing.T) {
		path := filepath.Join(dir, "list.json")
		records := []model.RawResult{{"worker": map[string]any{"id": "A1"}}}
		if err := WriteRecords(path, records); err != nil {
			t.Fatal(err)
		}
		got, err := ReadRecords(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(records, got); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a page", func(t *testing.T) {
		path := filepath.Join(dir, "page.json")
		content := `{"count": 1, "next": null, "previous": null, "results": [{"worker": {"id": "A1"}}]}`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadRecords(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 {
			t.Fatal("expected one record")
		}
	})

	t.Run("with something else", func(t *testing.T) {
		path := filepath.Join(dir, "other.json")
		if err := os.WriteFile(path, []byte(`{"foo": 1}`), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadRecords(path); !errors.Is(err, ErrNotRecords) {
			t.Fatal("unexpected error", err)
		}
	})
}
