package frame

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestTable() *Table {
	return New([]string{"worker", "rt", "condition"}, []Row{
		{"worker": "b", "rt": 500.0, "condition": "congruent"},
		{"worker": "a", "rt": 700.0, "condition": "incongruent"},
		{"worker": "b", "rt": nil, "condition": "incongruent"},
		{"worker": "a", "rt": 300.0, "condition": "congruent"},
	})
}

func TestCheckNumeric(t *testing.T) {
	cases := []struct {
		name   string
		input  []any
		expect bool
	}{{
		name:   "with integers",
		input:  []any{1, 2, 3},
		expect: true,
	}, {
		name:   "with strings",
		input:  []any{"a", "b"},
		expect: false,
	}, {
		name:   "with mixed values",
		input:  []any{"a", 2, 3.0},
		expect: false,
	}, {
		name:   "with floats",
		input:  []any{1.5, 2.0, -3.25},
		expect: true,
	}, {
		name:   "with an empty list",
		input:  []any{},
		expect: true,
	}, {
		name:   "with a missing value",
		input:  []any{1.0, nil},
		expect: false,
	}, {
		name:   "with booleans",
		input:  []any{true, false},
		expect: false,
	}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CheckNumeric(tc.input); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}

func TestIsNull(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *Table
	for _, value := range []any{nil, math.NaN(), nilMap, nilPtr} {
		if !IsNull(value) {
			t.Fatal("expected null", value)
		}
	}
	for _, value := range []any{0, "", false, []any{}, map[string]any{}} {
		if IsNull(value) {
			t.Fatal("expected not null", value)
		}
	}
}

func TestToString(t *testing.T) {
	cases := []struct {
		input  any
		expect string
	}{
		{nil, ""},
		{"abc", "abc"},
		{true, "true"},
		{3.0, "3"},
		{3.5, "3.5"},
		{int64(7), "7"},
		{map[string]any{"a": 1.0}, `{"a":1}`},
	}
	for _, tc := range cases {
		if got := ToString(tc.input); got != tc.expect {
			t.Fatal("expected", tc.expect, "got", got)
		}
	}
}

func TestCompare(t *testing.T) {
	values := []any{nil, "b", 2, true, "a", 1.5, false}
	expect := []any{1.5, 2, false, true, "a", "b", nil}
	got := New([]string{"v"}, func() []Row {
		var rows []Row
		for _, v := range values {
			rows = append(rows, Row{"v": v})
		}
		return rows
	}()).SortBy("v").Column("v")
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestTableIsImmutable(t *testing.T) {
	tbl := newTestTable()
	_ = tbl.WithColumn("rt", func(int, Row) any { return 0.0 })
	_ = tbl.DropColumns("rt")
	_ = tbl.Rename(map[string]string{"rt": "reaction"})
	row := tbl.Row(0)
	row["rt"] = 1.0
	if diff := cmp.Diff(500.0, tbl.Value(0, "rt")); diff != "" {
		t.Fatal(diff)
	}
	if diff := cmp.Diff([]string{"worker", "rt", "condition"}, tbl.Columns()); diff != "" {
		t.Fatal(diff)
	}
}

func TestTableOperations(t *testing.T) {
	tbl := newTestTable()

	t.Run("FromRows", func(t *testing.T) {
		got := FromRows([]Row{{"z": 1, "a": 2}, {"b": 3}})
		if diff := cmp.Diff([]string{"a", "z", "b"}, got.Columns()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Filter", func(t *testing.T) {
		got := tbl.Filter(func(_ int, row Row) bool { return row["worker"] == "a" })
		if got.Len() != 2 {
			t.Fatal("expected two rows")
		}
	})

	t.Run("SortBy", func(t *testing.T) {
		got := tbl.SortBy("worker", "rt")
		expect := []any{300.0, 700.0, 500.0, nil}
		if diff := cmp.Diff(expect, got.Column("rt")); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Select", func(t *testing.T) {
		got := tbl.Select("rt", "nonexistent")
		if diff := cmp.Diff([]string{"rt"}, got.Columns()); diff != "" {
			t.Fatal(diff)
		}
		if _, found := got.Row(0)["worker"]; found {
			t.Fatal("expected worker to be gone")
		}
	})

	t.Run("Rename", func(t *testing.T) {
		got := tbl.Rename(map[string]string{"rt": "reaction"})
		if diff := cmp.Diff([]string{"worker", "reaction", "condition"}, got.Columns()); diff != "" {
			t.Fatal(diff)
		}
		if got.Value(1, "reaction") != 700.0 {
			t.Fatal("unexpected value")
		}
	})

	t.Run("Unique", func(t *testing.T) {
		if diff := cmp.Diff([]string{"a", "b"}, tbl.UniqueStrings("worker")); diff != "" {
			t.Fatal(diff)
		}
		if diff := cmp.Diff([]any{300.0, 500.0, 700.0}, tbl.Unique("rt")); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("GroupBy", func(t *testing.T) {
		groups := tbl.GroupBy("worker")
		if len(groups) != 2 {
			t.Fatal("expected two groups")
		}
		if groups[0].KeyString() != "a" || groups[0].Table.Len() != 2 {
			t.Fatal("unexpected first group")
		}
		if diff := cmp.Diff([]any{700.0, 300.0}, groups[0].Table.Column("rt")); diff != "" {
			t.Fatal(diff)
		}
		all := tbl.GroupBy()
		if len(all) != 1 || all[0].Table.Len() != 4 {
			t.Fatal("expected a single group")
		}
	})

	t.Run("DropNA with subset", func(t *testing.T) {
		got := tbl.DropNA(nil, "rt")
		if got.Len() != 3 {
			t.Fatal("expected three rows")
		}
	})

	t.Run("DropNA without subset", func(t *testing.T) {
		sparse := New([]string{"worker", "rt"}, []Row{
			{"worker": "a", "rt": nil},
			{"worker": "a", "rt": 1.0},
		})
		got := sparse.DropNA([]string{"worker"})
		if got.Len() != 1 {
			t.Fatal("expected one row")
		}
	})

	t.Run("Concat", func(t *testing.T) {
		other := New([]string{"worker", "extra"}, []Row{{"worker": "c", "extra": 1}})
		got := tbl.Concat(other)
		if got.Len() != 5 {
			t.Fatal("expected five rows")
		}
		if diff := cmp.Diff([]string{"worker", "rt", "condition", "extra"}, got.Columns()); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Map", func(t *testing.T) {
		got := tbl.Map(func(_ int, row Row) Row {
			row["double"] = 2.0
			return row
		})
		if !got.HasColumn("double") || tbl.HasColumn("double") {
			t.Fatal("unexpected columns")
		}
	})

	t.Run("MissingColumns", func(t *testing.T) {
		if diff := cmp.Diff([]string{"x"}, tbl.MissingColumns("rt", "x")); diff != "" {
			t.Fatal(diff)
		}
	})
}
