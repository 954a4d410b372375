package frame

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// Row is a row of a [*Table]. A column missing from the map is
// equivalent to a nil value.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	return maps.Clone(r)
}

// Table is an immutable table. The zero value is an empty table.
type Table struct {
	columns []string
	rows    []Row
}

// New creates a new table using the given columns and rows. Row keys not
// listed among the columns are appended to the columns in sorted order.
func New(columns []string, rows []Row) *Table {
	t := &Table{
		columns: slices.Clone(columns),
		rows:    make([]Row, 0, len(rows)),
	}
	for _, row := range rows {
		t.rows = append(t.rows, row.Clone())
	}
	t.columns = mergeColumns(t.columns, t.rows)
	return t
}

// FromRows creates a new table whose columns are the union of the row
// keys, in order of first appearance (keys of the same row sorted).
func FromRows(rows []Row) *Table {
	return New(nil, rows)
}

// mergeColumns appends the keys of rows missing from columns.
func mergeColumns(columns []string, rows []Row) []string {
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		seen[col] = true
	}
	for _, row := range rows {
		var extra []string
		for key := range row {
			if !seen[key] {
				extra = append(extra, key)
				seen[key] = true
			}
		}
		sort.Strings(extra)
		columns = append(columns, extra...)
	}
	return columns
}

// Columns returns a copy of the column names.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty returns whether the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// HasColumn returns whether the table has the given column.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// MissingColumns returns the names that are not columns of the table.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Row returns a copy of the idx-th row.
func (t *Table) Row(idx int) Row {
	return t.rows[idx].Clone()
}

// Rows returns a copy of all the rows.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.Clone())
	}
	return out
}

// Value returns the value of the given column in the idx-th row.
func (t *Table) Value(idx int, column string) any {
	return t.rows[idx][column]
}

// Column returns the values of the given column.
func (t *Table) Column(name string) []any {
	out := make([]any, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row[name])
	}
	return out
}

// Strings returns the values of the given column converted with [ToString].
func (t *Table) Strings(name string) []string {
	out := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, ToString(row[name]))
	}
	return out
}

// Unique returns the sorted distinct non-null values of a column.
func (t *Table) Unique(name string) []any {
	var out []any
	for _, value := range t.Column(name) {
		value := value // per-iteration copy (pre-Go 1.22 loop semantics)
		if IsNull(value) {
			continue
		}
		if !slices.ContainsFunc(out, func(v any) bool { return Equal(v, value) }) {
			out = append(out, value)
		}
	}
	slices.SortStableFunc(out, Compare)
	return out
}

// UniqueStrings is like [*Table.Unique] but converts values to string.
func (t *Table) UniqueStrings(name string) []string {
	var out []string
	for _, value := range t.Unique(name) {
		out = append(out, ToString(value))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Filter returns the rows for which fx returns true.
func (t *Table) Filter(fx func(idx int, row Row) bool) *Table {
	out := &Table{columns: slices.Clone(t.columns)}
	for idx, row := range t.rows {
		if fx(idx, row) {
			out.rows = append(out.rows, row.Clone())
		}
	}
	return out
}

// Map returns a table obtained by replacing each row with the one
// returned by fx. Columns introduced by fx are appended.
func (t *Table) Map(fx func(idx int, row Row) Row) *Table {
	rows := make([]Row, 0, len(t.rows))
	for idx, row := range t.rows {
		rows = append(rows, fx(idx, row.Clone()))
	}
	out := &Table{rows: rows}
	out.columns = mergeColumns(slices.Clone(t.columns), rows)
	return out
}

// WithColumn returns a table where the given column is set to
// the value returned by fx for each row.
func (t *Table) WithColumn(name string, fx func(idx int, row Row) any) *Table {
	out := &Table{columns: slices.Clone(t.columns)}
	if !slices.Contains(out.columns, name) {
		out.columns = append(out.columns, name)
	}
	for idx, row := range t.rows {
		row = row.Clone()
		row[name] = fx(idx, row)
		out.rows = append(out.rows, row)
	}
	return out
}

// DropColumns returns a table without the given columns. Columns
// that do not exist are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	out := &Table{}
	for _, col := range t.columns {
		if !slices.Contains(names, col) {
			out.columns = append(out.columns, col)
		}
	}
	for _, row := range t.rows {
		row = row.Clone()
		for _, name := range names {
			delete(row, name)
		}
		out.rows = append(out.rows, row)
	}
	return out
}

// Select returns a table containing only the given existing columns in the given order.
func (t *Table) Select(names ...string) *Table {
	out := &Table{}
	for _, name := range names {
		if t.HasColumn(name) && !slices.Contains(out.columns, name) {
			out.columns = append(out.columns, name)
		}
	}
	for _, row := range t.rows {
		newRow := make(Row, len(out.columns))
		for _, col := range out.columns {
			if value, found := row[col]; found {
				newRow[col] = value
			}
		}
		out.rows = append(out.rows, newRow)
	}
	return out
}

// Rename returns a table where columns are renamed according to
// the given old name to new name mapping.
func (t *Table) Rename(names map[string]string) *Table {
	out := &Table{}
	for _, col := range t.columns {
		if newName, found := names[col]; found {
			col = newName
		}
		if !slices.Contains(out.columns, col) {
			out.columns = append(out.columns, col)
		}
	}
	for _, row := range t.rows {
		newRow := make(Row, len(row))
		for key, value := range row {
			if newName, found := names[key]; found {
				key = newName
			}
			newRow[key] = value
		}
		out.rows = append(out.rows, newRow)
	}
	return out
}

// SortBy returns a table stably sorted by the given columns.
func (t *Table) SortBy(columns ...string) *Table {
	out := &Table{columns: slices.Clone(t.columns), rows: t.Rows()}
	sort.SliceStable(out.rows, func(i, j int) bool {
		for _, col := range columns {
			if c := Compare(out.rows[i][col], out.rows[j][col]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}

// Concat returns a table containing the rows of t followed by the rows of others.
func (t *Table) Concat(others ...*Table) *Table {
	out := &Table{columns: slices.Clone(t.columns), rows: t.Rows()}
	for _, other := range others {
		for _, col := range other.columns {
			if !slices.Contains(out.columns, col) {
				out.columns = append(out.columns, col)
			}
		}
		out.rows = append(out.rows, other.Rows()...)
	}
	return out
}

// Group is a group of rows sharing the same key.
type Group struct {
	// Key contains the values of the group-by columns.
	Key []any

	// Table contains the rows of the group.
	Table *Table
}

// KeyString returns a string representation of the key.
func (g *Group) KeyString() string {
	parts := make([]string, 0, len(g.Key))
	for _, value := range g.Key {
		parts = append(parts, ToString(value))
	}
	return strings.Join(parts, ",")
}

// GroupBy groups rows by the given columns. Groups are sorted by key and
// rows keep their relative order. Without columns, we return a single
// group containing all the rows.
func (t *Table) GroupBy(columns ...string) []*Group {
	if len(columns) == 0 {
		return []*Group{{Key: nil, Table: t.Filter(func(int, Row) bool { return true })}}
	}
	var groups []*Group
	for _, row := range t.rows {
		key := make([]any, 0, len(columns))
		for _, col := range columns {
			key = append(key, row[col])
		}
		idx := slices.IndexFunc(groups, func(g *Group) bool { return compareKeys(g.Key, key) == 0 })
		if idx < 0 {
			groups = append(groups, &Group{Key: key, Table: &Table{columns: slices.Clone(t.columns)}})
			idx = len(groups) - 1
		}
		groups[idx].Table.rows = append(groups[idx].Table.rows, row.Clone())
	}
	slices.SortStableFunc(groups, func(a, b *Group) int { return compareKeys(a.Key, b.Key) })
	return groups
}

func compareKeys(a, b []any) int {
	for idx := 0; idx < len(a) && idx < len(b); idx++ {
		if c := Compare(a[idx], b[idx]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// DropNA returns the rows having at least one non-null value in a column
// not listed in except. When subset is not empty, we only consider
// the subset columns and drop rows having any null value among them.
func (t *Table) DropNA(except []string, subset ...string) *Table {
	if len(subset) > 0 {
		return t.Filter(func(_ int, row Row) bool {
			for _, col := range subset {
				if IsNull(row[col]) {
					return false
				}
			}
			return true
		})
	}
	return t.Filter(func(_ int, row Row) bool {
		for _, col := range t.columns {
			if slices.Contains(except, col) {
				continue
			}
			if !IsNull(row[col]) {
				return true
			}
		}
		return false
	})
}
