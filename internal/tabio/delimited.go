package tabio

import (
	"bytes"
	"encoding/csv"
	"slices"
	"strconv"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
)

func encodeDelimited(tbl *frame.Table, comma rune) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.Comma = comma
	columns := tbl.Columns()
	if err := writer.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range tbl.Rows() {
		record := make([]string, 0, len(columns))
		for _, col := range columns {
			record = append(record, frame.ToString(row[col]))
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// decodeDelimited decodes delimited text. The cells of the stringColumns
// are kept as strings, while the other cells are parsed using [parseCell].
func decodeDelimited(data []byte, comma rune, stringColumns []string) (*frame.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 0 {
		return frame.New(nil, nil), nil
	}
	columns := records[0]
	rows := make([]frame.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(frame.Row, len(columns))
		for idx, col := range columns {
			switch {
			case idx >= len(record) || record[idx] == "":
				row[col] = nil
			case slices.Contains(stringColumns, col):
				row[col] = record[idx]
			default:
				row[col] = parseCell(record[idx])
			}
		}
		rows = append(rows, row)
	}
	return frame.New(columns, rows), nil
}

// parseCell infers the type of a delimited text cell. Empty cells are
// missing, true and false are booleans, and numbers are float64.
func parseCell(cell string) any {
	switch strings.ToLower(cell) {
	case "":
		return nil
	case "true":
		return true
	case "false":
		return false
	case "nan", "inf", "+inf", "-inf", "infinity", "+infinity", "-infinity":
		return cell
	}
	if value, err := strconv.ParseFloat(cell, 64); err == nil {
		return value
	}
	return cell
}
