// Package tabio reads and writes tables using several file formats.
//
// The format depends on the file extension:
//
// - .csv and .tsv: delimited text with a header row;
//
// - .json: a list of row objects;
//
// - .cbor: the CBOR encoding of the columns and the rows;
//
// - .sqlite and .db: a sqlite database (see internal/database).
//
// Text files are written and read holding a file lock.
package tabio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Format is a file format.
type Format string

const (
	FormatCBOR   = Format("cbor")
	FormatCSV    = Format("csv")
	FormatJSON   = Format("json")
	FormatSQLite = Format("sqlite")
	FormatTSV    = Format("tsv")
)

// ErrUnknownFormat indicates that we do not know the format of a file.
var ErrUnknownFormat = errors.New("tabio: unknown file format")

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cbor":
		return FormatCBOR, nil
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".sqlite", ".db":
		return FormatSQLite, nil
	case ".tsv":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// Export writes the table to the given path.
func Export(tbl *frame.Table, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var data []byte
	switch format {
	case FormatSQLite:
		return exportSQLite(tbl, path)
	case FormatCSV:
		data, err = encodeDelimited(tbl, ',')
	case FormatTSV:
		data, err = encodeDelimited(tbl, '\t')
	case FormatJSON:
		data, err = encodeJSON(tbl)
	case FormatCBOR:
		data, err = encodeCBOR(tbl)
	}
	if err != nil {
		return err
	}
	return lockedfile.Write(path, bytes.NewReader(data), 0600)
}

// Import reads a table from the given path. Delimited text files carry no
// types, so we parse their cells, except the ones of the stringColumns.
func Import(path string, stringColumns ...string) (*frame.Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		if _, err := os.Stat(path); err != nil {
			return nil, err
		}
		return importSQLite(path)
	}
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatCSV:
		return decodeDelimited(data, ',', stringColumns)
	case FormatTSV:
		return decodeDelimited(data, '\t', stringColumns)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return decodeCBOR(data)
	}
}

// valuer is implemented by cell values wrapping a plain value, such as
// the data of a run.
type valuer interface {
	Value() any
}

// plainValue unwraps values implementing [valuer].
func plainValue(value any) any {
	if v, ok := value.(valuer); ok && !frame.IsNull(value) {
		return v.Value()
	}
	return value
}

// plainRows returns the rows of the table with plain values only.
func plainRows(tbl *frame.Table) []map[string]any {
	rows := make([]map[string]any, 0, tbl.Len())
	for _, row := range tbl.Rows() {
		plain := make(map[string]any, len(row))
		for key, value := range row {
			plain[key] = plainValue(value)
		}
		rows = append(rows, plain)
	}
	return rows
}

// toFrameRows converts plain rows to [frame.Row].
func toFrameRows(rows []map[string]any) []frame.Row {
	out := make([]frame.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, frame.Row(row))
	}
	return out
}
