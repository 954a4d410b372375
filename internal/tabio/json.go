package tabio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/rogpeppe/go-internal/lockedfile"
)

func encodeJSON(tbl *frame.Table) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(plainRows(tbl)); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func decodeJSON(data []byte) (*frame.Table, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	rows := make([]frame.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, frame.Row(record))
	}
	return frame.FromRows(rows), nil
}

// ErrNotRecords indicates that a JSON file contains neither a list of
// records nor a results page.
var ErrNotRecords = errors.New("tabio: expected a list of records or a results page")

// decodeRecords decodes either a list of objects or a results page.
func decodeRecords(data []byte) ([]model.RawResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) <= 0 {
		return nil, ErrNotRecords
	}
	switch trimmed[0] {
	case '[':
		var records []model.RawResult
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotRecords, err.Error())
		}
		return records, nil
	case '{':
		var page model.ResultsPage
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotRecords, err.Error())
		}
		if page.Results == nil {
			return nil, ErrNotRecords
		}
		return page.Results, nil
	default:
		return nil, ErrNotRecords
	}
}

// ReadRecords reads raw results from a JSON file containing either a
// list of results or a results page.
func ReadRecords(path string) ([]model.RawResult, error) {
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, err
	}
	return decodeRecords(data)
}

// WriteRecords writes raw results to a JSON file as a list.
func WriteRecords(path string, records []model.RawResult) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return lockedfile.Write(path, bytes.NewReader(data), 0600)
}
