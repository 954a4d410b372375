package tabio

import (
	"reflect"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/fxamacker/cbor/v2"
)

// cborTable is the CBOR representation of a table.
type cborTable struct {
	Columns []string         `cbor:"columns"`
	Rows    []map[string]any `cbor:"rows"`
}

func encodeCBOR(tbl *frame.Table) ([]byte, error) {
	return cbor.Marshal(&cborTable{
		Columns: tbl.Columns(),
		Rows:    plainRows(tbl),
	})
}

var cborDecMode = func() cbor.DecMode {
	mode, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

func decodeCBOR(data []byte) (*frame.Table, error) {
	var serialized cborTable
	if err := cborDecMode.Unmarshal(data, &serialized); err != nil {
		return nil, err
	}
	return frame.New(serialized.Columns, toFrameRows(serialized.Rows)), nil
}
