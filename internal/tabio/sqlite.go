package tabio

import (
	"github.com/expfactory/expanalysis/internal/database"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
)

func exportSQLite(tbl *frame.Table, path string) error {
	sess, err := database.Open(path, model.DiscardLogger)
	if err != nil {
		return err
	}
	defer sess.Close()
	_, err = sess.CreateExport(tbl.Columns(), plainRows(tbl))
	return err
}

func importSQLite(path string) (*frame.Table, error) {
	sess, err := database.Open(path, model.DiscardLogger)
	if err != nil {
		return nil, err
	}
	defer sess.Close()
	columns, rows, err := sess.LoadExport("")
	if err != nil {
		return nil, err
	}
	return frame.New(columns, toFrameRows(rows)), nil
}
