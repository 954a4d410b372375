// Package database stores tables into sqlite databases.
//
// Each call to [*Database.CreateExport] stores a whole table, tagged with a
// random export ID, so the same database file may contain several
// exports. Rows are stored as JSON objects along with the column order.
package database

import (
	"database/sql"
	"embed"
	"encoding/json"
	"time"

	"github.com/expfactory/expanalysis/internal/model"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations runs the database migrations
func RunMigrations(sqldb *sql.DB, logger model.Logger) error {
	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
	n, err := migrate.Exec(sqldb, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return err
	}
	logger.Debugf("database: performed %d migrations", n)
	return nil
}

// Database is a sqlite database containing exports.
type Database struct {
	logger model.Logger
	sess   db.Session
}

// Open opens (and creates if needed) the database at the given path
// and makes sure its schema is up to date.
func Open(path string, logger model.Logger) (*Database, error) {
	logger = model.ValidLoggerOrDefault(logger)
	logger.Debugf("database: connecting to sqlite3://%s", path)
	sess, err := sqlite.Open(sqlite.ConnectionURL{Database: path})
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	sqldb, ok := sess.Driver().(*sql.DB)
	if !ok {
		sess.Close()
		return nil, errors.New("database: unexpected driver type")
	}
	if err := RunMigrations(sqldb, logger); err != nil {
		sess.Close()
		return nil, errors.Wrap(err, "migrating database")
	}
	return &Database{logger: logger, sess: sess}, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.sess.Close()
}

// Export is an export stored in the database.
type Export struct {
	ID        int64     `db:"id,omitempty"`
	ExportID  string    `db:"export_id"`
	CreatedAt time.Time `db:"created_at"`
	Columns   string    `db:"columns"`
	NumRows   int64     `db:"num_rows"`
}

// Row is a row belonging to an export.
type Row struct {
	RowID    int64  `db:"row_id,omitempty"`
	ExportID string `db:"export_id"`
	RowIndex int64  `db:"row_index"`
	Data     string `db:"data"`
}

// CreateExport stores the given columns and rows within a single
// transaction and returns the new export ID.
func (d *Database) CreateExport(columns []string, rows []map[string]any) (string, error) {
	exportID := uuid.Must(uuid.NewRandom()).String()
	rawColumns, err := json.Marshal(columns)
	if err != nil {
		return "", errors.Wrap(err, "serializing columns")
	}
	err = d.sess.Tx(func(tx db.Session) error {
		export := &Export{
			ExportID:  exportID,
			CreatedAt: time.Now().UTC(),
			Columns:   string(rawColumns),
			NumRows:   int64(len(rows)),
		}
		if _, err := tx.Collection("exports").Insert(export); err != nil {
			return errors.Wrap(err, "creating export")
		}
		for idx, row := range rows {
			data, err := json.Marshal(row)
			if err != nil {
				return errors.Wrap(err, "serializing row")
			}
			record := &Row{
				ExportID: exportID,
				RowIndex: int64(idx),
				Data:     string(data),
			}
			if _, err := tx.Collection("export_rows").Insert(record); err != nil {
				return errors.Wrap(err, "creating row")
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	d.logger.Debugf("database: created export %s with %d rows", exportID, len(rows))
	return exportID, nil
}

// ListExports returns the exports sorted from the oldest to the newest.
func (d *Database) ListExports() ([]*Export, error) {
	exports := []*Export{}
	err := d.sess.Collection("exports").Find().OrderBy("id").All(&exports)
	if err != nil {
		return nil, errors.Wrap(err, "listing exports")
	}
	return exports, nil
}

// ErrNoExports indicates that the database does not contain any export.
var ErrNoExports = errors.New("database: no exports")

// LoadExport returns the columns and rows of the given export. An empty
// export ID selects the most recent export.
func (d *Database) LoadExport(exportID string) ([]string, []map[string]any, error) {
	var export Export
	var err error
	if exportID == "" {
		err = d.sess.Collection("exports").Find().OrderBy("-id").One(&export)
	} else {
		err = d.sess.Collection("exports").Find(db.Cond{"export_id": exportID}).One(&export)
	}
	if errors.Is(err, db.ErrNoMoreRows) {
		return nil, nil, ErrNoExports
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading export")
	}

	var columns []string
	if err := json.Unmarshal([]byte(export.Columns), &columns); err != nil {
		return nil, nil, errors.Wrap(err, "parsing columns")
	}

	records := []*Row{}
	err = d.sess.Collection("export_rows").Find(db.Cond{"export_id": export.ExportID}).OrderBy("row_index").All(&records)
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading rows")
	}
	rows := make([]map[string]any, 0, len(records))
	for _, record := range records {
		var row map[string]any
		if err := json.Unmarshal([]byte(record.Data), &row); err != nil {
			return nil, nil, errors.Wrap(err, "parsing row")
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}
