package results

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/tabio"
)

// Dataset is a set of results along with the filters applied to them.
//
// A Dataset is a value: filtering returns a new Dataset and leaves
// the receiver unchanged.
type Dataset struct {
	// Raw contains the OPTIONAL raw records.
	Raw []model.RawResult

	// Original is the results table before filtering.
	Original *frame.Table

	// Current is the results table after filtering.
	Current *frame.Table

	// Applied contains the filters applied to obtain Current.
	Applied Filters

	// Logger is the logger to use.
	Logger model.Logger
}

// NewDataset creates a new [*Dataset] from raw records.
func NewDataset(records []model.RawResult, opts *LoadOptions) (*Dataset, error) {
	if opts == nil {
		opts = &LoadOptions{Clean: true}
	}
	tbl, err := Load(records, opts)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Raw:      records,
		Original: tbl,
		Current:  tbl,
		Applied:  Filters{},
		Logger:   model.ValidLoggerOrDefault(opts.Logger),
	}, nil
}

// LoadFile creates a new [*Dataset] from a file. JSON files contain
// raw records, while the other formats contain exported tables.
func LoadFile(path string, opts *LoadOptions) (*Dataset, error) {
	if opts == nil {
		opts = &LoadOptions{Clean: true}
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		records, err := tabio.ReadRecords(path)
		if err != nil {
			return nil, err
		}
		return NewDataset(records, opts)
	}
	imported, err := tabio.Import(path, IdentifierColumns...)
	if err != nil {
		return nil, err
	}
	tbl, err := FromTable(imported)
	if err != nil {
		return nil, err
	}
	if opts.Clean {
		if tbl, err = cleanIfNeeded(tbl, opts.Logger); err != nil {
			return nil, err
		}
	}
	return &Dataset{
		Original: tbl,
		Current:  tbl,
		Logger:   model.ValidLoggerOrDefault(opts.Logger),
	}, nil
}

// Filter applies the given filters to the current results, or to the
// original results when f.Reset is true.
func (d *Dataset) Filter(f *Filters) (*Dataset, error) {
	base, applied := d.Current, &d.Applied
	if f.Reset {
		base, applied = d.Original, &Filters{}
	}
	tbl, err := Apply(base, f)
	if err != nil {
		return nil, err
	}
	out := *d
	out.Current = tbl
	out.Applied = *applied.merge(f)
	return &out, nil
}

// Reset returns a dataset whose current results are the original ones.
func (d *Dataset) Reset() *Dataset {
	out := *d
	out.Current = d.Original
	out.Applied = Filters{}
	return &out
}

// Batteries returns the sorted batteries of the current results.
func (d *Dataset) Batteries() []string {
	return d.Current.UniqueStrings(model.FieldBattery)
}

// Experiments returns the sorted experiments of the current results.
func (d *Dataset) Experiments() []string {
	return d.Current.UniqueStrings(model.FieldExperiment)
}

// Workers returns the sorted workers of the current results.
func (d *Dataset) Workers() []string {
	return d.Current.UniqueStrings(model.FieldWorker)
}

// Export writes the current results, or the original ones when orig is
// true, to the given path. An unknown file format is reported with a
// warning and otherwise ignored.
func (d *Dataset) Export(path string, orig bool) error {
	tbl := d.Current
	if orig {
		tbl = d.Original
	}
	err := tabio.Export(tbl, path)
	if errors.Is(err, tabio.ErrUnknownFormat) {
		model.ValidLoggerOrDefault(d.Logger).Warnf("results: not exporting to %s: %s", path, err.Error())
		return nil
	}
	return err
}
