package root

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cleaning"
	"github.com/expfactory/expanalysis/internal/contrast"
	"github.com/expfactory/expanalysis/internal/extract"
	"github.com/expfactory/expanalysis/internal/frame"
	"github.com/expfactory/expanalysis/internal/registry"
	"github.com/expfactory/expanalysis/internal/results"
	"github.com/expfactory/expanalysis/internal/tabio"
	"github.com/pkg/errors"
)

// TrialsOptions contains options for [LoadTrials].
type TrialsOptions struct {
	// Experiments contains the experiments to extract.
	Experiments []string

	// Clean indicates whether to clean the trials.
	Clean bool

	// OverridesPath is the OPTIONAL path of the YAML rule overrides.
	OverridesPath string
}

// LoadOverrides loads the rule overrides, if any.
func LoadOverrides(path string) (*registry.Overrides, error) {
	if path == "" {
		return nil, nil
	}
	overrides, err := registry.LoadOverrides(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading overrides")
	}
	return overrides, nil
}

// LoadTrials loads a trial table. JSON files contain raw results that we
// expand into trials, while the other formats contain exported trial tables.
func LoadTrials(path string, opts *TrialsOptions) (*frame.Table, error) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		tbl, err := tabio.Import(path)
		if err != nil {
			return nil, errors.Wrap(err, "importing trials")
		}
		return tbl, nil
	}
	overrides, err := LoadOverrides(opts.OverridesPath)
	if err != nil {
		return nil, err
	}
	dataset, err := results.LoadFile(path, &results.LoadOptions{Clean: true, Logger: log.Log})
	if err != nil {
		return nil, errors.Wrap(err, "loading results")
	}
	cleanOptions := cleaning.DefaultOptions()
	cleanOptions.Logger = log.Log
	cleanOptions.Overrides = overrides
	tbl, err := extract.Experiment(dataset.Current, opts.Experiments, &extract.Options{
		Clean:        opts.Clean,
		CleanOptions: cleanOptions,
		Logger:       log.Log,
	})
	if err != nil {
		return nil, errors.Wrap(err, "extracting trials")
	}
	return tbl, nil
}

// ParseExclude parses column=value pairs. Numeric values become numbers.
func ParseExclude(pairs []string) (contrast.Exclude, error) {
	out := contrast.Exclude{}
	for _, pair := range pairs {
		column, value, found := strings.Cut(pair, "=")
		if !found || column == "" {
			return nil, errors.Errorf("invalid exclusion %q: expected column=value", pair)
		}
		out[column] = append(out[column], parseValue(value))
	}
	return out, nil
}

func parseValue(value string) any {
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return number
	}
	return value
}
