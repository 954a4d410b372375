package filter

import (
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/results"
	"github.com/pkg/errors"
)

func init() {
	cmd := root.Command("filter", "Filter results and export the results table")
	input := cmd.Arg("input", "Results file to read").Required().String()
	batteries := cmd.Flag("battery", "Keep only this battery").Strings()
	experiments := cmd.Flag("experiment", "Keep only this experiment").Short('e').Strings()
	workers := cmd.Flag("worker", "Keep only this worker").Strings()
	templates := cmd.Flag("template", "Keep only this template").Strings()
	finishtime := cmd.Flag("finishtime", "Keep only results finished at or after this time").String()
	byRow := cmd.Flag("by-row", "Apply --finishtime to each result rather than to each worker").Bool()
	outputPath := cmd.Flag("output", "Export the filtered results to this file").Short('o').String()
	original := cmd.Flag("original", "Export the unfiltered results").Bool()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		dataset, err := results.LoadFile(*input, &results.LoadOptions{Clean: true, Logger: log.Log})
		if err != nil {
			return errors.Wrap(err, "loading results")
		}
		filters := &results.Filters{
			Templates:   *templates,
			Workers:     *workers,
			Batteries:   *batteries,
			Experiments: *experiments,
			Finishtime:  *finishtime,
		}
		if *byRow {
			filters.FinishtimeMode = results.FinishtimeByRow
		}
		if dataset, err = dataset.Filter(filters); err != nil {
			return err
		}

		output.SectionTitle("Results")
		output.Table("filtered results", log.Fields{
			"results":     dataset.Current.Len(),
			"batteries":   strings.Join(dataset.Batteries(), ", "),
			"experiments": strings.Join(dataset.Experiments(), ", "),
			"workers":     len(dataset.Workers()),
		})
		if *outputPath == "" {
			return nil
		}
		return dataset.Export(*outputPath, *original)
	})
}
