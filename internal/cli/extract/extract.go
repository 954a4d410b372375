package extract

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/tabio"
)

func init() {
	cmd := root.Command("extract", "Expand results of one or more experiments into trials")
	input := cmd.Arg("input", "Results file to read").Required().String()
	experiments := cmd.Flag("experiment", "Experiment to extract (default: all)").Short('e').Strings()
	clean := cmd.Flag("clean", "Clean the trials").Default("true").Bool()
	overrides := cmd.Flag("overrides", "YAML file overriding the cleaning rules").String()
	outputPath := cmd.Flag("output", "Export the trials to this file").Short('o').Required().String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		tbl, err := root.LoadTrials(*input, &root.TrialsOptions{
			Experiments:   *experiments,
			Clean:         *clean,
			OverridesPath: *overrides,
		})
		if err != nil {
			return err
		}
		output.Table("extracted trials", log.Fields{
			"trials":  tbl.Len(),
			"columns": len(tbl.Columns()),
			"output":  *outputPath,
		})
		return tabio.Export(tbl, *outputPath)
	})
}
