package summary

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/summary"
)

func init() {
	cmd := root.Command("summary", "Describe the trials of an experiment")
	input := cmd.Arg("input", "Results or trials file to read").Required().String()
	experiment := cmd.Flag("experiment", "Experiment to describe").Short('e').Required().String()
	columns := cmd.Flag("column", "Column to describe").Default("rt").Strings()
	skipPractice := cmd.Flag("skip-practice", "Ignore the practice trials").Bool()
	overrides := cmd.Flag("overrides", "YAML file overriding the rules").String()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		tbl, err := root.LoadTrials(*input, &root.TrialsOptions{
			Experiments:   []string{*experiment},
			Clean:         true,
			OverridesPath: *overrides,
		})
		if err != nil {
			return err
		}
		ovr, err := root.LoadOverrides(*overrides)
		if err != nil {
			return err
		}
		records, err := summary.Experiment(tbl, *experiment, *columns, &summary.Options{
			SkipPractice: *skipPractice,
			Logger:       log.Log,
			Overrides:    ovr,
		})
		if err != nil {
			return err
		}
		output.SectionTitle("Summary of " + *experiment)
		for _, record := range records {
			output.SummaryRecord(record)
		}
		return nil
	})
}
