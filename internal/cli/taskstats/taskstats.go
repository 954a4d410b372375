package taskstats

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/summary"
)

func init() {
	cmd := root.Command("taskstats", "Show how long workers spend on each task")
	input := cmd.Arg("input", "Results file to read").Required().String()
	experiments := cmd.Flag("experiment", "Experiment to analyze (default: all)").Short('e').Strings()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		tbl, err := root.LoadTrials(*input, &root.TrialsOptions{Experiments: *experiments})
		if err != nil {
			return err
		}
		stats, err := summary.TaskStats(tbl)
		if err != nil {
			return err
		}
		output.SectionTitle("Task statistics")
		for _, stat := range stats {
			output.Table(stat.Experiment, log.Fields{
				"experiment":          stat.Experiment,
				"minutes_mean":        stat.Minutes.Mean,
				"minutes_std":         stat.Minutes.Std,
				"instructions_mean_s": stat.InstructionSeconds.Mean,
				"instructions_std_s":  stat.InstructionSeconds.Std,
				"workers":             stat.Minutes.N,
			})
		}
		return nil
	})
}
