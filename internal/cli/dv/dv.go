package dv

import (
	"sort"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/summary"
)

func init() {
	cmd := root.Command("dv", "Compute the DVs of each worker of an experiment")
	input := cmd.Arg("input", "Results or trials file to read").Required().String()
	experiment := cmd.Flag("experiment", "Experiment to analyze").Short('e').Required().String()
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
		byWorker, err := summary.DV(tbl, *experiment, &summary.Options{Logger: log.Log, Overrides: ovr})
		if err != nil {
			return err
		}
		var workers []string
		for worker := range byWorker {
			workers = append(workers, worker)
		}
		sort.Strings(workers)
		output.SectionTitle("DVs of " + *experiment)
		for _, worker := range workers {
			output.DVResult(worker, byWorker[worker])
		}
		return nil
	})
}
