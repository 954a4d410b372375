package contrast

import (
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/contrast"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/statsx"
)

func init() {
	cmd := root.Command("contrast", "Compare a dependent and an independent column")
	input := cmd.Arg("input", "Results or trials file to read").Required().String()
	dep := cmd.Arg("dependent", "Dependent column").Required().String()
	ind := cmd.Arg("independent", "Independent column").Required().String()
	experiments := cmd.Flag("experiment", "Experiment to extract from raw results").Short('e').Strings()
	exclude := cmd.Flag("exclude", "Drop rows where column=value").Strings()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		tbl, err := root.LoadTrials(*input, &root.TrialsOptions{Experiments: *experiments, Clean: true})
		if err != nil {
			return err
		}
		excluded, err := root.ParseExclude(*exclude)
		if err != nil {
			return err
		}
		result, err := contrast.Contrast(tbl, *dep, *ind, excluded, statsx.Gonum{}, log.Log)
		if err != nil {
			return err
		}
		fields := log.Fields{"kind": result.Kind, "n": result.N}
		if result.Correlation != nil {
			fields["correlation"] = *result.Correlation
		}
		if result.TStatistic != nil {
			fields["t_statistic"] = *result.TStatistic
		}
		if result.PValue != nil {
			fields["p_value"] = *result.PValue
		}
		if len(result.Levels) > 0 {
			fields["levels"] = result.Levels
		}
		output.Table(result.String(), fields)
		return nil
	})
}
