package regress

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/contrast"
	"github.com/expfactory/expanalysis/internal/statsx"
)

func init() {
	cmd := root.Command("regress", "Fit a regression formula such as 'rt ~ C(condition)'")
	input := cmd.Arg("input", "Results or trials file to read").Required().String()
	formula := cmd.Arg("formula", "Formula to fit").Required().String()
	experiments := cmd.Flag("experiment", "Experiment to extract from raw results").Short('e').Strings()
	exclude := cmd.Flag("exclude", "Drop rows where column=value").Strings()
	maxIterations := cmd.Flag("max-iterations", "Maximum number of IRLS iterations").Default("100").Int()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		tbl, err := root.LoadTrials(*input, &root.TrialsOptions{Experiments: *experiments, Clean: true})
		if err != nil {
			return err
		}
		excluded, err := root.ParseExclude(*exclude)
		if err != nil {
			return err
		}
		backend := statsx.Gonum{MaxIterations: *maxIterations}
		result, err := contrast.Regression(tbl, *formula, excluded, backend)
		if err != nil {
			return err
		}
		fmt.Print(result.Summary())
		return nil
	})
}
