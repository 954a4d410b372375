package main

import (
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/app"
	_ "github.com/expfactory/expanalysis/internal/cli/contrast"
	_ "github.com/expfactory/expanalysis/internal/cli/dv"
	_ "github.com/expfactory/expanalysis/internal/cli/extract"
	_ "github.com/expfactory/expanalysis/internal/cli/fetch"
	_ "github.com/expfactory/expanalysis/internal/cli/filter"
	_ "github.com/expfactory/expanalysis/internal/cli/regress"
	_ "github.com/expfactory/expanalysis/internal/cli/summary"
	_ "github.com/expfactory/expanalysis/internal/cli/taskstats"
	_ "github.com/expfactory/expanalysis/internal/cli/version"
)

func main() {
	err := app.Run()
	if err == nil {
		return
	}
	log.WithError(err).Fatal("main exit")
}
