package fetch

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/internal/cli/root"
	"github.com/expfactory/expanalysis/internal/model"
	"github.com/expfactory/expanalysis/internal/output"
	"github.com/expfactory/expanalysis/internal/results"
	"github.com/expfactory/expanalysis/internal/resultsapi"
	"github.com/expfactory/expanalysis/internal/tabio"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

func init() {
	cmd := root.Command("fetch", "Fetch results from the Experiment Factory API")
	outputPath := cmd.Flag("output", "Write the raw results to this JSON file").Short('o').Required().String()
	tablePath := cmd.Flag("table", "Also export the cleaned results table to this file").String()
	token := cmd.Flag("token", "Override the configured access token").String()
	baseURL := cmd.Flag("url", "Override the configured results URL").String()
	maxPages := cmd.Flag("max-pages", "Override the configured maximum number of pages").Int()

	cmd.Action(func(_ *kingpin.ParseContext) error {
		config, err := root.Init()
		if err != nil {
			return err
		}
		accessToken := *token
		if accessToken == "" {
			if accessToken, err = config.AccessTokenValue(); err != nil {
				return err
			}
		}
		if accessToken == "" {
			if accessToken, err = root.PromptAccessToken(); err != nil {
				return err
			}
		}

		// configure the client
		client := resultsapi.NewClient(accessToken, log.Log)
		client.BaseURL = config.ResultsURL
		if *baseURL != "" {
			client.BaseURL = *baseURL
		}
		client.MaxPages = config.MaxPages
		if *maxPages > 0 {
			client.MaxPages = *maxPages
		}
		client.HTTPClient = &http.Client{Timeout: config.Timeout()}
		if config.UserAgent != "" {
			client.UserAgent = config.UserAgent
		}
		bar := newProgressBar()
		client.OnPage = func(page, total int) {
			bar.ChangeMax(total)
			_ = bar.Set(page)
		}

		// fetch until done or interrupted
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		records, err := client.FetchAll(ctx)
		_ = bar.Finish()
		if err != nil {
			return savePartialResults(*outputPath, records, err)
		}
		if err := tabio.WriteRecords(*outputPath, records); err != nil {
			return errors.Wrap(err, "writing results")
		}
		output.Table("fetched results", log.Fields{
			"records": len(records),
			"output":  *outputPath,
		})

		// optionally export the results table
		if *tablePath == "" {
			return nil
		}
		dataset, err := results.NewDataset(records, &results.LoadOptions{Clean: true, Logger: log.Log})
		if err != nil {
			return err
		}
		return dataset.Export(*tablePath, false)
	})
}

// savePartialResults writes the records fetched before the failure, if
// any, and returns the wrapped fetch error.
func savePartialResults(outputPath string, records []model.RawResult, fetchErr error) error {
	if len(records) <= 0 {
		return errors.Wrap(fetchErr, "fetching results")
	}
	log.WithError(fetchErr).Warnf("fetch interrupted: saving %d partial results", len(records))
	if err := tabio.WriteRecords(outputPath, records); err != nil {
		return errors.Wrap(err, "writing partial results")
	}
	output.Table("fetched partial results", log.Fields{
		"records": len(records),
		"output":  outputPath,
	})
	return errors.Wrap(fetchErr, "fetching results")
}

func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(
		1,
		progressbar.OptionSetDescription("fetching pages"),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetWriter(os.Stderr),
	)
}
