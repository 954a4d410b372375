// Package root contains the root command and the helpers shared by
// the subcommands.
package root

import (
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/expfactory/expanalysis/config"
	"github.com/expfactory/expanalysis/internal/log/handlers/cli"
	"github.com/expfactory/expanalysis/internal/version"
	"github.com/mattn/go-isatty"
)

// Cmd is the root command
var Cmd = kingpin.New("expanalysis", "Analyze Experiment Factory results.")

// Command is syntax sugar for defining sub-commands
var Command = Cmd.Command

// Init should be called by all subcommands that care about the configuration
var Init func() (*config.Config, error)

func init() {
	configPath := Cmd.Flag("config", "Set a custom config file path").Short('c').String()
	verbose := Cmd.Flag("verbose", "Enable verbose log output.").Short('v').Bool()

	Cmd.PreAction(func(ctx *kingpin.ParseContext) error {
		log.SetHandler(cli.Default)
		if *verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("expanalysis version %s", version.Version)
		}

		Init = func() (*config.Config, error) {
			if *configPath != "" {
				log.Debugf("Reading config file from %s", *configPath)
				return config.ReadConfig(*configPath)
			}
			log.Debug("Using the default config")
			return config.ParseConfig([]byte(`{}`))
		}

		return nil
	})
}

// PromptAccessToken asks the user for the access token when the
// standard input is a terminal and returns an empty string otherwise.
func PromptAccessToken() (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", nil
	}
	var token string
	prompt := &survey.Password{
		Message: "Experiment Factory access token:",
	}
	if err := survey.AskOne(prompt, &token); err != nil {
		return "", err
	}
	return strings.TrimSpace(token), nil
}
