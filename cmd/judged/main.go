// Command judged is the submission-pipeline daemon: it loads configuration,
// constructs a judge.Client (which starts the single submission worker),
// and blocks. Per spec.md §1, the HTTP surface that would call into this
// Client is an external collaborator and out of scope here — this binary
// exists so the core can be run standalone and embedded by that layer.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/magurofly/magjudge/internal/version"
)

type cmdGlobal struct {
	flagConfig string
}

func main() {
	runCmd := cmdRun{global: &cmdGlobal{}}
	app := runCmd.Command()
	app.Use = "judged"
	app.Short = "magjudge submission-pipeline daemon"
	app.Long = `Description:
  magjudge submission-pipeline daemon

  Loads config.toml, starts the single submission worker, and exposes
  nothing else: the HTTP surface that submits to and polls this process
  is a separate, external collaborator (spec.md §1).
`
	app.SilenceUsage = true
	app.CompletionOptions = cobra.CompletionOptions{DisableDefaultCmd: true}

	app.PersistentFlags().StringVar(&runCmd.global.flagConfig, "config", "config.toml", "Path to the configuration file")

	app.Version = version.Version
	app.SetVersionTemplate("{{.Version}}\n")

	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
