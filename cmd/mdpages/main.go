package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdpages/cmd/mdpages/commands"
	"git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("mdpages"),
		kong.Description("Render a tree of Markdown documents into static HTML pages."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	globals := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(globals, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
