package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdpages/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Path  string `arg:"" optional:"" name:"path" help:"Where to write the configuration" default:"mdpages.yaml" type:"path"`
	Force bool   `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	out := g.out()
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", i.Path)
	if err := config.Init(i.Path, i.Force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
