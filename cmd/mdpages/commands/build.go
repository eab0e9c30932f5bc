package commands

import (
	"context"
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdpages/internal/build"
	"git.home.luguber.info/inful/mdpages/internal/config"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/logfields"
	"git.home.luguber.info/inful/mdpages/internal/metrics"
	"git.home.luguber.info/inful/mdpages/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Configs []string `arg:"" optional:"" name:"config" help:"Site configuration files (default: mdpages.yaml)" type:"path"`
	Mode    string   `help:"Override the build mode (graph or scan)"`
	Workers int      `short:"w" help:"Override the scan worker count"`
}

// Run builds every named site. Sites are independent: a failing site does
// not stop the ones after it, but the command fails if any site failed.
func (b *BuildCmd) Run(g *Global, _ *CLI) error {
	configs := b.Configs
	if len(configs) == 0 {
		configs = []string{DefaultConfig}
	}

	var errs []error
	for _, path := range configs {
		if err := b.buildSite(context.Background(), g, path); err != nil {
			g.logger().Error("Site build failed", logfields.Site(path), logfields.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *BuildCmd) buildSite(ctx context.Context, g *Global, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := b.applyOverrides(cfg); err != nil {
		return err
	}

	s, err := site.New(cfg)
	if err != nil {
		return err
	}

	reg := prom.NewRegistry()
	report, buildErr := build.New(s, build.WithRecorder(metrics.NewPrometheusRecorder(reg))).Build(ctx)
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			g.logger().Warn("Failed to write metrics", logfields.Path(cfg.MetricsFile), logfields.Error(err))
		}
	}

	printReport(g, path, report)
	return buildErr
}

func (b *BuildCmd) applyOverrides(cfg *config.Site) error {
	if b.Mode != "" {
		cfg.Mode = config.NormalizeBuildMode(b.Mode)
	}
	if b.Workers > 0 {
		cfg.Workers = b.Workers
	}
	if err := cfg.Validate(); err != nil {
		return derrors.WrapError(err, derrors.CategoryValidation, "invalid command line override").
			WithContext("path", cfg.Source).
			Build()
	}
	return nil
}

func printReport(g *Global, path string, report *build.Report) {
	if report == nil {
		return
	}
	out := g.out()
	_, _ = fmt.Fprintf(out, "%s: %d pages written (%s mode, build %s)\n", path, len(report.Results), report.Mode, report.BuildID)
	for _, dir := range report.MissingIndex {
		_, _ = fmt.Fprintf(out, "NEEDS INDEX: %s\n", dir)
	}
}
