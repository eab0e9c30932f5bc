package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mdpages/internal/config"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/logfields"
	"git.home.luguber.info/inful/mdpages/internal/metrics"
	"git.home.luguber.info/inful/mdpages/internal/site"
)

// Builder renders one site. A Builder may run Build more than once; each call
// has its own results.
type Builder struct {
	site     *site.Context
	recorder metrics.Recorder
	buildID  string
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithBuildID fixes the build ID instead of generating one per build.
func WithBuildID(id string) Option {
	return func(b *Builder) { b.buildID = id }
}

// New creates a Builder for s.
func New(s *site.Context, opts ...Option) *Builder {
	b := &Builder{site: s, recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the site in its configured mode. The returned report is
// non-nil even when err is set and lists every page that was written.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	cfg := b.site.Config()

	id := b.buildID
	if id == "" {
		id = uuid.NewString()
	}
	logger := slog.Default().With(
		logfields.BuildID(id),
		logfields.Site(cfg.Source),
		logfields.Mode(string(cfg.Mode)),
	)
	logger.InfoContext(ctx, "Build started", slog.String("content", cfg.ContentPath), slog.String("output", cfg.OutputPath))

	r := &run{
		site:     b.site,
		recorder: b.recorder,
		logger:   logger,
		mode:     cfg.Mode,
		results:  newCollector(),
	}

	var err error
	switch cfg.Mode {
	case config.ModeGraph:
		err = r.graph(ctx)
	case config.ModeScan:
		err = r.scan(ctx)
	default:
		err = derrors.ConfigError(fmt.Sprintf("unsupported build mode %q", cfg.Mode)).Build()
	}

	report := &Report{
		BuildID: id,
		Mode:    cfg.Mode,
		Results: r.results.sorted(),
	}
	report.MissingIndex = MissingIndex(report.Results)
	for _, dir := range report.MissingIndex {
		logger.WarnContext(ctx, "Directory needs an index page", logfields.Directory(dir))
	}
	report.Duration = time.Since(start)

	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.SetMissingIndex(len(report.MissingIndex))
	switch {
	case err != nil:
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		logger.ErrorContext(ctx, "Build failed", logfields.Count(len(report.Results)), logfields.Error(err))
	case len(report.MissingIndex) > 0:
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeWarning)
	default:
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	}
	if err == nil {
		logger.InfoContext(ctx, "Build completed",
			logfields.Count(len(report.Results)),
			logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	}
	return report, err
}

// graph renders the header, then the base page; handlers in the base page
// pull in everything else.
func (r *run) graph(ctx context.Context) error {
	if err := r.renderHeader(ctx); err != nil {
		return err
	}
	base := r.site.Config().BasePath()
	if base == "" {
		return derrors.ConfigError("graph mode requires base_file").Build()
	}
	_, err := r.RenderPage(ctx, base)
	return err
}

// scan renders every discovered document as an independent page. Failures
// are collected and returned together once all tasks have finished.
func (r *run) scan(ctx context.Context) error {
	if err := r.renderHeader(ctx); err != nil {
		return err
	}
	cfg := r.site.Config()
	docs, err := discover(cfg.ContentPath, cfg.OutputPath, cfg.HeaderPath())
	if err != nil {
		return err
	}
	r.logger.DebugContext(ctx, "Discovered documents", logfields.Count(len(docs)))

	results := runPages(ctx, docs, r.site.Workers(), r.processPage)
	return errors.Join(results...)
}

func (r *run) renderHeader(ctx context.Context) error {
	path := r.site.Config().HeaderPath()
	if path == "" {
		return nil
	}
	header, err := r.RenderFragment(ctx, path)
	if err != nil {
		return err
	}
	r.header = &header
	return nil
}
