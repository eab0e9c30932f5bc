package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/mdpages/internal/compose"
	"git.home.luguber.info/inful/mdpages/internal/config"
	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
	"git.home.luguber.info/inful/mdpages/internal/logfields"
	"git.home.luguber.info/inful/mdpages/internal/metrics"
	"git.home.luguber.info/inful/mdpages/internal/page"
	"git.home.luguber.info/inful/mdpages/internal/pipeline"
	"git.home.luguber.info/inful/mdpages/internal/site"
	"git.home.luguber.info/inful/mdpages/internal/workerpool"
)

// run is the state of one Build call. It is the handler.Renderer that
// include and index handlers call back into.
type run struct {
	site     *site.Context
	recorder metrics.Recorder
	logger   *slog.Logger
	mode     config.BuildMode
	results  *collector

	// header is set before any page task starts and only read afterwards.
	header *string
}

// RenderFragment renders a document body for inclusion. Each call renders
// the document again.
func (r *run) RenderFragment(ctx context.Context, path string) (string, error) {
	ctx, err := enter(ctx, path)
	if err != nil {
		return "", err
	}
	source, err := readSource(path)
	if err != nil {
		return "", err
	}
	return r.site.Pipeline().Fragment(ctx, r, path, source)
}

// RenderPage returns the metadata of a page. In graph mode the page is also
// written and recorded; in scan mode every page is written by its own task,
// so only the metadata is extracted here.
func (r *run) RenderPage(ctx context.Context, path string) (*page.Metadata, error) {
	if r.mode == config.ModeGraph {
		return r.processPage(ctx, path)
	}

	ctx, err := enter(ctx, path)
	if err != nil {
		return nil, err
	}
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	out, err := r.site.Pipeline().Process(ctx, r, path, source)
	if err != nil {
		return nil, err
	}
	return out.Metadata, nil
}

// processPage renders, composes and writes one page. Nothing is written when
// any step fails.
func (r *run) processPage(ctx context.Context, path string) (meta *page.Metadata, err error) {
	start := time.Now()
	defer func() {
		result := metrics.ResultSuccess
		if err != nil {
			result = metrics.ResultFailed
		}
		r.recorder.ObserveDocumentDuration(string(r.mode), time.Since(start))
		r.recorder.IncDocumentResult(string(r.mode), result)
	}()

	ctx, err = enter(ctx, path)
	if err != nil {
		return nil, err
	}
	output, err := r.outputPath(path)
	if err != nil {
		return nil, err
	}
	source, err := readSource(path)
	if err != nil {
		return nil, err
	}
	out, err := r.site.Pipeline().Process(ctx, r, path, source)
	if err != nil {
		return nil, err
	}
	html, err := r.compose(path, out)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "create output directory").
			WithContext("document", path).
			WithContext("path", filepath.Dir(output)).
			Build()
	}
	if err := os.WriteFile(output, []byte(html), 0o644); err != nil { //nolint:gosec // published pages are world-readable
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "write page").
			WithContext("document", path).
			WithContext("path", output).
			Build()
	}

	r.results.add(Result{Source: path, Output: output, Metadata: out.Metadata})
	r.logger.DebugContext(ctx, "Wrote page",
		logfields.Document(path),
		logfields.Output(output),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out.Metadata, nil
}

// compose loads the page's stylesheet, skeleton and favicon and fills the skeleton.
func (r *run) compose(path string, out *pipeline.Output) (string, error) {
	meta := out.Metadata
	style, err := os.ReadFile(meta.Style)
	if err != nil {
		return "", ioError(err, "read stylesheet", path, meta.Style)
	}
	skeleton, err := os.ReadFile(meta.Template)
	if err != nil {
		return "", ioError(err, "read page template", path, meta.Template)
	}
	favicon, err := r.site.Assets().Base64(meta.Favicon)
	if err != nil {
		return "", ioError(err, "read favicon", path, r.site.Assets().Resolve(meta.Favicon))
	}

	return compose.Fill(string(skeleton), compose.Fragments{
		Stylesheet:  compose.Text(string(style)),
		Content:     compose.Text(out.HTML),
		Header:      r.header,
		Favicon:     compose.Text(favicon),
		Title:       compose.Text(meta.Title),
		Description: compose.Text(meta.Description),
	}), nil
}

// outputPath mirrors path under the output root with an .html extension.
func (r *run) outputPath(path string) (string, error) {
	cfg := r.site.Config()
	rel, err := filepath.Rel(cfg.ContentPath, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", derrors.WrapError(ErrOutsideContent, derrors.CategoryStructure, "cannot mirror document").
			WithContext("document", path).
			WithContext("path", cfg.ContentPath).
			Build()
	}
	return filepath.Join(cfg.OutputPath, strings.TrimSuffix(rel, filepath.Ext(rel))+".html"), nil
}

func readSource(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError(err, "read document", path, path)
	}
	return source, nil
}

func ioError(err error, msg, document, path string) error {
	return derrors.WrapError(err, derrors.CategoryFileSystem, msg).
		WithContext("document", document).
		WithContext("path", path).
		Build()
}

// runPages processes pages on the worker pool and returns their errors in
// input order. A panicking task is reported as a join error.
func runPages(ctx context.Context, docs []string, workers int, fn func(context.Context, string) (*page.Metadata, error)) []error {
	results := workerpool.RunOrdered(ctx, docs, workers, func(ctx context.Context, path string) (meta *page.Metadata, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = derrors.JoinError("page task failed").
					WithCause(fmt.Errorf("panic: %v", p)).
					WithContext("document", path).
					Build()
			}
		}()
		return fn(ctx, path)
	})
	return workerpool.Errors(results)
}
