package handler

import (
	"context"
	"path/filepath"
)

type includeConfig struct {
	Path string `yaml:"path"`
}

// renderInclude inlines the rendered body of another document. Each
// inclusion renders the target again.
func renderInclude(ctx context.Context, req Request) (string, error) {
	var cfg includeConfig
	if err := decodeConfig(req, &cfg); err != nil {
		return "", err
	}
	if cfg.Path == "" {
		return "", missingField(req, "path")
	}
	return req.Renderer.RenderFragment(ctx, filepath.Join(req.Site.ContentPath(), cfg.Path))
}
