package handler

import (
	"context"

	derrors "git.home.luguber.info/inful/mdpages/internal/foundation/errors"
)

type assetConfig struct {
	Path string `yaml:"path"`
	Alt  string `yaml:"alt"`
}

func renderAsset(_ context.Context, req Request) (string, error) {
	var cfg assetConfig
	if err := decodeConfig(req, &cfg); err != nil {
		return "", err
	}
	if cfg.Path == "" {
		return "", missingField(req, "path")
	}

	img, err := req.Site.Assets().Image(cfg.Path, cfg.Alt)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryFileSystem, "embed asset").
			WithContext("document", req.Document).
			WithContext("path", req.Site.Assets().Resolve(cfg.Path)).
			Build()
	}
	return img + "\n", nil
}
