package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdpages/internal/foundation/errors"
)

// MarkupExtension is the file extension of source documents.
const MarkupExtension = ".md"

// Site represents one site configuration file.
type Site struct {
	SyntaxTheme string            `yaml:"syntax_theme"`
	SyntaxDir   string            `yaml:"syntax_dir,omitempty"`
	ContentPath string            `yaml:"content_path"`
	OutputPath  string            `yaml:"output_path"`
	BaseFile    string            `yaml:"base_file,omitempty"`   // relative to ContentPath
	HeaderFile  string            `yaml:"header_file,omitempty"` // relative to ContentPath
	Mode        BuildMode         `yaml:"mode,omitempty"`
	Workers     int               `yaml:"workers,omitempty"`
	MetricsFile string            `yaml:"metrics_file,omitempty"`
	Handlers    map[string]string `yaml:"handlers,omitempty"` // alias -> builtin handler name

	// Source is the configuration file this site was loaded from.
	Source string `yaml:"-"`
}

// BasePath returns the path of the base document, or "" when none is configured.
func (s Site) BasePath() string {
	if s.BaseFile == "" {
		return ""
	}
	return filepath.Join(s.ContentPath, s.BaseFile)
}

// HeaderPath returns the path of the header document, or "" when none is configured.
func (s Site) HeaderPath() string {
	if s.HeaderFile == "" {
		return ""
	}
	return filepath.Join(s.ContentPath, s.HeaderFile)
}

// Load reads, expands, defaults and validates a site configuration file.
//
// Relative paths are resolved against the directory holding the file. A .env
// file next to the configuration or in the working directory is loaded first;
// variables already present in the environment win.
func Load(configPath string) (*Site, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read site configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	site, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse site configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	site.Source = configPath
	site.resolvePaths(filepath.Dir(configPath))

	if err := site.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid site configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}
	return site, nil
}

// Parse decodes a site configuration document and applies defaults.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("unmarshal site config: %w", err)
	}
	site.ApplyDefaults()
	return &site, nil
}

// ApplyDefaults fills unset fields.
func (s *Site) ApplyDefaults() {
	if s.SyntaxTheme == "" {
		s.SyntaxTheme = "github"
	}
	if s.ContentPath == "" {
		s.ContentPath = "content"
	}
	if s.OutputPath == "" {
		s.OutputPath = "output"
	}
	if s.Mode == "" {
		s.Mode = ModeScan
		if s.BaseFile != "" {
			s.Mode = ModeGraph
		}
	} else if m := NormalizeBuildMode(string(s.Mode)); m != "" {
		s.Mode = m
	}
	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
}

// Validate checks field relationships that defaults cannot repair.
func (s *Site) Validate() error {
	if NormalizeBuildMode(string(s.Mode)) == "" {
		return fmt.Errorf("unknown mode %q (expected graph or scan)", s.Mode)
	}
	if s.Mode == ModeGraph && s.BaseFile == "" {
		return fmt.Errorf("mode graph requires base_file")
	}
	for _, rel := range []string{s.BaseFile, s.HeaderFile} {
		if rel == "" {
			continue
		}
		if filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(rel), "..") {
			return fmt.Errorf("document path %q must be relative to content_path", rel)
		}
		if !strings.EqualFold(filepath.Ext(rel), MarkupExtension) {
			return fmt.Errorf("document path %q must have the %s extension", rel, MarkupExtension)
		}
	}
	if filepath.Clean(s.ContentPath) == filepath.Clean(s.OutputPath) {
		return fmt.Errorf("output_path must differ from content_path")
	}
	for alias, target := range s.Handlers {
		if alias == "" || target == "" {
			return fmt.Errorf("handler alias %q -> %q must name both sides", alias, target)
		}
	}
	return nil
}

func (s *Site) resolvePaths(baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	s.ContentPath = resolve(s.ContentPath)
	s.OutputPath = resolve(s.OutputPath)
	s.SyntaxDir = resolve(s.SyntaxDir)
	s.MetricsFile = resolve(s.MetricsFile)
}

// loadEnvFiles loads the first .env/.env.local found next to the config or in
// the working directory. Missing files are not an error.
func loadEnvFiles(configDir string) {
	candidates := []string{
		filepath.Join(configDir, ".env"),
		filepath.Join(configDir, ".env.local"),
		".env",
		".env.local",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}
