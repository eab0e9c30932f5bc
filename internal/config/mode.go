package config

import "strings"

// BuildMode selects how the orchestrator discovers documents.
type BuildMode string

const (
	// ModeGraph renders the base document and follows include/index directives.
	ModeGraph BuildMode = "graph"
	// ModeScan converts every markup file below the content root independently.
	ModeScan BuildMode = "scan"
)

// NormalizeBuildMode returns the canonical mode for raw input, or "" when unknown.
func NormalizeBuildMode(raw string) BuildMode {
	switch BuildMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeGraph:
		return ModeGraph
	case ModeScan:
		return ModeScan
	default:
		return ""
	}
}
