package build

import "errors"

var (
	// ErrInclusionCycle is returned when a document is rendered again while
	// one of its own renders is still in progress.
	ErrInclusionCycle = errors.New("inclusion cycle")

	// ErrOutsideContent is returned for pages that do not live below the content root.
	ErrOutsideContent = errors.New("document outside content root")
)
