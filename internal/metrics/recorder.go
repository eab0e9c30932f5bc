package metrics

import "time"

// ResultLabel enumerates document result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// BuildOutcomeLabel is the final status of a site build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeWarning BuildOutcomeLabel = "warning" // built, but directories lack an index
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for document and build metrics.
// Implementations must be safe for concurrent use by document workers.
type Recorder interface {
	ObserveDocumentDuration(mode string, d time.Duration)
	IncDocumentResult(mode string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetMissingIndex(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDocumentDuration(string, time.Duration) {}
func (NoopRecorder) IncDocumentResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)            {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)             {}
func (NoopRecorder) SetMissingIndex(int)                           {}
