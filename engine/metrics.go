package engine

import "time"

// MetricsRecorder receives pass-level measurements from the coordinator.
// The root package's MetricsCollector is a superset of this interface.
type MetricsRecorder interface {
	// RecordPass is called after a pass completes and its snapshot is
	// published. items is the committed size the pass ran over, matches
	// the number of items that matched.
	RecordPass(duration time.Duration, items uint64, matches int)

	// RecordPassCanceled is called when an in-flight pass is abandoned in
	// favor of fresher input.
	RecordPassCanceled()

	// RecordPublish is called for every published snapshot, including
	// identity snapshots for the empty query.
	RecordPublish(results int)
}

// NoopMetricsRecorder discards all measurements.
type NoopMetricsRecorder struct{}

func (NoopMetricsRecorder) RecordPass(time.Duration, uint64, int) {}
func (NoopMetricsRecorder) RecordPassCanceled()                   {}
func (NoopMetricsRecorder) RecordPublish(int)                     {}
