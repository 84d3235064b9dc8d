package recorder

import "context"

// Recorder captures a lecture from the default microphone into a
// timestamped audio file. Exactly one platform backend is selected per
// process.
type Recorder interface {
	// Name identifies the selected backend.
	Name() string
	// CheckCapability verifies the capture utility or device can be
	// used at all, returning an actionable remediation error otherwise.
	CheckCapability() error
	// Record blocks until ctx is cancelled by the operator's interrupt.
	// Cancellation is the normal termination path: the partially written
	// file is valid output and its path is returned.
	Record(ctx context.Context, outputDir string) (string, error)
}
