package domain

import "errors"

// Sentinel errors for the failure modes the service distinguishes.
// Callers wrap them with %w and check with errors.Is; the API layer maps
// each to a distinct human-readable message.
var (
	// ErrDataLoad reports missing or malformed training data.
	ErrDataLoad = errors.New("training data load failed")

	// ErrPersist reports a failure writing the classifier artifact.
	ErrPersist = errors.New("artifact persist failed")

	// ErrArtifactLoad reports a missing, unreadable or incompatible
	// artifact at inference time.
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrInvalidInput reports empty complaint text reaching the core.
	ErrInvalidInput = errors.New("complaint text is empty")

	// ErrInvalidStore reports a submission store missing required columns.
	ErrInvalidStore = errors.New("submission store has invalid structure")
)
