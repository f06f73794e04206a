package scoring

import (
	"errors"
)

// Sentinel kinds for scoring errors.
var (
	// ErrZeroVolume is returned when the transform is invoked with no
	// submissions. Correct aggregation never produces an empty group, so
	// callers must treat this as a programming error, not data.
	ErrZeroVolume = errors.New("zero submission volume")

	// ErrMissingBaseline is returned when the stat stream references a job
	// absent from the materialized baseline. Both derive from the same
	// filtered set, so a miss means the two aggregations disagree.
	ErrMissingBaseline = errors.New("missing job baseline")
)
