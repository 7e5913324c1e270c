// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package sortviz defines the contracts of the step-driven sorting
// visualizer: the step data consumed by renderers, the emit contract every
// algorithm honors, and the playback statistics.
package sortviz

import "errors"

// StepTag is the semantic label of one atomic visualizable action.
type StepTag string

const (
	TagComparing   StepTag = "comparing"
	TagSwapping    StepTag = "swapping"
	TagSelecting   StepTag = "selecting"
	TagShifting    StepTag = "shifting"
	TagPlaced      StepTag = "placed"
	TagMerging     StepTag = "merging"
	TagPivot       StepTag = "pivot"
	TagPivotPlaced StepTag = "pivot_placed"
	TagSorted      StepTag = "sorted"
	TagComplete    StepTag = "complete"
)

// Step is one renderable unit of algorithm progress. The snapshot is a
// defensive copy; it is immutable once emitted and not retained by the
// engine beyond the latest step.
type Step struct {
	Snapshot []int
	Compared []int
	Resolved []int
	Tag      StepTag
}

// PlaybackStats counters are updated by step tags during a run and reset
// at run start. Comparisons and Swaps are monotonically non-decreasing
// over one run; ElapsedMs is finalized by the complete step.
type PlaybackStats struct {
	Comparisons int
	Swaps       int
	ElapsedMs   int64
}

// Renderer is the caller-supplied visualization surface.
type Renderer interface {
	Render(step Step)
}

// EmitFunc is the single contract every algorithm implementation honors.
// One call per atomic action; the call suspends until the configured delay
// elapses or cancellation is observed, in which case it returns
// ErrRunCancelled and the algorithm must unwind immediately.
type EmitFunc func(snapshot []int, compared []int, resolved []int, tag StepTag) error

// AlgorithmFunc sorts arr in place, emitting a step per comparison and
// mutation and one final complete step covering every index. A non-nil
// return is either ErrRunCancelled or an internal failure; partial
// progress stays rendered either way.
type AlgorithmFunc func(arr []int, emit EmitFunc) error

// ErrRunCancelled is the internal control-flow signal used to unwind an
// in-progress run cleanly. It never surfaces to the user and never
// propagates past the playback controller.
var ErrRunCancelled = errors.New("visualization run cancelled")

var (
	ValidationErrorUnknownAlgorithm = errors.New("unknown sorting algorithm")
	ValidationErrorSequenceEmpty    = errors.New("sequence must contain at least one value")
	ValidationErrorSequenceLength   = errors.New("sequence has too many elements")
	ValidationErrorSequenceValue    = errors.New("sequence values must be positive integers within the allowed range")
	ValidationErrorSequenceNumeric  = errors.New("sequence values must be numeric")
	ValidationErrorSequenceSize     = errors.New("sequence size is out of range")

	// ErrEmptySequence is returned when a run is started on an empty
	// sequence.
	ErrEmptySequence = errors.New("no sequence to sort")
)
