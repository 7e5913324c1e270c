// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package engine provides the default implementation of the sorting
// visualizer: five instrumented algorithms behind the step-emit contract
// and the playback controller that owns the single active run.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/AccelByte/arena-client-core/pkg/sortviz"
)

// runHandle is the cancellable execution context of one in-progress
// algorithm run. Cancellation is cooperative: the flag is checked before
// every step and at every suspension point.
type runHandle struct {
	id        string
	algorithm string
	startedAt time.Time

	cancelled  atomic.Bool
	cancelCh   chan struct{}
	cancelOnce sync.Once
	done       chan struct{}
}

func newRunHandle(algorithm string) *runHandle {
	return &runHandle{
		id:        ulid.Make().String(),
		algorithm: algorithm,
		startedAt: time.Now(),
		cancelCh:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *runHandle) requestCancel() {
	r.cancelOnce.Do(func() {
		r.cancelled.Store(true)
		close(r.cancelCh)
	})
}

func (r *runHandle) isCancelled() bool {
	return r.cancelled.Load()
}

// emitFunc builds the step emitter bound to one run. The emitter copies the
// snapshot defensively, folds the step into the controller state (which
// refuses it if the run has been superseded), hands it to the renderer and
// then suspends for the configured delay, observing cancellation both
// before the step and across the suspension.
func (c *Controller) emitFunc(run *runHandle) sortviz.EmitFunc {
	return func(snapshot []int, compared []int, resolved []int, tag sortviz.StepTag) error {
		if run.isCancelled() {
			return sortviz.ErrRunCancelled
		}

		step := sortviz.Step{
			Snapshot: append([]int(nil), snapshot...),
			Compared: append([]int(nil), compared...),
			Resolved: append([]int(nil), resolved...),
			Tag:      tag,
		}

		if !c.applyStep(run, step) {
			return sortviz.ErrRunCancelled
		}
		if c.renderer != nil {
			c.renderer.Render(step)
		}

		timer := time.NewTimer(c.stepDelay())
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-run.cancelCh:
			return sortviz.ErrRunCancelled
		}
		if run.isCancelled() {
			return sortviz.ErrRunCancelled
		}
		return nil
	}
}

// emitComplete emits the final step marking every index resolved.
func emitComplete(arr []int, emit sortviz.EmitFunc) error {
	all := make([]int, len(arr))
	for i := range all {
		all[i] = i
	}
	return emit(arr, nil, all, sortviz.TagComplete)
}
