// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"errors"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/arena-client-core/pkg/config"
	"github.com/AccelByte/arena-client-core/pkg/constants"
	"github.com/AccelByte/arena-client-core/pkg/envelope"
	"github.com/AccelByte/arena-client-core/pkg/mathutil"
	"github.com/AccelByte/arena-client-core/pkg/metrics"
	"github.com/AccelByte/arena-client-core/pkg/sortviz"
)

// cancelAckTimeout bounds how long sequence replacement waits for a
// cancelled run to acknowledge before proceeding anyway.
const cancelAckTimeout = 2 * time.Second

const defaultSpeedPercent = 50

// Notifier surfaces user-visible messages for rejected input and
// unexpected run failures.
type Notifier interface {
	Error(message string)
}

// PlaybackView is a race-free copy of the rendering-facing state.
type PlaybackView struct {
	Sequence     []int
	Baseline     []int
	Resolved     []int
	Compared     []int
	Stats        sortviz.PlaybackStats
	Running      bool
	SpeedPercent int
}

// Controller owns the single active run, the speed-derived inter-step
// delay and the rendering-facing state.
type Controller struct {
	cfg      *config.Config
	renderer sortviz.Renderer
	notifier Notifier
	metrics  metrics.ArenaMetrics

	mu          sync.Mutex
	speedPct    int
	baseline    []int
	sequence    []int
	resolvedSet map[int]struct{}
	compared    []int
	stats       sortviz.PlaybackStats
	run         *runHandle
	rng         *rand.Rand
}

func NewController(cfg *config.Config, renderer sortviz.Renderer, notifier Notifier, arenaMetrics metrics.ArenaMetrics) *Controller {
	c := &Controller{
		cfg:         cfg,
		renderer:    renderer,
		notifier:    notifier,
		metrics:     arenaMetrics,
		speedPct:    defaultSpeedPercent,
		resolvedSet: make(map[int]struct{}),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	c.baseline = c.randomSequence(cfg.DefaultSequenceSize)
	c.sequence = append([]int(nil), c.baseline...)
	return c
}

// Start launches the chosen algorithm against the current sequence. If a
// run is already active the call is a stop request for that run instead
// (toggle semantics), never a queue.
func (c *Controller) Start(rootScope *envelope.Scope, algorithmKey string) error {
	scope := rootScope.NewChildScope("Controller.Start")
	defer scope.Finish()
	scope.SetAttributes(envelope.AlgorithmTag, algorithmKey)

	c.mu.Lock()
	if c.run != nil {
		active := c.run
		c.mu.Unlock()
		scope.Log.WithField("algorithm", active.algorithm).Info("run already active, requesting stop")
		active.requestCancel()
		return nil
	}

	algo, ok := algorithms[algorithmKey]
	if !ok {
		c.mu.Unlock()
		c.notifier.Error("unknown sorting algorithm: " + algorithmKey)
		return sortviz.ValidationErrorUnknownAlgorithm
	}
	if len(c.sequence) == 0 {
		c.mu.Unlock()
		c.notifier.Error("nothing to sort yet, generate a sequence first")
		return sortviz.ErrEmptySequence
	}

	// A fully resolved sequence means the previous run finished; restore
	// the unsorted baseline before running again.
	if len(c.resolvedSet) == len(c.sequence) {
		c.sequence = append(c.sequence[:0], c.baseline...)
	}
	c.resolvedSet = make(map[int]struct{})
	c.compared = nil
	c.stats = sortviz.PlaybackStats{}

	run := newRunHandle(algorithmKey)
	c.run = run
	working := append([]int(nil), c.sequence...)
	c.mu.Unlock()

	c.metrics.AddRunStarted(algorithmKey)
	scope.SetAttributes(envelope.RunIDTag, run.id)

	execScope := rootScope.NewChildScope("Controller.run")
	go c.execute(execScope, run, algo, working)
	return nil
}

func (c *Controller) execute(scope *envelope.Scope, run *runHandle, algo sortviz.AlgorithmFunc, working []int) {
	defer scope.Finish()

	err := algo(working, c.emitFunc(run))
	elapsed := time.Since(run.startedAt)

	c.mu.Lock()
	if c.run == run {
		c.run = nil
		c.compared = nil
	}
	c.mu.Unlock()
	close(run.done)

	log := scope.Log.WithField("algorithm", run.algorithm).WithField("runID", run.id)
	switch {
	case err == nil:
		c.metrics.AddRunOutcome(run.algorithm, constants.RunOutcomeCompleted)
		c.metrics.AddRunElapsedTimeMs(run.algorithm, elapsed)
		log.Info("run completed")
	case errors.Is(err, sortviz.ErrRunCancelled):
		c.metrics.AddRunOutcome(run.algorithm, constants.RunOutcomeCancelled)
		log.Info("run cancelled")
	default:
		c.metrics.AddRunOutcome(run.algorithm, constants.RunOutcomeError)
		c.notifier.Error("visualization stopped unexpectedly")
		log.WithError(err).Error("run failed")
	}
}

// applyStep folds an emitted step into the controller state. It refuses
// steps from a superseded or cancelled run so no ghost step can mutate
// state after a new baseline is installed.
func (c *Controller) applyStep(run *runHandle, step sortviz.Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run != run || run.isCancelled() {
		return false
	}

	c.sequence = append(c.sequence[:0], step.Snapshot...)
	c.compared = append([]int(nil), step.Compared...)

	switch step.Tag {
	case sortviz.TagComparing:
		c.stats.Comparisons++
	case sortviz.TagSwapping:
		c.stats.Swaps++
	}

	if step.Tag == sortviz.TagComplete {
		for i := range step.Snapshot {
			c.resolvedSet[i] = struct{}{}
		}
		c.stats.ElapsedMs = time.Since(run.startedAt).Milliseconds()
	} else {
		for _, idx := range step.Resolved {
			c.resolvedSet[idx] = struct{}{}
		}
	}

	c.metrics.AddStepEmitted(run.algorithm, string(step.Tag))
	return true
}

// Randomize replaces the sequence and baseline with size random values,
// cancelling any active run first.
func (c *Controller) Randomize(rootScope *envelope.Scope, size int) error {
	scope := rootScope.NewChildScope("Controller.Randomize")
	defer scope.Finish()

	if size < 1 || size > c.cfg.MaxSequenceLength {
		c.notifier.Error("sequence size must be between 1 and " + strconv.Itoa(c.cfg.MaxSequenceLength))
		return sortviz.ValidationErrorSequenceSize
	}

	c.cancelActiveAndWait(scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseline = c.randomSequence(size)
	c.installBaselineLocked()
	scope.Log.WithField("size", size).Info("sequence randomized")
	return nil
}

// ApplyCustomSequence validates and installs a user-supplied
// comma-separated sequence. Invalid input is rejected before any state
// change.
func (c *Controller) ApplyCustomSequence(rootScope *envelope.Scope, input string) error {
	scope := rootScope.NewChildScope("Controller.ApplyCustomSequence")
	defer scope.Finish()

	values, err := c.parseSequence(input)
	if err != nil {
		c.notifier.Error(err.Error())
		return err
	}

	c.cancelActiveAndWait(scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseline = values
	c.installBaselineLocked()
	scope.Log.WithField("size", len(values)).Info("custom sequence applied")
	return nil
}

// ResetToBaseline restores the last-known unsorted baseline. Calling it
// twice in a row yields the same sequence as calling it once.
func (c *Controller) ResetToBaseline(rootScope *envelope.Scope) error {
	scope := rootScope.NewChildScope("Controller.ResetToBaseline")
	defer scope.Finish()

	c.cancelActiveAndWait(scope)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.installBaselineLocked()
	return nil
}

// SetSpeed sets the playback speed as a percentage in [1,100]. Higher
// percent means shorter inter-step delay.
func (c *Controller) SetSpeed(percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speedPct = mathutil.Clamp(percent, 1, 100)
}

// Snapshot returns a race-free copy of the rendering-facing state.
func (c *Controller) Snapshot() PlaybackView {
	c.mu.Lock()
	defer c.mu.Unlock()

	resolved := make([]int, 0, len(c.resolvedSet))
	for idx := range c.resolvedSet {
		resolved = append(resolved, idx)
	}
	sort.Ints(resolved)

	return PlaybackView{
		Sequence:     append([]int(nil), c.sequence...),
		Baseline:     append([]int(nil), c.baseline...),
		Resolved:     resolved,
		Compared:     append([]int(nil), c.compared...),
		Stats:        c.stats,
		Running:      c.run != nil,
		SpeedPercent: c.speedPct,
	}
}

// Close cancels any active run and waits for it to unwind.
func (c *Controller) Close(rootScope *envelope.Scope) {
	scope := rootScope.NewChildScope("Controller.Close")
	defer scope.Finish()
	c.cancelActiveAndWait(scope)
}

func (c *Controller) cancelActiveAndWait(scope *envelope.Scope) {
	c.mu.Lock()
	run := c.run
	c.mu.Unlock()
	if run == nil {
		return
	}

	run.requestCancel()
	select {
	case <-run.done:
	case <-time.After(cancelAckTimeout):
		scope.Log.WithField("runID", run.id).Warn("timed out waiting for run cancellation acknowledgment")
	}
}

func (c *Controller) installBaselineLocked() {
	c.sequence = append(c.sequence[:0], c.baseline...)
	c.resolvedSet = make(map[int]struct{})
	c.compared = nil
	c.stats = sortviz.PlaybackStats{}
}

func (c *Controller) stepDelay() time.Duration {
	c.mu.Lock()
	pct := c.speedPct
	c.mu.Unlock()

	minDelay, maxDelay := c.cfg.MinStepDelay, c.cfg.MaxStepDelay
	if maxDelay <= minDelay {
		return minDelay
	}
	span := maxDelay - minDelay
	return maxDelay - time.Duration(pct-1)*span/99
}

func (c *Controller) randomSequence(size int) []int {
	values := make([]int, size)
	for i := range values {
		values[i] = c.rng.Intn(c.cfg.MaxSequenceValue) + 1
	}
	return values
}

func (c *Controller) parseSequence(input string) ([]int, error) {
	parts := strings.Split(input, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, sortviz.ValidationErrorSequenceNumeric
		}
		if v < 1 || v > c.cfg.MaxSequenceValue {
			return nil, sortviz.ValidationErrorSequenceValue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, sortviz.ValidationErrorSequenceEmpty
	}
	if len(values) > c.cfg.MaxSequenceLength {
		return nil, sortviz.ValidationErrorSequenceLength
	}
	return values, nil
}
