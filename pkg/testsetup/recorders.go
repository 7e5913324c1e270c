// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"

	"github.com/AccelByte/arena-client-core/pkg/sortviz"
)

// RecordingNotifier captures every notification with its level prefix.
type RecordingNotifier struct {
	mu       sync.Mutex
	Messages []string
}

func (n *RecordingNotifier) Info(message string)    { n.record("info: " + message) }
func (n *RecordingNotifier) Success(message string) { n.record("success: " + message) }
func (n *RecordingNotifier) Error(message string)   { n.record("error: " + message) }

func (n *RecordingNotifier) record(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}

func (n *RecordingNotifier) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Messages...)
}

// RecordingNavigator captures navigation instructions in order.
type RecordingNavigator struct {
	mu     sync.Mutex
	Visits []string
}

func (n *RecordingNavigator) ToRoom(roomID string) { n.record("room: " + roomID) }
func (n *RecordingNavigator) ToPlay(roomID string) { n.record("play: " + roomID) }

func (n *RecordingNavigator) record(visit string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Visits = append(n.Visits, visit)
}

func (n *RecordingNavigator) All() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Visits...)
}

// RecordingRenderer captures every emitted visualization step.
type RecordingRenderer struct {
	mu    sync.Mutex
	steps []sortviz.Step
}

func (r *RecordingRenderer) Render(step sortviz.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *RecordingRenderer) Steps() []sortviz.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sortviz.Step(nil), r.steps...)
}
