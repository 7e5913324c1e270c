// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultclient

import (
	"time"

	"github.com/AccelByte/arena-client-core/pkg/models"
)

// battleTransition is the fixed-duration handoff between match
// confirmation and the play view. Exactly one may exist at a time;
// completion is guarded by pointer identity so a replaced or aborted
// transition can never navigate.
type battleTransition struct {
	view  models.BattleTransitionView
	timer *time.Timer
}

func (t *battleTransition) stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

// beginTransitionLocked replaces any pending transition with a fresh one
// for the given room. Caller holds o.mu and has already resolved the
// profiles. Any active search is over once a transition starts.
func (o *Orchestrator) beginTransitionLocked(room *models.Room, self, opponent models.PlayerProfile) {
	o.stopSearchLocked()
	o.session = nil
	o.searching = false
	o.creating = false
	o.joining = false

	if o.transition != nil {
		o.transition.stop()
	}

	t := &battleTransition{
		view: models.BattleTransitionView{
			Self:     self,
			Opponent: opponent,
			RoomID:   room.RoomID,
			Deadline: time.Now().Add(o.cfg.TransitionHold),
		},
	}
	t.timer = time.AfterFunc(o.cfg.TransitionHold, func() {
		o.completeTransition(t)
	})
	o.transition = t
	o.room = room.Copy()
}

// completeTransition fires when the hold elapses. The identity check
// makes navigation exactly-once: a transition that was aborted or
// superseded finds a different pointer installed and does nothing.
func (o *Orchestrator) completeTransition(t *battleTransition) {
	o.mu.Lock()
	if o.transition != t {
		o.mu.Unlock()
		return
	}
	o.transition = nil
	roomID := t.view.RoomID
	o.mu.Unlock()

	o.navigator.ToPlay(roomID)
}

// abortTransitionLocked discards a pending transition without
// navigating. Caller holds o.mu.
func (o *Orchestrator) abortTransitionLocked() {
	if o.transition == nil {
		return
	}
	o.transition.stop()
	o.transition = nil
}
