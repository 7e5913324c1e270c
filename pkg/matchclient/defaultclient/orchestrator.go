// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultclient

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/AccelByte/arena-client-core/pkg/common"
	"github.com/AccelByte/arena-client-core/pkg/config"
	"github.com/AccelByte/arena-client-core/pkg/constants"
	"github.com/AccelByte/arena-client-core/pkg/envelope"
	"github.com/AccelByte/arena-client-core/pkg/matchclient"
	"github.com/AccelByte/arena-client-core/pkg/metrics"
	"github.com/AccelByte/arena-client-core/pkg/models"
)

/*
Orchestrator is the matchmaking client state machine. It serializes the
three user-initiated operations (find opponent, create room, join room),
owns the quick-match search session and its countdown, and folds inbound
socket events into the same state under one mutex. All outward effects go
through the Notifier and Navigator collaborators.
*/
type Orchestrator struct {
	cfg       *config.Config
	conn      *ConnectionManager
	api       matchclient.MatchService
	notifier  matchclient.Notifier
	navigator matchclient.Navigator
	metrics   metrics.ArenaMetrics
	userID    string

	mu         sync.Mutex
	closed     bool
	searching  bool
	creating   bool
	joining    bool
	session    *models.SearchSession
	searchGen  uint64
	searchStop chan struct{}
	transition *battleTransition
	room       *models.Room
	lastPrefs  models.MatchPreferences
}

// View is a race-free copy of the orchestrator state for rendering.
type View struct {
	Connected    bool
	ConnectionID string
	Searching    bool
	Creating     bool
	Joining      bool
	Search       models.SearchSession
	Transition   *models.BattleTransitionView
	Room         *models.Room
}

func NewOrchestrator(
	cfg *config.Config,
	conn *ConnectionManager,
	api matchclient.MatchService,
	notifier matchclient.Notifier,
	navigator matchclient.Navigator,
	arenaMetrics metrics.ArenaMetrics,
	userID string,
) *Orchestrator {
	o := &Orchestrator{
		cfg:       cfg,
		conn:      conn,
		api:       api,
		notifier:  notifier,
		navigator: navigator,
		metrics:   arenaMetrics,
		userID:    userID,
	}
	conn.SetHandler(o.handleEvent)
	return o
}

// Connect establishes the realtime connection. Idempotent.
func (o *Orchestrator) Connect(rootScope *envelope.Scope) {
	o.conn.Connect(rootScope, o.cfg.MatchSocketURL, o.userID)
}

// Close tears everything down: pending search, pending transition and the
// realtime connection. No notification or navigation fires afterwards.
func (o *Orchestrator) Close(rootScope *envelope.Scope) {
	scope := rootScope.NewChildScope("Orchestrator.Close")
	defer scope.Finish()

	o.mu.Lock()
	o.closed = true
	o.stopSearchLocked()
	o.session = nil
	o.searching = false
	o.creating = false
	o.joining = false
	o.abortTransitionLocked()
	o.room = nil
	o.mu.Unlock()

	// Disconnect outside the mutex: it waits for the event pump to drain
	// and the pump dispatches back into handleEvent.
	o.conn.Disconnect(scope)
}

// FindOpponent requests a quick match. An immediate match enters the
// battle transition; a queued request starts the visible countdown.
func (o *Orchestrator) FindOpponent(rootScope *envelope.Scope, prefs models.MatchPreferences) error {
	scope := rootScope.NewChildScope("Orchestrator.FindOpponent")
	defer scope.Finish()

	if err := prefs.Validate(); err != nil {
		o.notifier.Error(err.Error())
		return err
	}

	if err := o.acquire(&o.searching, &prefs); err != nil {
		return err
	}

	o.metrics.AddSearchStarted(string(prefs.Difficulty))
	scope.SetAttributes(envelope.SearchTag, string(models.SearchPhaseSearching))

	resp, err := o.api.FindOpponent(scope, matchclient.FindOpponentRequest{
		SocketID:   o.conn.ConnectionID(),
		Difficulty: string(prefs.Difficulty),
		TimeLimit:  prefs.TimeLimitMinutes,
	})
	if err != nil {
		o.mu.Lock()
		o.searching = false
		o.mu.Unlock()
		o.metrics.AddSearchOutcome(string(prefs.Difficulty), constants.SearchOutcomeError)
		o.notifyRequestError(scope, err)
		return err
	}

	if !resp.Queued {
		if err := o.admitRoom(scope, resp.Room, resp.Message, constants.SearchOutcomeMatchedImmediate); err != nil {
			o.mu.Lock()
			o.searching = false
			o.mu.Unlock()
			o.metrics.AddSearchOutcome(string(prefs.Difficulty), constants.SearchOutcomeError)
			o.notifier.Error("Received an invalid match. Please try again.")
			return err
		}
		return nil
	}

	o.mu.Lock()
	if o.closed || !o.searching || o.transition != nil {
		// The search ended while the 202 was in flight: a gameStart push
		// or a cancel won the race, so the late queued reply is a no-op.
		o.mu.Unlock()
		scope.Log.Debug("queued reply arrived after the search ended, ignoring")
		return nil
	}
	o.session = &models.SearchSession{
		StartedAt: time.Now(),
		Phase:     models.SearchPhaseSearching,
	}
	o.searchGen++
	gen := o.searchGen
	stop := make(chan struct{})
	o.searchStop = stop
	o.mu.Unlock()

	scope.Log.WithField("difficulty", prefs.Difficulty).Info("quick-match request queued")
	go o.runCountdown(gen, stop, prefs)
	return nil
}

// runCountdown drives the visible search timer. Every path that ends the
// search (cancel, match, disconnect) bumps the generation, so a stale
// countdown observing a mismatch simply exits.
func (o *Orchestrator) runCountdown(gen uint64, stop <-chan struct{}, prefs models.MatchPreferences) {
	ticker := time.NewTicker(o.cfg.SearchTick)
	defer ticker.Stop()

	maxTicks := int(o.cfg.SearchTimeout / o.cfg.SearchTick)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		o.mu.Lock()
		if o.searchGen != gen || o.session == nil {
			o.mu.Unlock()
			return
		}
		o.session.ElapsedSeconds++
		if o.session.ElapsedSeconds < maxTicks {
			o.mu.Unlock()
			continue
		}

		o.session.Phase = models.SearchPhaseNoOpponentFound
		o.searching = false
		o.searchStop = nil
		o.mu.Unlock()

		o.metrics.AddSearchOutcome(string(prefs.Difficulty), constants.SearchOutcomeTimeout)
		o.notifier.Info("No opponent found. Try again or create a private room.")
		return
	}
}

// CancelSearch ends the active search or dismisses the no-opponent-found
// state. Purely client-side: no dequeue request is sent, a stale gameStart
// arriving later is handled like any other push.
func (o *Orchestrator) CancelSearch(rootScope *envelope.Scope) {
	scope := rootScope.NewChildScope("Orchestrator.CancelSearch")
	defer scope.Finish()

	o.mu.Lock()
	hadSession := o.session != nil
	wasSearching := o.searching
	o.stopSearchLocked()
	o.session = nil
	o.searching = false
	o.abortTransitionLocked()
	prefs := o.lastPrefs
	o.mu.Unlock()

	if !hadSession && !wasSearching {
		return
	}
	o.metrics.AddSearchOutcome(string(prefs.Difficulty), constants.SearchOutcomeCancelled)
	scope.Log.Info("quick-match search cancelled")
}

// CreateRoom creates a private 1v1 room and navigates to its waiting view.
func (o *Orchestrator) CreateRoom(rootScope *envelope.Scope, prefs models.MatchPreferences) error {
	scope := rootScope.NewChildScope("Orchestrator.CreateRoom")
	defer scope.Finish()

	if err := prefs.Validate(); err != nil {
		o.notifier.Error(err.Error())
		return err
	}

	if err := o.acquire(&o.creating, &prefs); err != nil {
		return err
	}
	defer o.release(&o.creating)

	resp, err := o.api.CreateRoom(scope, matchclient.CreateRoomRequest{
		MaxPlayers: constants.DefaultMaxPlayers,
		GameMode:   constants.GameModeDuel,
		SocketID:   o.conn.ConnectionID(),
		Difficulty: string(prefs.Difficulty),
		TimeLimit:  prefs.TimeLimitMinutes,
	})
	if err != nil {
		o.notifyRequestError(scope, err)
		return err
	}

	o.mu.Lock()
	o.room = resp.Room.Copy()
	o.mu.Unlock()

	o.metrics.AddRoomCreated()
	scope.SetAttributes(envelope.RoomIDTag, resp.Room.RoomID)
	if resp.Message != "" {
		o.notifier.Success(resp.Message)
	} else {
		o.notifier.Success("Room created. Share the code with your opponent.")
	}
	o.navigator.ToRoom(resp.Room.RoomID)
	return nil
}

// JoinRoom joins an existing room by user-entered code. Validation happens
// before any network traffic; a malformed code never reaches the service.
func (o *Orchestrator) JoinRoom(rootScope *envelope.Scope, rawCode string) error {
	scope := rootScope.NewChildScope("Orchestrator.JoinRoom")
	defer scope.Finish()

	code, err := models.NormalizeRoomCode(rawCode)
	if err != nil {
		o.metrics.AddRoomJoinFailure(constants.JoinFailureValidation)
		o.notifier.Error(err.Error())
		return err
	}
	scope.SetAttributes(envelope.RoomIDTag, code)

	if err := o.acquire(&o.joining, nil); err != nil {
		return err
	}
	defer o.release(&o.joining)

	resp, err := o.api.JoinRoom(scope, matchclient.JoinRoomRequest{
		RoomID:   code,
		SocketID: o.conn.ConnectionID(),
	})
	if err != nil {
		o.notifyJoinError(scope, err)
		return err
	}

	if resp.Message != "" {
		o.notifier.Success(resp.Message)
	}
	o.navigator.ToRoom(code)
	return nil
}

// Snapshot returns a race-free copy of the state machine for rendering.
func (o *Orchestrator) Snapshot() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	view := View{
		Connected:    o.conn.IsConnected(),
		ConnectionID: o.conn.ConnectionID(),
		Searching:    o.searching,
		Creating:     o.creating,
		Joining:      o.joining,
		Search:       models.SearchSession{Phase: models.SearchPhaseIdle},
	}
	if o.session != nil {
		view.Search = *o.session
	}
	if o.transition != nil {
		t := o.transition.view
		view.Transition = &t
	}
	if o.room != nil {
		view.Room = o.room.Copy()
	}
	return view
}

// acquire guards a user-initiated operation: connection must be live and
// no other operation (including a pending transition) may be in flight.
// On success the flag pointed to is set under the mutex; a non-nil prefs
// becomes the preferences attributed to subsequent outcomes.
func (o *Orchestrator) acquire(flag *bool, prefs *models.MatchPreferences) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || !o.conn.IsConnected() {
		o.notifier.Error("Not connected to the match server yet.")
		return models.ErrNotConnected
	}
	if o.searching || o.creating || o.joining || o.transition != nil {
		o.notifier.Error("Another match operation is already in progress.")
		return models.ErrOperationInFlight
	}
	*flag = true
	if prefs != nil {
		o.lastPrefs = *prefs
	}
	return nil
}

func (o *Orchestrator) release(flag *bool) {
	o.mu.Lock()
	*flag = false
	o.mu.Unlock()
}

// handleEvent folds one inbound socket event into the state machine. The
// connection manager delivers events from a single goroutine in order.
func (o *Orchestrator) handleEvent(ev matchclient.Event) {
	scope := envelope.NewRootScope(context.Background(), "Orchestrator.handleEvent", "")
	defer scope.Finish()

	switch e := ev.(type) {
	case matchclient.ConnectedEvent:
		scope.Log.WithField("connectionID", e.ConnectionID).Info("match connection established")

	case matchclient.DisconnectedEvent:
		scope.Log.WithField("reason", e.Reason).Warn("match connection lost")
		o.resetAll()

	case matchclient.ErrorEvent:
		scope.Log.WithField("message", e.Message).Warn("match service reported an error")
		o.resetAll()
		if e.Message != "" {
			o.notifier.Error(e.Message)
		}

	case matchclient.RoomCreatedEvent:
		o.handleRoomCreated(scope, e)

	case matchclient.MatchFoundEvent:
		o.handleGameStart(scope, e)
	}
}

// handleRoomCreated stores the confirmed room. The REST response usually
// lands first, so a push for the room we already hold is a no-op.
func (o *Orchestrator) handleRoomCreated(scope *envelope.Scope, ev matchclient.RoomCreatedEvent) {
	if ev.Room == nil {
		scope.Log.Warn("roomCreated push without room payload, ignoring")
		return
	}

	o.mu.Lock()
	if o.room != nil && o.room.RoomID == ev.Room.RoomID {
		o.mu.Unlock()
		return
	}
	o.room = ev.Room.Copy()
	o.mu.Unlock()

	scope.SetAttributes(envelope.RoomIDTag, ev.Room.RoomID)
	scope.Log.Debugf("room confirmed: %s", common.LogJSONFormatter(ev.Room))
	if ev.Message != "" {
		o.notifier.Success(ev.Message)
	}
	o.navigator.ToRoom(ev.Room.RoomID)
}

// handleGameStart confirms a match found while searching or waiting in a
// room. A ready room with a resolvable opponent enters the transition;
// anything else falls back to the waiting view.
func (o *Orchestrator) handleGameStart(scope *envelope.Scope, ev matchclient.MatchFoundEvent) {
	if ev.Room == nil {
		scope.Log.Warn("gameStart push without room payload, ignoring")
		return
	}
	scope.SetAttributes(envelope.RoomIDTag, ev.Room.RoomID)

	o.mu.Lock()
	wasSearching := o.searching
	prefs := o.lastPrefs
	o.mu.Unlock()

	if err := o.admitRoom(scope, ev.Room, ev.Message, constants.SearchOutcomeMatchedPush); err == nil {
		return
	}

	// Room not ready for battle yet: end the search, hold the snapshot and
	// let the waiting view take over.
	o.mu.Lock()
	o.stopSearchLocked()
	o.session = nil
	o.searching = false
	o.room = ev.Room.Copy()
	o.mu.Unlock()

	if wasSearching {
		o.metrics.AddSearchOutcome(string(prefs.Difficulty), constants.SearchOutcomeMatchedPush)
	}
	if ev.Message != "" {
		o.notifier.Info(ev.Message)
	} else {
		o.notifier.Info("Opponent found. Waiting for the match to start.")
	}
	o.navigator.ToRoom(ev.Room.RoomID)
}

// admitRoom enters the battle transition for a ready room. Both match
// confirmation branches (immediate response and push event) land here.
func (o *Orchestrator) admitRoom(scope *envelope.Scope, room *models.Room, message string, outcome string) error {
	if room == nil || !room.IsReady() {
		return models.ErrOpponentUnresolved
	}
	self, opponent, err := room.ResolveProfiles(o.userID)
	if err != nil {
		scope.Log.WithError(err).Warn("unable to resolve match profiles")
		return err
	}

	o.mu.Lock()
	wasSearching := o.searching
	prefs := o.lastPrefs
	o.beginTransitionLocked(room, self, opponent)
	o.mu.Unlock()

	if wasSearching || outcome == constants.SearchOutcomeMatchedImmediate {
		o.metrics.AddSearchOutcome(string(prefs.Difficulty), outcome)
	}
	scope.Log.
		WithField("roomID", room.RoomID).
		WithField("opponent", opponent.Username).
		Info("match confirmed, entering battle transition")
	if message != "" {
		o.notifier.Info(message)
	}
	return nil
}

// resetAll returns the state machine to its initial state. Used on
// disconnect and on server-reported errors so no loading flag sticks.
func (o *Orchestrator) resetAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopSearchLocked()
	o.session = nil
	o.searching = false
	o.creating = false
	o.joining = false
	o.abortTransitionLocked()
	o.room = nil
}

// stopSearchLocked invalidates the running countdown. Caller holds o.mu.
func (o *Orchestrator) stopSearchLocked() {
	o.searchGen++
	if o.searchStop != nil {
		close(o.searchStop)
		o.searchStop = nil
	}
}

// notifyRequestError maps a request failure onto a user notification.
func (o *Orchestrator) notifyRequestError(scope *envelope.Scope, err error) {
	var rejected *models.ServerRejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		o.notifier.Error(rejected.Message)
		return
	}
	var transport *models.TransportError
	if errors.As(err, &transport) {
		o.notifier.Error("Unable to reach the match server. Please try again.")
		return
	}
	scope.Log.WithError(err).Error("match request failed")
	o.notifier.Error("Something went wrong. Please try again.")
}

// notifyJoinError maps join failures onto notifications and metrics. A 404
// gets the dedicated room-not-found message, a 400 passes the service
// message through verbatim.
func (o *Orchestrator) notifyJoinError(scope *envelope.Scope, err error) {
	var rejected *models.ServerRejectedError
	if errors.As(err, &rejected) {
		switch rejected.StatusCode {
		case http.StatusNotFound:
			o.metrics.AddRoomJoinFailure(constants.JoinFailureNotFound)
			o.notifier.Error("Room not found. Check the code and try again.")
		case http.StatusBadRequest:
			o.metrics.AddRoomJoinFailure(constants.JoinFailureRejected)
			if rejected.Message != "" {
				o.notifier.Error(rejected.Message)
			} else {
				o.notifier.Error("Unable to join the room.")
			}
		default:
			o.metrics.AddRoomJoinFailure(constants.JoinFailureRejected)
			o.notifier.Error("Unable to join the room. Please try again.")
		}
		return
	}

	o.metrics.AddRoomJoinFailure(constants.JoinFailureTransport)
	scope.Log.WithError(err).Error("join request failed")
	o.notifier.Error("Unable to reach the match server. Please try again.")
}
