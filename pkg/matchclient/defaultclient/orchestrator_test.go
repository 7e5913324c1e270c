// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultclient

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"

	"github.com/AccelByte/arena-client-core/pkg/config"
	"github.com/AccelByte/arena-client-core/pkg/constants"
	"github.com/AccelByte/arena-client-core/pkg/envelope"
	"github.com/AccelByte/arena-client-core/pkg/matchclient"
	"github.com/AccelByte/arena-client-core/pkg/models"
	"github.com/AccelByte/arena-client-core/pkg/testsetup"
)

type stubMatchService struct {
	mu           sync.Mutex
	findOpponent func(req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error)
	createRoom   func(req matchclient.CreateRoomRequest) (*matchclient.CreateRoomResponse, error)
	joinRoom     func(req matchclient.JoinRoomRequest) (*matchclient.JoinRoomResponse, error)

	joinCalls   int32
	lastJoinReq matchclient.JoinRoomRequest
	lastFindReq matchclient.FindOpponentRequest
	lastRoomReq matchclient.CreateRoomRequest
}

func (s *stubMatchService) FindOpponent(scope *envelope.Scope, req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
	s.mu.Lock()
	s.lastFindReq = req
	fn := s.findOpponent
	s.mu.Unlock()
	if fn == nil {
		return &matchclient.FindOpponentResponse{Queued: true}, nil
	}
	return fn(req)
}

func (s *stubMatchService) CreateRoom(scope *envelope.Scope, req matchclient.CreateRoomRequest) (*matchclient.CreateRoomResponse, error) {
	s.mu.Lock()
	s.lastRoomReq = req
	fn := s.createRoom
	s.mu.Unlock()
	if fn == nil {
		return nil, errors.New("createRoom not scripted")
	}
	return fn(req)
}

func (s *stubMatchService) JoinRoom(scope *envelope.Scope, req matchclient.JoinRoomRequest) (*matchclient.JoinRoomResponse, error) {
	atomic.AddInt32(&s.joinCalls, 1)
	s.mu.Lock()
	s.lastJoinReq = req
	fn := s.joinRoom
	s.mu.Unlock()
	if fn == nil {
		return &matchclient.JoinRoomResponse{}, nil
	}
	return fn(req)
}

type fixture struct {
	cfg       *config.Config
	transport *testsetup.StubTransport
	notifier  *testsetup.RecordingNotifier
	navigator *testsetup.RecordingNavigator
	api       *stubMatchService
	orch      *Orchestrator
}

func newFixture() *fixture {
	cfg := config.Default()
	cfg.SearchTick = 20 * time.Millisecond
	cfg.SearchTimeout = 60 * time.Millisecond
	cfg.TransitionHold = 40 * time.Millisecond

	f := &fixture{
		cfg:       cfg,
		transport: testsetup.NewStubTransport("conn-1"),
		notifier:  &testsetup.RecordingNotifier{},
		navigator: &testsetup.RecordingNavigator{},
		api:       &stubMatchService{},
	}
	conn := NewConnectionManager(f.transport, f.notifier)
	f.orch = NewOrchestrator(cfg, conn, f.api, f.notifier, f.navigator, testsetup.NewMetrics(), "self")
	return f
}

func easyPrefs() models.MatchPreferences {
	return models.MatchPreferences{Difficulty: models.DifficultyEasy, TimeLimitMinutes: 10}
}

func readyRoom(roomID string) *models.Room {
	return &models.Room{
		RoomID: roomID,
		Players: []models.PlayerProfile{
			{UserID: "self", Username: "me"},
			{UserID: "rival", Username: "rival"},
		},
		Status:     constants.RoomStatusInProgress,
		MaxPlayers: 2,
		Config:     easyPrefs(),
	}
}

func waitingRoom(roomID string) *models.Room {
	return &models.Room{
		RoomID:     roomID,
		Players:    []models.PlayerProfile{{UserID: "self", Username: "me"}},
		Status:     constants.RoomStatusWaiting,
		MaxPlayers: 2,
	}
}

func Test_Orchestrator_QueuedSearchTimesOut(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))

	view := f.orch.Snapshot()
	assert.True(t, view.Searching)
	assert.Equal(t, models.SearchPhaseSearching, view.Search.Phase)

	s.Eventually(func() bool {
		view := f.orch.Snapshot()
		return !view.Searching && view.Search.Phase == models.SearchPhaseNoOpponentFound
	}, time.Second, 5*time.Millisecond).Should(gomega.BeTrue())

	s.Expect(f.notifier.All()).To(gomega.ContainElement(gomega.ContainSubstring("No opponent found")))
	assert.Empty(t, f.navigator.All())
}

func Test_Orchestrator_ImmediateMatchEntersTransition(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.findOpponent = func(req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
		return &matchclient.FindOpponentResponse{Room: readyRoom("room-1")}, nil
	}
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))

	view := f.orch.Snapshot()
	assert.False(t, view.Searching)
	if assert.NotNil(t, view.Transition) {
		assert.Equal(t, "room-1", view.Transition.RoomID)
		assert.Equal(t, "me", view.Transition.Self.Username)
		assert.Equal(t, "rival", view.Transition.Opponent.Username)
	}
	assert.Empty(t, f.navigator.All())

	// Navigation to the play view fires exactly once, after the hold.
	s.Eventually(func() []string {
		return f.navigator.All()
	}, time.Second, 5*time.Millisecond).Should(gomega.Equal([]string{"play: room-1"}))

	s.Consistently(func() []string {
		return f.navigator.All()
	}, 100*time.Millisecond, 10*time.Millisecond).Should(gomega.HaveLen(1))
	assert.Nil(t, f.orch.Snapshot().Transition)
}

func Test_Orchestrator_GameStartPushWhileSearching(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))
	f.transport.Push(matchclient.MatchFoundEvent{Message: "Opponent found!", Room: readyRoom("room-2")})

	s.Eventually(func() bool {
		view := f.orch.Snapshot()
		return view.Transition != nil && !view.Searching
	}, time.Second, 5*time.Millisecond).Should(gomega.BeTrue())

	assert.Equal(t, models.SearchPhaseIdle, f.orch.Snapshot().Search.Phase)

	s.Eventually(func() []string {
		return f.navigator.All()
	}, time.Second, 5*time.Millisecond).Should(gomega.Equal([]string{"play: room-2"}))
}

func Test_Orchestrator_GameStartRoomNotReadyFallsBackToWaiting(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))
	f.transport.Push(matchclient.MatchFoundEvent{Room: waitingRoom("room-9")})

	s.Eventually(func() []string {
		return f.navigator.All()
	}, time.Second, 5*time.Millisecond).Should(gomega.Equal([]string{"room: room-9"}))

	view := f.orch.Snapshot()
	assert.Nil(t, view.Transition)
	assert.False(t, view.Searching)
	s.Expect(f.notifier.All()).To(gomega.ContainElement(gomega.ContainSubstring("Opponent found")))
}

func Test_Orchestrator_CancelSearch(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))
	f.orch.CancelSearch(s.TestScope)

	view := f.orch.Snapshot()
	assert.False(t, view.Searching)
	assert.Equal(t, models.SearchPhaseIdle, view.Search.Phase)

	// The countdown goroutine died with the cancel; nothing flips the
	// phase to no-opponent-found later.
	s.Consistently(func() models.SearchPhase {
		return f.orch.Snapshot().Search.Phase
	}, 120*time.Millisecond, 10*time.Millisecond).Should(gomega.Equal(models.SearchPhaseIdle))
}

func Test_Orchestrator_CreateRoom(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.createRoom = func(req matchclient.CreateRoomRequest) (*matchclient.CreateRoomResponse, error) {
		return &matchclient.CreateRoomResponse{Room: waitingRoom("AB12CD")}, nil
	}
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.CreateRoom(s.TestScope, easyPrefs()))

	assert.Equal(t, []string{"room: AB12CD"}, f.navigator.All())
	s.Expect(f.notifier.All()).To(gomega.ContainElement(gomega.ContainSubstring("success:")))

	view := f.orch.Snapshot()
	assert.False(t, view.Creating)
	if assert.NotNil(t, view.Room) {
		assert.Equal(t, "AB12CD", view.Room.RoomID)
	}

	f.api.mu.Lock()
	req := f.api.lastRoomReq
	f.api.mu.Unlock()
	assert.Equal(t, constants.DefaultMaxPlayers, req.MaxPlayers)
	assert.Equal(t, constants.GameModeDuel, req.GameMode)
	assert.Equal(t, "conn-1", req.SocketID)
}

func Test_Orchestrator_JoinRoomValidation(t *testing.T) {
	type args struct {
		code string
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{name: "empty code", args: args{code: ""}, wantErr: models.ValidationErrorEmptyRoomCode},
		{name: "whitespace only", args: args{code: "   "}, wantErr: models.ValidationErrorEmptyRoomCode},
		{name: "too short", args: args{code: "AB1"}, wantErr: models.ValidationErrorRoomCodeLength},
		{name: "too long", args: args{code: "AB12CD9"}, wantErr: models.ValidationErrorRoomCodeLength},
		{name: "invalid character", args: args{code: "AB-2CD"}, wantErr: models.ValidationErrorRoomCodeCharset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testsetup.WithGomega(t)
			f := newFixture()
			f.orch.Connect(s.TestScope)

			err := f.orch.JoinRoom(s.TestScope, tt.args.code)
			assert.True(t, errors.Is(err, tt.wantErr))
			// Validation failures never reach the service.
			assert.Equal(t, int32(0), atomic.LoadInt32(&f.api.joinCalls))
			assert.Empty(t, f.navigator.All())
		})
	}
}

func Test_Orchestrator_JoinRoomNormalizesCode(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.JoinRoom(s.TestScope, "  ab12cd "))

	f.api.mu.Lock()
	req := f.api.lastJoinReq
	f.api.mu.Unlock()
	assert.Equal(t, "AB12CD", req.RoomID)
	assert.Equal(t, "conn-1", req.SocketID)
	assert.Equal(t, []string{"room: AB12CD"}, f.navigator.All())
}

func Test_Orchestrator_JoinRoomFailureMessages(t *testing.T) {
	type args struct {
		err error
	}
	tests := []struct {
		name        string
		args        args
		wantMessage string
	}{
		{
			name:        "room not found",
			args:        args{err: &models.ServerRejectedError{StatusCode: 404}},
			wantMessage: "Room not found. Check the code and try again.",
		},
		{
			name:        "rejection passes service message through",
			args:        args{err: &models.ServerRejectedError{StatusCode: 400, Message: "Room is full"}},
			wantMessage: "Room is full",
		},
		{
			name:        "transport failure",
			args:        args{err: &models.TransportError{Op: "joinRoom", Err: errors.New("dial tcp: refused")}},
			wantMessage: "Unable to reach the match server. Please try again.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testsetup.WithGomega(t)
			f := newFixture()
			f.api.joinRoom = func(req matchclient.JoinRoomRequest) (*matchclient.JoinRoomResponse, error) {
				return nil, tt.args.err
			}
			f.orch.Connect(s.TestScope)

			err := f.orch.JoinRoom(s.TestScope, "AB12CD")
			assert.Error(t, err)
			s.Expect(f.notifier.All()).To(gomega.ContainElement("error: " + tt.wantMessage))
			assert.Empty(t, f.navigator.All())
			assert.False(t, f.orch.Snapshot().Joining)
		})
	}
}

func Test_Orchestrator_OperationGuards(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()

	// Everything is rejected before Connect.
	err := f.orch.FindOpponent(s.TestScope, easyPrefs())
	assert.True(t, errors.Is(err, models.ErrNotConnected))

	f.orch.Connect(s.TestScope)
	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))

	// A second operation while the search is active is refused.
	err = f.orch.CreateRoom(s.TestScope, easyPrefs())
	assert.True(t, errors.Is(err, models.ErrOperationInFlight))
	err = f.orch.JoinRoom(s.TestScope, "AB12CD")
	assert.True(t, errors.Is(err, models.ErrOperationInFlight))
}

func Test_Orchestrator_InvalidPreferences(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	err := f.orch.FindOpponent(s.TestScope, models.MatchPreferences{Difficulty: "extreme", TimeLimitMinutes: 10})
	assert.True(t, errors.Is(err, models.ValidationErrorDifficulty))

	err = f.orch.CreateRoom(s.TestScope, models.MatchPreferences{Difficulty: models.DifficultyEasy, TimeLimitMinutes: 7})
	assert.True(t, errors.Is(err, models.ValidationErrorTimeLimit))
}

func Test_Orchestrator_DisconnectResetsState(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))
	f.transport.Push(matchclient.DisconnectedEvent{Reason: "server went away"})

	s.Eventually(func() bool {
		view := f.orch.Snapshot()
		return !view.Connected && !view.Searching && view.Search.Phase == models.SearchPhaseIdle
	}, time.Second, 5*time.Millisecond).Should(gomega.BeTrue())
}

func Test_Orchestrator_ConnectIsIdempotent(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()

	f.orch.Connect(s.TestScope)
	f.orch.Connect(s.TestScope)

	assert.Equal(t, 1, f.transport.DialCount())
	assert.True(t, f.orch.Snapshot().Connected)
	assert.Equal(t, "conn-1", f.orch.Snapshot().ConnectionID)
}

func Test_Orchestrator_RoomCreatedPushIsDeduplicated(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.createRoom = func(req matchclient.CreateRoomRequest) (*matchclient.CreateRoomResponse, error) {
		return &matchclient.CreateRoomResponse{Room: waitingRoom("AB12CD")}, nil
	}
	f.orch.Connect(s.TestScope)
	assert.NoError(t, f.orch.CreateRoom(s.TestScope, easyPrefs()))

	// The push for the room we already hold must not navigate again.
	f.transport.Push(matchclient.RoomCreatedEvent{Room: waitingRoom("AB12CD")})

	s.Consistently(func() []string {
		return f.navigator.All()
	}, 100*time.Millisecond, 10*time.Millisecond).Should(gomega.Equal([]string{"room: AB12CD"}))
}

func Test_Orchestrator_LateQueuedReplyAfterPushIsNoOp(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.findOpponent = func(req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
		// The opponent is confirmed by push while the 202 is still in
		// flight; hold the reply until the push has been folded in.
		f.transport.Push(matchclient.MatchFoundEvent{Room: readyRoom("room-7")})
		deadline := time.Now().Add(time.Second)
		for f.orch.Snapshot().Transition == nil && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}
		return &matchclient.FindOpponentResponse{Queued: true}, nil
	}
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))

	// The late queued reply must not revive the search next to the
	// transition the push already started.
	view := f.orch.Snapshot()
	assert.False(t, view.Searching)
	assert.Equal(t, models.SearchPhaseIdle, view.Search.Phase)

	s.Eventually(func() []string {
		return f.navigator.All()
	}, time.Second, 5*time.Millisecond).Should(gomega.Equal([]string{"play: room-7"}))

	// No stale countdown fires a no-opponent-found timeout afterwards.
	s.Consistently(func() models.SearchPhase {
		return f.orch.Snapshot().Search.Phase
	}, 120*time.Millisecond, 10*time.Millisecond).Should(gomega.Equal(models.SearchPhaseIdle))
	s.Expect(f.notifier.All()).NotTo(gomega.ContainElement(gomega.ContainSubstring("No opponent found")))
}

func Test_Orchestrator_LateQueuedReplyAfterCancelIsNoOp(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.findOpponent = func(req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
		f.orch.CancelSearch(s.TestScope)
		return &matchclient.FindOpponentResponse{Queued: true}, nil
	}
	f.orch.Connect(s.TestScope)

	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))

	view := f.orch.Snapshot()
	assert.False(t, view.Searching)
	assert.Equal(t, models.SearchPhaseIdle, view.Search.Phase)

	s.Consistently(func() models.SearchPhase {
		return f.orch.Snapshot().Search.Phase
	}, 120*time.Millisecond, 10*time.Millisecond).Should(gomega.Equal(models.SearchPhaseIdle))
	assert.Empty(t, f.navigator.All())
}

func Test_Orchestrator_DialFailureNotifiesOnce(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.transport.DialErr = errors.New("dial tcp: refused")

	f.orch.Connect(s.TestScope)

	assert.False(t, f.orch.Snapshot().Connected)
	assert.Equal(t, []string{"error: Unable to reach the match server. Please try again."}, f.notifier.All())
}

func Test_Orchestrator_CloseAbortsPendingTransition(t *testing.T) {
	s := testsetup.WithGomega(t)
	f := newFixture()
	f.api.findOpponent = func(req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
		return &matchclient.FindOpponentResponse{Room: readyRoom("room-1")}, nil
	}
	f.orch.Connect(s.TestScope)
	assert.NoError(t, f.orch.FindOpponent(s.TestScope, easyPrefs()))
	assert.NotNil(t, f.orch.Snapshot().Transition)

	f.orch.Close(s.TestScope)

	// The aborted transition must never navigate to the play view.
	s.Consistently(func() []string {
		return f.navigator.All()
	}, 150*time.Millisecond, 10*time.Millisecond).Should(gomega.BeEmpty())
	assert.Nil(t, f.orch.Snapshot().Transition)
}
