// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package models holds the data structures shared by the matchmaking client
// state machine: match preferences, room snapshots, search sessions and the
// battle transition view model.
package models

import (
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/typ.v4/slices"

	"github.com/AccelByte/arena-client-core/pkg/constants"
)

// Difficulty of the coding problem both players receive.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllowedTimeLimits are the selectable match durations in minutes.
var AllowedTimeLimits = []int{5, 10, 15, 20}

// MatchPreferences is immutable per request; chosen by the user before
// initiating a search or creating a room.
type MatchPreferences struct {
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitMinutes int        `json:"timeLimit"`
}

func (p MatchPreferences) Validate() error {
	switch p.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return ValidationErrorDifficulty
	}
	if !pie.Contains(AllowedTimeLimits, p.TimeLimitMinutes) {
		return ValidationErrorTimeLimit
	}
	return nil
}

// PlayerProfile is the public identity of a room participant.
type PlayerProfile struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Rating    int    `json:"rating,omitempty"`
}

// Room is a server-owned match container. The client only ever holds a
// read-only snapshot received via request/response or push event.
type Room struct {
	RoomID     string           `json:"roomId"`
	Players    []PlayerProfile  `json:"players"`
	Status     string           `json:"status"`
	MaxPlayers int              `json:"maxPlayers"`
	Config     MatchPreferences `json:"config"`
}

// IsReady reports whether the room snapshot can be trusted for navigation
// into a match: status in-progress and every seat filled.
func (r *Room) IsReady() bool {
	return r.Status == constants.RoomStatusInProgress && len(r.Players) == r.MaxPlayers
}

// ResolveProfiles splits the room's player list into the profile matching
// selfID and the single remaining opponent. Both branches of match
// confirmation (immediate response and push event) resolve through here.
func (r *Room) ResolveProfiles(selfID string) (self PlayerProfile, opponent PlayerProfile, err error) {
	selfIdx := slices.IndexFunc(r.Players, func(p PlayerProfile) bool { return p.UserID == selfID })
	if selfIdx < 0 {
		return PlayerProfile{}, PlayerProfile{}, ErrSelfNotInRoom
	}

	opponents := pie.Filter(r.Players, func(p PlayerProfile) bool { return p.UserID != selfID })
	if len(opponents) != 1 {
		return PlayerProfile{}, PlayerProfile{}, ErrOpponentUnresolved
	}

	return r.Players[selfIdx], opponents[0], nil
}

// Copy returns a deep copy of the room snapshot.
func (r *Room) Copy() *Room {
	copied, err := copystructure.Copy(r)
	if err != nil {
		logrus.WithError(err).Error("unable to deep-copy room, returning shallow copy")
		shallow := *r
		return &shallow
	}
	return copied.(*Room)
}

// SearchPhase of a quick-match attempt.
type SearchPhase string

const (
	SearchPhaseIdle            SearchPhase = "idle"
	SearchPhaseSearching       SearchPhase = "searching"
	SearchPhaseNoOpponentFound SearchPhase = "no_opponent_found"
)

// SearchSession tracks one visible quick-match countdown. Created when a
// quick-match request is queued; destroyed on cancel, timeout, match-found
// or error.
type SearchSession struct {
	StartedAt      time.Time
	ElapsedSeconds int
	Phase          SearchPhase
}

// BattleTransitionView is the render-facing state of the fixed-duration
// handoff between match confirmation and the play view.
type BattleTransitionView struct {
	Self     PlayerProfile
	Opponent PlayerProfile
	RoomID   string
	Deadline time.Time
}

// NormalizeRoomCode trims, upper-cases and validates a user-entered room
// code. It never performs network calls; all failures are validation errors.
func NormalizeRoomCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ValidationErrorEmptyRoomCode
	}
	if len(code) != constants.RoomCodeLength {
		return "", ValidationErrorRoomCodeLength
	}
	for _, c := range code {
		if !strings.ContainsRune(constants.RoomCodeAlphabet, c) {
			return "", ValidationErrorRoomCodeCharset
		}
	}
	return code, nil
}
