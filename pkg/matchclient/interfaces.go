// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchclient defines the contracts of the matchmaking client state
// machine: the realtime transport, the request/response match service and
// the view-facing collaborators (notifications, navigation).
package matchclient

import (
	"context"

	"github.com/AccelByte/arena-client-core/pkg/envelope"
)

/*
Transport owns the raw duplex channel to the matchmaking service. Dial
performs the handshake and returns the connection identifier assigned by
the server together with a channel of inbound events. The event channel is
closed when the connection dies or Close is called; a DisconnectedEvent is
always delivered before the close so consumers can reset state.
*/
type Transport interface {
	// Dial establishes the connection with credential passthrough. The
	// returned channel delivers events in arrival order from a single
	// goroutine.
	Dial(ctx context.Context, socketURL string, userID string) (connectionID string, events <-chan Event, err error)

	// Close tears the connection down. Safe to call at any time, including
	// before Dial or more than once.
	Close() error
}

// MatchService is the request/response side of the matchmaking backend.
type MatchService interface {
	// FindOpponent requests a quick match. The response either carries a
	// ready room (immediate match) or reports that the request was queued.
	FindOpponent(scope *envelope.Scope, req FindOpponentRequest) (*FindOpponentResponse, error)

	// CreateRoom creates a private room and returns its snapshot.
	CreateRoom(scope *envelope.Scope, req CreateRoomRequest) (*CreateRoomResponse, error)

	// JoinRoom joins an existing room by its 6-character code.
	JoinRoom(scope *envelope.Scope, req JoinRoomRequest) (*JoinRoomResponse, error)
}

// Notifier surfaces non-blocking user notifications. Every member of the
// error taxonomy except the internal cancellation signal ends up here.
type Notifier interface {
	Info(message string)
	Success(message string)
	Error(message string)
}

// Navigator receives navigation instructions emitted by the state machine.
type Navigator interface {
	// ToRoom navigates to the waiting view of a room.
	ToRoom(roomID string)

	// ToPlay navigates to the play view of a started match.
	ToPlay(roomID string)
}
