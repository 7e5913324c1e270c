// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchclient

import "github.com/AccelByte/arena-client-core/pkg/models"

// Event is the typed union of inbound signals from the realtime channel.
// These are the only externally visible signals; the raw transport is
// never exposed.
type Event interface{ isArenaEvent() }

// ConnectedEvent is delivered once after a successful handshake.
type ConnectedEvent struct {
	ConnectionID string
}

// DisconnectedEvent is delivered when the connection is lost or closed.
type DisconnectedEvent struct {
	Reason string
}

// MatchFoundEvent carries the room of a confirmed or pending match
// (the gameStart push).
type MatchFoundEvent struct {
	Message string
	Room    *models.Room
}

// RoomCreatedEvent confirms a private room was registered server-side.
type RoomCreatedEvent struct {
	Message string
	Room    *models.Room
}

// ErrorEvent carries a server-reported matchmaking error.
type ErrorEvent struct {
	Message string
}

func (ConnectedEvent) isArenaEvent()    {}
func (DisconnectedEvent) isArenaEvent() {}
func (MatchFoundEvent) isArenaEvent()   {}
func (RoomCreatedEvent) isArenaEvent()  {}
func (ErrorEvent) isArenaEvent()        {}
