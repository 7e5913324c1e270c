// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchclient

import "github.com/AccelByte/arena-client-core/pkg/models"

// FindOpponentRequest is the quick-match request body. SocketID carries the
// connection identifier assigned at handshake so the service can push the
// result back over the live channel.
type FindOpponentRequest struct {
	SocketID   string `json:"socketId"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"`
}

// FindOpponentResponse distinguishes the two outcomes of a quick-match
// request by the Queued flag: an immediate match carries a ready Room,
// a queued request carries only the service message.
type FindOpponentResponse struct {
	Queued  bool
	Message string
	Room    *models.Room
}

type CreateRoomRequest struct {
	MaxPlayers int    `json:"maxPlayers"`
	GameMode   string `json:"gameMode"`
	SocketID   string `json:"socketId"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"`
}

type CreateRoomResponse struct {
	Message string
	Room    *models.Room
}

type JoinRoomRequest struct {
	RoomID   string `json:"roomId"`
	SocketID string `json:"socketId"`
}

type JoinRoomResponse struct {
	Message string
}
