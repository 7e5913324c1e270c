// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

const (
	// RoomCodeLength is the fixed length of a room code.
	RoomCodeLength = 6

	// RoomCodeAlphabet is the character set room codes are drawn from.
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Room statuses as reported by the match service.
const (
	RoomStatusWaiting    = "waiting"
	RoomStatusInProgress = "in-progress"
	RoomStatusCompleted  = "completed"
)

// Inbound socket event names.
const (
	EventConnect      = "connect"
	EventConnectError = "connect_error"
	EventDisconnect   = "disconnect"
	EventGameStart    = "gameStart"
	EventRoomCreated  = "roomCreated"
	EventGameError    = "gameError"
)

const (
	GameModeDuel      = "1v1"
	DefaultMaxPlayers = 2
)

const (
	FindOpponentFunction = "findOpponent"
	CreateRoomFunction   = "createRoom"
	JoinRoomFunction     = "joinRoom"
)

// Search outcome reason constants.
const (
	SearchOutcomeMatchedImmediate = "matched_immediate"
	SearchOutcomeMatchedPush      = "matched_push"
	SearchOutcomeTimeout          = "timeout"
	SearchOutcomeCancelled        = "cancelled"
	SearchOutcomeError            = "error"
)

// Join failure reason constants.
const (
	JoinFailureNotFound   = "room_not_found"
	JoinFailureRejected   = "rejected"
	JoinFailureTransport  = "transport"
	JoinFailureValidation = "validation"
)

// Visualizer run outcome constants.
const (
	RunOutcomeCompleted = "completed"
	RunOutcomeCancelled = "cancelled"
	RunOutcomeError     = "error"
)
