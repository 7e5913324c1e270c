// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"fmt"
)

var (
	ValidationErrorEmptyRoomCode   = errors.New("room code cannot be empty")
	ValidationErrorRoomCodeLength  = errors.New("room code must be exactly 6 characters")
	ValidationErrorRoomCodeCharset = errors.New("room code may only contain letters and digits")
	ValidationErrorDifficulty      = errors.New("difficulty must be easy, medium or hard")
	ValidationErrorTimeLimit       = errors.New("time limit must be one of 5, 10, 15 or 20 minutes")
)

var (
	// ErrNotConnected is returned when an operation requires a live socket
	// connection and none exists.
	ErrNotConnected = errors.New("not connected to the match server")

	// ErrOperationInFlight is returned when a second match operation is
	// attempted while a search or battle transition is already active.
	ErrOperationInFlight = errors.New("another match operation is already in progress")

	ErrSelfNotInRoom      = errors.New("local user is not a member of the room")
	ErrOpponentUnresolved = errors.New("room does not contain exactly one opponent")
)

var validationErrorCodeMap = map[error]int{
	ValidationErrorEmptyRoomCode:   520101,
	ValidationErrorRoomCodeLength:  520102,
	ValidationErrorRoomCodeCharset: 520103,
	ValidationErrorDifficulty:      520104,
	ValidationErrorTimeLimit:       520105,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	code, ok := validationErrorCodeMap[err]
	if !ok {
		return 20002
	}
	return code
}

// ServerRejectedError carries a failure status returned by the match
// service, with the remote message passed through when available.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("match service rejected request (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("match service rejected request (%d)", e.StatusCode)
}

// TransportError wraps a connection-level failure. It triggers a full
// client state reset.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
