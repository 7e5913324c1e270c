// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"sync"

	"github.com/AccelByte/arena-client-core/pkg/matchclient"
)

// StubTransport is an in-memory matchclient.Transport. Tests script inbound
// events through Push and inspect DialCount and Closed afterwards.
type StubTransport struct {
	ConnectionID string
	DialErr      error

	mu        sync.Mutex
	events    chan matchclient.Event
	dialCount int
	closed    bool
}

func NewStubTransport(connectionID string) *StubTransport {
	return &StubTransport{ConnectionID: connectionID}
}

func (s *StubTransport) Dial(ctx context.Context, socketURL string, userID string) (string, <-chan matchclient.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialCount++
	if s.DialErr != nil {
		return "", nil, s.DialErr
	}
	s.events = make(chan matchclient.Event, 16)
	s.closed = false
	return s.ConnectionID, s.events, nil
}

func (s *StubTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events != nil && !s.closed {
		close(s.events)
	}
	s.closed = true
	return nil
}

// Push delivers one scripted event to the consumer.
func (s *StubTransport) Push(ev matchclient.Event) {
	s.mu.Lock()
	events := s.events
	closed := s.closed
	s.mu.Unlock()
	if events != nil && !closed {
		events <- ev
	}
}

func (s *StubTransport) DialCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialCount
}

func (s *StubTransport) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
