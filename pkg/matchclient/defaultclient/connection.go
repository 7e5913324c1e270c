// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultclient

import (
	"sync"

	"github.com/AccelByte/arena-client-core/pkg/envelope"
	"github.com/AccelByte/arena-client-core/pkg/matchclient"
)

// ConnectionManager owns a single realtime duplex connection per mounted
// matchmaking view. At most one live handle exists at a time; re-connecting
// while one is live is a no-op.
type ConnectionManager struct {
	transport matchclient.Transport
	notifier  matchclient.Notifier

	mu           sync.Mutex
	handler      func(matchclient.Event)
	connected    bool
	connectionID string
	pumpDone     chan struct{}
}

func NewConnectionManager(transport matchclient.Transport, notifier matchclient.Notifier) *ConnectionManager {
	return &ConnectionManager{
		transport: transport,
		notifier:  notifier,
	}
}

// SetHandler registers the single downstream event handler. Must be called
// before Connect; events are delivered in arrival order from one goroutine.
func (c *ConnectionManager) SetHandler(handler func(matchclient.Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Connect establishes the connection with credential passthrough.
// Idempotent: a live handle is reused unchanged. Connect errors are not
// returned to the caller; they surface as a user notification plus an
// ErrorEvent so pending loading flags get reset downstream.
func (c *ConnectionManager) Connect(rootScope *envelope.Scope, socketURL string, userID string) {
	scope := rootScope.NewChildScope("ConnectionManager.Connect")
	defer scope.Finish()

	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		scope.Log.Debug("connection already established, reusing handle")
		return
	}
	c.mu.Unlock()

	connectionID, events, err := c.transport.Dial(scope.Ctx, socketURL, userID)
	if err != nil {
		scope.Log.WithError(err).Error("unable to connect to match server")
		c.notifier.Error("Unable to reach the match server. Please try again.")
		// The message was surfaced above; the empty event still resets
		// downstream loading flags without a second toast.
		c.dispatch(matchclient.ErrorEvent{})
		return
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.connected = true
	c.connectionID = connectionID
	c.pumpDone = done
	c.mu.Unlock()

	scope.Log.WithField("connectionID", connectionID).Info("connected to match server")
	c.dispatch(matchclient.ConnectedEvent{ConnectionID: connectionID})

	go func() {
		defer close(done)
		for ev := range events {
			if _, ok := ev.(matchclient.DisconnectedEvent); ok {
				c.markDisconnected()
			}
			c.dispatch(ev)
		}
		// Pump ended without a disconnect frame: the handle is gone either way.
		if c.markDisconnected() {
			c.dispatch(matchclient.DisconnectedEvent{Reason: "connection closed"})
		}
	}()
}

// Disconnect tears the handle down and waits for the read pump to drain,
// so no event callback fires after it returns. Always safe to call.
func (c *ConnectionManager) Disconnect(rootScope *envelope.Scope) {
	scope := rootScope.NewChildScope("ConnectionManager.Disconnect")
	defer scope.Finish()

	c.mu.Lock()
	done := c.pumpDone
	c.pumpDone = nil
	c.connected = false
	c.connectionID = ""
	c.mu.Unlock()

	_ = c.transport.Close()
	if done != nil {
		<-done
	}
	scope.Log.Debug("disconnected from match server")
}

func (c *ConnectionManager) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *ConnectionManager) ConnectionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectionID
}

// markDisconnected flips the connected flag, reporting whether it was set.
func (c *ConnectionManager) markDisconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.connected
	c.connected = false
	c.connectionID = ""
	return was
}

func (c *ConnectionManager) dispatch(ev matchclient.Event) {
	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()
	if handler != nil {
		handler(ev)
	}
}
