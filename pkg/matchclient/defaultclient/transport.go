// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package defaultclient provides the default implementation of the
// matchmaking client contracts: a websocket transport, the connection
// manager, the REST match service and the request orchestrator.
package defaultclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/arena-client-core/pkg/constants"
	"github.com/AccelByte/arena-client-core/pkg/matchclient"
	"github.com/AccelByte/arena-client-core/pkg/models"
)

const eventBufferSize = 16

// wireFrame is the envelope of every socket message.
type wireFrame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type connectPayload struct {
	ConnectionID string `json:"connectionId"`
}

type gameStartPayload struct {
	Message string       `json:"message"`
	Room    *models.Room `json:"room"`
}

type gameErrorPayload struct {
	Message string `json:"message"`
}

// WebsocketTransport implements matchclient.Transport over a single
// websocket connection.
type WebsocketTransport struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWebsocketTransport() *WebsocketTransport {
	return &WebsocketTransport{}
}

var _ matchclient.Transport = (*WebsocketTransport)(nil)

// Dial connects, waits for the server handshake frame carrying the
// assigned connection identifier, and starts the read pump.
func (t *WebsocketTransport) Dial(ctx context.Context, socketURL string, userID string) (string, <-chan matchclient.Event, error) {
	u, err := url.Parse(socketURL)
	if err != nil {
		return "", nil, &models.TransportError{Op: "dial", Err: err}
	}
	query := u.Query()
	query.Set("userId", userID)
	u.RawQuery = query.Encode()

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return "", nil, &models.TransportError{Op: "dial", Err: err}
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	var handshake wireFrame
	if err := conn.ReadJSON(&handshake); err != nil {
		_ = conn.Close()
		return "", nil, &models.TransportError{Op: "handshake", Err: err}
	}
	if handshake.Event != constants.EventConnect {
		_ = conn.Close()
		return "", nil, &models.TransportError{Op: "handshake", Err: errors.New("unexpected handshake event: " + handshake.Event)}
	}
	var connected connectPayload
	if err := json.Unmarshal(handshake.Payload, &connected); err != nil || connected.ConnectionID == "" {
		_ = conn.Close()
		return "", nil, &models.TransportError{Op: "handshake", Err: errors.New("handshake missing connection id")}
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	events := make(chan matchclient.Event, eventBufferSize)
	go t.readPump(conn, events)

	return connected.ConnectionID, events, nil
}

// Close tears the connection down. Safe to call at any time.
func (t *WebsocketTransport) Close() error {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

func (t *WebsocketTransport) readPump(conn *websocket.Conn, events chan<- matchclient.Event) {
	defer close(events)

	for {
		var frame wireFrame
		if err := conn.ReadJSON(&frame); err != nil {
			reason := "connection closed"
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				reason = err.Error()
			}
			events <- matchclient.DisconnectedEvent{Reason: reason}
			return
		}

		switch frame.Event {
		case constants.EventGameStart:
			var payload gameStartPayload
			if err := json.Unmarshal(frame.Payload, &payload); err != nil {
				logrus.WithError(err).Warn("dropping malformed gameStart frame")
				continue
			}
			events <- matchclient.MatchFoundEvent{Message: payload.Message, Room: payload.Room}

		case constants.EventRoomCreated:
			var payload gameStartPayload
			if err := json.Unmarshal(frame.Payload, &payload); err != nil {
				logrus.WithError(err).Warn("dropping malformed roomCreated frame")
				continue
			}
			events <- matchclient.RoomCreatedEvent{Message: payload.Message, Room: payload.Room}

		case constants.EventGameError, constants.EventConnectError:
			var payload gameErrorPayload
			if err := json.Unmarshal(frame.Payload, &payload); err != nil {
				logrus.WithError(err).Warn("dropping malformed gameError frame")
				continue
			}
			events <- matchclient.ErrorEvent{Message: payload.Message}

		case constants.EventDisconnect:
			var payload gameErrorPayload
			_ = json.Unmarshal(frame.Payload, &payload)
			events <- matchclient.DisconnectedEvent{Reason: payload.Message}
			_ = conn.Close()
			return

		default:
			logrus.WithField("event", frame.Event).Debug("ignoring unknown socket event")
		}
	}
}
