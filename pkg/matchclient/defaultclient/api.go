// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-openapi/swag"
	"github.com/oklog/ulid/v2"

	"github.com/AccelByte/arena-client-core/pkg/config"
	"github.com/AccelByte/arena-client-core/pkg/constants"
	"github.com/AccelByte/arena-client-core/pkg/envelope"
	"github.com/AccelByte/arena-client-core/pkg/matchclient"
	"github.com/AccelByte/arena-client-core/pkg/models"
)

const (
	findOpponentPath = "/api/game/find-opponent"
	createRoomPath   = "/api/game/create-room"
	joinRoomPath     = "/api/game/join-room"
)

// restMatchService is the request/response side of the matchmaking
// backend, speaking JSON over HTTP.
type restMatchService struct {
	baseURL    string
	httpClient *http.Client
}

func NewMatchService(cfg *config.Config) matchclient.MatchService {
	return &restMatchService{
		baseURL:    strings.TrimRight(cfg.MatchServerURL, "/"),
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

var _ matchclient.MatchService = (*restMatchService)(nil)

type messagePayload struct {
	Message *string `json:"message"`
}

type roomPayload struct {
	Message *string      `json:"message"`
	Room    *models.Room `json:"room"`
}

func (s *restMatchService) FindOpponent(rootScope *envelope.Scope, req matchclient.FindOpponentRequest) (*matchclient.FindOpponentResponse, error) {
	scope := rootScope.NewChildScope("restMatchService.FindOpponent")
	defer scope.Finish()

	status, body, err := s.post(scope, constants.FindOpponentFunction, findOpponentPath, req)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var payload roomPayload
		if err := json.Unmarshal(body, &payload); err != nil || payload.Room == nil {
			return nil, &models.TransportError{Op: constants.FindOpponentFunction, Err: errors.New("malformed match response")}
		}
		scope.SetAttributes(envelope.RoomIDTag, payload.Room.RoomID)
		return &matchclient.FindOpponentResponse{Room: payload.Room, Message: swag.StringValue(payload.Message)}, nil

	case http.StatusAccepted:
		var payload messagePayload
		_ = json.Unmarshal(body, &payload)
		return &matchclient.FindOpponentResponse{Queued: true, Message: swag.StringValue(payload.Message)}, nil

	default:
		return nil, rejection(status, body)
	}
}

func (s *restMatchService) CreateRoom(rootScope *envelope.Scope, req matchclient.CreateRoomRequest) (*matchclient.CreateRoomResponse, error) {
	scope := rootScope.NewChildScope("restMatchService.CreateRoom")
	defer scope.Finish()

	status, body, err := s.post(scope, constants.CreateRoomFunction, createRoomPath, req)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, rejection(status, body)
	}

	var payload roomPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Room == nil {
		return nil, &models.TransportError{Op: constants.CreateRoomFunction, Err: errors.New("malformed room response")}
	}
	scope.SetAttributes(envelope.RoomIDTag, payload.Room.RoomID)
	return &matchclient.CreateRoomResponse{Message: swag.StringValue(payload.Message), Room: payload.Room}, nil
}

func (s *restMatchService) JoinRoom(rootScope *envelope.Scope, req matchclient.JoinRoomRequest) (*matchclient.JoinRoomResponse, error) {
	scope := rootScope.NewChildScope("restMatchService.JoinRoom")
	defer scope.Finish()
	scope.SetAttributes(envelope.RoomIDTag, req.RoomID)

	status, body, err := s.post(scope, constants.JoinRoomFunction, joinRoomPath, req)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, rejection(status, body)
	}

	var payload messagePayload
	_ = json.Unmarshal(body, &payload)
	return &matchclient.JoinRoomResponse{Message: swag.StringValue(payload.Message)}, nil
}

func (s *restMatchService) post(scope *envelope.Scope, op string, path string, body interface{}) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, &models.TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(scope.Ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, &models.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", ulid.Make().String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		scope.Log.WithError(err).Errorf("%s request failed", op)
		return 0, nil, &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &models.TransportError{Op: op, Err: err}
	}
	return resp.StatusCode, data, nil
}

func rejection(status int, body []byte) error {
	var payload messagePayload
	_ = json.Unmarshal(body, &payload)
	return &models.ServerRejectedError{StatusCode: status, Message: swag.StringValue(payload.Message)}
}
