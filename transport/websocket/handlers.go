package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/omok-backend/internal/usecase"
)

type handler func(playerID string, payload json.RawMessage) ([]usecase.Notification, error)

func (that *Hub) handleSetNickname(playerID string, payload json.RawMessage) ([]usecase.Notification, error) {
	var nickname string
	if err := json.Unmarshal(payload, &nickname); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}

	return that.manager.SetNickname(playerID, nickname)
}

func (that *Hub) handlePlaceStone(playerID string, payload json.RawMessage) ([]usecase.Notification, error) {
	var move placeStonePayload
	if err := json.Unmarshal(payload, &move); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}

	if move.Row == nil || move.Col == nil {
		return nil, fmt.Errorf("%w: row and col are required", ErrInvalidPayload)
	}

	return that.manager.PlaceStone(playerID, *move.Row, *move.Col)
}
