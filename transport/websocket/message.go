package websocket

import (
	"encoding/json"
	"errors"
)

const (
	actionSetNickname = "setNickname"
	actionPlaceStone  = "placeStone"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// placeStonePayload - pointers tell a missing coordinate apart from zero.
type placeStonePayload struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}
