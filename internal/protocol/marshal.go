package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownMessageType is returned by Decode for unrecognised types.
var ErrUnknownMessageType = errors.New("unknown message type")

// Marshal serializes a message to JSON.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode parses a raw message by its type envelope and returns the
// concrete message pointer.
func Decode(data []byte) (any, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var msg any
	switch envelope.Type {
	case TypeConnect:
		msg = &Connect{}
	case TypeMove:
		msg = &Move{}
	case TypeJoined:
		msg = &Joined{}
	case TypeMoveRequest:
		msg = &MoveRequest{}
	case TypeUpdate:
		msg = &Update{}
	case TypeGameEnd:
		msg = &GameEnd{}
	case TypeError:
		msg = &Error{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, envelope.Type)
	}

	if err := json.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", envelope.Type, err)
	}
	return msg, nil
}
