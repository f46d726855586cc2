package devserver

import (
	"encoding/json"

	"github.com/vango-dev/weft/internal/errors"
)

// Message types exchanged over the websocket.
const (
	TypeHTML  = "html"
	TypeEvent = "event"
	TypeError = "error"
)

// ServerMessage is sent to preview clients.
type ServerMessage struct {
	Type  string `json:"type"`
	Cycle uint64 `json:"cycle,omitempty"`
	HTML  string `json:"html,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

// ClientMessage is received from preview clients.
type ClientMessage struct {
	Type   string `json:"type"`
	Target int    `json:"target"`
	Event  string `json:"event"`
	Value  string `json:"value,omitempty"`
}

// DecodeClientMessage parses and validates a client message. Failures are
// E061 errors.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, errors.New("E061").Wrap(err)
	}
	switch {
	case msg.Type != TypeEvent:
		return msg, errors.New("E061").WithDetail("Unsupported message type " + `"` + msg.Type + `".`)
	case msg.Target <= 0:
		return msg, errors.New("E061").WithDetail("Event messages need a positive target.")
	case msg.Event == "":
		return msg, errors.New("E061").WithDetail("Event messages need an event name.")
	}
	return msg, nil
}

// errorMessage converts err for the client, keeping its code when it has
// one.
func errorMessage(err error) ServerMessage {
	msg := ServerMessage{Type: TypeError, Error: err.Error()}
	if we, ok := err.(*errors.WeftError); ok {
		msg.Code = we.Code
		msg.Error = we.Message
		if we.Detail != "" {
			msg.Error += ": " + we.Detail
		}
	}
	return msg
}
