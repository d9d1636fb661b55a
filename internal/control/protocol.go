package control

import "encoding/json"

type Message struct {
	Type      string          `json:"type"`
	ClientID  string          `json:"clientId,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	TypeError = "error"

	// Connection
	TypeWelcome = "welcome"

	// Client submissions
	TypeCommandSubmit = "command.submit"
	TypeInputSubmit   = "input.submit"

	// Server replies
	TypeCommandAck  = "command.ack"
	TypeCommandNack = "command.nack"
	TypeFrame       = "frame"
)

// WelcomePayload is sent once when a client connects.
type WelcomePayload struct {
	ClientID  string          `json:"clientId"`
	ServerSeq int64           `json:"serverSeq"`
	Frame     json.RawMessage `json:"frame"`
}

// InputPayload is the payload for input.submit messages. Coordinates are in
// world space unless Pixels is set.
type InputPayload struct {
	Event  string  `json:"event"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pixels bool    `json:"pixels,omitempty"`
}

// AckPayload is the payload for command.ack messages
type AckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// NackPayload is the payload for command.nack messages
type NackPayload struct {
	Reason string `json:"reason"`
}

func newMessage(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: typ, Payload: data}, nil
}
