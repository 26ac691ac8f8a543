package websocket

import (
	"encoding/json"
	"time"
)

// Frame is the envelope written to every websocket client
type Frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// EncodeFrame marshals payload and wraps it in a Frame
func EncodeFrame(event string, payload any, sentAt time.Time) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return encodeRawFrame(event, raw, sentAt)
}

func encodeRawFrame(event string, payload json.RawMessage, sentAt time.Time) ([]byte, error) {
	return json.Marshal(Frame{
		Event:   event,
		Payload: payload,
		SentAt:  sentAt.UTC(),
	})
}

// DecodeFrame is the client-side counterpart of EncodeFrame
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
