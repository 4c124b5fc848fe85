package tilt

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types exchanged with the phone page.
const (
	MsgHello   = "hello"   // client -> server
	MsgTilt    = "tilt"    // client -> server
	MsgFire    = "fire"    // client -> server
	MsgRestart = "restart" // client -> server
	MsgWelcome = "welcome" // server -> client
	MsgState   = "state"   // server -> client
)

// Envelope wraps every WebSocket message.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"`
}

// Hello is the first message a phone sends.
type Hello struct {
	Platform string `json:"platform"`
}

// Reading is one raw accelerometer sample in the device's convention.
type Reading struct {
	X float64 `json:"x"`
}

// Welcome tells the phone how often to sample.
type Welcome struct {
	SampleHz int `json:"sample_hz"`
}

// StateUpdate mirrors the game status so the phone can show a restart button.
type StateUpdate struct {
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
	Paused   bool `json:"paused"`
}

// Encode builds an envelope; a nil payload produces a bare message.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("tilt: empty message type")
	}
	env := Envelope{T: t}
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("tilt: encode %s payload: %w", t, err)
		}
		env.P = pb
	}
	return json.Marshal(env)
}

// DecodeEnvelope parses the outer message.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("tilt: empty message")
	}
	var env Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return Envelope{}, fmt.Errorf("tilt: decode envelope: %w", err)
	}
	if env.T == "" {
		return Envelope{}, errors.New("tilt: message without type")
	}
	return env, nil
}

// DecodePayload parses an envelope's payload into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("tilt: empty payload for %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("tilt: decode %s payload: %w", env.T, err)
	}
	return out, nil
}
