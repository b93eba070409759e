package feed

import (
	"encoding/json"
	"fmt"
)

// Encode wraps a payload in an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("feed: envelope type is empty")
	}
	if payload == nil {
		return nil, fmt.Errorf("feed: nil payload for %q", t)
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("feed: encode %q: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodeEnvelope parses the outer envelope.
func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("feed: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("feed: bad envelope: %w", err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("feed: envelope without type")
	}
	return e, nil
}

// DecodePayload parses an envelope's payload into T.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("feed: empty payload for %q", env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("feed: bad %q payload: %w", env.T, err)
	}
	return out, nil
}
