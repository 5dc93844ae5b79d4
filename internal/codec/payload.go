package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/scricket/internal/ir"
	"github.com/roach88/scricket/internal/match"
)

// Payload returns the canonical object for one event, as stored and
// hashed.
func Payload(ev match.Event) (ir.IRObject, error) {
	r, err := FromEvent(ev)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return ir.ParseObject(raw)
}

// CanonicalPayload is Payload rendered as RFC 8785 JSON.
func CanonicalPayload(ev match.Event) ([]byte, error) {
	obj, err := Payload(ev)
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(obj)
}

// EventFromPayload decodes one stored event payload.
func EventFromPayload(data []byte) (match.Event, error) {
	var r Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("event payload: %w", err)
	}
	return r.Event()
}

// Digest fingerprints an event log. Equal logs have equal digests in any
// format and any store.
func Digest(events []match.Event) (string, error) {
	payloads := make([]ir.IRObject, len(events))
	for i, ev := range events {
		p, err := Payload(ev)
		if err != nil {
			return "", fmt.Errorf("digest event %d: %w", i, err)
		}
		payloads[i] = p
	}
	return ir.LogDigest(payloads)
}

// EventFromObject decodes a payload already parsed into an IRObject.
func EventFromObject(obj ir.IRObject) (match.Event, error) {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return nil, fmt.Errorf("event payload: %w", err)
	}
	return EventFromPayload(data)
}
