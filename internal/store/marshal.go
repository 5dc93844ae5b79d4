package store

import (
	"fmt"

	"github.com/roach88/scricket/internal/ir"
)

// marshalPayload converts an event payload to canonical JSON TEXT.
// RFC 8785 output keeps the stored text byte-identical across writers.
func marshalPayload(payload ir.IRObject) (string, error) {
	data, err := ir.MarshalCanonical(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// unmarshalPayload parses stored canonical JSON TEXT.
func unmarshalPayload(data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	obj, err := ir.ParseObject([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return obj, nil
}
