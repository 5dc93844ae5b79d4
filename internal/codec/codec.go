package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	msgpack "github.com/hashicorp/go-msgpack/v2/codec"
	"gopkg.in/yaml.v3"

	"github.com/roach88/scricket/internal/ir"
	"github.com/roach88/scricket/internal/match"
)

// Version is the wire version written by Serialize.
const Version = 1

// Format selects an encoding.
type Format int

const (
	Binary Format = iota
	Text
	JSON
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case Text:
		return "text"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat accepts "binary", "text" (or "yaml") and "json".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "binary", "msgpack":
		return Binary, nil
	case "text", "yaml":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want binary, text or json)", s)
	}
}

var magic = []byte("SCRK")

var msgpackHandle = &msgpack.MsgpackHandle{WriteExt: true}

type document struct {
	Version int      `json:"version" yaml:"version"`
	Events  []Record `json:"events" yaml:"events"`
}

// DecodeError reports a log that could not be read. Index is the failing
// event, or -1 when the envelope itself is bad.
type DecodeError struct {
	Format Format
	Index  int
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("decode %s: event %d: %v", e.Format, e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Serialize encodes events in format f.
func Serialize(events []match.Event, f Format) ([]byte, error) {
	records, err := FromEvents(events)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	doc := document{Version: Version, Events: records}

	switch f {
	case Binary:
		var body []byte
		if err := msgpack.NewEncoderBytes(&body, msgpackHandle).Encode(doc); err != nil {
			return nil, fmt.Errorf("serialize binary: %w", err)
		}
		out := make([]byte, 0, len(magic)+1+len(body))
		out = append(out, magic...)
		out = append(out, byte(Version))
		return append(out, body...), nil
	case Text:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("serialize text: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("serialize text: %w", err)
		}
		return buf.Bytes(), nil
	case JSON:
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("serialize json: %w", err)
		}
		obj, err := ir.ParseObject(raw)
		if err != nil {
			return nil, fmt.Errorf("serialize json: %w", err)
		}
		return ir.MarshalCanonical(obj)
	default:
		return nil, fmt.Errorf("serialize: unknown format %s", f)
	}
}

// Deserialize decodes a log written by Serialize. Any failure returns a
// *DecodeError and no events.
func Deserialize(data []byte, f Format) ([]match.Event, error) {
	doc, err := decodeDocument(data, f)
	if err != nil {
		return nil, &DecodeError{Format: f, Index: -1, Err: err}
	}
	if doc.Version != Version {
		return nil, &DecodeError{Format: f, Index: -1, Err: fmt.Errorf("unsupported version %d", doc.Version)}
	}

	events := make([]match.Event, len(doc.Events))
	for i, r := range doc.Events {
		ev, err := r.Event()
		if err != nil {
			return nil, &DecodeError{Format: f, Index: i, Err: err}
		}
		events[i] = ev
	}
	return events, nil
}

func decodeDocument(data []byte, f Format) (document, error) {
	var doc document
	switch f {
	case Binary:
		if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic) {
			return doc, errors.New("missing SCRK header")
		}
		if v := int(data[len(magic)]); v != Version {
			return doc, fmt.Errorf("unsupported version %d", v)
		}
		if err := msgpack.NewDecoderBytes(data[len(magic)+1:], msgpackHandle).Decode(&doc); err != nil {
			return doc, err
		}
	case Text:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return doc, err
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return doc, err
		}
	default:
		return doc, fmt.Errorf("unknown format %s", f)
	}
	return doc, nil
}
