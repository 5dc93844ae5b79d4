package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainEvent = "scricket/event/v1"
	DomainLog   = "scricket/log/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EventID computes the content-addressed id of a stored event.
// The same match, sequence number and payload always give the same id.
func EventID(matchID string, seq int64, payload IRObject) (string, error) {
	canonical, err := MarshalCanonical(IRObject{
		"match_id": IRString(matchID),
		"seq":      IRInt(seq),
		"payload":  payload,
	})
	if err != nil {
		return "", fmt.Errorf("EventID: %w", err)
	}
	return hashWithDomain(DomainEvent, canonical), nil
}

// LogDigest fingerprints an ordered list of event payloads. Match ids and
// sequence numbers are excluded, so an exported and re-imported log keeps
// its digest.
func LogDigest(payloads []IRObject) (string, error) {
	arr := make(IRArray, len(payloads))
	for i, p := range payloads {
		arr[i] = p
	}
	canonical, err := MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("LogDigest: %w", err)
	}
	return hashWithDomain(DomainLog, canonical), nil
}

// MustEventID is like EventID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEventID(matchID string, seq int64, payload IRObject) string {
	id, err := EventID(matchID, seq, payload)
	if err != nil {
		panic(err)
	}
	return id
}
