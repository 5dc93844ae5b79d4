package ir

// Version constants for stored logs and the engine.
const (
	// EncodingVersion is the version of the event wire shape.
	EncodingVersion = "1"

	// EngineVersion is the scricket engine version.
	EngineVersion = "0.1.0"
)
