package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/scricket/internal/codec"
)

// Scenario is one scripted match fragment with expectations.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description says what the scenario checks.
	Description string `yaml:"description"`

	// Teams lists the two CUE team sheets, batting-first side first.
	// Paths are relative to the scenario file.
	Teams []string `yaml:"teams"`

	// Events are submitted in order after team entry. Steps are numbered
	// from 1.
	Events []Step `yaml:"events"`

	// Assertions are checked after the last step.
	Assertions []Assertion `yaml:"assertions"`

	// MatchID fixes the stored match id. Defaults to testutil.DefaultMatchID.
	MatchID string `yaml:"match_id,omitempty"`
}

// Step is one event plus, optionally, the rejection it must produce.
type Step struct {
	codec.Record `yaml:",inline"`

	// Reject is "precondition", "lookup" or "any".
	Reject string `yaml:"reject,omitempty"`
}

// Rejection classes accepted by Step.Reject.
const (
	RejectPrecondition = "precondition"
	RejectLookup       = "lookup"
	RejectAny          = "any"
)

// Assertion checks one fact about the finished scenario. Which fields are
// read depends on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// team_score and player
	Side string `yaml:"side,omitempty"`

	// player
	Index *int `yaml:"index,omitempty"`

	// team_score: team figures. player: batting figures.
	Runs    *int   `yaml:"runs,omitempty"`
	Wickets *int   `yaml:"wickets,omitempty"`
	Overs   string `yaml:"overs,omitempty"`
	Extras  *int   `yaml:"extras,omitempty"`

	// player
	Balls        *int   `yaml:"balls,omitempty"`
	HowOut       string `yaml:"how_out,omitempty"`
	RunsConceded *int   `yaml:"runs_conceded,omitempty"`
	WicketsTaken *int   `yaml:"wickets_taken,omitempty"`
	OversBowled  string `yaml:"overs_bowled,omitempty"`

	// hint
	Step *int64 `yaml:"step,omitempty"`

	// hint and pending
	Hint string `yaml:"hint,omitempty"`

	// result
	Text *string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertTeamScore        = "team_score"
	AssertPlayer           = "player"
	AssertHint             = "hint"
	AssertPending          = "pending"
	AssertResult           = "result"
	AssertReplayEquivalent = "replay_equivalent"
)

// LoadScenario reads a scenario file. Team sheet paths are resolved
// against the file's directory. Unknown fields are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, team := range scenario.Teams {
		if !filepath.IsAbs(team) {
			scenario.Teams[i] = filepath.Join(base, team)
		}
	}
	for i, team := range scenario.Teams {
		if _, err := os.Stat(team); err != nil {
			return nil, fmt.Errorf("invalid scenario: teams[%d]: %w", i, err)
		}
	}
	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML. Team sheet paths are
// left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and that every step decodes to
// an event.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Teams) != 2 {
		return fmt.Errorf("teams must list exactly two team sheets, got %d", len(s.Teams))
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Events {
		if _, err := step.Event(); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
		switch step.Reject {
		case "", RejectPrecondition, RejectLookup, RejectAny:
		default:
			return fmt.Errorf("events[%d]: unknown reject class %q", i, step.Reject)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertTeamScore:
		if a.Side == "" {
			return fmt.Errorf("assertions[%d]: side is required for team_score", index)
		}
	case AssertPlayer:
		if a.Side == "" || a.Index == nil {
			return fmt.Errorf("assertions[%d]: side and index are required for player", index)
		}
	case AssertHint:
		if a.Step == nil || a.Hint == "" {
			return fmt.Errorf("assertions[%d]: step and hint are required for hint", index)
		}
	case AssertPending:
		if a.Hint == "" {
			return fmt.Errorf("assertions[%d]: hint is required for pending", index)
		}
	case AssertResult:
		if a.Text == nil {
			return fmt.Errorf("assertions[%d]: text is required for result", index)
		}
	case AssertReplayEquivalent:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
