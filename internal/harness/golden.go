package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/scricket/internal/scorecard"
)

// Snapshot renders what golden files record for a run: the scorecard
// followed by the ball-by-ball history.
func Snapshot(result *Result, history []scorecard.Line) []byte {
	var b strings.Builder
	b.WriteString(result.Card.String())
	b.WriteString("\nHistory:\n")
	_ = scorecard.RenderHistory(&b, history)
	return []byte(b.String())
}

// RunWithGolden runs a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, history, err := run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, Snapshot(result, history))
	return result, nil
}

// AssertGolden compares snapshot against the named golden file.
func AssertGolden(t *testing.T, name string, snapshot []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, snapshot)
}

// RunSnapshot runs a scenario and returns its result along with the
// snapshot a golden file would hold.
func RunSnapshot(scenario *Scenario) (*Result, []byte, error) {
	result, history, err := run(scenario)
	if err != nil {
		return nil, nil, err
	}
	return result, Snapshot(result, history), nil
}
