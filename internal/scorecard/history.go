package scorecard

import "github.com/roach88/scricket/internal/match"

// Line is one row of the ball-by-ball history.
type Line struct {
	// Index is the submitted event the row belongs to; derived rows share
	// the index of the event that triggered them.
	Index   int    `json:"index"`
	Derived bool   `json:"derived,omitempty"`
	Text    string `json:"text"`
	Matchup string `json:"matchup"`
}

// History lists the scoring rows of the log, oldest first.
func History(s *match.State) []Line {
	lines := []Line{}
	for _, e := range s.Log() {
		text, ok := match.Describe(e.Event)
		if !ok {
			continue
		}
		lines = append(lines, Line{
			Index:   e.Index,
			Derived: e.Origin == match.Derived,
			Text:    text,
			Matchup: s.Matchup(e),
		})
	}
	return lines
}
