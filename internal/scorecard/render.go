package scorecard

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the plain-text scorecard.
func (c Card) Render(w io.Writer) error {
	_, err := io.WriteString(w, c.String())
	return err
}

func (c Card) String() string {
	var b strings.Builder
	for i, inn := range c.Innings {
		if i > 0 {
			b.WriteByte('\n')
		}
		inn.render(&b)
	}
	if c.Result != "" {
		if len(c.Innings) > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintln(&b, c.Result)
	}
	return b.String()
}

func (inn Innings) render(b *strings.Builder) {
	status := ""
	if inn.InProgress {
		status = ", in progress"
	}
	fmt.Fprintf(b, "Innings %d: %s %d/%d (%s overs%s)\n", inn.Number, inn.Team, inn.Wickets, inn.Runs, inn.Overs, status)

	fmt.Fprintf(b, "  %-22s %-32s %4s %4s\n", "Batter", "Dismissal", "R", "B")
	for _, l := range inn.Batting {
		name := l.Name
		if l.OnStrike {
			name += "*"
		}
		fmt.Fprintf(b, "  %-22s %-32s %4d %4d\n", name, l.Dismissal, l.Runs, l.Balls)
	}
	x := inn.Extras
	fmt.Fprintf(b, "  Extras %d (W: %d, NB: %d, B: %d, LB: %d)\n", x.Total, x.Wides, x.NoBalls, x.Byes, x.LegByes)
	if len(inn.DidNotBat) > 0 {
		fmt.Fprintf(b, "  Did not bat: %s\n", strings.Join(inn.DidNotBat, ", "))
	}

	if len(inn.Bowling) == 0 {
		return
	}
	fmt.Fprintf(b, "  %-22s %5s %4s %4s %4s %4s\n", "Bowler", "O", "R", "W", "WD", "NB")
	for _, l := range inn.Bowling {
		fmt.Fprintf(b, "  %-22s %5s %4d %4d %4d %4d\n", l.Name, l.Overs, l.Runs, l.Wickets, l.Wides, l.NoBalls)
	}
}

// RenderHistory writes one history row per line, newest last, as
// "index. Bowler to Batter: text".
func RenderHistory(w io.Writer, lines []Line) error {
	var b strings.Builder
	for _, l := range lines {
		marker := " "
		if l.Derived {
			marker = "+"
		}
		fmt.Fprintf(&b, "%4d%s %s: %s\n", l.Index, marker, l.Matchup, l.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
