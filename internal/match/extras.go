package match

import "fmt"

// ExtraKind is the kind of a run not scored off the bat.
type ExtraKind int

const (
	Wide ExtraKind = iota
	NoBall
	Bye
	LegBye
	PenaltyRuns
)

var extraKindNames = [...]string{"wide", "no_ball", "bye", "leg_bye", "penalty_runs"}

var extraKindLabels = [...]string{"Wide", "No ball", "Bye", "Leg bye", "Penalty runs"}

// ExtraKinds returns every kind in display order.
func ExtraKinds() []ExtraKind {
	return []ExtraKind{Wide, NoBall, Bye, LegBye, PenaltyRuns}
}

// Valid reports whether k is a known kind.
func (k ExtraKind) Valid() bool {
	return k >= Wide && k <= PenaltyRuns
}

// Name returns the snake_case wire name.
func (k ExtraKind) Name() string {
	if !k.Valid() {
		return fmt.Sprintf("extra_kind(%d)", int(k))
	}
	return extraKindNames[k]
}

func (k ExtraKind) String() string {
	if !k.Valid() {
		return k.Name()
	}
	return extraKindLabels[k]
}

// ParseExtraKind parses a wire name such as "leg_bye".
func ParseExtraKind(s string) (ExtraKind, error) {
	for i, name := range extraKindNames {
		if name == s {
			return ExtraKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown extra kind %q", s)
}

// Extra is one extra delivery outcome: the runs taken and how they came.
type Extra struct {
	Runs int
	Kind ExtraKind
}

// TeamRuns is what the extra adds to the batting total. Wides and no-balls
// carry a one-run penalty on top of the runs taken.
func (e Extra) TeamRuns() int {
	switch e.Kind {
	case Wide, NoBall:
		return e.Runs + 1
	default:
		return e.Runs
	}
}

// IsLegalBall reports whether the delivery counts towards the over.
func (e Extra) IsLegalBall() bool {
	return e.Kind == Bye || e.Kind == LegBye
}

// MinimumRuns is the smallest run count that makes sense for the kind.
// Byes, leg-byes and penalties need at least one run to exist at all.
func (k ExtraKind) MinimumRuns() int {
	switch k {
	case Wide, NoBall:
		return 0
	default:
		return 1
	}
}

// Extras accumulates extras for a team, or for a bowler's own figures.
//
// NoBalls counts deliveries, not runs. PenaltyRuns is never accumulated
// here: penalties go straight onto the team total.
type Extras struct {
	Wides       int
	NoBalls     int
	Byes        int
	LegByes     int
	PenaltyRuns int
}

// Record routes an extra into the ledger.
func (x *Extras) Record(e Extra) {
	switch e.Kind {
	case Wide:
		x.Wides += e.Runs + 1
	case NoBall:
		x.NoBalls++
	case Bye:
		x.Byes += e.Runs
	case LegBye:
		x.LegByes += e.Runs
	case PenaltyRuns:
	}
}

// Total sums every ledger column.
func (x Extras) Total() int {
	return x.Wides + x.NoBalls + x.Byes + x.LegByes + x.PenaltyRuns
}

func (x Extras) String() string {
	return fmt.Sprintf("W: %d, NB: %d, B: %d, LB: %d", x.Wides, x.NoBalls, x.Byes, x.LegByes)
}
