package match

import (
	"fmt"
	"sort"
)

// Side identifies one of the two teams.
type Side int

const (
	SideA Side = iota
	SideB
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Valid reports whether s is SideA or SideB.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide accepts "A" or "B", in either case.
func ParseSide(v string) (Side, error) {
	switch v {
	case "A", "a":
		return SideA, nil
	case "B", "b":
		return SideB, nil
	default:
		return 0, fmt.Errorf("unknown side %q", v)
	}
}

// Team is a roster plus team-level totals. Players are never removed and
// their insertion order is the batting card order.
type Team struct {
	Name    string
	Players []Player
	Runs    int
	Wickets int
	Overs   Overs
	Extras  Extras
}

// Len returns the roster size.
func (t Team) Len() int {
	return len(t.Players)
}

// Player returns the player at roster index i.
func (t Team) Player(i int) (Player, bool) {
	if i < 0 || i >= len(t.Players) {
		return Player{}, false
	}
	return t.Players[i].clone(), true
}

func (t *Team) player(i int) *Player {
	return &t.Players[i]
}

func (t *Team) addPlayer(p Player) {
	t.Players = append(t.Players, p.clone())
}

// BowledInOrder returns the roster indices of players who have bowled,
// ordered by the order they first came on.
func (t Team) BowledInOrder() []int {
	idx := []int{}
	for i, p := range t.Players {
		if p.HasBowled() {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return *t.Players[idx[a]].BowlingRank < *t.Players[idx[b]].BowlingRank
	})
	return idx
}

// NotBowled returns the roster indices of players yet to bowl.
func (t Team) NotBowled() []int {
	idx := []int{}
	for i, p := range t.Players {
		if !p.HasBowled() {
			idx = append(idx, i)
		}
	}
	return idx
}

// SelectableBatters returns the roster indices of players who may still
// bat, skipping the indices in active.
func (t Team) SelectableBatters(active ...int) []int {
	idx := []int{}
outer:
	for i, p := range t.Players {
		if !p.HowOut.CanBat() {
			continue
		}
		for _, a := range active {
			if a == i {
				continue outer
			}
		}
		idx = append(idx, i)
	}
	return idx
}

// allOutAt is the wicket count that ends the innings. Short rosters run
// out of batters before ten wickets.
func (t Team) allOutAt() int {
	if n := len(t.Players) - 1; n > 0 && n < MaxWickets {
		return n
	}
	return MaxWickets
}

func (t Team) nextBowlingRank() int {
	next := 0
	for _, p := range t.Players {
		if p.BowlingRank != nil && *p.BowlingRank >= next {
			next = *p.BowlingRank + 1
		}
	}
	return next
}

func (t Team) clone() Team {
	c := t
	c.Players = make([]Player, len(t.Players))
	for i, p := range t.Players {
		c.Players[i] = p.clone()
	}
	return c
}

// ScoreLine renders the total as wickets/runs.
func (t Team) ScoreLine() string {
	return fmt.Sprintf("%d/%d", t.Wickets, t.Runs)
}

// WicketsInHand is how many more wickets the team can lose before it is
// all out.
func (t Team) WicketsInHand() int {
	if n := t.allOutAt() - t.Wickets; n > 0 {
		return n
	}
	return 0
}
