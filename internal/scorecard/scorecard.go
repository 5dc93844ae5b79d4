package scorecard

import (
	"cmp"
	"slices"

	"github.com/roach88/scricket/internal/match"
)

// Card is the full scorecard of a match.
type Card struct {
	Innings []Innings `json:"innings"`
	Result  string    `json:"result,omitempty"`
}

// Innings is one side's batting innings and the opposition's bowling.
type Innings struct {
	Number     int           `json:"number"`
	Side       string        `json:"side"`
	Team       string        `json:"team"`
	Runs       int           `json:"runs"`
	Wickets    int           `json:"wickets"`
	Overs      string        `json:"overs"`
	Extras     ExtrasLine    `json:"extras"`
	InProgress bool          `json:"in_progress"`
	Batting    []BattingLine `json:"batting"`
	DidNotBat  []string      `json:"did_not_bat"`
	Bowling    []BowlingLine `json:"bowling"`
}

// ExtrasLine is the team extras breakdown.
type ExtrasLine struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	Total   int `json:"total"`
}

// BattingLine is one batter's row. Dismissal is empty while not out.
type BattingLine struct {
	Order     int    `json:"order"`
	Name      string `json:"name"`
	HowOut    string `json:"how_out"`
	Dismissal string `json:"dismissal"`
	Runs      int    `json:"runs"`
	Balls     int    `json:"balls"`
	OnStrike  bool   `json:"on_strike,omitempty"`
}

// BowlingLine is one bowler's row.
type BowlingLine struct {
	Order   int    `json:"order"`
	Name    string `json:"name"`
	Overs   string `json:"overs"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Wides   int    `json:"wides"`
	NoBalls int    `json:"no_balls"`
}

// Build reads the scorecard off s. Innings appear in the order they were
// started.
func Build(s *match.State) Card {
	order := inningsOrder(s)
	card := Card{Innings: make([]Innings, 0, len(order))}
	for i, side := range order {
		inn := buildInnings(s.Team(side), s.Team(side.Other()))
		inn.Number = i + 1
		inn.Side = side.String()
		inn.InProgress = s.InProgress() && s.BattingSide() == side && i == len(order)-1
		if inn.InProgress {
			markStriker(&inn, s.OnStrikeIndex())
		}
		card.Innings = append(card.Innings, inn)
	}
	card.Result = Result(s)
	return card
}

// inningsOrder lists the sides that have batted, first innings first.
func inningsOrder(s *match.State) []match.Side {
	var order []match.Side
	for _, e := range s.Log() {
		start, ok := e.Event.(match.StartInnings)
		if !ok || slices.Contains(order, start.Side) {
			continue
		}
		order = append(order, start.Side)
	}
	return order
}

func buildInnings(batting, bowling match.Team) Innings {
	inn := Innings{
		Team:      batting.Name,
		Runs:      batting.Runs,
		Wickets:   batting.Wickets,
		Overs:     batting.Overs.String(),
		Batting:   []BattingLine{},
		DidNotBat: []string{},
		Bowling:   []BowlingLine{},
		Extras: ExtrasLine{
			Wides:   batting.Extras.Wides,
			NoBalls: batting.Extras.NoBalls,
			Byes:    batting.Extras.Byes,
			LegByes: batting.Extras.LegByes,
			Total:   batting.Extras.Total(),
		},
	}

	batters := ranked(batting.Players, func(p match.Player) *int { return p.BattingRank })
	for _, p := range batters {
		inn.Batting = append(inn.Batting, BattingLine{
			Order:     p.Order,
			Name:      p.Name(),
			HowOut:    p.HowOut.Name(),
			Dismissal: dismissal(p, bowling),
			Runs:      p.RunsScored,
			Balls:     p.BallsFaced,
		})
	}
	for _, p := range batting.Players {
		if !p.HasBatted() {
			inn.DidNotBat = append(inn.DidNotBat, p.Name())
		}
	}

	for _, p := range ranked(bowling.Players, func(p match.Player) *int { return p.BowlingRank }) {
		inn.Bowling = append(inn.Bowling, BowlingLine{
			Order:   p.Order,
			Name:    p.Name(),
			Overs:   p.OversBowled.String(),
			Runs:    p.RunsConceded,
			Wickets: p.WicketsTaken,
			Wides:   p.Extras.Wides,
			NoBalls: p.Extras.NoBalls,
		})
	}
	return inn
}

// ranked returns the players holding a rank, ordered by it. Ties keep
// roster order.
func ranked(players []match.Player, rank func(match.Player) *int) []match.Player {
	var out []match.Player
	for _, p := range players {
		if rank(p) != nil {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b match.Player) int {
		return cmp.Compare(*rank(a), *rank(b))
	})
	return out
}

func markStriker(inn *Innings, onStrike int) {
	for i := range inn.Batting {
		if inn.Batting[i].Order == onStrike {
			inn.Batting[i].OnStrike = true
		}
	}
}
