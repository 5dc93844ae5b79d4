package match

import "fmt"

// HowOut is how a batter's innings ended, or that it has not.
type HowOut int

const (
	DidNotBat HowOut = iota
	NotOut
	Bowled
	LBW
	Caught
	RunOut
	Stumped
	HitWicket
	HitBallTwice
	HandledBall
	ObstructedField
	TimedOut
	RetiredHurt
	RetiredNotOut
)

var howOutNames = [...]string{
	"did_not_bat", "not_out", "bowled", "lbw", "caught", "run_out", "stumped",
	"hit_wicket", "hit_ball_twice", "handled_ball", "obstructed_field",
	"timed_out", "retired_hurt", "retired_not_out",
}

var howOutLabels = [...]string{
	"Did not bat", "Not out", "Bowled", "LBW", "Caught", "Run out", "Stumped",
	"Hit wicket", "Hit ball twice", "Handled the ball", "Obstructed the field",
	"Timed out", "Retired hurt", "Retired not out",
}

// Valid reports whether h is a known value.
func (h HowOut) Valid() bool {
	return h >= DidNotBat && h <= RetiredNotOut
}

// Name returns the snake_case wire name.
func (h HowOut) Name() string {
	if !h.Valid() {
		return fmt.Sprintf("how_out(%d)", int(h))
	}
	return howOutNames[h]
}

func (h HowOut) String() string {
	if !h.Valid() {
		return h.Name()
	}
	return howOutLabels[h]
}

// ParseHowOut parses a wire name such as "run_out".
func ParseHowOut(s string) (HowOut, error) {
	for i, name := range howOutNames {
		if name == s {
			return HowOut(i), nil
		}
	}
	return 0, fmt.Errorf("unknown dismissal %q", s)
}

// IsDismissal reports whether h can be the outcome of a wicket event.
func (h HowOut) IsDismissal() bool {
	return h.Valid() && h != DidNotBat && h != NotOut
}

// CanBat reports whether a player with this status may be sent in.
func (h HowOut) CanBat() bool {
	switch h {
	case DidNotBat, NotOut, RetiredHurt, RetiredNotOut:
		return true
	default:
		return false
	}
}

// DismissalKinds lists every HowOut a wicket may carry.
func DismissalKinds() []HowOut {
	out := make([]HowOut, 0, RetiredNotOut-Bowled+1)
	for h := Bowled; h <= RetiredNotOut; h++ {
		out = append(out, h)
	}
	return out
}

// End names one of the two active batting positions.
type End int

const (
	OnStrike End = iota
	OffStrike
)

// Valid reports whether e is OnStrike or OffStrike.
func (e End) Valid() bool {
	return e == OnStrike || e == OffStrike
}

func (e End) String() string {
	switch e {
	case OnStrike:
		return "on_strike"
	case OffStrike:
		return "off_strike"
	default:
		return fmt.Sprintf("end(%d)", int(e))
	}
}

// ParseEnd parses "on_strike" or "off_strike".
func ParseEnd(s string) (End, error) {
	switch s {
	case "on_strike":
		return OnStrike, nil
	case "off_strike":
		return OffStrike, nil
	default:
		return 0, fmt.Errorf("unknown end %q", s)
	}
}

// Dismissal carries the extra detail some wickets need. It is nil,
// CaughtBy or RunOutAt.
type Dismissal interface {
	isDismissal()
}

// CaughtBy names the catching fielder.
type CaughtBy struct {
	Fielder int
}

// RunOutAt names the dismissed end and, optionally, the fielder.
type RunOutAt struct {
	Batter  End
	Fielder *int
}

func (CaughtBy) isDismissal() {}
func (RunOutAt) isDismissal() {}

// Wicket is a fully resolved dismissal, ready to apply.
type Wicket struct {
	HowOut HowOut
	Bowler *int
	Detail Dismissal
}

// Fielder returns the credited fielder, if any.
func (w Wicket) Fielder() *int {
	switch d := w.Detail.(type) {
	case CaughtBy:
		return intPtr(d.Fielder)
	case RunOutAt:
		return cloneInt(d.Fielder)
	default:
		return nil
	}
}

// DismissedEnd is the end whose batter is out. Only run outs can dismiss
// the non-striker.
func (w Wicket) DismissedEnd() End {
	if d, ok := w.Detail.(RunOutAt); ok {
		return d.Batter
	}
	return OnStrike
}

func (w Wicket) check() error {
	if !w.HowOut.IsDismissal() {
		return fmt.Errorf("%s is not a dismissal", w.HowOut)
	}
	switch w.HowOut {
	case Caught:
		if _, ok := w.Detail.(CaughtBy); !ok {
			return ErrFielderRequired
		}
	case RunOut:
		d, ok := w.Detail.(RunOutAt)
		if !ok {
			return ErrBatterRequired
		}
		if !d.Batter.Valid() {
			return fmt.Errorf("invalid run out end %s", d.Batter)
		}
	default:
		if w.Detail != nil {
			return fmt.Errorf("%s takes no dismissal detail", w.HowOut)
		}
	}
	return nil
}

// WicketResolver collects what a dismissal kind needs before it becomes a
// Wicket: a fielder for Caught, the dismissed end (and optional fielder)
// for RunOut, nothing otherwise.
type WicketResolver struct {
	howOut  HowOut
	fielder *int
	batter  *End
}

// NewWicketResolver starts resolving a dismissal of kind h.
func NewWicketResolver(h HowOut) *WicketResolver {
	return &WicketResolver{howOut: h}
}

// HowOut returns the kind being resolved.
func (r *WicketResolver) HowOut() HowOut {
	return r.howOut
}

// NeedsFielder reports whether Resolve will fail without a fielder.
func (r *WicketResolver) NeedsFielder() bool {
	return r.howOut == Caught && r.fielder == nil
}

// NeedsBatter reports whether Resolve will fail without the dismissed end.
func (r *WicketResolver) NeedsBatter() bool {
	return r.howOut == RunOut && r.batter == nil
}

// AcceptsFielder reports whether the kind credits a fielder at all.
func (r *WicketResolver) AcceptsFielder() bool {
	return r.howOut == Caught || r.howOut == RunOut
}

// WithFielder sets the fielding player's roster index.
func (r *WicketResolver) WithFielder(index int) *WicketResolver {
	r.fielder = intPtr(index)
	return r
}

// WithBatter sets which end was run out.
func (r *WicketResolver) WithBatter(end End) *WicketResolver {
	r.batter = &end
	return r
}

// Resolve builds the Wicket credited to bowler.
func (r *WicketResolver) Resolve(bowler *int) (Wicket, error) {
	w := Wicket{HowOut: r.howOut, Bowler: cloneInt(bowler)}
	switch r.howOut {
	case Caught:
		if r.fielder == nil {
			return Wicket{}, ErrFielderRequired
		}
		w.Detail = CaughtBy{Fielder: *r.fielder}
	case RunOut:
		if r.batter == nil {
			return Wicket{}, ErrBatterRequired
		}
		w.Detail = RunOutAt{Batter: *r.batter, Fielder: cloneInt(r.fielder)}
	default:
		if r.fielder != nil {
			return Wicket{}, fmt.Errorf("%s does not credit a fielder", r.howOut)
		}
	}
	if err := w.check(); err != nil {
		return Wicket{}, err
	}
	return w, nil
}
