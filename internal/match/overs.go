package match

import "fmt"

// BallsPerOver is the number of legal deliveries in an over.
const BallsPerOver = 6

// Overs counts completed overs and legal balls in the current over.
type Overs struct {
	Overs int
	Balls int
}

// AddBall records a legal delivery for a team. It never rolls over:
// EndOver closes the over, so Balls reaches BallsPerOver in between.
func (o *Overs) AddBall() {
	o.Balls++
}

// AddBowlerBall records a legal delivery for a bowler, rolling into the
// next over when the sixth ball is bowled.
func (o *Overs) AddBowlerBall() {
	o.Balls++
	if o.Balls == BallsPerOver {
		o.Overs++
		o.Balls = 0
	}
}

// EndOver closes the current over whatever the ball count.
func (o *Overs) EndOver() {
	o.Balls = 0
	o.Overs++
}

// Complete reports whether every legal ball of the over has been bowled.
func (o Overs) Complete() bool {
	return o.Balls >= BallsPerOver
}

func (o Overs) String() string {
	return fmt.Sprintf("%d.%d", o.Overs, o.Balls)
}
