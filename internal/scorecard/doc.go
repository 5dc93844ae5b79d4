// Package scorecard builds read models over a match state: the batting and
// bowling card for each innings, the match result, and the ball-by-ball
// history. Nothing here mutates the state.
package scorecard
