// Package teamsheet reads team sheets written in CUE.
//
// A team sheet names a team and lists its players in batting card order:
//
//	name: "Lions"
//	players: [
//		{first: "Ada", last: "Lovelace"},
//		{first: "Grace", last: "Hopper"},
//	]
//
// A match sheet holds both teams under a teams list and may live in a
// CUE package spread over several files. Sheets are unified with an
// embedded schema, so a missing name, fewer than two players or a
// misspelled field fails with the CUE position of the problem.
package teamsheet
