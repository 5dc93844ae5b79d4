// Package harness runs scoring scenarios against a real engine session.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: wide_accounting
//	description: "A wide adds runs+1 and does not use up a ball"
//	teams:
//	  - ../teams/lions.cue
//	  - ../teams/tigers.cue
//	events:
//	  - {type: start_innings, side: A}
//	  - {type: select_on_strike, index: 0}
//	  - {type: extra, extra: wide, runs: 2}
//	  - {type: runs, runs: 1, reject: precondition}
//	assertions:
//	  - type: team_score
//	    side: A
//	    runs: 3
//	  - type: replay_equivalent
//
// Team sheet paths are relative to the scenario file. Events use the same
// wire fields as the text codec. A step marked reject must be refused by
// the rules with that error class (precondition, lookup or any); every
// other step must be accepted.
//
// # Assertion Types
//
//   - team_score: a side's runs, wickets, overs and extras total
//   - player: one roster slot's batting and bowling figures
//   - hint: the hint returned by a step
//   - pending: the selection the match is waiting for
//   - result: the scorecard result line
//   - replay_equivalent: the stored log replays to the live state and a
//     round trip through every codec format keeps the log digest
//
// # Deterministic Testing
//
// Every scenario runs in a fresh in-memory store with a fixed match id and
// a deterministic step clock, so the scorecard is byte-identical across
// runs and can be compared against golden files with RunWithGolden.
package harness
