package match

import "fmt"

// Replay builds a fresh State by applying events in order. It fails on the
// first event the rules reject, reporting its position.
func Replay(events []Event) (*State, error) {
	s := New()
	for i, ev := range events {
		if _, err := s.Apply(ev); err != nil {
			return nil, fmt.Errorf("replay event %d: %w", i, err)
		}
	}
	return s, nil
}

// Without rebuilds the match with the submitted event at index removed.
// The edit is refused if the remaining events no longer apply cleanly.
func (s *State) Without(index int) (*State, error) {
	events := s.Events()
	if index < 0 || index >= len(events) {
		return nil, &RuleError{
			Code:    CodeLookup,
			Kind:    Kind(-1),
			Message: fmt.Sprintf("no event %d (log has %d)", index, len(events)),
		}
	}
	rest := make([]Event, 0, len(events)-1)
	rest = append(rest, events[:index]...)
	rest = append(rest, events[index+1:]...)
	out, err := Replay(rest)
	if err != nil {
		return nil, fmt.Errorf("remove event %d: %w", index, err)
	}
	return out, nil
}

// Undo rebuilds the match without its last submitted event.
func (s *State) Undo() (*State, error) {
	return s.Without(s.submitted - 1)
}
