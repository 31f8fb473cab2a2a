package session

// Streak counts consecutive correct answers. Longest never decreases and is
// never below Current.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Record applies one answer outcome.
func (s *Streak) Record(correct bool) {
	if !correct {
		s.Current = 0
		return
	}
	s.Current++
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
}
