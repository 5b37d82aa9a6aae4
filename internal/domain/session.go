package domain

// Session holds the counters of one invocation. Passed never exceeds Attempted
// and neither counter ever decreases.
type Session struct {
	attempted int
	passed    int
	results   []CheckResult
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{}
}

// Record counts a finished check
func (s *Session) Record(result CheckResult) {
	s.attempted++
	if result.Passed {
		s.passed++
	}
	s.results = append(s.results, result)
}

// Attempted returns how many checks ran
func (s *Session) Attempted() int { return s.attempted }

// Passed returns how many checks passed
func (s *Session) Passed() int { return s.passed }

// Failed returns how many checks failed
func (s *Session) Failed() int { return s.attempted - s.passed }

// Results returns the per-check results in run order
func (s *Session) Results() []CheckResult {
	out := make([]CheckResult, len(s.results))
	copy(out, s.results)
	return out
}

// SuccessRate returns passed/attempted as a percentage. ok is false when no
// check was attempted.
func (s *Session) SuccessRate() (rate float64, ok bool) {
	if s.attempted == 0 {
		return 0, false
	}
	return float64(s.passed) / float64(s.attempted) * 100, true
}

// Success reports whether every attempted check passed
func (s *Session) Success() bool {
	return s.passed == s.attempted
}
