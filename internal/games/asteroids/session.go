package asteroids

// Outcome records how a run ended.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeDestroyed         // lives exhausted
	OutcomeSwallowed         // instant game over from a hazard
	OutcomeVictory           // field cleared after the mode's victory time
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeSwallowed:
		return "swallowed"
	case OutcomeVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Session is the score and lives of the current run. The Machine owns it and
// only collision outcomes change it.
type Session struct {
	Mode      string
	Score     int
	Lives     int
	Destroyed int // asteroids destroyed by missiles
	Outcome   Outcome
}

// Reset starts a fresh run.
func (s *Session) Reset(mode string, lives int) {
	*s = Session{Mode: mode, Lives: lives}
}

// AddScore credits points for a destroyed asteroid.
func (s *Session) AddScore(points int) {
	s.Score += points
	s.Destroyed++
}

// LoseLife removes one life and reports whether none are left.
func (s *Session) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives == 0
}
