package session

// Streaks counts consecutive good and poor answers. At most one of the two
// counters is non-zero at any time.
type Streaks struct {
	Good int
	Poor int
}

// Observe folds one scored answer into the counters. A score in the
// neutral band with a good or partial quality leaves them unchanged.
func (s *Streaks) Observe(cfg Config, score int, quality Quality) {
	switch {
	case score >= cfg.GoodScore:
		s.Good++
		s.Poor = 0
	case score <= cfg.PoorScore || quality == QualityPoor || quality == QualityUnknown:
		s.Poor++
		s.Good = 0
	}
}

// Adjust moves d one tier when a streak is complete and resets that streak.
func (s *Streaks) Adjust(cfg Config, d Difficulty) Difficulty {
	switch {
	case s.Good >= cfg.StreakLength:
		s.Good = 0
		return d.Harder()
	case s.Poor >= cfg.StreakLength:
		s.Poor = 0
		return d.Easier()
	}
	return d
}

// struggling reports whether score triggers the easy-with-hint override.
func struggling(cfg Config, score int) bool {
	return score <= cfg.PoorScore
}

func clampScore(score int) int {
	return max(0, min(100, score))
}
