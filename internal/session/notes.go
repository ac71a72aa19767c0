package session

import (
	"fmt"
	"strings"
)

// internalNotes renders the diagnostic line stored with each turn.
func internalNotes(topic string, ev Evaluation, needHint bool, difficulty Difficulty, q QuestionDraft, regens int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[evaluation] planned_topic=%s, quality=%s, score=%d, offtopic=%t, hallucination=%t, "+
		"should_move_on=%t, need_hint=%t, difficulty_now=%s.",
		topic, ev.Quality, ev.Score, ev.OffTopic, ev.Hallucination, ev.ShouldMoveOn, needHint, difficulty)
	if regens > 0 {
		fmt.Fprintf(&b, " regenerated=%d.", regens)
	}
	var fallbacks []string
	if ev.Fallback {
		fallbacks = append(fallbacks, "evaluation")
	}
	if q.Fallback {
		fallbacks = append(fallbacks, "question")
	}
	if len(fallbacks) > 0 {
		fmt.Fprintf(&b, " fallback=%s.", strings.Join(fallbacks, ","))
	}
	fmt.Fprintf(&b, " notes=%s", ev.Notes)
	return b.String()
}
