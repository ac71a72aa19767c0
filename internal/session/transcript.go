package session

import (
	"fmt"
	"strings"
)

// Transcript formats messages as speaker-labelled lines for prompts.
func Transcript(msgs []Message) string {
	if len(msgs) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for _, m := range msgs {
		speaker := "Interviewer"
		if m.Role == RoleCandidate {
			speaker = "Candidate"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, strings.TrimSpace(m.Text))
	}
	return strings.TrimRight(b.String(), "\n")
}
