package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/session"
)

const systemPrompt = `You are a hiring manager writing structured feedback after a technical interview.
Use the full conversation and the per-turn metadata (topic, difficulty, score, ideal answer).
Include brief correct answers for the topics the candidate failed.
Return only JSON matching the requested schema.`

func buildUserMessage(in session.FinalizeInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Position: %s\n", in.Profile.Position)
	fmt.Fprintf(&b, "Target grade: %s\n", in.Profile.Grade)
	fmt.Fprintf(&b, "Experience: %s\n", in.Profile.Experience)
	if in.Profile.Language != "" {
		fmt.Fprintf(&b, "Write the report in: %s\n", in.Profile.Language)
	}

	b.WriteString("\nTurns (topic, difficulty, score, ideal answer):\n")
	if len(in.Turns) == 0 {
		b.WriteString("None. The candidate did not answer any question.\n")
	}
	for _, t := range in.Turns {
		fmt.Fprintf(&b, "%d. %s, %s, %d/100, %s\n", t.Turn, t.Topic, t.Difficulty, t.Score, t.IdealAnswer)
	}

	b.WriteString("\nTranscript:\n")
	b.WriteString(session.Transcript(in.History))

	b.WriteString(`

Create the final feedback:
- Decision: grade, hiring recommendation and confidence.
- Hard skills: confirmed skills and knowledge gaps.
- For each gap add a short correct explanation, using the ideal answers as ground truth.
- Soft skills: clarity, honesty and engagement.
- Roadmap: concrete next steps.`)

	return b.String()
}
