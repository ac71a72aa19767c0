package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/session"
)

const systemPrompt = `You are a question generator for technical interviews. You do not evaluate the candidate.

Rules:
- Produce ONE question for the given position, grade, topic and difficulty.
- The question must be about the given topic and nothing else.
- Difficulty meaning: easy is a definition or basic understanding; medium is practical usage and edge cases; hard is internals, tradeoffs, performance or design.
- If a hint is needed, give one sentence that helps without giving the answer away. Otherwise leave the hint empty.
- Always give ideal_answer_short: a brief correct answer in 1-4 sentences.
- Do not repeat any question from the "already asked" list; choose a different angle instead.
Return only JSON matching the requested schema.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(in session.GenerateInput, cfg Config) string {
	var b strings.Builder

	lang := in.Profile.Language
	if lang == "" {
		lang = "en"
	}

	fmt.Fprintf(&b, "Language: %s\n", lang)
	fmt.Fprintf(&b, "Position: %s\n", in.Profile.Position)
	fmt.Fprintf(&b, "Grade: %s\n", in.Profile.Grade)
	fmt.Fprintf(&b, "Experience: %s\n", in.Profile.Experience)
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Intent: %s\n", in.Intent)
	fmt.Fprintf(&b, "Need hint: %t\n", in.NeedHint)

	if in.Regenerate {
		b.WriteString("\nThe previous draft drifted away from the topic. Ask about the topic itself from a different angle.\n")
	}

	b.WriteString("\nAlready asked in this session (paraphrase or choose a different angle):\n")
	b.WriteString(buildAvoid(in.Avoid, cfg.MaxAvoid))

	return b.String()
}
