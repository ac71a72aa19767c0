package evaluation

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/abhisek/interviewer/internal/session"
)

const evaluationSystemPrompt = `You are the observer in a multi-agent technical interview. You never talk to the candidate. You analyze the candidate's answers and decide what happens next.

Requirements:
- Context awareness: do not repeat questions already asked.
- Adaptability: adjust difficulty up or down and ask for clarification when needed.
- Robustness: detect off-topic answers and hallucinations so the interviewer can steer back.
Return only JSON matching the requested schema.`

var evaluationTemplate = template.Must(template.New("evaluation").Parse(`Analyze the candidate's reply and decide the next step.

Context:
- Position: {{.Profile.Position}}
- Target grade: {{.Profile.Grade}}
- Candidate experience: {{.Profile.Experience}}
- Current topic: {{.Topic}}
- Current difficulty: {{.Difficulty}}
- Topic plan (use these topics only): {{.Plan}}

State (avoid repeats):
{{.State}}

Conversation so far:
{{.Transcript}}

Candidate's last message:
{{.LastMessage}}

Tasks:
1. Detect off-topic answers and hallucinations (confident nonsense).
2. Rate the answer quality and give a score from 0 to 100.
3. Decide the next difficulty: raise or keep it after a good answer; simplify and set need_hint after a poor or unknown one.
4. Decide the next topic: if should_move_on is false keep the current topic, otherwise pick a topic from the plan, preferring the next one in order.
5. Write a short acknowledgment (one natural sentence) in the language of the interview.`))

type evaluationData struct {
	Profile     session.Profile
	Topic       string
	Difficulty  session.Difficulty
	Plan        string
	State       string
	Transcript  string
	LastMessage string
}

func buildEvaluationMessage(in session.EvaluateInput) (string, error) {
	state, err := json.MarshalIndent(in.State, "", "  ")
	if err != nil {
		return "", err
	}
	data := evaluationData{
		Profile:     in.Profile,
		Topic:       in.Topic,
		Difficulty:  in.Difficulty,
		Plan:        strings.Join(in.Plan, ", "),
		State:       string(state),
		Transcript:  session.Transcript(in.History),
		LastMessage: in.LastMessage,
	}
	var buf bytes.Buffer
	if err := evaluationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const verifySystemPrompt = `You check technical interview questions for topic drift. Return only JSON matching the requested schema.`

var verifyTemplate = template.Must(template.New("verify").Parse(`Position: {{.Profile.Position}}
Topic: {{.Topic}}
Question: {{.Question}}

Does the question address the topic? Set topic_mismatch to true only when it is clearly about something else. Closely related angles on the same topic are not a mismatch.`))

func buildVerifyMessage(in session.VerifyInput) (string, error) {
	var buf bytes.Buffer
	if err := verifyTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
