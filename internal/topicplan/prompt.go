package topicplan

import (
	"bytes"
	"text/template"

	"github.com/abhisek/interviewer/internal/session"
)

const systemPrompt = `You create topic plans for technical interviews. Return JSON only.`

var userTemplate = template.Must(template.New("plan").Parse(`Create an interview topic plan for:
- Position: {{.Profile.Position}}
- Grade: {{.Profile.Grade}}
- Experience: {{.Profile.Experience}}
Language: {{.Profile.Language}}

Rules:
- Topics must be skill-focused knowledge checks, not only "tell me about your project".
- Output {{.Min}}-{{.Max}} topics ordered from fundamentals to more advanced, appropriate for the grade.
- Topics are short snake_case identifiers such as python_collections, java_concurrency, linux_permissions, networking_dns, sql_joins, git_workflow.
- Stay within the tech stack of the position. Do not ask about languages or frameworks the position does not use.`))

type promptData struct {
	Profile  session.Profile
	Min, Max int
}

func buildUserMessage(p session.Profile, cfg Config) (string, error) {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, promptData{Profile: p, Min: cfg.MinTopics, Max: cfg.MaxTopics}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
