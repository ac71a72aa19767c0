// Package scenario replays scripted candidate answers through a session.
package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/interviewer/internal/session"
)

// Scenario is a scripted interview loaded from YAML:
//
//	profile:
//	  name: Ann
//	  position: Backend Developer
//	  grade: Junior
//	  experience: 1 year of Go
//	  language: en
//	answers:
//	  - A goroutine is a lightweight thread managed by the Go runtime.
//	  - I don't know.
//	finish: true
type Scenario struct {
	Profile ProfileSpec `yaml:"profile"`
	Answers []string    `yaml:"answers"`
	// Finish requests the final report after the last answer. Default true.
	Finish *bool `yaml:"finish"`
}

// ProfileSpec is the candidate profile section of a scenario.
type ProfileSpec struct {
	Name       string `yaml:"name"`
	Position   string `yaml:"position"`
	Grade      string `yaml:"grade"`
	Experience string `yaml:"experience"`
	Language   string `yaml:"language"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty scenario")
		}
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, a := range sc.Answers {
		if strings.TrimSpace(a) == "" {
			return nil, fmt.Errorf("answer %d is empty", i+1)
		}
	}
	return &sc, nil
}

// ShouldFinish reports whether the final report is requested.
func (s *Scenario) ShouldFinish() bool {
	return s.Finish == nil || *s.Finish
}

// ProfileOr returns the scenario profile with blank fields taken from base.
func (s *Scenario) ProfileOr(base session.Profile) session.Profile {
	p := base
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Name, s.Profile.Name)
	set(&p.Position, s.Profile.Position)
	set(&p.Grade, s.Profile.Grade)
	set(&p.Experience, s.Profile.Experience)
	set(&p.Language, s.Profile.Language)
	return p
}

// Interview is the part of *session.Session a scenario drives.
type Interview interface {
	History() []session.Message
	Step(ctx context.Context, userMessage string) (string, error)
	Finish(ctx context.Context) (session.FinalReport, error)
}

// Labels name the speakers in the printed transcript.
type Labels struct {
	Interviewer string
	Candidate   string
}

// Player replays a scenario and prints each exchange.
type Player struct {
	Out    io.Writer
	Labels Labels
	// IsStop ends the replay early when an answer is a stop word.
	IsStop func(string) bool
}

// Play prints the opening messages, submits every answer in order and,
// when requested, finishes the session. It returns the report, or nil when
// the scenario does not finish. Any turn error aborts the replay.
func (p Player) Play(ctx context.Context, iv Interview, sc *Scenario) (*session.FinalReport, error) {
	for _, m := range iv.History() {
		p.print(m)
	}
	for i, answer := range sc.Answers {
		if p.IsStop != nil && p.IsStop(answer) {
			break
		}
		p.print(session.Message{Role: session.RoleCandidate, Text: answer})
		reply, err := iv.Step(ctx, answer)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
		p.print(session.Message{Role: session.RoleInterviewer, Text: reply})
	}
	if !sc.ShouldFinish() {
		return nil, nil
	}
	rep, err := iv.Finish(ctx)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (p Player) print(m session.Message) {
	if p.Out == nil {
		return
	}
	name := p.Labels.Interviewer
	if m.Role == session.RoleCandidate {
		name = p.Labels.Candidate
	}
	fmt.Fprintf(p.Out, "\n%s: %s\n", name, m.Text)
}
