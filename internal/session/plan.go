package session

import (
	"strings"
	"unicode"
)

// TopicPlan is the ordered, duplicate-free list of topics for a session.
// It never changes after the session starts.
type TopicPlan []string

// NewTopicPlan normalizes topics, dropping blanks and repeats. When nothing
// usable remains the fallback topics are used instead.
func NewTopicPlan(topics, fallback []string) TopicPlan {
	plan := dedupTopics(topics)
	if len(plan) == 0 {
		plan = dedupTopics(fallback)
	}
	if len(plan) == 0 {
		plan = dedupTopics(DefaultConfig().FallbackTopics)
	}
	return plan
}

func dedupTopics(topics []string) TopicPlan {
	seen := make(map[string]bool, len(topics))
	var out TopicPlan
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// TopicID normalizes a topic label to a plan id: lowercase, with runs of
// separators collapsed to a single underscore ("Go Concurrency" becomes
// "go_concurrency").
func TopicID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore && b.Len() > 0:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.TrimRight(b.String(), "_")
}

// IndexOf returns the position of topic in the plan, or -1. Labels match
// their normalized id, so "Go Concurrency" finds "go_concurrency".
func (p TopicPlan) IndexOf(topic string) int {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return -1
	}
	for i, t := range p {
		if t == topic {
			return i
		}
	}
	id := TopicID(topic)
	if id == "" {
		return -1
	}
	for i, t := range p {
		if TopicID(t) == id {
			return i
		}
	}
	return -1
}

// Contains reports whether topic is in the plan.
func (p TopicPlan) Contains(topic string) bool { return p.IndexOf(topic) >= 0 }

// nextTopicIndex applies the progression policy: stay when the evaluation
// says so, jump to a recommended topic that is in the plan, otherwise step
// forward one topic without running past the end.
func nextTopicIndex(plan TopicPlan, current int, ev Evaluation) int {
	if !ev.ShouldMoveOn {
		return current
	}
	if i := plan.IndexOf(ev.NextTopic); i >= 0 {
		return i
	}
	if current < len(plan)-1 {
		return current + 1
	}
	return current
}
