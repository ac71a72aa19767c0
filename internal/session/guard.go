package session

import (
	"context"
	"fmt"
)

// draft generates a question for in and, when a Verifier is configured,
// re-generates up to MaxRegenAttempts times while the draft is judged off
// topic. The last draft is accepted even if it still mismatches. It returns
// the draft and the number of regenerations performed.
func (s *Session) draft(ctx context.Context, st *State, in GenerateInput) (QuestionDraft, int, error) {
	in.Profile = s.profile
	in.Avoid = lastDistinct(s.cfg.AvoidWindow, st.AskedQuestions)

	q, err := s.c.Generator.Generate(ctx, in)
	if err != nil {
		return QuestionDraft{}, 0, fmt.Errorf("generate question: %w", err)
	}
	if s.c.Verifier == nil {
		return q, 0, nil
	}

	var rejected []string
	regens := 0
	for regens < s.cfg.MaxRegenAttempts && s.offTopic(ctx, in.Topic, q.Question) {
		rejected = append(rejected, q.Question)
		retry := in
		retry.Intent = regenIntent(in.Intent)
		retry.Regenerate = true
		retry.Avoid = lastDistinct(s.cfg.AvoidWindow, st.AskedQuestions, rejected...)

		q, err = s.c.Generator.Generate(ctx, retry)
		if err != nil {
			return QuestionDraft{}, regens, fmt.Errorf("regenerate question: %w", err)
		}
		regens++
	}
	return q, regens, nil
}

// offTopic fails open: a verification error or a missing signal passes.
func (s *Session) offTopic(ctx context.Context, topic, question string) bool {
	v, err := s.c.Verifier.Verify(ctx, VerifyInput{Profile: s.profile, Topic: topic, Question: question})
	if err != nil {
		s.log.Warn("topic check failed, accepting question", "topic", topic, "error", err)
		return false
	}
	if v.Mismatch {
		s.log.Debug("question rejected as off topic", "topic", topic, "reason", v.Reason)
	}
	return v.Mismatch
}
