package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultySteps(t *testing.T) {
	assert.Equal(t, DifficultyMedium, DifficultyEasy.Harder())
	assert.Equal(t, DifficultyHard, DifficultyMedium.Harder())
	assert.Equal(t, DifficultyHard, DifficultyHard.Harder())
	assert.Equal(t, DifficultyMedium, DifficultyHard.Easier())
	assert.Equal(t, DifficultyEasy, DifficultyMedium.Easier())
	assert.Equal(t, DifficultyEasy, DifficultyEasy.Easier())
	assert.False(t, Difficulty("expert").Valid())
	assert.Equal(t, DifficultyEasy, Difficulty("expert").Harder())
}

func TestStreaksObserve(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name    string
		start   Streaks
		score   int
		quality Quality
		want    Streaks
	}{
		{"good score", Streaks{Poor: 1}, 75, QualityGood, Streaks{Good: 1}},
		{"good score with poor label", Streaks{Good: 1}, 90, QualityPoor, Streaks{Good: 2}},
		{"poor score", Streaks{Good: 1}, 45, QualityPartial, Streaks{Poor: 1}},
		{"poor quality", Streaks{}, 60, QualityPoor, Streaks{Poor: 1}},
		{"unknown quality", Streaks{Poor: 1}, 70, QualityUnknown, Streaks{Poor: 2}},
		{"neutral", Streaks{Good: 1}, 60, QualityPartial, Streaks{Good: 1}},
		{"neutral good label", Streaks{Poor: 1}, 74, QualityGood, Streaks{Poor: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.start
			s.Observe(cfg, tt.score, tt.quality)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestStreaksAdjust(t *testing.T) {
	cfg := DefaultConfig()

	s := Streaks{Good: 2}
	assert.Equal(t, DifficultyMedium, s.Adjust(cfg, DifficultyEasy))
	assert.Equal(t, Streaks{}, s)

	s = Streaks{Poor: 2}
	assert.Equal(t, DifficultyEasy, s.Adjust(cfg, DifficultyEasy))
	assert.Equal(t, Streaks{}, s)

	s = Streaks{Good: 1}
	assert.Equal(t, DifficultyHard, s.Adjust(cfg, DifficultyHard))
	assert.Equal(t, Streaks{Good: 1}, s)
}

func TestNewTopicPlan(t *testing.T) {
	assert.Equal(t, TopicPlan{"go", "sql"}, NewTopicPlan([]string{" go", "sql", "go", ""}, []string{"x"}))
	assert.Equal(t, TopicPlan{"x", "y"}, NewTopicPlan(nil, []string{"x", "y", "x"}))
	assert.Equal(t, TopicPlan(DefaultConfig().FallbackTopics), NewTopicPlan(nil, nil))
}

func TestNextTopicIndex(t *testing.T) {
	plan := TopicPlan{"a", "b", "c", "go_concurrency"}
	tests := []struct {
		name    string
		current int
		ev      Evaluation
		want    int
	}{
		{"stay", 0, Evaluation{NextTopic: "c"}, 0},
		{"jump forward", 0, Evaluation{ShouldMoveOn: true, NextTopic: "c"}, 2},
		{"jump back", 2, Evaluation{ShouldMoveOn: true, NextTopic: "a"}, 0},
		{"same topic", 1, Evaluation{ShouldMoveOn: true, NextTopic: "b"}, 1},
		{"unknown advances", 0, Evaluation{ShouldMoveOn: true, NextTopic: "zzz"}, 1},
		{"empty advances", 1, Evaluation{ShouldMoveOn: true}, 2},
		{"clamped", 3, Evaluation{ShouldMoveOn: true, NextTopic: "zzz"}, 3},
		{"label matches plan id", 0, Evaluation{ShouldMoveOn: true, NextTopic: "Go Concurrency"}, 3},
		{"separators match plan id", 1, Evaluation{ShouldMoveOn: true, NextTopic: "go-concurrency "}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextTopicIndex(plan, tt.current, tt.ev))
		})
	}
}

func TestTopicPlanIndexOfNormalizesLabels(t *testing.T) {
	plan := TopicPlan{"sql_joins", "http_rest"}
	assert.Equal(t, 0, plan.IndexOf("SQL Joins"))
	assert.Equal(t, 1, plan.IndexOf("HTTP / REST"))
	assert.Equal(t, -1, plan.IndexOf("---"))
	assert.Equal(t, -1, plan.IndexOf(""))
	assert.Equal(t, "go_concurrency", TopicID("  Go  Concurrency "))
}

func TestLastDistinct(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, lastDistinct(8, []string{"a", "b", "a", "c"}))
	assert.Equal(t, []string{"a", "c"}, lastDistinct(2, []string{"a", "b", "a", "c"}))
	assert.Equal(t, []string{"b", "x", "y"}, lastDistinct(3, []string{"a", "b"}, "x", "", "y"))
	assert.Nil(t, lastDistinct(0, []string{"a"}))

	var many []string
	for _, c := range "abcdefghijkl" {
		many = append(many, string(c))
	}
	assert.Equal(t, []string{"e", "f", "g", "h", "i", "j", "k", "l"}, lastDistinct(8, many))
}

func TestLastN(t *testing.T) {
	items := []int{1, 2, 3, 4}
	got := lastN(items, 2)
	assert.Equal(t, []int{3, 4}, got)
	got[0] = 9
	assert.Equal(t, 3, items[2])
	assert.Nil(t, lastN(items, 0))
	assert.Equal(t, items, lastN(items, 10))
}

func TestInternalNotes(t *testing.T) {
	ev := Evaluation{Quality: QualityPartial, Score: 50, ShouldMoveOn: true, Notes: "fine", Fallback: true}
	got := internalNotes("go", ev, true, DifficultyEasy, QuestionDraft{Fallback: true}, 1)
	assert.Equal(t, "[evaluation] planned_topic=go, quality=partial, score=50, offtopic=false, hallucination=false, "+
		"should_move_on=true, need_hint=true, difficulty_now=easy. regenerated=1. fallback=evaluation,question. notes=fine", got)
}

func TestConfigWithDefaults(t *testing.T) {
	c := Config{MaxRegenAttempts: 0, PoorScore: 40}.withDefaults()
	assert.Equal(t, 75, c.GoodScore)
	assert.Equal(t, 40, c.PoorScore)
	assert.Equal(t, 0, c.MaxRegenAttempts)
	assert.Equal(t, 8, c.AvoidWindow)
	assert.Equal(t, "warmup", c.WarmupIntent)
}

func TestTranscript(t *testing.T) {
	assert.Equal(t, "(empty)", Transcript(nil))
	got := Transcript([]Message{
		{Role: RoleInterviewer, Text: "What is a goroutine? "},
		{Role: RoleCandidate, Text: "A lightweight thread."},
	})
	assert.Equal(t, "Interviewer: What is a goroutine?\nCandidate: A lightweight thread.", got)
}
