package sessionlog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/store"
)

func TestRecorder_WritesEvents(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	repo := st.EventRepo()

	r := NewRecorder(repo, "s-1", "logs/interview_1.json")
	require.NoError(t, r.Start(ctx, session.Profile{Name: "Ann", Position: "Go Developer", Grade: "Middle"}, []string{"a", "b"}))
	require.NoError(t, r.RecordTurn(ctx, session.TurnRecord{Turn: 1, Topic: "a", Difficulty: session.DifficultyEasy, Score: 80}))
	require.NoError(t, r.RecordTurn(ctx, session.TurnRecord{Turn: 2, Topic: "b", Difficulty: session.DifficultyMedium, Score: 30}))
	require.NoError(t, r.RecordReport(ctx, session.FinalReport{Grade: "Middle", HiringRecommendation: "Hire"}))

	turns, err := repo.QueryTurnEvents(ctx, store.QueryOpts{SessionID: "s-1"})
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "medium", turns[1].Difficulty)
	assert.Equal(t, 30, turns[1].Score)

	sessions, err := repo.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, "s-1", s.SessionID)
	assert.Equal(t, "Ann", s.Participant)
	assert.Equal(t, 2, s.Turns)
	assert.Equal(t, "Hire", s.Verdict)
	assert.Equal(t, "logs/interview_1.json", s.LogPath)
	assert.False(t, s.FinishedAt.IsZero())
}
