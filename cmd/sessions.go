package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.EventRepo().RecentSessions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-20s  %-8s  %-19s  %5s  %-8s  %s\n",
			"Session", "Participant", "Position", "Grade", "Started", "Turns", "Result", "Verdict")
		fmt.Println(strings.Repeat("─", 130))

		for _, ss := range sessions {
			result, verdict := "open", ""
			if !ss.FinishedAt.IsZero() {
				result, verdict = ss.FinalGrade, ss.Verdict
			}
			fmt.Printf("%-36s  %-16s  %-20s  %-8s  %-19s  %5d  %-8s  %s\n",
				ss.SessionID,
				truncate(ss.Participant, 16),
				truncate(ss.Position, 20),
				truncate(ss.Grade, 8),
				ss.StartedAt.Local().Format("2006-01-02 15:04:05"),
				ss.Turns,
				truncate(result, 8),
				verdict,
			)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the recorded turns of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetBool("notes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		turns, err := s.EventRepo().QueryTurnEvents(cmd.Context(), store.QueryOpts{SessionID: args[0]})
		if err != nil {
			return fmt.Errorf("query turns: %w", err)
		}
		if len(turns) == 0 {
			return fmt.Errorf("no turns recorded for session %s", args[0])
		}

		sep := strings.Repeat("─", 60)
		for _, t := range turns {
			fmt.Println(sep)
			fmt.Printf("Turn %d  topic=%s  difficulty=%s  score=%d\n", t.Turn, t.Topic, t.Difficulty, t.Score)
			fmt.Println(sep)
			fmt.Printf("Candidate:   %s\n", t.UserMessage)
			fmt.Printf("Interviewer: %s\n", t.VisibleMessage)
			fmt.Printf("Ideal:       %s\n", t.IdealAnswer)
			if notes {
				fmt.Printf("Notes:       %s\n", t.InternalNotes)
			}
		}
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsShowCmd.Flags().Bool("notes", false, "Include internal evaluation notes")

	sessionsCmd.AddCommand(sessionsShowCmd)
}
