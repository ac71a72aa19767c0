package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/app"
	"github.com/abhisek/interviewer/internal/i18n"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/screens/interview"
	"github.com/abhisek/interviewer/internal/screens/report"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/sessionlog"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview",
	Long: `Run an interactive mock interview.

The interview runs in a full-screen TUI by default. Use --plain for a simple
line-based conversation on stdin/stdout. Type "stop" (or "стоп") to finish
and receive the final report. The session log is written to --log-dir.`,
	RunE: runInterview,
}

func init() {
	addInterviewFlags(interviewCmd)
}

// addInterviewFlags registers the profile flags and --plain.
func addInterviewFlags(cmd *cobra.Command) {
	addProfileFlags(cmd)
	cmd.Flags().Bool("plain", false, "Line-based mode instead of the TUI")
}

// addProfileFlags registers the candidate profile and session flags.
func addProfileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("name", "Candidate", "Candidate name")
	f.String("position", "Backend Developer", "Target position")
	f.String("grade", "Junior", "Target grade (Junior, Middle, Senior)")
	f.String("experience", "", "Short description of the candidate's experience")
	f.StringP("lang", "l", "en", "Interview language (en, ru)")
	f.Int("max-regen", session.DefaultConfig().MaxRegenAttempts, "Topic consistency regenerations per question (0 disables)")
	f.String("log-dir", "logs", "Directory for session logs")
}

func runInterview(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")

	d, err := newDeps(cmd, !plain)
	if err != nil {
		return err
	}
	defer d.Close()

	id := uuid.NewString()
	ctx := llm.WithSession(cmd.Context(), id)

	if plain {
		return runPlain(ctx, d, id, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return runTUI(ctx, d, id)
}

func runTUI(ctx context.Context, d *deps, id string) error {
	var current atomic.Pointer[run]
	start := func(ctx context.Context) (interview.Interview, error) {
		rn, err := d.startRun(ctx, id, d.profile())
		if err != nil {
			return nil, err
		}
		current.Store(rn)
		return rn.sess, nil
	}

	err := app.Run(interview.New(ctx, start, d.cat, d.log), app.Options{
		Title:     d.cat.T("AppTitle"),
		QuitLabel: d.cat.T("KeyQuit"),
	})
	if rn := current.Load(); rn != nil {
		saveAndReport(d, rn, os.Stdout)
	}
	return err
}

// runPlain runs the interview as a line-based conversation.
func runPlain(ctx context.Context, d *deps, id string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, d.cat.T("Starting"))
	rn, err := d.startRun(ctx, id, d.profile())
	if err != nil {
		return fmt.Errorf("start interview: %w", err)
	}
	defer saveAndReport(d, rn, out)

	for _, m := range rn.sess.History() {
		printMessage(out, d.cat, m)
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprintf(out, "\n%s: ", d.cat.T("You"))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}
		if d.cat.IsStopWord(answer) {
			break
		}

		reply, err := rn.sess.Step(ctx, answer)
		if err != nil {
			d.log.Error("interview turn failed", "session", id, "error", err)
			fmt.Fprintln(out, d.cat.T("ModelError"))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		printMessage(out, d.cat, session.Message{Role: session.RoleInterviewer, Text: reply})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Fprintln(out, d.cat.T("Finishing"))
	rep, err := rn.sess.Finish(ctx)
	if err != nil {
		return fmt.Errorf("final report: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, report.New(rep, rn.sess.Status().Turn, d.cat).Render(80))
	return nil
}

func printMessage(out io.Writer, cat *i18n.Catalog, m session.Message) {
	name := cat.T("Interviewer")
	if m.Role == session.RoleCandidate {
		name = cat.T("You")
	}
	fmt.Fprintf(out, "\n%s: %s\n", name, m.Text)
}

// saveAndReport writes the session log and prints where it went.
func saveAndReport(d *deps, rn *run, out io.Writer) {
	path, err := rn.save()
	if err != nil {
		if !errors.Is(err, sessionlog.ErrAlreadySaved) {
			d.log.Error("save session log failed", "session", rn.id, "error", err)
			fmt.Fprintln(os.Stderr, "save session log:", err)
		}
		return
	}
	fmt.Fprintln(out, d.cat.Td("LogSaved", map[string]any{"Path": path}))
}
