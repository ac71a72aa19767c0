package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/interviewer/internal/i18n"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/scenario"
	"github.com/abhisek/interviewer/internal/screens/report"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario <file.yaml>",
	Short: "Replay scripted answers through an interview",
	Long: `Replay a scripted list of candidate answers through a full interview.

Each exchange is printed as it happens and the session log is saved to
--log-dir. The scenario's profile section overrides the profile flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	addProfileFlags(scenarioCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	d, err := newDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.Close()

	if lang := sc.Profile.Language; lang != "" {
		cat, err := i18n.New(lang)
		if err != nil {
			return fmt.Errorf("load messages: %w", err)
		}
		d.cat = cat
	}
	profile := sc.ProfileOr(d.profile())
	profile.Language = d.cat.Lang()

	id := uuid.NewString()
	ctx := llm.WithSession(cmd.Context(), id)
	out := cmd.OutOrStdout()

	rn, err := d.startRun(ctx, id, profile)
	if err != nil {
		return fmt.Errorf("start interview: %w", err)
	}
	defer saveAndReport(d, rn, out)

	player := scenario.Player{
		Out: out,
		Labels: scenario.Labels{
			Interviewer: d.cat.T("Interviewer"),
			Candidate:   d.cat.T("You"),
		},
		IsStop: d.cat.IsStopWord,
	}
	rep, err := player.Play(ctx, rn.sess, sc)
	if err != nil {
		return err
	}
	if rep != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.New(*rep, rn.sess.Status().Turn, d.cat).Render(80))
	}
	return nil
}
