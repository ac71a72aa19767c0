package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/interviewer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interviewer",
	Short: "Adaptive technical mock interviews",
	Long: "Interviewer runs a technical mock interview in the terminal. A language model plans topics,\n" +
		"evaluates each answer and asks the next question while the difficulty and topic follow\n" +
		"the candidate's performance. A final report closes the session.",
	SilenceUsage: true,
	RunE:         runInterview,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides INTERVIEWER_DB env var)")
	pf.String("model", "", "Model name override for the configured LLM provider")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-mode", "dev", "Log encoding (dev, prod)")
	pf.String("log-file", "", "Write logs to this file (the TUI always logs to a file)")
	pf.String("otel-endpoint", "", "OTLP/HTTP collector host:port for traces")
	pf.String("otel-headers", "", "Comma-separated key=value headers for the OTLP exporter")
	pf.Bool("otel-insecure", false, "Use plain HTTP for the OTLP exporter")
	pf.String("otel-trace-file", "", "Write spans to this file instead of a collector")
	pf.Float64("otel-sample-ratio", 1, "Fraction of traces to sample")

	addInterviewFlags(rootCmd)

	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// viperForCmd binds a command's flags, INTERVIEWER_* environment variables
// and an optional interviewer.yaml to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("INTERVIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("interviewer")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/interviewer")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "error reading config file:", err)
		}
	}
	return v
}

// resolveDBPath returns the database path using --db (or INTERVIEWER_DB
// through viper), then the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store for read-only inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(viperForCmd(cmd))
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
