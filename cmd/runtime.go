package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/interviewer/internal/evaluation"
	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/i18n"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/questiongen"
	"github.com/abhisek/interviewer/internal/render"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/sessionlog"
	"github.com/abhisek/interviewer/internal/store"
	"github.com/abhisek/interviewer/internal/telemetry"
	"github.com/abhisek/interviewer/internal/topicplan"
)

// deps holds the process-wide dependencies of an interview command.
type deps struct {
	v        *viper.Viper
	log      *logger.Logger
	store    *store.Store
	provider llm.Provider
	cat      *i18n.Catalog
	shutdown telemetry.Shutdown
}

// newDeps wires logging, tracing, the event store, the LLM provider and
// the message catalog. When logToFile is set and no --log-file is given,
// logs go to <log-dir>/interviewer.log so the TUI owns the terminal.
func newDeps(cmd *cobra.Command, logToFile bool) (*deps, error) {
	ctx := cmd.Context()
	v := viperForCmd(cmd)

	logPath := v.GetString("log-file")
	if logPath == "" && logToFile {
		dir := v.GetString("log-dir")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		logPath = filepath.Join(dir, "interviewer.log")
	}
	log, err := logger.New(logger.Options{
		Mode:  v.GetString("log-mode"),
		Level: v.GetString("log-level"),
		Path:  logPath,
	})
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: "interviewer",
		Version:     version,
		Endpoint:    v.GetString("otel-endpoint"),
		Headers:     telemetry.ParseHeaders(v.GetString("otel-headers")),
		Insecure:    v.GetBool("otel-insecure"),
		TraceFile:   v.GetString("otel-trace-file"),
		SampleRatio: v.GetFloat64("otel-sample-ratio"),
	}, log)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProviderFromEnv(ctx, v.GetString("model"), st.EventRepo(), log)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	cat, err := i18n.New(v.GetString("lang"))
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load messages: %w", err)
	}

	return &deps{
		v:        v,
		log:      log,
		store:    st,
		provider: provider,
		cat:      cat,
		shutdown: shutdown,
	}, nil
}

// Close flushes traces and logs and closes the store.
func (d *deps) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.shutdown(ctx); err != nil {
		d.log.Warn("trace shutdown failed", "error", err)
	}
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store failed", "error", err)
	}
	d.log.Sync()
}

// profile reads the candidate profile from flags, env and config.
func (d *deps) profile() session.Profile {
	return session.Profile{
		Name:       d.v.GetString("name"),
		Position:   d.v.GetString("position"),
		Grade:      d.v.GetString("grade"),
		Experience: d.v.GetString("experience"),
		Language:   d.cat.Lang(),
	}
}

// sessionConfig localizes the engine defaults for profile.
func (d *deps) sessionConfig(p session.Profile) session.Config {
	cfg := session.DefaultConfig()
	cfg.MaxRegenAttempts = d.v.GetInt("max-regen")
	cfg.Intro = d.cat.Td("Intro", map[string]any{
		"Position":   p.Position,
		"Grade":      p.Grade,
		"Experience": p.Experience,
	})
	return cfg
}

// collaborators builds the model-backed components with localized fallbacks.
func (d *deps) collaborators() session.Collaborators {
	cat := d.cat

	evalCfg := evaluation.DefaultConfig()
	evalCfg.FallbackAcknowledgment = cat.T("FallbackAcknowledgment")
	evaluator := evaluation.New(d.provider, evalCfg, d.log)

	genCfg := questiongen.DefaultConfig()
	genCfg.Fallback = func(topic string) session.QuestionDraft {
		data := map[string]any{"Topic": topic}
		return session.QuestionDraft{
			Question:    cat.Td("FallbackQuestion", data),
			Hint:        cat.T("FallbackHint"),
			IdealAnswer: cat.Td("FallbackIdealAnswer", data),
		}
	}

	renderCfg := render.DefaultConfig()
	renderCfg.HintLabel = cat.T("HintLabel")

	fbCfg := feedback.DefaultConfig()
	fbCfg.Fallback.KnowledgeGaps = []string{cat.T("FallbackReportGap")}
	fbCfg.Fallback.Roadmap = []string{cat.T("FallbackReportRoadmap")}

	return session.Collaborators{
		Planner:   topicplan.New(d.provider, topicplan.DefaultConfig(), d.log),
		Evaluator: evaluator,
		Verifier:  evaluator,
		Generator: questiongen.New(d.provider, genCfg, d.log),
		Renderer:  render.New(d.provider, renderCfg, d.log),
		Finalizer: feedback.New(d.provider, fbCfg, d.log),
	}
}

// run is one interview with its persistence attached.
type run struct {
	id       string
	sess     *session.Session
	doc      *sessionlog.Log
	recorder *sessionlog.Recorder
	logPath  string
}

// startRun plans the interview for p and asks the warm-up question. The
// JSON log and the store recorder are attached as sinks so every committed
// turn is persisted. ctx should already carry the session ID via
// llm.WithSession.
func (d *deps) startRun(ctx context.Context, id string, p session.Profile) (*run, error) {
	started := time.Now()
	logPath := sessionlog.DefaultPath(d.v.GetString("log-dir"), started)

	doc := sessionlog.New(id, p, started)
	rec := sessionlog.NewRecorder(d.store.EventRepo(), id, logPath)

	c := d.collaborators()
	c.Sinks = []session.Sink{doc, rec}

	s, err := session.New(ctx, p, c, d.sessionConfig(p),
		session.WithID(id),
		session.WithLogger(d.log),
	)
	if err != nil {
		return nil, err
	}
	doc.SetPlan(s.Plan())
	if err := rec.Start(ctx, p, s.Plan()); err != nil {
		d.log.Warn("record session start failed", "session", id, "error", err)
	}
	return &run{id: id, sess: s, doc: doc, recorder: rec, logPath: logPath}, nil
}

// save writes the JSON session log once. A finished report is included when
// the session reached it; abandoned sessions are saved without one.
func (rn *run) save() (string, error) {
	if err := rn.doc.Save(rn.logPath); err != nil {
		return "", err
	}
	return rn.logPath, nil
}
