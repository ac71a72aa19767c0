// Package interview implements the chat screen that drives a session turn
// by turn.
package interview

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interviewer/internal/i18n"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/router"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/screens/report"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/ui/components"
	"github.com/abhisek/interviewer/internal/ui/layout"
)

// Interview is the part of *session.Session the screen drives. It is only
// called from commands, one at a time.
type Interview interface {
	History() []session.Message
	Status() session.Status
	Step(ctx context.Context, userMessage string) (string, error)
	Finish(ctx context.Context) (session.FinalReport, error)
}

// StartFunc plans the interview and asks the warm-up question.
type StartFunc func(ctx context.Context) (Interview, error)

type phase int

const (
	phaseStarting phase = iota
	phaseAnswering
	phaseThinking
	phaseFinishing
	phaseFailed
)

const scrollStep = 5

// Screen is the interview chat screen.
type Screen struct {
	ctx     context.Context
	start   StartFunc
	cat     *i18n.Catalog
	log     *logger.Logger
	iv      Interview
	snap    snapshot
	phase   phase
	input   components.TextInput
	errLine string
	pending string
	frame   int
	scroll  int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the chat screen. start runs in a background command so the
// UI stays responsive while the first model calls complete.
func New(ctx context.Context, start StartFunc, cat *i18n.Catalog, log *logger.Logger) *Screen {
	if log == nil {
		log = logger.Nop()
	}
	return &Screen{
		ctx:   ctx,
		start: start,
		cat:   cat,
		log:   log,
		input: components.NewTextInput(cat.T("InputPlaceholder")),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.startCmd(), s.input.Init(), spinnerTick())
}

func (s *Screen) Title() string {
	return s.cat.T("AppTitle")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFailed:
		return []layout.KeyHint{{Key: "q", Description: s.cat.T("KeyQuit")}}
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "Enter", Description: s.cat.T("KeySubmit")},
			{Key: "Ctrl+D", Description: s.cat.T("KeyFinish")},
			{Key: "PgUp/PgDn", Description: s.cat.T("KeyScroll")},
		}
	}
	return nil
}

func (s *Screen) busy() bool {
	return s.phase == phaseStarting || s.phase == phaseThinking || s.phase == phaseFinishing
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return s.handleStarted(msg)

	case replyMsg:
		return s.handleReply(msg)

	case finishedMsg:
		return s.handleFinished(msg)

	case spinnerTickMsg:
		if !s.busy() {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleStarted(msg startedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.log.Error("interview start failed", "error", msg.Err)
		s.phase = phaseFailed
		s.errLine = s.cat.T("StartError")
		return s, nil
	}
	s.iv = msg.Interview
	s.snap = msg.Snapshot
	s.phase = phaseAnswering
	return s, s.input.Focus()
}

func (s *Screen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.phase = phaseAnswering
	if msg.Err != nil {
		s.log.Error("interview turn failed", "error", msg.Err)
		s.errLine = s.cat.T("ModelError")
		s.input.SetValue(s.pending)
	} else {
		s.snap = msg.Snapshot
		s.errLine = ""
		s.scroll = 0
	}
	s.pending = ""
	return s, s.input.Focus()
}

func (s *Screen) handleFinished(msg finishedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.log.Error("final report failed", "error", msg.Err)
		s.phase = phaseAnswering
		s.errLine = s.cat.T("ModelError")
		return s, s.input.Focus()
	}
	next := report.New(msg.Report, msg.Turns, s.cat)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseFailed {
		switch key {
		case "q", "enter", "esc":
			return s, tea.Quit
		}
		return s, nil
	}

	switch key {
	case "pgup":
		s.scroll += scrollStep
		return s, nil
	case "pgdown":
		s.scroll = max(0, s.scroll-scrollStep)
		return s, nil
	}

	if s.phase != phaseAnswering {
		return s, nil
	}

	switch key {
	case "ctrl+d":
		return s.finish()
	case "enter":
		answer := strings.TrimSpace(s.input.Value())
		if answer == "" {
			return s, nil
		}
		if s.cat.IsStopWord(answer) {
			s.input.Reset()
			return s.finish()
		}
		return s.submit(answer)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit(answer string) (screen.Screen, tea.Cmd) {
	s.phase = phaseThinking
	s.pending = answer
	s.errLine = ""
	s.input.Reset()
	s.input.Blur()
	return s, tea.Batch(s.stepCmd(answer), spinnerTick())
}

func (s *Screen) finish() (screen.Screen, tea.Cmd) {
	s.phase = phaseFinishing
	s.errLine = ""
	s.input.Blur()
	return s, tea.Batch(s.finishCmd(), spinnerTick())
}

func (s *Screen) startCmd() tea.Cmd {
	ctx, start := s.ctx, s.start
	return func() tea.Msg {
		iv, err := start(ctx)
		if err != nil {
			return startedMsg{Err: err}
		}
		return startedMsg{Interview: iv, Snapshot: takeSnapshot(iv)}
	}
}

func (s *Screen) stepCmd(answer string) tea.Cmd {
	ctx, iv := s.ctx, s.iv
	return func() tea.Msg {
		text, err := iv.Step(ctx, answer)
		if err != nil {
			return replyMsg{Err: err}
		}
		return replyMsg{Text: text, Snapshot: takeSnapshot(iv)}
	}
}

func (s *Screen) finishCmd() tea.Cmd {
	ctx, iv := s.ctx, s.iv
	return func() tea.Msg {
		rep, err := iv.Finish(ctx)
		return finishedMsg{Report: rep, Turns: iv.Status().Turn, Err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
