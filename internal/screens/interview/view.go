package interview

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/ui/components"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *Screen) View(width, height int) string {
	inner := max(width-4, 10)

	top := s.renderStatus(inner)
	bottom := s.renderPrompt(inner)

	chatHeight := max(height-lipgloss.Height(top)-lipgloss.Height(bottom)-2, 1)
	chat := layout.Tail(s.renderChat(inner), chatHeight, s.scroll)

	pad := lipgloss.NewStyle().PaddingLeft(2)
	return pad.Render(top) + "\n" +
		pad.Render(lipgloss.NewStyle().Height(chatHeight).Render(chat)) + "\n\n" +
		pad.Render(bottom)
}

func (s *Screen) renderStatus(width int) string {
	if s.iv == nil {
		return theme.Hint.Render(s.cat.T("FinishHelp"))
	}
	st := s.snap.Status
	left := theme.Status.Render(s.cat.Td("Status", map[string]any{
		"Topic":      st.Topic,
		"Index":      st.TopicIndex + 1,
		"Count":      st.TopicCount,
		"Difficulty": string(st.Difficulty),
	}))
	right := theme.Hint.Render(s.cat.Tp("TurnsAnswered", st.Turn))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	line := left
	if gap > 0 {
		line += strings.Repeat(" ", gap) + right
	}
	bar := components.ProgressBar{
		Ratio: components.Ratio(st.TopicIndex+1, st.TopicCount),
		Width: width,
	}
	return line + "\n" + bar.View()
}

func (s *Screen) renderChat(width int) string {
	if s.iv == nil {
		return ""
	}
	history := s.snap.History
	blocks := make([]string, 0, len(history))
	for _, m := range history {
		blocks = append(blocks, s.renderMessage(m, width))
	}
	if s.phase == phaseThinking && s.pending != "" {
		blocks = append(blocks, s.renderMessage(session.Message{Role: session.RoleCandidate, Text: s.pending}, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (s *Screen) renderMessage(m session.Message, width int) string {
	name := theme.InterviewerName.Render(s.cat.T("Interviewer"))
	if m.Role == session.RoleCandidate {
		name = theme.CandidateName.Render(s.cat.T("You"))
	}
	return name + "\n" + theme.Body.Render(layout.Wrap(m.Text, width))
}

func (s *Screen) renderPrompt(width int) string {
	switch s.phase {
	case phaseStarting:
		return s.renderBusy("Starting")
	case phaseThinking:
		return s.renderBusy("Thinking")
	case phaseFinishing:
		return s.renderBusy("Finishing")
	case phaseFailed:
		return theme.ErrorLine.Render(layout.Wrap(s.errLine, width))
	}

	var b strings.Builder
	if s.errLine != "" {
		b.WriteString(theme.ErrorLine.Render(layout.Wrap(s.errLine, width)))
		b.WriteString("\n")
	}
	b.WriteString(s.input.View())
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.cat.T("FinishHelp")))
	return b.String()
}

func (s *Screen) renderBusy(id string) string {
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	return theme.Spinner.Render(frame) + " " + theme.Hint.Render(s.cat.T(id))
}
