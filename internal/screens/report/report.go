// Package report renders the final interview report.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/i18n"
	"github.com/abhisek/interviewer/internal/screen"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/ui/components"
	"github.com/abhisek/interviewer/internal/ui/layout"
	"github.com/abhisek/interviewer/internal/ui/theme"
)

const scrollStep = 3

// Screen displays a FinalReport.
type Screen struct {
	report session.FinalReport
	turns  int
	cat    *i18n.Catalog
	scroll int
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a report screen for a session with the given answered turns.
func New(report session.FinalReport, turns int, cat *i18n.Catalog) *Screen {
	return &Screen{report: report, turns: turns, cat: cat}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.cat.T("ReportTitle")
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.cat.T("KeyScroll")},
		{Key: "q", Description: s.cat.T("KeyQuit")},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "q", "enter", "esc":
			return s, tea.Quit
		case "down", "j", "pgdown":
			s.scroll += scrollStep
		case "up", "k", "pgup":
			s.scroll = max(0, s.scroll-scrollStep)
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	inner := max(width-8, 10)
	body := theme.Card.Width(width - 4).Render(s.Render(inner))
	lines := strings.Count(body, "\n") + 1
	// s.scroll counts lines hidden above the viewport.
	offset := max(0, lines-height-s.scroll)
	return lipgloss.NewStyle().PaddingLeft(2).Render(layout.Tail(body, height, offset))
}

// Render formats the report as plain styled text, wrapped to width.
func (s *Screen) Render(width int) string {
	r := s.report
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.cat.T("ReportTitle")))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(s.cat.Tp("TurnsAnswered", s.turns)))
	b.WriteString("\n\n")

	s.field(&b, "Grade", r.Grade)
	b.WriteString(theme.Label.Render(s.cat.T("Recommendation")+": ") + theme.Verdict.Render(r.HiringRecommendation) + "\n")
	b.WriteString(components.ProgressBar{
		Label:  s.cat.T("Confidence"),
		Ratio:  components.Ratio(r.Confidence, 100),
		Suffix: fmt.Sprintf("%d/100", r.Confidence),
		Width:  min(width, 48),
	}.View() + "\n")
	b.WriteString("\n")

	s.list(&b, "ConfirmedSkills", r.ConfirmedSkills, width)
	s.list(&b, "KnowledgeGaps", r.KnowledgeGaps, width)
	s.list(&b, "Corrections", r.Corrections, width)

	b.WriteString(theme.Label.Render(s.cat.T("SoftSkills")) + "\n")
	fmt.Fprintf(&b, "  %s: %s\n", s.cat.T("Clarity"), r.SoftSkills.Clarity)
	fmt.Fprintf(&b, "  %s: %s\n", s.cat.T("Honesty"), r.SoftSkills.Honesty)
	fmt.Fprintf(&b, "  %s: %s\n\n", s.cat.T("Engagement"), r.SoftSkills.Engagement)

	s.list(&b, "Roadmap", r.Roadmap, width)
	return strings.TrimRight(b.String(), "\n")
}

func (s *Screen) field(b *strings.Builder, id, value string) {
	b.WriteString(theme.Label.Render(s.cat.T(id)+": ") + theme.Body.Render(value) + "\n")
}

func (s *Screen) list(b *strings.Builder, id string, items []string, width int) {
	b.WriteString(theme.Label.Render(s.cat.T(id)) + "\n")
	if len(items) == 0 {
		b.WriteString(theme.Hint.Render("  "+s.cat.T("None")) + "\n\n")
		return
	}
	for _, item := range items {
		b.WriteString(layout.Wrap("  • "+item, width) + "\n")
	}
	b.WriteString("\n")
}
