package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interviewer/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with an optional label and suffix,
// e.g. topic coverage in the interview or the report's confidence score.
type ProgressBar struct {
	Label  string
	Ratio  float64
	Suffix string
	Width  int
}

// Ratio returns part/total clamped to [0, 1]. A zero total yields 0.
func Ratio(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return max(0, min(1, float64(part)/float64(total)))
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(p.Suffix)
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := max(0, min(barWidth, int(float64(barWidth)*p.Ratio)))

	filledStr := lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))

	return result + filledStr + emptyStr + suffix
}
