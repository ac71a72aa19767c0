package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(3, 0))
	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 1.0, Ratio(5, 2))
	assert.Equal(t, 0.0, Ratio(-1, 2))
}

func TestProgressBar_Width(t *testing.T) {
	for _, r := range []float64{0, 0.3, 1} {
		bar := ProgressBar{Label: "Confidence", Ratio: r, Suffix: "30/100", Width: 40}
		assert.Equal(t, 40, lipgloss.Width(bar.View()))
	}
}

func TestProgressBar_MinimumBar(t *testing.T) {
	bar := ProgressBar{Label: "a very long label that does not fit", Width: 10}
	assert.Contains(t, bar.View(), "a very long label")
}
