// ABOUTME: Score bar with a pass marker for quiz results
// ABOUTME: Fills green at or above the pass mark, amber or red below it

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PassMark is the score the backend rewards. Displayed only; the client
// never decides an outcome from it.
const PassMark = 70

// ProgressBarConfig holds configuration for the score bar
type ProgressBarConfig struct {
	Width      int
	PassAt     float64 // Percentage marked on the bar
	PassColor  lipgloss.Color
	NearColor  lipgloss.Color
	FailColor  lipgloss.Color
	EmptyColor lipgloss.Color
	ShowMarker bool
}

// DefaultProgressBarConfig returns sensible defaults
func DefaultProgressBarConfig() ProgressBarConfig {
	return ProgressBarConfig{
		Width:      20,
		PassAt:     PassMark,
		PassColor:  lipgloss.Color("#10B981"),
		NearColor:  lipgloss.Color("#F59E0B"),
		FailColor:  lipgloss.Color("#EF4444"),
		EmptyColor: lipgloss.Color("#374151"),
		ShowMarker: true,
	}
}

func clampPercent(p float64) float64 {
	return min(max(p, 0), 100)
}

// barColor picks the fill color for a score
func barColor(percent float64, config ProgressBarConfig) lipgloss.Color {
	switch {
	case percent >= config.PassAt:
		return config.PassColor
	case percent >= config.PassAt/2:
		return config.NearColor
	default:
		return config.FailColor
	}
}

// ProgressBar renders a score bar with the pass mark shown in the empty part
func ProgressBar(percent float64, config ProgressBarConfig) string {
	if config.Width <= 0 {
		config.Width = 20
	}
	percent = clampPercent(percent)

	filled := min(int(percent/100.0*float64(config.Width)), config.Width)
	markPos := int(config.PassAt / 100.0 * float64(config.Width))

	fill := lipgloss.NewStyle().Foreground(barColor(percent, config))
	empty := lipgloss.NewStyle().Foreground(config.EmptyColor)

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < config.Width; i++ {
		switch {
		case i < filled:
			bar.WriteString(fill.Render("█"))
		case config.ShowMarker && i == markPos:
			bar.WriteString(empty.Render("│"))
		default:
			bar.WriteString(empty.Render("░"))
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// ProgressBarWithLabel renders the bar followed by the percentage
func ProgressBarWithLabel(percent float64, config ProgressBarConfig) string {
	label := lipgloss.NewStyle().
		Foreground(barColor(clampPercent(percent), config)).
		Bold(true).
		Render(fmt.Sprintf("%3.0f%%", percent))
	return ProgressBar(percent, config) + " " + label
}

// CompactProgressBar renders a minimal bar for tight spaces
func CompactProgressBar(percent float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		width = 10
	}
	percent = clampPercent(percent)

	filled := int(percent / 100.0 * float64(width))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("▓", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
}
