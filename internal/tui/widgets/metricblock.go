// ABOUTME: Compact metric block widget for the dashboard and wallet
// ABOUTME: Combines icon, value, optional sparkline, and caption in a bordered box

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/readsmvp/reads-cli/internal/tui/icons"
)

// MetricBlockConfig holds configuration for a metric block
type MetricBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultMetricBlockConfig returns sensible defaults
func DefaultMetricBlockConfig() MetricBlockConfig {
	return MetricBlockConfig{
		Width:       22,
		BorderColor: lipgloss.Color("#6B7280"),
		TitleColor:  lipgloss.Color("#7C3AED"),
		ValueColor:  lipgloss.Color("#F9FAFB"),
	}
}

// topBorder draws "┌─ title ───┐" to the block width
func topBorder(title string, config MetricBlockConfig) string {
	innerWidth := config.Width - 5
	title = truncate(title, innerWidth)
	styled := lipgloss.NewStyle().Foreground(config.TitleColor).Render(title)
	fill := max(0, config.Width-5-lipgloss.Width(title))
	return "┌─ " + styled + " " + strings.Repeat("─", fill) + "┐"
}

// line pads already-styled content to the inner width
func line(content string, innerWidth int) string {
	pad := max(0, innerWidth-lipgloss.Width(content))
	return "│  " + content + strings.Repeat(" ", pad) + "│"
}

// MetricBlock renders a compact metric display block
func MetricBlock(icon icons.Icon, title, value, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	innerWidth := config.Width - 4

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder(fmt.Sprintf("%s %s", icon.String(), title), config)),
		borderStyle.Render(line(valueStyle.Render(truncate(value, innerWidth)), innerWidth)),
		borderStyle.Render(line(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘"),
	}, "\n")
}

// MetricBlockWithSparkline renders a metric block with a trend line
func MetricBlockWithSparkline(icon icons.Icon, title, value string, sparkData []float64, subtitle string, config MetricBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}
	innerWidth := config.Width - 4
	sparkWidth := max(0, min(12, innerWidth-len(value)-2))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	valueLine := valueStyle.Render(value)
	if spark := Sparkline(sparkData, sparkWidth, config.TitleColor); spark != "" {
		valueLine += "  " + spark
	}

	return strings.Join([]string{
		borderStyle.Render(topBorder(fmt.Sprintf("%s %s", icon.String(), title), config)),
		borderStyle.Render(line(valueLine, innerWidth)),
		borderStyle.Render(line(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth)),
		borderStyle.Render("└" + strings.Repeat("─", config.Width-2) + "┘"),
	}, "\n")
}

// CountBlock renders a simple count metric
func CountBlock(icon icons.Icon, title string, count int, label string, config MetricBlockConfig) string {
	return MetricBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// truncate shortens a string to maxLen runes with an ellipsis if needed
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:max(0, maxLen)])
	}
	return string(r[:maxLen-3]) + "..."
}
