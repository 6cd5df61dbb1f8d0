package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wod-trainer/wodtimer/internal/workout"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	timerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 3)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	bigStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	goStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// kindColors gives every workout kind its accent color.
var kindColors = map[workout.Kind]lipgloss.Color{
	workout.KindTabata:  lipgloss.Color("196"),
	workout.KindEMOM:    lipgloss.Color("220"),
	workout.KindAMRAP:   lipgloss.Color("205"),
	workout.KindForTime: lipgloss.Color("117"),
	workout.KindRest:    lipgloss.Color("241"),
}

func kindColor(k workout.Kind) lipgloss.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return lipgloss.Color("241")
}

// kindBadge renders a kind as a colored label.
func kindBadge(k workout.Kind) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(kindColor(k)).
		Padding(0, 1).
		Render(k.String())
}
