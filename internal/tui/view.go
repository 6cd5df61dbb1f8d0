package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wod-trainer/wodtimer/internal/session"
	"github.com/wod-trainer/wodtimer/internal/timer"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	box := timerBoxStyle.Render(m.renderTimer())
	content := lipgloss.JoinVertical(lipgloss.Center, box, m.renderEvents(), m.renderHelp())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderTimer composes the boxed part of the screen.
func (m Model) renderTimer() string {
	var b strings.Builder

	w := m.session.Workout()
	title := w.Name
	if title == "" {
		title = "wodtimer"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(kindBadge(w.Kind))
	b.WriteString("\n")
	b.WriteString(m.stateIndicator())
	b.WriteString("\n\n")

	f, _ := m.session.Current()
	b.WriteString(m.renderFrame(f))

	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("overall"))
	b.WriteString("\n")
	b.WriteString(m.overall.ViewAs(m.session.OverallProgress()))

	return b.String()
}

// renderFrame draws the stage-specific center of the screen.
func (m Model) renderFrame(f timer.Frame) string {
	switch f.Stage {
	case timer.StagePlaceholder:
		return bigStyle.Render("--:--") + "\n" + labelStyle.Render("press space to start")

	case timer.StagePreCountdown:
		return labelStyle.Render("GET READY") + "\n" + countdownStyle.Render(strconv.Itoa(f.SecondsInPhase))

	case timer.StageGo:
		return goStyle.Render("GO!")

	case timer.StageRunning:
		var b strings.Builder
		b.WriteString(bigStyle.Foreground(kindColor(f.Kind)).Render(timer.FormatTime(f.SecondsInPhase)))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(f.Progress))
		b.WriteString("\n")

		n, count := m.session.PhaseNumber(f)
		b.WriteString(phaseStyle.Render(fmt.Sprintf("phase %d/%d", n, count)))
		if label := m.session.PhaseLabel(f); label != "" {
			b.WriteString("  ")
			b.WriteString(valueStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("total "))
		b.WriteString(valueStyle.Render(timer.FormatTime(f.SecondsTotal)))
		return b.String()

	default:
		return labelStyle.Render("nothing to time")
	}
}

func (m Model) stateIndicator() string {
	switch m.session.State() {
	case session.StateRunning:
		return runningStyle.Render(m.spinner.View() + " running")
	case session.StatePaused:
		return pausedStyle.Render("⏸ paused")
	case session.StateCompleted:
		return goStyle.Render("✓ complete")
	default:
		return labelStyle.Render("ready")
	}
}

func (m Model) renderEvents() string {
	if len(m.events) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		lines = append(lines, eventStyle.Render(ev.Text))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	return helpStyle.Render("space: start/pause • r: reset • q: quit")
}
