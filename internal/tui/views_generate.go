package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) viewGenerating() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Generating Video")
	b.WriteString(title)
	b.WriteString("\n\n")

	label := m.lastEvent.Label
	if label == "" {
		label = "Starting..."
	}
	b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.styles.Normal.Render(label)))
	b.WriteString("\n\n")

	b.WriteString(m.progressBar.ViewAs(m.lastEvent.Fraction))
	b.WriteString("\n")

	stage := m.styles.Subtle.Render(fmt.Sprintf("stage %d of %d", min(m.lastEvent.Stage+1, m.lastEvent.Total), m.lastEvent.Total))
	b.WriteString(stage)
	b.WriteString("\n\n")

	help := m.styles.Subtle.Render("Generation is running; Ctrl+C aborts the program")
	b.WriteString(help)

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Success.Render("Video Ready!")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.progressBar.ViewAs(1))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Success.Render("✓ Your presentation was rendered successfully."))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Normal.Render("Watch or download:"))
	b.WriteString("\n")
	b.WriteString(m.styles.Key.Render("  " + m.videoURL))
	b.WriteString("\n\n")

	help := m.styles.Subtle.Render("Press Enter to compose another presentation")
	b.WriteString(help)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Error.Render("Generation Failed")
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("✗ " + m.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Subtle.Render("Any attached CSV was cleared; reattach it before retrying."))
	b.WriteString("\n\n")

	help := m.styles.Subtle.Render("Press Enter to return to the editor")
	b.WriteString(help)

	return b.String()
}

func (m Model) updateGeneratingState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if eventMsg, ok := msg.(generationEventMsg); ok {
		ev := eventMsg.event
		if ev.Err != nil {
			next := m.failRun(ev.Err)
			// Keep draining until the runner closes the channel.
			return next, next.listenForEvents()
		}
		m.lastEvent = ev
		if ev.Done {
			m.videoURL = ev.VideoURL
			m.running = false
			m.state = StateComplete
		}
		return m, m.listenForEvents()
	}
	// Everything except Ctrl+C (handled globally) is inert while a run is in
	// flight; the run captured its inputs at start.
	return m, nil
}

func (m Model) updateCompleteState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = StateEditor
			m.lastEvent.Fraction = 0
			return m, textarea.Blink
		}
	}
	return m, nil
}

func (m Model) updateErrorState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = StateEditor
			return m, textarea.Blink
		}
	}
	return m, nil
}
