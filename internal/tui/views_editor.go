package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pitchreel/pitchreel/internal/deck"
	"github.com/pitchreel/pitchreel/internal/errdefs"
	"github.com/pitchreel/pitchreel/internal/workflow"
)

func (m Model) viewEditor() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Compose Your Presentation")
	b.WriteString(title)
	b.WriteString("\n")

	editorPane := m.editor.View()
	previewPane := m.renderPreviewPanel()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, editorPane, "  ", previewPane))
	b.WriteString("\n\n")

	meta := fmt.Sprintf("template: %s", m.SelectedTemplate())
	if m.attachment != nil {
		meta += fmt.Sprintf("  •  data: %s", m.attachment.Name)
	}
	b.WriteString(m.styles.Subtle.Render(meta))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.styles.StatusBar.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.styles.Subtle.Render("Ctrl+T: template  Ctrl+O: attach CSV  Ctrl+G: generate  Ctrl+C: quit")
	b.WriteString(help)

	return b.String()
}

func (m Model) renderPreviewPanel() string {
	width := max(24, m.width/2-6)

	var b strings.Builder
	header := fmt.Sprintf("Preview · %s", m.SelectedTemplate())
	b.WriteString(m.styles.Bold.Render(header))
	b.WriteString("\n")

	if len(m.slides) == 0 {
		b.WriteString(m.styles.Subtle.Render("Your preview will appear here as you type."))
		return lipgloss.NewStyle().Width(width).Render(b.String())
	}

	card := m.styles.Card.Width(width - 2)
	maxCards := 4
	for i, slide := range m.slides {
		if i == maxCards {
			b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("… %d more slides", len(m.slides)-maxCards)))
			break
		}
		content := m.styles.Bold.Render(slide.Title)
		if slide.Body != "" {
			content += "\n" + m.styles.Subtle.Render(slide.Body)
		}
		b.WriteString(card.Render(content))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) updateEditorState(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case previewTickMsg:
		// Only the most recently scheduled tick refreshes the preview; a
		// keystroke after this tick was scheduled has superseded it.
		if msg.seq == m.previewSeq {
			m.slides = deck.Split(m.editor.Value())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+t":
			m.templateCursor = m.selectedTemplate
			m.state = StateSelectTemplate
			return m, nil
		case "ctrl+o":
			m.pathInput.SetValue("")
			m.fileErr = ""
			m.pathInput.Focus()
			m.state = StateAttachData
			return m, textinput.Blink
		case "ctrl+g":
			return m.startGeneration()
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.previewSeq++
		return m, tea.Batch(cmd, m.schedulePreview(m.previewSeq))
	}
	return m, cmd
}

func (m Model) schedulePreview(seq int) tea.Cmd {
	return tea.Tick(previewDebounce, func(time.Time) tea.Msg {
		return previewTickMsg{seq: seq}
	})
}

func (m Model) startGeneration() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}
	if strings.TrimSpace(m.editor.Value()) == "" {
		return m.failRun(errdefs.Validationf("enter some text before generating")), nil
	}

	input := workflow.Input{
		Text:       m.editor.Value(),
		Template:   m.SelectedTemplate(),
		Attachment: m.attachment,
	}
	m.events = m.runner.Run(context.Background(), input)
	m.running = true
	m.err = nil
	m.lastEvent = workflow.Event{Total: workflow.TotalStages}
	m.state = StateGenerating
	return m, tea.Batch(m.spinner.Tick, m.listenForEvents())
}

// failRun routes any generation failure into the error panel with the UI
// restored to a retry-ready state: progress zeroed, attachment cleared.
func (m Model) failRun(err error) Model {
	m.err = err
	m.attachment = nil
	m.running = false
	m.lastEvent = workflow.Event{Total: workflow.TotalStages}
	m.state = StateError
	return m
}
