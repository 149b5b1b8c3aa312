package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pitchreel/pitchreel/internal/deck"
)

func (m Model) viewSelectTemplate() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Choose Template")
	b.WriteString(title)
	b.WriteString("\n\n")

	for i, option := range deck.Catalog() {
		marker := "  "
		if i == m.selectedTemplate {
			marker = "✓ "
		}
		line := marker + string(option.ID)
		if i == m.templateCursor {
			b.WriteString(m.styles.SelectedOption.Render("▶ " + line))
			b.WriteString("\n")
			b.WriteString(m.styles.Subtle.Render("    " + option.Description))
		} else {
			b.WriteString(m.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.styles.Subtle.Render("Use ↑/↓ to navigate, Enter to select, Esc to go back")
	b.WriteString(help)

	return b.String()
}

func (m Model) updateSelectTemplateState(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up":
			if m.templateCursor > 0 {
				m.templateCursor--
			}
		case "down":
			if m.templateCursor < len(deck.Catalog())-1 {
				m.templateCursor++
			}
		case "enter":
			m.selectedTemplate = m.templateCursor
			m.state = StateEditor
			cmd := m.notify(fmt.Sprintf("template: %s", m.SelectedTemplate()))
			// The new template applies to the preview right away.
			if strings.TrimSpace(m.editor.Value()) != "" {
				m.slides = deck.Split(m.editor.Value())
			}
			return m, cmd
		case "esc":
			m.state = StateEditor
			return m, nil
		}
	}
	return m, nil
}
