package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pitchreel/pitchreel/internal/upload"
)

func (m Model) viewAttachData() string {
	var b strings.Builder

	b.WriteString(m.renderBanner())
	b.WriteString("\n")

	title := m.styles.Title.Render("Attach Data File")
	b.WriteString(title)
	b.WriteString("\n\n")

	message := "Optionally ground the enhancement stage with a CSV file (max 10 MiB).\nLeave the path empty to continue without data:"
	b.WriteString(m.styles.Normal.Render(message))
	b.WriteString("\n\n")

	b.WriteString(m.pathInput.View())
	b.WriteString("\n")

	if m.fileErr != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.fileErr))
		b.WriteString("\n")
	} else if m.attachment != nil {
		current := fmt.Sprintf("✓ Attached: %s (%d bytes)", m.attachment.Name, m.attachment.Size)
		b.WriteString(m.styles.Success.Render(current))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := m.styles.Subtle.Render("Enter: Confirm, Esc: Back, Ctrl+C: Quit")
	b.WriteString(help)

	return b.String()
}

func (m Model) updateAttachDataState(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				// Data-driven mode is optional; empty input clears any
				// earlier attachment and resets the preview until the next
				// edit re-renders it.
				cleared := m.attachment != nil
				m.attachment = nil
				m.slides = nil
				m.fileErr = ""
				m.state = StateEditor
				if cleared {
					cmd := m.notify("attachment removed")
					return m, cmd
				}
				return m, nil
			}

			att, err := upload.Validate(m.fsys, path)
			if err != nil {
				m.attachment = nil
				m.pathInput.SetValue("")
				m.fileErr = err.Error()
				return m, nil
			}
			m.attachment = att
			m.fileErr = ""
			m.state = StateEditor
			cmd := m.notify(fmt.Sprintf("attached %s", att.Name))
			return m, cmd
		case "esc":
			m.fileErr = ""
			m.state = StateEditor
			return m, nil
		}
	}

	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}
