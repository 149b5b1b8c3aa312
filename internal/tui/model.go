package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/pitchreel/pitchreel/internal/deck"
	"github.com/pitchreel/pitchreel/internal/upload"
	"github.com/pitchreel/pitchreel/internal/workflow"
)

// previewDebounce is the quiet period after the last keystroke before the
// preview re-renders.
const previewDebounce = time.Second

type Model struct {
	version string
	styles  Styles
	width   int
	height  int

	state ApplicationState

	editor     textarea.Model
	slides     []deck.Slide
	previewSeq int

	templateCursor   int
	selectedTemplate int

	pathInput  textinput.Model
	attachment *upload.Attachment
	fileErr    string
	fsys       afero.Fs

	status    string
	statusSeq int

	spinner     spinner.Model
	progressBar progress.Model
	runner      *workflow.Runner
	events      <-chan workflow.Event
	running     bool
	lastEvent   workflow.Event

	videoURL string
	err      error
}

func NewModel(version string, runner *workflow.Runner, fsys afero.Fs) Model {
	styles := NewStyles(ReelTheme())

	editor := textarea.New()
	editor.Placeholder = "Slide title\nslide body...\n\nblank line starts the next slide"
	editor.CharLimit = 0
	editor.Focus()

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/data.csv"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	return Model{
		version:     version,
		styles:      styles,
		state:       StateEditor,
		editor:      editor,
		pathInput:   pathInput,
		spinner:     sp,
		progressBar: styles.NewThemedProgress(40),
		runner:      runner,
		fsys:        fsys,
		lastEvent:   workflow.Event{Total: workflow.TotalStages},
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SelectedTemplate returns the one currently marked template. The selection
// index always points into the catalog, so there is always exactly one.
func (m Model) SelectedTemplate() deck.TemplateID {
	catalog := deck.Catalog()
	if m.selectedTemplate < 0 || m.selectedTemplate >= len(catalog) {
		return deck.DefaultTemplate
	}
	return catalog[m.selectedTemplate].ID
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(20, m.width/2-4))
		m.editor.SetHeight(max(6, m.height-14))
		m.progressBar.Width = max(20, min(60, m.width-10))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case generationClosedMsg:
		m.events = nil
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	switch m.state {
	case StateEditor:
		return m.updateEditorState(msg)
	case StateSelectTemplate:
		return m.updateSelectTemplateState(msg)
	case StateAttachData:
		return m.updateAttachDataState(msg)
	case StateGenerating:
		return m.updateGeneratingState(msg)
	case StateComplete:
		return m.updateCompleteState(msg)
	case StateError:
		return m.updateErrorState(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case StateEditor:
		return m.viewEditor()
	case StateSelectTemplate:
		return m.viewSelectTemplate()
	case StateAttachData:
		return m.viewAttachData()
	case StateGenerating:
		return m.viewGenerating()
	case StateComplete:
		return m.viewComplete()
	case StateError:
		return m.viewError()
	}
	return ""
}

// notify shows a transient status line and schedules its expiry. Each new
// notice supersedes the previous one.
func (m *Model) notify(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (m Model) listenForEvents() tea.Cmd {
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return generationClosedMsg{}
		}
		return generationEventMsg{event: ev}
	}
}
