package tui

type ApplicationState int

const (
	StateEditor ApplicationState = iota
	StateSelectTemplate
	StateAttachData
	StateGenerating
	StateComplete
	StateError
)
