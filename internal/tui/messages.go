package tui

import "github.com/pitchreel/pitchreel/internal/workflow"

// previewTickMsg fires when the preview debounce window elapses. The seq tag
// identifies the keystroke burst that scheduled it; stale tags are dropped.
type previewTickMsg struct {
	seq int
}

type generationEventMsg struct {
	event workflow.Event
}

type generationClosedMsg struct{}

type statusExpiredMsg struct {
	seq int
}
