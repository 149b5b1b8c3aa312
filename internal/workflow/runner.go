package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pitchreel/pitchreel/internal/deck"
	"github.com/pitchreel/pitchreel/internal/errdefs"
	"github.com/pitchreel/pitchreel/internal/log"
	"github.com/pitchreel/pitchreel/internal/upload"
)

// TotalStages is the length of the generation pipeline.
const TotalStages = 3

// Input is the snapshot a run captures when it starts. Later edits in the
// wizard do not affect an in-flight run.
type Input struct {
	Text       string
	Template   deck.TemplateID
	Attachment *upload.Attachment
}

// Event reports run progress to the UI. While a stage is in flight, Stage
// counts the completed stages and Label names the work being awaited. The
// final event has Done set and carries either Err or VideoURL.
type Event struct {
	RunID    string
	Stage    int
	Total    int
	Label    string
	Fraction float64
	Err      error
	VideoURL string
	Done     bool
}

// Service is the slice of the backend client the runner depends on.
type Service interface {
	Enhance(ctx context.Context, text string, att *upload.Attachment) (string, error)
	GeneratePPTX(ctx context.Context, text string, template deck.TemplateID) (string, error)
	ConvertVideo(ctx context.Context, pptxPath string) (string, error)
}

// runState threads artifacts between stages. Each artifact is consumed by
// the next stage and discarded with the run.
type runState struct {
	enhanced string
	pptxPath string
	videoURL string
}

// stage is one step of the pipeline: a name for logging, a label for the
// loading panel, and the remote call it awaits.
type stage struct {
	name  string
	label string
	call  func(ctx context.Context, st *runState) error
}

// Runner executes the three pipeline stages strictly in order. Stage N+1 is
// never issued before stage N's response has been received and validated.
type Runner struct {
	service Service
}

func NewRunner(service Service) *Runner {
	return &Runner{service: service}
}

func (r *Runner) stages(in Input) []stage {
	return []stage{
		{
			name:  "enhance",
			label: "Enhancing your script...",
			call: func(ctx context.Context, st *runState) error {
				enhanced, err := r.service.Enhance(ctx, in.Text, in.Attachment)
				st.enhanced = enhanced
				return err
			},
		},
		{
			name:  "build",
			label: "Building the slide deck...",
			call: func(ctx context.Context, st *runState) error {
				path, err := r.service.GeneratePPTX(ctx, st.enhanced, in.Template)
				st.pptxPath = path
				return err
			},
		},
		{
			name:  "convert",
			label: "Rendering the video...",
			call: func(ctx context.Context, st *runState) error {
				url, err := r.service.ConvertVideo(ctx, st.pptxPath)
				st.videoURL = url
				return err
			},
		},
	}
}

// Run starts a generation run and returns the channel its events arrive on.
// The channel is closed after the terminal event. Empty editor text fails
// the run before any stage is issued.
func (r *Runner) Run(ctx context.Context, in Input) <-chan Event {
	events := make(chan Event, 1)
	go func() {
		defer close(events)
		r.run(ctx, in, events)
	}()
	return events
}

func (r *Runner) run(ctx context.Context, in Input, events chan<- Event) {
	runID := uuid.NewString()

	if strings.TrimSpace(in.Text) == "" {
		events <- Event{
			RunID: runID,
			Total: TotalStages,
			Err:   errdefs.Validationf("enter some text before generating"),
			Done:  true,
		}
		return
	}

	log.Infof("run %s: starting (template=%s attachment=%v)", runID, in.Template, in.Attachment != nil)

	st := &runState{}
	for i, sg := range r.stages(in) {
		events <- Event{
			RunID:    runID,
			Stage:    i,
			Total:    TotalStages,
			Label:    sg.label,
			Fraction: float64(i) / TotalStages,
		}

		if err := sg.call(ctx, st); err != nil {
			err = normalize(err)
			log.Errorf("run %s: stage %s failed: %v", runID, sg.name, err)
			events <- Event{
				RunID: runID,
				Stage: i,
				Total: TotalStages,
				Err:   err,
				Done:  true,
			}
			return
		}
		log.Debugf("run %s: stage %s done", runID, sg.name)
	}

	log.Infof("run %s: video ready at %s", runID, st.videoURL)
	events <- Event{
		RunID:    runID,
		Stage:    TotalStages,
		Total:    TotalStages,
		Fraction: 1,
		VideoURL: st.videoURL,
		Done:     true,
	}
}

// normalize funnels stage failures into the error taxonomy so the UI can
// surface them uniformly.
func normalize(err error) error {
	var ce *errdefs.CustomError
	if errors.As(err, &ce) {
		return err
	}
	return errdefs.Unexpected("something went wrong while generating; please try again")
}
