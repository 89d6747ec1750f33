package state

import (
	"context"
	"strings"

	"listy/internal/api"
)

// DraftPhase is the lifecycle stage of a draft session
type DraftPhase int

const (
	PhaseIdle DraftPhase = iota
	PhaseGenerating
	PhaseDraftsReady
	PhaseSubmitting
)

// DraftMode distinguishes goal breakdown from per-task subtask
// breakdown. Both run the same review machine; subtask mode is scoped
// to one parent task and materializes into the parent's list.
type DraftMode int

const (
	ModeGoal DraftMode = iota
	ModeSubtask
)

// Generator is the slice of the API client a draft session depends on
type Generator interface {
	GenerateBreakdown(ctx context.Context, goal string) ([]api.TaskDraft, error)
	GenerateSubtasks(ctx context.Context, task string) ([]api.TaskDraft, error)
	CreateGenerated(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error)
}

// DraftSession is the transient review machine for generated tasks:
// Idle -> Generating -> DraftsReady -> Submitting -> Idle. Drafts are
// client-only until materialized; cancel discards everything. Results
// of superseded calls (after a cancel) are sequence-guarded and
// ignored.
type DraftSession struct {
	gen  Generator
	mode DraftMode

	phase      DraftPhase
	input      string  // goal text, or the parent task's text in subtask mode
	targetList *string // materialization target; parent's list in subtask mode
	drafts     []api.TaskDraft
	err        error
	atomic     bool // subtask generation judged the task atomic

	seq uint64
}

// Generation identifies one in-flight generation call
type Generation struct {
	Seq   uint64
	Input string
}

// GenerationResult is the outcome of one generation call
type GenerationResult struct {
	Seq    uint64
	Drafts []api.TaskDraft
	Err    error
}

// Submission identifies one in-flight materialization call
type Submission struct {
	Seq    uint64
	Drafts []api.TaskDraft
	ListID *string
}

// SubmitResult is the outcome of one materialization call
type SubmitResult struct {
	Seq     uint64
	Created []api.Todo
	Err     error
}

// NewDraftSession creates a goal-breakdown session. Materialized tasks
// go to the currently targeted list (nil for the main collection).
func NewDraftSession(gen Generator, targetList *string) *DraftSession {
	return &DraftSession{gen: gen, mode: ModeGoal, targetList: targetList}
}

// NewSubtaskSession creates a subtask session scoped to one parent
// todo. Subtasks materialize into the parent's list.
func NewSubtaskSession(gen Generator, parent api.Todo) *DraftSession {
	return &DraftSession{
		gen:        gen,
		mode:       ModeSubtask,
		input:      parent.Item,
		targetList: parent.ListID,
	}
}

// Phase returns the current lifecycle stage
func (d *DraftSession) Phase() DraftPhase { return d.phase }

// Mode returns whether this is a goal or subtask session
func (d *DraftSession) Mode() DraftMode { return d.mode }

// Input returns the goal text (or parent task text)
func (d *DraftSession) Input() string { return d.input }

// Drafts returns the editable draft set
func (d *DraftSession) Drafts() []api.TaskDraft { return d.drafts }

// Err returns the session's visible error, nil when there is none
func (d *DraftSession) Err() error { return d.err }

// ClearErr dismisses the error banner state
func (d *DraftSession) ClearErr() { d.err = nil }

// Atomic reports that subtask generation returned nothing: the task
// was judged simple enough to do as-is. Informational, not an error.
func (d *DraftSession) Atomic() bool { return d.atomic }

// BeginGenerate validates the input and moves to Generating. Empty or
// whitespace-only input is rejected locally with no network call.
func (d *DraftSession) BeginGenerate(input string) (Generation, error) {
	if d.phase == PhaseGenerating || d.phase == PhaseSubmitting {
		return Generation{}, &api.ValidationError{Message: "a request is already in progress"}
	}
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		d.err = &api.ValidationError{Message: "please enter a goal or task"}
		return Generation{}, d.err
	}
	d.input = trimmed
	d.phase = PhaseGenerating
	d.err = nil
	d.atomic = false
	d.drafts = nil
	d.seq++
	return Generation{Seq: d.seq, Input: trimmed}, nil
}

// Generate executes the network leg of a generation
func (d *DraftSession) Generate(ctx context.Context, g Generation) GenerationResult {
	var (
		drafts []api.TaskDraft
		err    error
	)
	if d.mode == ModeSubtask {
		drafts, err = d.gen.GenerateSubtasks(ctx, g.Input)
	} else {
		drafts, err = d.gen.GenerateBreakdown(ctx, g.Input)
	}
	return GenerationResult{Seq: g.Seq, Drafts: drafts, Err: err}
}

// ApplyGenerated installs a generation result. A failure drops back to
// Idle with the error shown; a success enters DraftsReady, which is a
// valid state even with zero drafts. In subtask mode zero drafts flag
// the parent task as atomic.
func (d *DraftSession) ApplyGenerated(res GenerationResult) bool {
	if res.Seq != d.seq || d.phase != PhaseGenerating {
		return false
	}
	if res.Err != nil {
		d.phase = PhaseIdle
		d.err = res.Err
		d.drafts = nil
		return true
	}
	d.phase = PhaseDraftsReady
	d.err = nil
	d.drafts = res.Drafts
	d.atomic = d.mode == ModeSubtask && len(res.Drafts) == 0
	return true
}

// EditDraft replaces a draft's text in place. Local only.
func (d *DraftSession) EditDraft(i int, text string) {
	if d.phase != PhaseDraftsReady || i < 0 || i >= len(d.drafts) {
		return
	}
	d.drafts[i].Text = text
}

// RemoveDraft deletes a draft. Local only.
func (d *DraftSession) RemoveDraft(i int) {
	if d.phase != PhaseDraftsReady || i < 0 || i >= len(d.drafts) {
		return
	}
	d.drafts = append(d.drafts[:i], d.drafts[i+1:]...)
}

// AddDraft appends a blank draft for the user to fill in. Local only.
func (d *DraftSession) AddDraft() {
	if d.phase != PhaseDraftsReady {
		return
	}
	d.drafts = append(d.drafts, api.TaskDraft{Priority: "medium"})
}

// BeginSubmit validates the draft set and moves to Submitting. Drafts
// with empty trimmed text are dropped; zero surviving drafts is
// rejected locally with no network call.
func (d *DraftSession) BeginSubmit() (Submission, error) {
	if d.phase != PhaseDraftsReady {
		return Submission{}, &api.ValidationError{Message: "no drafts to submit"}
	}
	valid := make([]api.TaskDraft, 0, len(d.drafts))
	for _, draft := range d.drafts {
		if strings.TrimSpace(draft.Text) != "" {
			valid = append(valid, draft)
		}
	}
	if len(valid) == 0 {
		d.err = &api.ValidationError{Message: "please add at least one valid task"}
		return Submission{}, d.err
	}
	d.phase = PhaseSubmitting
	d.err = nil
	d.seq++
	return Submission{Seq: d.seq, Drafts: valid, ListID: d.targetList}, nil
}

// Submit executes the materialization call
func (d *DraftSession) Submit(ctx context.Context, sub Submission) SubmitResult {
	created, err := d.gen.CreateGenerated(ctx, sub.Drafts, sub.ListID)
	return SubmitResult{Seq: sub.Seq, Created: created, Err: err}
}

// ApplySubmitted installs a materialization result. Success resets the
// session to Idle and reports true exactly once, which the caller uses
// to fire the invalidation signal for the collection view and the
// registry. Failure returns to DraftsReady with the drafts preserved.
func (d *DraftSession) ApplySubmitted(res SubmitResult) (invalidate bool) {
	if res.Seq != d.seq || d.phase != PhaseSubmitting {
		return false
	}
	if res.Err != nil {
		d.phase = PhaseDraftsReady
		d.err = res.Err
		return false
	}
	d.reset()
	return true
}

// Cancel discards the session from any state
func (d *DraftSession) Cancel() {
	d.seq++ // in-flight results become stale
	d.reset()
}

func (d *DraftSession) reset() {
	d.phase = PhaseIdle
	if d.mode == ModeGoal {
		d.input = ""
	}
	d.drafts = nil
	d.err = nil
	d.atomic = false
}
