package state

import (
	"context"
	"errors"
	"testing"

	"listy/internal/api"
)

// mockGenerator implements Generator with pluggable behavior and call
// counting.
type mockGenerator struct {
	BreakdownFunc func(ctx context.Context, goal string) ([]api.TaskDraft, error)
	SubtasksFunc  func(ctx context.Context, task string) ([]api.TaskDraft, error)
	CreateFunc    func(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error)

	calls int
}

func (m *mockGenerator) GenerateBreakdown(ctx context.Context, goal string) ([]api.TaskDraft, error) {
	m.calls++
	if m.BreakdownFunc != nil {
		return m.BreakdownFunc(ctx, goal)
	}
	return nil, nil
}

func (m *mockGenerator) GenerateSubtasks(ctx context.Context, task string) ([]api.TaskDraft, error) {
	m.calls++
	if m.SubtasksFunc != nil {
		return m.SubtasksFunc(ctx, task)
	}
	return nil, nil
}

func (m *mockGenerator) CreateGenerated(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error) {
	m.calls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, drafts, listID)
	}
	return nil, nil
}

// TestEmptyGoalRejectedLocally: a whitespace goal sets a validation
// message and issues zero network calls.
func TestEmptyGoalRejectedLocally(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{}
	session := NewDraftSession(gen, nil)

	_, err := session.BeginGenerate("   ")
	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if gen.calls != 0 {
		t.Errorf("expected zero network calls, got %d", gen.calls)
	}
	if session.Phase() != PhaseIdle {
		t.Errorf("session should stay Idle, got %v", session.Phase())
	}
}

func TestGenerationFailureReturnsToIdle(t *testing.T) {
	t.Parallel()

	genErr := &api.GenerationError{Message: "upstream unavailable"}
	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return nil, genErr
		},
	}
	session := NewDraftSession(gen, nil)

	g, err := session.BeginGenerate("plan a trip")
	if err != nil {
		t.Fatalf("BeginGenerate failed: %v", err)
	}
	if session.Phase() != PhaseGenerating {
		t.Fatalf("expected Generating, got %v", session.Phase())
	}

	session.ApplyGenerated(session.Generate(context.Background(), g))
	if session.Phase() != PhaseIdle {
		t.Errorf("failure should drop back to Idle, got %v", session.Phase())
	}
	if !errors.Is(session.Err(), genErr) {
		t.Errorf("error not surfaced: %v", session.Err())
	}
	if len(session.Drafts()) != 0 {
		t.Errorf("drafts should stay empty, got %+v", session.Drafts())
	}
}

// TestEmptyGoalResultIsValidDraftsReady: zero generated drafts is a
// legitimate DraftsReady state, not an error.
func TestEmptyGoalResultIsValidDraftsReady(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{}, nil
		},
	}
	session := NewDraftSession(gen, nil)

	g, _ := session.BeginGenerate("do nothing")
	session.ApplyGenerated(session.Generate(context.Background(), g))

	if session.Phase() != PhaseDraftsReady {
		t.Errorf("expected DraftsReady, got %v", session.Phase())
	}
	if session.Err() != nil {
		t.Errorf("empty result must not be an error: %v", session.Err())
	}
	if session.Atomic() {
		t.Error("goal mode never reports atomic")
	}
}

// TestSubtaskAtomicVsFailure: an empty subtask result renders as the
// informational atomic state, while a failed call renders as an error.
// The two zero-result paths must stay distinguishable.
func TestSubtaskAtomicVsFailure(t *testing.T) {
	t.Parallel()

	parent := api.Todo{ID: 1, Item: "Buy milk", ListID: strPtr("groceries")}

	t.Run("atomic", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{
			SubtasksFunc: func(ctx context.Context, task string) ([]api.TaskDraft, error) {
				return []api.TaskDraft{}, nil
			},
		}
		session := NewSubtaskSession(gen, parent)
		g, err := session.BeginGenerate(parent.Item)
		if err != nil {
			t.Fatalf("BeginGenerate failed: %v", err)
		}
		session.ApplyGenerated(session.Generate(context.Background(), g))

		if !session.Atomic() {
			t.Error("empty subtask result should report atomic")
		}
		if session.Err() != nil {
			t.Errorf("atomic state must not carry an error: %v", session.Err())
		}
		if session.Phase() != PhaseDraftsReady {
			t.Errorf("expected DraftsReady, got %v", session.Phase())
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		gen := &mockGenerator{
			SubtasksFunc: func(ctx context.Context, task string) ([]api.TaskDraft, error) {
				return nil, &api.GenerationError{Message: "boom"}
			},
		}
		session := NewSubtaskSession(gen, parent)
		g, err := session.BeginGenerate(parent.Item)
		if err != nil {
			t.Fatalf("BeginGenerate failed: %v", err)
		}
		session.ApplyGenerated(session.Generate(context.Background(), g))

		if session.Atomic() {
			t.Error("failure must not report atomic")
		}
		if session.Err() == nil {
			t.Error("failure must surface an error")
		}
	})
}

// TestPlanATripScenario walks the reference flow: generate two drafts,
// delete the second, edit the first, submit. Exactly one task text
// reaches the server and the invalidation signal fires once.
func TestPlanATripScenario(t *testing.T) {
	t.Parallel()

	var submitted []api.TaskDraft
	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{
				{Text: "Book flights", Priority: "high"},
				{Text: "Reserve hotel", Priority: "medium"},
			}, nil
		},
		CreateFunc: func(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error) {
			submitted = drafts
			return []api.Todo{{ID: 1, Item: drafts[0].Text}}, nil
		},
	}
	session := NewDraftSession(gen, nil)

	g, err := session.BeginGenerate("plan a trip")
	if err != nil {
		t.Fatalf("BeginGenerate failed: %v", err)
	}
	session.ApplyGenerated(session.Generate(context.Background(), g))

	session.RemoveDraft(1)
	session.EditDraft(0, "Book flights and transit")

	sub, err := session.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	invalidate := session.ApplySubmitted(session.Submit(context.Background(), sub))

	if len(submitted) != 1 || submitted[0].Text != "Book flights and transit" {
		t.Errorf("unexpected submission: %+v", submitted)
	}
	if !invalidate {
		t.Error("successful materialization must fire the invalidation signal")
	}
	if session.Phase() != PhaseIdle || session.Input() != "" || len(session.Drafts()) != 0 {
		t.Errorf("session should reset after success: phase=%v input=%q drafts=%d",
			session.Phase(), session.Input(), len(session.Drafts()))
	}
}

// TestSubmitWithoutValidDraftsRejectedLocally: drafts whose trimmed
// text is empty do not count, and zero valid drafts never reaches the
// network.
func TestSubmitWithoutValidDraftsRejectedLocally(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{{Text: "something"}}, nil
		},
	}
	session := NewDraftSession(gen, nil)
	g, _ := session.BeginGenerate("goal")
	session.ApplyGenerated(session.Generate(context.Background(), g))
	session.EditDraft(0, "   ")

	callsBefore := gen.calls
	_, err := session.BeginSubmit()
	var valErr *api.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if gen.calls != callsBefore {
		t.Error("local rejection must not issue a network call")
	}
	if session.Phase() != PhaseDraftsReady {
		t.Errorf("session should stay DraftsReady, got %v", session.Phase())
	}
}

func TestSubmitFailurePreservesDrafts(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{{Text: "keep me"}}, nil
		},
		CreateFunc: func(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error) {
			return nil, &api.RequestError{Op: "create generated tasks", Status: 500}
		},
	}
	session := NewDraftSession(gen, nil)
	g, _ := session.BeginGenerate("goal")
	session.ApplyGenerated(session.Generate(context.Background(), g))

	sub, err := session.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	invalidate := session.ApplySubmitted(session.Submit(context.Background(), sub))

	if invalidate {
		t.Error("failed materialization must not fire invalidation")
	}
	if session.Phase() != PhaseDraftsReady {
		t.Errorf("expected DraftsReady after failure, got %v", session.Phase())
	}
	if len(session.Drafts()) != 1 || session.Drafts()[0].Text != "keep me" {
		t.Errorf("drafts not preserved: %+v", session.Drafts())
	}
	if session.Err() == nil {
		t.Error("failure must surface an error")
	}
}

// TestCancelDiscardsInFlightResult: a generation that resolves after a
// cancel must not resurrect the session.
func TestCancelDiscardsInFlightResult(t *testing.T) {
	t.Parallel()

	gen := &mockGenerator{
		BreakdownFunc: func(ctx context.Context, goal string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{{Text: "late arrival"}}, nil
		},
	}
	session := NewDraftSession(gen, nil)

	g, _ := session.BeginGenerate("goal")
	res := session.Generate(context.Background(), g)
	session.Cancel()

	if session.ApplyGenerated(res) {
		t.Error("stale generation result was applied after cancel")
	}
	if session.Phase() != PhaseIdle || len(session.Drafts()) != 0 {
		t.Errorf("cancel should leave an empty Idle session, got phase=%v drafts=%d",
			session.Phase(), len(session.Drafts()))
	}
}

func TestSubtasksMaterializeIntoParentList(t *testing.T) {
	t.Parallel()

	parent := api.Todo{ID: 4, Item: "Plan menu", ListID: strPtr("dinner_party")}
	var gotList *string
	gen := &mockGenerator{
		SubtasksFunc: func(ctx context.Context, task string) ([]api.TaskDraft, error) {
			return []api.TaskDraft{{Text: "Pick recipes"}}, nil
		},
		CreateFunc: func(ctx context.Context, drafts []api.TaskDraft, listID *string) ([]api.Todo, error) {
			gotList = listID
			return []api.Todo{{ID: 5, Item: drafts[0].Text, ListID: listID}}, nil
		},
	}
	session := NewSubtaskSession(gen, parent)

	g, err := session.BeginGenerate(parent.Item)
	if err != nil {
		t.Fatalf("BeginGenerate failed: %v", err)
	}
	session.ApplyGenerated(session.Generate(context.Background(), g))

	sub, err := session.BeginSubmit()
	if err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	if !session.ApplySubmitted(session.Submit(context.Background(), sub)) {
		t.Fatal("materialization should succeed")
	}
	if gotList == nil || *gotList != "dinner_party" {
		t.Errorf("subtasks must target the parent's list, got %v", gotList)
	}
}
