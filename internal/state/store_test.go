package state

import (
	"context"
	"errors"
	"testing"

	"listy/internal/api"
)

// mockFetcher implements TodoFetcher and ListFetcher with pluggable
// behavior per test.
type mockFetcher struct {
	TodosFunc       func(ctx context.Context) ([]api.Todo, error)
	TodosByListFunc func(ctx context.Context, listID string) ([]api.Todo, error)
	ListsFunc       func(ctx context.Context) ([]string, error)
}

func (m *mockFetcher) Todos(ctx context.Context) ([]api.Todo, error) {
	if m.TodosFunc != nil {
		return m.TodosFunc(ctx)
	}
	return nil, nil
}

func (m *mockFetcher) TodosByList(ctx context.Context, listID string) ([]api.Todo, error) {
	if m.TodosByListFunc != nil {
		return m.TodosByListFunc(ctx, listID)
	}
	return nil, nil
}

func (m *mockFetcher) Lists(ctx context.Context) ([]string, error) {
	if m.ListsFunc != nil {
		return m.ListsFunc(ctx)
	}
	return nil, nil
}

func strPtr(s string) *string { return &s }

func TestFilterMatches(t *testing.T) {
	t.Parallel()

	pending := api.Todo{ID: 1, Item: "a", Done: false}
	done := api.Todo{ID: 2, Item: "b", Done: true}

	tests := []struct {
		filter      Filter
		wantPending bool
		wantDone    bool
	}{
		{FilterAll, true, true},
		{FilterPending, true, false},
		{FilterCompleted, false, true},
	}
	for _, tt := range tests {
		if got := tt.filter.Matches(pending); got != tt.wantPending {
			t.Errorf("%s.Matches(pending) = %v, want %v", tt.filter, got, tt.wantPending)
		}
		if got := tt.filter.Matches(done); got != tt.wantDone {
			t.Errorf("%s.Matches(done) = %v, want %v", tt.filter, got, tt.wantDone)
		}
	}
}

// TestLastIssuedPassWins applies a superseded pass's result after the
// newer one and asserts the newer result stays on screen.
func TestLastIssuedPassWins(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		TodosFunc: func(ctx context.Context) ([]api.Todo, error) {
			return []api.Todo{
				{ID: 1, Item: "pending task", Done: false},
				{ID: 2, Item: "done task", Done: true},
			}, nil
		},
	}
	store := NewStore(fetcher)

	store.SetFilter(FilterPending)
	first := store.Begin()
	firstRes := store.Fetch(context.Background(), first)

	store.SetFilter(FilterCompleted)
	second := store.Begin()
	secondRes := store.Fetch(context.Background(), second)

	// The newer pass resolves first; the slow stale one lands after.
	if !store.Apply(secondRes) {
		t.Fatal("current pass result was rejected")
	}
	if store.Apply(firstRes) {
		t.Error("stale pass result was applied")
	}

	todos := store.Todos()
	if len(todos) != 1 || !todos[0].Done {
		t.Errorf("collection should show the completed filter result, got %+v", todos)
	}
	if store.Loading() {
		t.Error("loading should have settled")
	}
}

func TestMainScopeExcludesListedTodos(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		TodosFunc: func(ctx context.Context) ([]api.Todo, error) {
			return []api.Todo{
				{ID: 1, Item: "main task"},
				{ID: 2, Item: "trip task", ListID: strPtr("trip_planning")},
			}, nil
		},
	}
	store := NewStore(fetcher)

	if err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	todos := store.Todos()
	if len(todos) != 1 || todos[0].Item != "main task" {
		t.Errorf("main scope should exclude listed todos, got %+v", todos)
	}
}

// TestCreateThenReconcileVisibility mirrors the create path: after a
// successful create the new pending item shows under the all and
// pending filters and never under completed.
func TestCreateThenReconcileVisibility(t *testing.T) {
	t.Parallel()

	created := api.Todo{ID: 5, Item: "fresh", Done: false}
	fetcher := &mockFetcher{
		TodosFunc: func(ctx context.Context) ([]api.Todo, error) {
			return []api.Todo{created}, nil
		},
	}
	store := NewStore(fetcher)

	for _, tt := range []struct {
		filter  Filter
		visible bool
	}{
		{FilterAll, true},
		{FilterPending, true},
		{FilterCompleted, false},
	} {
		store.SetFilter(tt.filter)
		if err := store.Reconcile(context.Background()); err != nil {
			t.Fatalf("reconcile under %s failed: %v", tt.filter, err)
		}
		found := false
		for _, todo := range store.Todos() {
			if todo.ID == created.ID {
				found = true
			}
		}
		if found != tt.visible {
			t.Errorf("filter %s: visibility = %v, want %v", tt.filter, found, tt.visible)
		}
	}
}

func TestListScope(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		TodosByListFunc: func(ctx context.Context, listID string) ([]api.Todo, error) {
			if listID != "trip_planning" {
				t.Errorf("unexpected list %q", listID)
			}
			return []api.Todo{{ID: 9, Item: "Book flights", ListID: strPtr(listID)}}, nil
		},
	}
	store := NewStore(fetcher)
	store.SelectList(strPtr("trip_planning"))

	if err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if len(store.Todos()) != 1 || store.PendingCount() != 1 {
		t.Errorf("unexpected scoped state: todos=%+v pending=%d", store.Todos(), store.PendingCount())
	}
}

// TestEmptyListIsNotAnError: a selected list with zero referencing
// todos renders the empty state, not an error.
func TestEmptyListIsNotAnError(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		TodosByListFunc: func(ctx context.Context, listID string) ([]api.Todo, error) {
			return []api.Todo{}, nil
		},
	}
	store := NewStore(fetcher)
	store.SelectList(strPtr("trip_planning"))

	if err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("empty list must reconcile cleanly, got %v", err)
	}
	if store.Err() != nil {
		t.Errorf("empty list must not set error state, got %v", store.Err())
	}
	if len(store.Todos()) != 0 {
		t.Errorf("expected empty collection, got %+v", store.Todos())
	}
}

// TestFailedPassShowsErrorNotStaleData: a failed pass replaces the
// collection with the error state instead of keeping stale rows.
func TestFailedPassShowsErrorNotStaleData(t *testing.T) {
	t.Parallel()

	healthy := true
	fetchErr := errors.New("API unreachable")
	fetcher := &mockFetcher{
		TodosFunc: func(ctx context.Context) ([]api.Todo, error) {
			if healthy {
				return []api.Todo{{ID: 1, Item: "old"}}, nil
			}
			return nil, fetchErr
		},
	}
	store := NewStore(fetcher)

	if err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("seed reconcile failed: %v", err)
	}
	if len(store.Todos()) != 1 {
		t.Fatalf("seed collection missing: %+v", store.Todos())
	}

	healthy = false
	if err := store.Reconcile(context.Background()); !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if len(store.Todos()) != 0 {
		t.Errorf("stale collection still rendered: %+v", store.Todos())
	}
	if store.Err() == nil {
		t.Error("error state not set")
	}

	store.ClearErr()
	if store.Err() != nil {
		t.Error("error banner should be dismissible")
	}
}

func TestScopedCounts(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		TodosFunc: func(ctx context.Context) ([]api.Todo, error) {
			return []api.Todo{
				{ID: 1, Item: "a", Done: false},
				{ID: 2, Item: "b", Done: true},
				{ID: 3, Item: "c", Done: true},
			}, nil
		},
	}
	store := NewStore(fetcher)
	store.SetFilter(FilterPending)

	if err := store.Reconcile(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if store.PendingCount() != 1 || store.CompletedCount() != 2 {
		t.Errorf("counts = %d pending / %d completed, want 1/2", store.PendingCount(), store.CompletedCount())
	}
	if len(store.Todos()) != 1 {
		t.Errorf("pending filter should show one row, got %+v", store.Todos())
	}
}
