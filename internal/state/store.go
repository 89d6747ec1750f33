// Package state holds the client-side view state: the reconciliation
// store for the todo collection, the list registry, and the draft
// session for AI-generated tasks. The types here are event-loop state,
// not shared-memory state: they are driven from a single goroutine
// (the TUI update loop or a CLI command) while the network legs of a
// pass run as plain function calls whose results are applied back.
package state

import (
	"context"

	"listy/internal/api"
)

// Filter selects which completion states the collection view shows
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Matches reports whether a todo passes the filter predicate
func (f Filter) Matches(t api.Todo) bool {
	switch f {
	case FilterPending:
		return !t.Done
	case FilterCompleted:
		return t.Done
	default:
		return true
	}
}

// TodoFetcher is the read side of the API client the store depends on
type TodoFetcher interface {
	Todos(ctx context.Context) ([]api.Todo, error)
	TodosByList(ctx context.Context, listID string) ([]api.Todo, error)
}

// Store owns the visible todo collection and its reconciliation
// discipline. There are no optimistic local patches: every mutation is
// followed by a full fetch-filter-replace pass, trading one extra
// round trip per write for a display that always reflects a real
// server read. Rapid successive passes are sequence-numbered so that
// only the last-issued pass's result is ever applied.
type Store struct {
	fetcher TodoFetcher

	filter       Filter
	selectedList *string

	todos     []api.Todo
	pending   int
	completed int
	loading   bool
	err       error

	seq uint64
}

// Reconciliation identifies one in-flight pass. Filter and list are
// captured at Begin time so a later change cannot retarget the fetch.
type Reconciliation struct {
	Seq    uint64
	Filter Filter
	ListID *string
}

// ReconcileResult is the outcome of one pass, tagged with its sequence
type ReconcileResult struct {
	Seq       uint64
	Todos     []api.Todo
	Pending   int
	Completed int
	Err       error
}

// NewStore creates a store showing the main collection with no filter
func NewStore(fetcher TodoFetcher) *Store {
	return &Store{
		fetcher: fetcher,
		filter:  FilterAll,
	}
}

// Filter returns the active filter
func (s *Store) Filter() Filter { return s.filter }

// SetFilter changes the active filter. The caller is expected to Begin
// a reconciliation pass afterwards.
func (s *Store) SetFilter(f Filter) { s.filter = f }

// SelectedList returns the active list selection, nil for the main
// collection.
func (s *Store) SelectedList() *string { return s.selectedList }

// SelectList changes the active list selection. The caller is expected
// to Begin a reconciliation pass afterwards.
func (s *Store) SelectList(listID *string) { s.selectedList = listID }

// Todos returns the collection as of the last applied pass
func (s *Store) Todos() []api.Todo { return s.todos }

// Loading reports whether a pass is in flight
func (s *Store) Loading() bool { return s.loading }

// Err returns the failure of the last applied pass, nil when it
// succeeded.
func (s *Store) Err() error { return s.err }

// ClearErr dismisses the error banner state
func (s *Store) ClearErr() { s.err = nil }

// PendingCount returns the number of pending todos in the active scope
func (s *Store) PendingCount() int { return s.pending }

// CompletedCount returns the number of done todos in the active scope
func (s *Store) CompletedCount() int { return s.completed }

// Begin starts a new reconciliation pass, superseding any pass still
// in flight, and returns the descriptor to fetch with.
func (s *Store) Begin() Reconciliation {
	s.seq++
	s.loading = true
	s.err = nil
	return Reconciliation{
		Seq:    s.seq,
		Filter: s.filter,
		ListID: s.selectedList,
	}
}

// Fetch executes the network leg of a pass: fetch the active scope,
// apply the filter predicate, and package the result. It reads no
// store state besides the fetcher, so it is safe to run off the update
// loop.
func (s *Store) Fetch(ctx context.Context, rec Reconciliation) ReconcileResult {
	res := ReconcileResult{Seq: rec.Seq}

	var scoped []api.Todo
	if rec.ListID != nil {
		todos, err := s.fetcher.TodosByList(ctx, *rec.ListID)
		if err != nil {
			res.Err = err
			return res
		}
		scoped = todos
	} else {
		todos, err := s.fetcher.Todos(ctx)
		if err != nil {
			res.Err = err
			return res
		}
		// Main collection: only todos not claimed by a named list.
		for _, t := range todos {
			if t.InMainList() {
				scoped = append(scoped, t)
			}
		}
	}

	filtered := make([]api.Todo, 0, len(scoped))
	for _, t := range scoped {
		if t.Done {
			res.Completed++
		} else {
			res.Pending++
		}
		if rec.Filter.Matches(t) {
			filtered = append(filtered, t)
		}
	}
	res.Todos = filtered
	return res
}

// Apply installs a pass result. Results from superseded passes are
// discarded so the displayed collection always matches the last-issued
// filter/list pair. A failed current pass replaces the collection with
// the error state rather than presenting stale data as fresh.
func (s *Store) Apply(res ReconcileResult) bool {
	if res.Seq != s.seq {
		return false
	}
	s.loading = false
	if res.Err != nil {
		s.err = res.Err
		s.todos = nil
		s.pending = 0
		s.completed = 0
		return true
	}
	s.err = nil
	s.todos = res.Todos
	s.pending = res.Pending
	s.completed = res.Completed
	return true
}

// Reconcile runs a full pass synchronously. CLI paths use this; the
// TUI splits Begin/Fetch/Apply across the event loop instead.
func (s *Store) Reconcile(ctx context.Context) error {
	rec := s.Begin()
	s.Apply(s.Fetch(ctx, rec))
	return s.err
}
