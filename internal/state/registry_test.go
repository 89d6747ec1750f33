package state

import (
	"context"
	"errors"
	"testing"

	"listy/internal/api"
)

func TestRegistryRefresh(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		ListsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"trip_planning", "groceries"}, nil
		},
		TodosByListFunc: func(ctx context.Context, listID string) ([]api.Todo, error) {
			if listID == "trip_planning" {
				return []api.Todo{{ID: 1}, {ID: 2}}, nil
			}
			return []api.Todo{}, nil
		},
	}
	reg := NewRegistry(fetcher)

	if err := reg.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(reg.Lists()) != 2 {
		t.Fatalf("unexpected lists: %v", reg.Lists())
	}
	if reg.Count("trip_planning") != 2 {
		t.Errorf("trip_planning count = %d, want 2", reg.Count("trip_planning"))
	}
	// Empty lists are legitimate registry entries with count zero.
	if reg.Count("groceries") != 0 {
		t.Errorf("groceries count = %d, want 0", reg.Count("groceries"))
	}
}

// TestRegistryCountsAreBestEffort: a failed per-list fetch records a
// zero count instead of aborting the whole refresh.
func TestRegistryCountsAreBestEffort(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{
		ListsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"healthy", "broken"}, nil
		},
		TodosByListFunc: func(ctx context.Context, listID string) ([]api.Todo, error) {
			if listID == "broken" {
				return nil, errors.New("boom")
			}
			return []api.Todo{{ID: 1}}, nil
		},
	}
	reg := NewRegistry(fetcher)

	if err := reg.RefreshNow(context.Background()); err != nil {
		t.Fatalf("refresh must not fail on a per-list error: %v", err)
	}
	if reg.Count("healthy") != 1 || reg.Count("broken") != 0 {
		t.Errorf("counts = %d/%d, want 1/0", reg.Count("healthy"), reg.Count("broken"))
	}
}

func TestRegistryEnumerationFailure(t *testing.T) {
	t.Parallel()

	listsErr := errors.New("lists unavailable")
	fetcher := &mockFetcher{
		ListsFunc: func(ctx context.Context) ([]string, error) {
			return nil, listsErr
		},
	}
	reg := NewRegistry(fetcher)

	if err := reg.RefreshNow(context.Background()); !errors.Is(err, listsErr) {
		t.Fatalf("expected enumeration error, got %v", err)
	}
	if len(reg.Lists()) != 0 {
		t.Errorf("lists should be cleared on failure: %v", reg.Lists())
	}
}

// TestRegistryCoalescesTriggers: triggering while a refresh is in
// flight must not start a second one, but must owe exactly one
// follow-up once the in-flight refresh settles.
func TestRegistryCoalescesTriggers(t *testing.T) {
	t.Parallel()

	var fetches int
	fetcher := &mockFetcher{
		ListsFunc: func(ctx context.Context) ([]string, error) {
			fetches++
			return []string{"trip_planning"}, nil
		},
		TodosByListFunc: func(ctx context.Context, listID string) ([]api.Todo, error) {
			return []api.Todo{{ID: 1}}, nil
		},
	}
	reg := NewRegistry(fetcher)

	ref, ok := reg.RequestRefresh()
	if !ok {
		t.Fatal("first trigger should start a refresh")
	}
	if !reg.Loading() {
		t.Error("refresh in flight should report loading")
	}

	// A poll tick and an invalidation land while the refresh runs.
	if _, ok := reg.RequestRefresh(); ok {
		t.Error("trigger while in flight must not start a second refresh")
	}
	if _, ok := reg.RequestRefresh(); ok {
		t.Error("repeated trigger must still coalesce")
	}

	snap := reg.Fetch(context.Background(), ref)
	if !reg.Apply(snap) {
		t.Fatal("expected a coalesced follow-up to be owed")
	}

	// The follow-up starts and settles with nothing further owed.
	ref, ok = reg.RequestRefresh()
	if !ok {
		t.Fatal("follow-up trigger should start a refresh")
	}
	if reg.Apply(reg.Fetch(context.Background(), ref)) {
		t.Error("no further follow-up should be owed")
	}

	if fetches != 2 {
		t.Errorf("coalesced triggers caused %d fetches, want 2", fetches)
	}
}

func TestListDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"trip_planning", "Trip Planning"},
		{"groceries", "Groceries"},
		{"a_b_c", "A B C"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ListDisplayName(tt.in); got != tt.want {
			t.Errorf("ListDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
