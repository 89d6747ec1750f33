package state

import (
	"context"
	"strings"

	"listy/internal/api"
)

// ListFetcher is the slice of the API client the registry depends on
type ListFetcher interface {
	Lists(ctx context.Context) ([]string, error)
	TodosByList(ctx context.Context, listID string) ([]api.Todo, error)
}

// Registry tracks the known list identifiers and their item counts for
// the sidebar. It refreshes on a poll tick and on invalidation after a
// list-affecting mutation. Only one refresh runs at a time: a trigger
// arriving while one is in flight is coalesced into a single follow-up
// refresh started once the in-flight one settles, never dropped and
// never doubled.
type Registry struct {
	fetcher ListFetcher

	lists   []string
	counts  map[string]int
	loading bool
	err     error

	seq      uint64
	inFlight bool
	pending  bool
}

// Refresh identifies one in-flight registry refresh
type Refresh struct {
	Seq uint64
}

// RegistrySnapshot is the outcome of one refresh
type RegistrySnapshot struct {
	Seq    uint64
	Lists  []string
	Counts map[string]int
	Err    error
}

// NewRegistry creates an empty registry
func NewRegistry(fetcher ListFetcher) *Registry {
	return &Registry{
		fetcher: fetcher,
		counts:  map[string]int{},
	}
}

// Lists returns the known list identifiers in server order
func (r *Registry) Lists() []string { return r.lists }

// Count returns the item count recorded for a list. Empty and unknown
// lists both report zero; the server may legitimately enumerate a list
// no todo references.
func (r *Registry) Count(listID string) int { return r.counts[listID] }

// Loading reports whether a refresh is in flight
func (r *Registry) Loading() bool { return r.loading }

// Err returns the failure of the last applied refresh
func (r *Registry) Err() error { return r.err }

// RequestRefresh asks for a refresh. When none is in flight it starts
// one and returns its descriptor; otherwise it records that another
// full refresh is owed and reports false.
func (r *Registry) RequestRefresh() (Refresh, bool) {
	if r.inFlight {
		r.pending = true
		return Refresh{}, false
	}
	r.inFlight = true
	r.loading = true
	r.seq++
	return Refresh{Seq: r.seq}, true
}

// Fetch executes the network leg of a refresh: enumerate the lists,
// then count each one. Counts are best-effort; a failed per-list fetch
// records zero rather than aborting the refresh.
func (r *Registry) Fetch(ctx context.Context, ref Refresh) RegistrySnapshot {
	snap := RegistrySnapshot{Seq: ref.Seq, Counts: map[string]int{}}

	lists, err := r.fetcher.Lists(ctx)
	if err != nil {
		snap.Err = err
		return snap
	}
	snap.Lists = lists

	for _, listID := range lists {
		todos, err := r.fetcher.TodosByList(ctx, listID)
		if err != nil {
			snap.Counts[listID] = 0
			continue
		}
		snap.Counts[listID] = len(todos)
	}
	return snap
}

// Apply installs a refresh result and reports whether a coalesced
// follow-up refresh is owed; the caller then calls RequestRefresh
// again.
func (r *Registry) Apply(snap RegistrySnapshot) bool {
	if snap.Seq != r.seq {
		return false
	}
	r.inFlight = false
	r.loading = false
	if snap.Err != nil {
		r.err = snap.Err
		r.lists = nil
		r.counts = map[string]int{}
	} else {
		r.err = nil
		r.lists = snap.Lists
		r.counts = snap.Counts
	}

	followUp := r.pending
	r.pending = false
	return followUp
}

// RefreshNow runs a full refresh synchronously, draining any coalesced
// follow-up. CLI paths use this.
func (r *Registry) RefreshNow(ctx context.Context) error {
	for {
		ref, ok := r.RequestRefresh()
		if !ok {
			return r.err
		}
		followUp := r.Apply(r.Fetch(ctx, ref))
		if !followUp {
			return r.err
		}
	}
}

// ListDisplayName renders a list identifier for humans:
// "trip_planning" becomes "Trip Planning".
func ListDisplayName(listID string) string {
	words := strings.Split(listID, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
