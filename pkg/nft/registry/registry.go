// Package registry allocates token identifiers and tracks the mood of each
// allocated token.
package registry

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/moodnft/pkg/nft/core"
	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
)

// Images holds the two image references chosen at construction. They are
// never mutated afterwards.
type Images struct {
	Happy string
	Sad   string
}

// IssueFunc binds a freshly allocated id to its owner. It runs inside the
// allocation critical section; a non-nil error aborts the allocation.
type IssueFunc func(id core.TokenID) error

// Option configures a Registry.
type Option func(*Registry)

// WithLegacyMoodIndex records the initial mood under the post-increment
// counter value instead of the issued id. The issued id then has no
// recorded mood and reports core.DefaultMood, and an entry exists for the
// not yet allocated id equal to NextID.
func WithLegacyMoodIndex() Option {
	return func(r *Registry) {
		r.legacyIndex = true
	}
}

// WithLogger attaches a logger.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registry owns the id counter and the per-token mood table.
//
// There is no operation that changes a recorded mood. A mood flip would
// be added here as a write under mu guarded by MoodOf's unknown-id check.
type Registry struct {
	mu          sync.RWMutex
	nextID      core.TokenID
	moods       map[core.TokenID]core.Mood
	images      Images
	legacyIndex bool
	logger      hclog.Logger
}

// New returns an empty registry with the counter at zero.
func New(images Images, opts ...Option) *Registry {
	r := &Registry{
		moods:  make(map[core.TokenID]core.Mood),
		images: images,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Images returns the image references.
func (r *Registry) Images() Images {
	return r.images
}

// LegacyMoodIndex reports whether the registry reproduces the
// post-increment mood slot.
func (r *Registry) LegacyMoodIndex() bool {
	return r.legacyIndex
}

// Allocate issues the next id and records its initial mood.
func (r *Registry) Allocate() core.TokenID {
	id, _ := r.AllocateWith(nil)
	return id
}

// AllocateWith issues the next id, calling issue exactly once before the
// counter moves. If issue fails the registry is left untouched.
func (r *Registry) AllocateWith(issue IssueFunc) (core.TokenID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	if issue != nil {
		if err := issue(id); err != nil {
			r.logger.Debug("🚫 Allocation aborted by issuer", "id", id, "error", err)
			return 0, err
		}
	}

	r.nextID++

	slot := id
	if r.legacyIndex {
		slot = r.nextID
	}
	r.moods[slot] = core.InitialMood

	r.logger.Debug("🎟️ Allocated token", "id", id, "mood_slot", slot, "next_id", r.nextID)
	return id, nil
}

// MoodOf returns the mood of an allocated token. Allocated tokens without
// a recorded mood report core.DefaultMood.
func (r *Registry) MoodOf(id core.TokenID) (core.Mood, error) {
	mood, _, err := r.Lookup(id)
	return mood, err
}

// Lookup is MoodOf that also reports whether a mood was recorded for id.
func (r *Registry) Lookup(id core.TokenID) (core.Mood, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id >= r.nextID {
		return 0, false, fmt.Errorf("token %d: %w", id, nfterrors.ErrUnknownIdentifier)
	}
	mood, ok := r.moods[id]
	if !ok {
		return core.DefaultMood, false, nil
	}
	return mood, true, nil
}

// NextID returns the id the next allocation will issue.
func (r *Registry) NextID() core.TokenID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID
}

// Len returns the number of recorded moods.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.moods)
}

// Snapshot returns a copy of the mood table.
func (r *Registry) Snapshot() map[core.TokenID]core.Mood {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[core.TokenID]core.Mood, len(r.moods))
	for id, mood := range r.moods {
		out[id] = mood
	}
	return out
}
