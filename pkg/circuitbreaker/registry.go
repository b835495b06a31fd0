package circuitbreaker

import (
	"sync"
	"time"
)

const (
	// DefaultFailureThreshold is the number of consecutive failures that
	// opens a rail's circuit
	DefaultFailureThreshold = 3

	// DefaultCooldown is how long after the last failure a rail's state
	// auto-resets to zero
	DefaultCooldown = 60 * time.Second
)

// state is the per-rail breaker record, created lazily on first failure.
type state struct {
	failures    int
	lastFailure time.Time
}

// Registry tracks consecutive failures per rail identifier. A rail whose
// count reaches the threshold is open and excluded from eligibility until a
// success is recorded for it or the cooldown window elapses.
type Registry struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	states    map[string]*state
	now       func() time.Time
}

// NewRegistry creates a breaker registry. Non-positive arguments fall back
// to the defaults.
func NewRegistry(threshold int, cooldown time.Duration) *Registry {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Registry{
		threshold: threshold,
		cooldown:  cooldown,
		states:    make(map[string]*state),
		now:       time.Now,
	}
}

// RecordFailure increments the rail's consecutive-failure count and returns
// true if the circuit is now open.
func (r *Registry) RecordFailure(railID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[railID]
	if !ok {
		st = &state{}
		r.states[railID] = st
	}
	if r.expired(st) {
		st.failures = 0
	}
	st.failures++
	st.lastFailure = r.now()
	return st.failures >= r.threshold
}

// RecordSuccess resets the rail's consecutive-failure count.
func (r *Registry) RecordSuccess(railID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.states[railID]; ok {
		st.failures = 0
	}
}

// IsOpen reports whether the rail's circuit is open. The cooldown is applied
// on read: once it elapses since the last failure the state resets to zero
// regardless of intervening successes.
func (r *Registry) IsOpen(railID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[railID]
	if !ok {
		return false
	}
	if r.expired(st) {
		st.failures = 0
		return false
	}
	return st.failures >= r.threshold
}

// State returns the rail's current consecutive-failure count and the time of
// its last failure.
func (r *Registry) State(railID string) (failures int, lastFailure time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.states[railID]
	if !ok {
		return 0, time.Time{}
	}
	if r.expired(st) {
		st.failures = 0
	}
	return st.failures, st.lastFailure
}

// Reset manually clears the rail's breaker state.
func (r *Registry) Reset(railID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, railID)
}

// RailIDs returns the rails that currently have breaker state.
func (r *Registry) RailIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.states))
	for id := range r.states {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) expired(st *state) bool {
	return st.failures > 0 && r.now().Sub(st.lastFailure) > r.cooldown
}
