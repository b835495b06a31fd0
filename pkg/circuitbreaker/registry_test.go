package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordFailureOpensAtThreshold(t *testing.T) {
	r := NewRegistry(3, time.Minute)

	assert.False(t, r.RecordFailure("ach"))
	assert.False(t, r.RecordFailure("ach"))
	assert.False(t, r.IsOpen("ach"))

	assert.True(t, r.RecordFailure("ach"))
	assert.True(t, r.IsOpen("ach"))
}

func TestRecordSuccessResetsCount(t *testing.T) {
	r := NewRegistry(3, time.Minute)

	r.RecordFailure("fednow")
	r.RecordFailure("fednow")
	r.RecordSuccess("fednow")

	failures, _ := r.State("fednow")
	assert.Equal(t, 0, failures)

	// The streak restarts from zero after a success.
	assert.False(t, r.RecordFailure("fednow"))
	assert.False(t, r.RecordFailure("fednow"))
	assert.True(t, r.RecordFailure("fednow"))
}

func TestCooldownAutoResets(t *testing.T) {
	r := NewRegistry(3, time.Minute)
	now := time.Now()
	r.now = func() time.Time { return now }

	r.RecordFailure("rtp")
	r.RecordFailure("rtp")
	r.RecordFailure("rtp")
	assert.True(t, r.IsOpen("rtp"))

	// Just inside the window the circuit stays open.
	now = now.Add(59 * time.Second)
	assert.True(t, r.IsOpen("rtp"))

	// Past the window the state resets with no success recorded.
	now = now.Add(2 * time.Second)
	assert.False(t, r.IsOpen("rtp"))
	failures, _ := r.State("rtp")
	assert.Equal(t, 0, failures)
}

func TestCooldownResetsCountBeforeNextFailure(t *testing.T) {
	r := NewRegistry(3, time.Minute)
	now := time.Now()
	r.now = func() time.Time { return now }

	r.RecordFailure("wire")
	r.RecordFailure("wire")

	// A failure after the cooldown starts a fresh streak rather than
	// continuing the stale one.
	now = now.Add(2 * time.Minute)
	assert.False(t, r.RecordFailure("wire"))
	failures, _ := r.State("wire")
	assert.Equal(t, 1, failures)
}

func TestManualReset(t *testing.T) {
	r := NewRegistry(3, time.Minute)

	r.RecordFailure("ach")
	r.RecordFailure("ach")
	r.RecordFailure("ach")
	assert.True(t, r.IsOpen("ach"))

	r.Reset("ach")
	assert.False(t, r.IsOpen("ach"))
	failures, lastFailure := r.State("ach")
	assert.Equal(t, 0, failures)
	assert.True(t, lastFailure.IsZero())
}

func TestRailsTrackedIndependently(t *testing.T) {
	r := NewRegistry(3, time.Minute)

	r.RecordFailure("ach")
	r.RecordFailure("ach")
	r.RecordFailure("ach")
	r.RecordFailure("fednow")

	assert.True(t, r.IsOpen("ach"))
	assert.False(t, r.IsOpen("fednow"))
	assert.ElementsMatch(t, []string{"ach", "fednow"}, r.RailIDs())
}

func TestUnknownRailIsClosed(t *testing.T) {
	r := NewRegistry(3, time.Minute)

	assert.False(t, r.IsOpen("nonexistent"))
	failures, lastFailure := r.State("nonexistent")
	assert.Equal(t, 0, failures)
	assert.True(t, lastFailure.IsZero())
}

func TestNewRegistryDefaults(t *testing.T) {
	r := NewRegistry(0, 0)

	assert.Equal(t, DefaultFailureThreshold, r.threshold)
	assert.Equal(t, DefaultCooldown, r.cooldown)
}
