package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avencia/servio/internal/clock/clocktest"
	"github.com/avencia/servio/internal/ui/state"
)

func newFlag(t *testing.T, d time.Duration) (*state.TransientFlag, *clocktest.Manual) {
	t.Helper()
	clk := clocktest.NewManual()
	f := state.NewTransientFlag(state.TransientFlagConfig{
		DefaultDuration: d,
		Clock:           clk,
	})
	t.Cleanup(f.Close)
	return f, clk
}

func TestTransientFlag_AutoDismissBoundary(t *testing.T) {
	f, clk := newFlag(t, 3*time.Second)

	f.Show()
	assert.True(t, f.Shown())

	clk.Advance(3*time.Second - time.Millisecond)
	assert.True(t, f.Shown())

	clk.Advance(time.Millisecond)
	assert.False(t, f.Shown())
}

func TestTransientFlag_ReshowRestartsFullDuration(t *testing.T) {
	f, clk := newFlag(t, 3*time.Second)

	f.Show()
	clk.Advance(2 * time.Second)
	f.Show()

	// The first timer would have fired here; it was replaced.
	clk.Advance(2 * time.Second)
	assert.True(t, f.Shown())

	clk.Advance(time.Second)
	assert.False(t, f.Shown())
}

func TestTransientFlag_ShowForOverridesDefault(t *testing.T) {
	f, clk := newFlag(t, 3*time.Second)

	f.ShowFor(500 * time.Millisecond)
	clk.Advance(500 * time.Millisecond)
	assert.False(t, f.Shown())
}

func TestTransientFlag_HideCancelsPendingTimer(t *testing.T) {
	f, clk := newFlag(t, 3*time.Second)

	f.Show()
	f.Hide()
	assert.False(t, f.Shown())

	f.Show()
	clk.Advance(time.Second)
	assert.True(t, f.Shown())
}

func TestTransientFlag_HideIsIdempotent(t *testing.T) {
	f, _ := newFlag(t, 3*time.Second)

	f.Hide()
	f.Hide()
	assert.False(t, f.Shown())
}

func TestTransientFlag_CloseFreezesState(t *testing.T) {
	f, clk := newFlag(t, 3*time.Second)

	f.Show()
	f.Close()

	// The pending dismissal was cancelled and later ops are no-ops.
	clk.Advance(3 * time.Second)
	assert.True(t, f.Shown())

	f.Hide()
	assert.True(t, f.Shown())

	f.ShowFor(time.Second)
	clk.Advance(time.Second)
	assert.True(t, f.Shown())
}

func TestTransientFlag_OnChangeFires(t *testing.T) {
	clk := clocktest.NewManual()
	changes := 0
	f := state.NewTransientFlag(state.TransientFlagConfig{
		DefaultDuration: time.Second,
		Clock:           clk,
		OnChange:        func() { changes++ },
	})
	t.Cleanup(f.Close)

	f.Show()
	assert.Equal(t, 1, changes)

	clk.Advance(time.Second)
	assert.Equal(t, 2, changes)

	// Hiding while already hidden does not notify again.
	f.Hide()
	assert.Equal(t, 2, changes)
}
