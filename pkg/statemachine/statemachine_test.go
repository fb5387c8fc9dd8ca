package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/pkg/statemachine"
)

const (
	idle    statemachine.State = "idle"
	running statemachine.State = "running"
	done    statemachine.State = "done"
	failed  statemachine.State = "failed"

	start  statemachine.Event = "start"
	finish statemachine.Event = "finish"
	fail   statemachine.Event = "fail"
)

func TestDefine(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty names", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.Define(statemachine.WithTransition("", running, start))
		assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
	})

	t.Run("rejects empty table", func(t *testing.T) {
		t.Parallel()
		_, err := statemachine.Define()
		assert.ErrorIs(t, err, statemachine.ErrEmptyDefinition)
	})

	t.Run("must define panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { statemachine.MustDefine() })
	})

	t.Run("terminal states", func(t *testing.T) {
		t.Parallel()
		def := statemachine.MustDefine(
			statemachine.WithTransition(idle, running, start),
			statemachine.WithTransitionFrom([]statemachine.State{idle, running}, failed, fail),
		)
		assert.False(t, def.Terminal(idle))
		assert.True(t, def.Terminal(failed))
		assert.True(t, def.Has(failed))
		assert.False(t, def.Has(done))
		assert.ElementsMatch(t, []statemachine.Event{start, fail}, def.Events(idle))
	})
}

func TestMachineFire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	def := statemachine.MustDefine(
		statemachine.WithTransition(idle, running, start),
		statemachine.WithTransition(running, done, finish),
		statemachine.WithTransitionFrom([]statemachine.State{idle, running}, failed, fail),
	)

	t.Run("walks and records history", func(t *testing.T) {
		t.Parallel()
		m := def.Start(idle)
		require.NoError(t, m.Fire(ctx, start, nil))
		require.NoError(t, m.Fire(ctx, finish, nil))

		assert.Equal(t, done, m.Current())
		assert.True(t, m.Done())

		history := m.History()
		require.Len(t, history, 2)
		assert.Equal(t, idle, history[0].From)
		assert.Equal(t, done, history[1].To)
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()
		m := def.Start(idle)
		err := m.Fire(ctx, finish, nil)
		assert.True(t, statemachine.IsNoTransitionAvailableError(err))
		assert.Equal(t, idle, m.Current())
		assert.ErrorIs(t, m.Fire(ctx, "", nil), statemachine.ErrInvalidEvent)
	})

	t.Run("terminal state accepts nothing", func(t *testing.T) {
		t.Parallel()
		m := def.Start(idle)
		require.NoError(t, m.Fire(ctx, fail, nil))
		assert.Error(t, m.Fire(ctx, start, nil))
		assert.Equal(t, failed, m.Current())
	})

	t.Run("runs are independent", func(t *testing.T) {
		t.Parallel()
		a := def.Start(idle)
		b := def.Start(idle)
		require.NoError(t, a.Fire(ctx, start, nil))
		assert.Equal(t, idle, b.Current())
	})
}

func TestGuardsAndActions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	onlyTrue := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		ok, _ := data.(bool)
		return ok
	}

	var calls []string
	var mu sync.Mutex
	record := func(name string) statemachine.Action {
		return func(_ context.Context, from, to statemachine.State, _ statemachine.Event, _ any) error {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, name+":"+from.String()+"->"+to.String())
			return nil
		}
	}

	def := statemachine.MustDefine(
		statemachine.WithTransition(idle, running, start,
			statemachine.WithGuard(onlyTrue),
			statemachine.WithAction(record("run")),
		),
		statemachine.WithTransition(idle, failed, start, statemachine.WithAction(record("fallback"))),
		statemachine.WithTransition(running, done, finish,
			statemachine.WithAction(func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
				return errors.New("boom")
			}),
		),
	)

	m := def.Start(idle)
	assert.True(t, m.CanFire(ctx, start, true))
	require.NoError(t, m.Fire(ctx, start, true))
	assert.Equal(t, running, m.Current())

	err := m.Fire(ctx, finish, nil)
	require.Error(t, err)
	assert.Equal(t, running, m.Current())

	other := def.Start(idle)
	require.NoError(t, other.Fire(ctx, start, false))
	assert.Equal(t, failed, other.Current())

	assert.Equal(t, []string{"run:idle->running", "fallback:idle->failed"}, calls)
}

func TestGuardRejection(t *testing.T) {
	t.Parallel()

	def := statemachine.MustDefine(
		statemachine.WithTransition(idle, running, start,
			statemachine.WithGuard(func(context.Context, statemachine.State, statemachine.Event, any) bool { return false }),
		),
	)

	m := def.Start(idle)
	assert.False(t, m.CanFire(context.Background(), start, nil))
	err := m.Fire(context.Background(), start, nil)
	assert.True(t, statemachine.IsTransitionRejectedError(err))
}
