package statemachine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State names a node of the machine.
type State string

func (s State) String() string { return string(s) }

// Event names an input that may move the machine.
type Event string

func (e Event) String() string { return string(e) }

// Guard reports whether a transition may proceed.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs a side effect while transitioning. An error cancels the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

type transition struct {
	to      State
	guards  []Guard
	actions []Action
}

// Definition is an immutable transition table.
type Definition struct {
	transitions map[State]map[Event][]transition
	states      map[State]struct{}
}

// Step records one successful transition.
type Step struct {
	From  State
	To    State
	Event Event
	At    time.Time
}

// Machine is a single run over a Definition.
type Machine struct {
	def     *Definition
	current State
	history []Step
	mu      sync.Mutex
}

// Start begins a run in the given state.
func (d *Definition) Start(initial State) *Machine {
	return &Machine{def: d, current: initial}
}

// Has reports whether the state appears anywhere in the table.
func (d *Definition) Has(s State) bool {
	_, ok := d.states[s]
	return ok
}

// Terminal reports whether no event leaves the state.
func (d *Definition) Terminal(s State) bool {
	return len(d.transitions[s]) == 0
}

// Events lists the events accepted in state s, in no particular order.
func (d *Definition) Events(s State) []Event {
	events := make([]Event, 0, len(d.transitions[s]))
	for e := range d.transitions[s] {
		events = append(events, e)
	}
	return events
}

func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// History returns a copy of the steps taken so far.
func (m *Machine) History() []Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Step, len(m.history))
	copy(out, m.history)
	return out
}

// Done reports whether the machine sits in a terminal state.
func (m *Machine) Done() bool {
	return m.def.Terminal(m.Current())
}

// Fire applies event to the current state.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == "" {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates := m.def.transitions[m.current][event]
	if len(candidates) == 0 {
		return NewErrNoTransitionAvailable(m.current, event)
	}

	t, ok := m.pick(ctx, candidates, event, data)
	if !ok {
		return NewErrTransitionRejected(m.current, event)
	}

	for _, action := range t.actions {
		if err := action(ctx, m.current, t.to, event, data); err != nil {
			return fmt.Errorf("statemachine: action %s -> %s on %s: %w", m.current, t.to, event, err)
		}
	}

	m.history = append(m.history, Step{From: m.current, To: t.to, Event: event, At: time.Now()})
	m.current = t.to
	return nil
}

// CanFire reports whether Fire would find a transition whose guards pass.
// Actions are not run.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.pick(ctx, m.def.transitions[m.current][event], event, data)
	return ok
}

func (m *Machine) pick(ctx context.Context, candidates []transition, event Event, data any) (transition, bool) {
	for _, t := range candidates {
		passed := true
		for _, guard := range t.guards {
			if !guard(ctx, m.current, event, data) {
				passed = false
				break
			}
		}
		if passed {
			return t, true
		}
	}
	return transition{}, false
}
