package statemachine

import "fmt"

// Option adds transitions to a Definition under construction.
type Option func(*Definition) error

// TransitionOption configures a single transition.
type TransitionOption func(*transition)

// Define builds a Definition from options.
func Define(opts ...Option) (*Definition, error) {
	d := &Definition{
		transitions: make(map[State]map[Event][]transition),
		states:      make(map[State]struct{}),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if len(d.states) == 0 {
		return nil, ErrEmptyDefinition
	}

	return d, nil
}

// MustDefine is Define that panics on error. Use it for package-level tables.
func MustDefine(opts ...Option) *Definition {
	d, err := Define(opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return d
}

// WithTransition adds from -> to on event.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(d *Definition) error {
		if from == "" || to == "" || event == "" {
			return fmt.Errorf("%w: %q -> %q on %q", ErrInvalidTransition, from, to, event)
		}

		t := transition{to: to}
		for _, opt := range opts {
			opt(&t)
		}

		if d.transitions[from] == nil {
			d.transitions[from] = make(map[Event][]transition)
		}
		d.transitions[from][event] = append(d.transitions[from][event], t)
		d.states[from] = struct{}{}
		d.states[to] = struct{}{}
		return nil
	}
}

// WithTransitionFrom adds the same transition from each source state.
func WithTransitionFrom(sources []State, to State, event Event, opts ...TransitionOption) Option {
	return func(d *Definition) error {
		for _, from := range sources {
			if err := WithTransition(from, to, event, opts...)(d); err != nil {
				return err
			}
		}
		return nil
	}
}

func WithGuard(guard Guard) TransitionOption {
	return func(t *transition) {
		if guard != nil {
			t.guards = append(t.guards, guard)
		}
	}
}

func WithAction(action Action) TransitionOption {
	return func(t *transition) {
		if action != nil {
			t.actions = append(t.actions, action)
		}
	}
}
