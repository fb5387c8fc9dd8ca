// Package statemachine implements small finite state machines whose
// transition table is defined once and shared, while each run keeps its own
// current state.
//
// A Definition is immutable after construction and safe for concurrent use.
// Start returns a Machine that walks the table for a single flow, for
// example one HTTP request, and records every step it takes:
//
//	def := statemachine.MustDefine(
//		statemachine.WithTransition("idle", "running", "start"),
//		statemachine.WithTransition("running", "done", "finish",
//			statemachine.WithGuard(func(ctx context.Context, from statemachine.State, e statemachine.Event, data any) bool {
//				return data != nil
//			}),
//		),
//	)
//
//	m := def.Start("idle")
//	if err := m.Fire(ctx, "start", nil); err != nil { ... }
//	m.Current() // "running"
//
// When several transitions share a source state and event, the first whose
// guards all pass wins. Actions run in order before the state changes; an
// action error leaves the machine where it was.
package statemachine
