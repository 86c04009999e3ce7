package market

import (
	"fmt"
	"sync"
)

// CommitHook observes a committed operation. Hooks run after the state
// swap and must not fail the operation; persistence errors are theirs to
// report.
type CommitHook func(name string, seq uint64, state *State)

// Engine serializes operations and executes each as a single
// all-or-nothing unit: the operation is applied to a deep copy of the
// state, and the copy replaces the live state only when every step
// succeeded. A failed operation leaves zero observable effects.
//
// This mirrors the atomic execution guarantee the external ledger
// environment provides on-chain; in-process it is the engine's job.
type Engine struct {
	mu    sync.Mutex
	state *State
	seq   uint64
	hooks []CommitHook
}

// NewEngine creates an engine over the given initial state.
func NewEngine(state *State) *Engine {
	if state == nil {
		state = NewState()
	}
	return &Engine{state: state}
}

// NewEngineAt creates an engine over a restored state, resuming the
// commit sequence where the snapshot left off.
func NewEngineAt(state *State, seq uint64) *Engine {
	e := NewEngine(state)
	e.seq = seq
	return e
}

// OnCommit registers a hook invoked after every committed operation.
func (e *Engine) OnCommit(hook CommitHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, hook)
}

// Apply validates and executes op. On success the mutated state becomes
// visible and the commit sequence advances; on failure the live state is
// untouched.
func (e *Engine) Apply(op Operation) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op.Name(), err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.state.Clone()
	if err := op.Apply(&ApplyContext{State: working}); err != nil {
		return fmt.Errorf("%s: %w", op.Name(), err)
	}

	e.state = working
	e.seq++
	for _, hook := range e.hooks {
		hook(op.Name(), e.seq, e.state)
	}
	return nil
}

// Seq returns the number of committed operations.
func (e *Engine) Seq() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

// View runs fn with read access to the live state. fn must not retain or
// mutate the state.
func (e *Engine) View(fn func(state *State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
}
