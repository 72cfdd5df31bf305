package interp

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Command is a host-callable primitive. Arguments arrive in call
// order; optional trailing arguments arrive as nil values or are
// omitted entirely, at the host's discretion.
type Command func(ctx context.Context, args []Value) (Value, error)

// Registry maps command names to primitives and carries the
// process-exit hooks commands may register. It stands in for the
// host's command table and its run-at-exit facility.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	hooks    []func()
	exited   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds a command under the given name. Registering an empty
// name, a nil command, or a name already taken is an error.
func (r *Registry) Register(name string, cmd Command) error {
	if name == "" {
		return fmt.Errorf("empty command name")
	}
	if cmd == nil {
		return fmt.Errorf("nil command %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.commands[name] = cmd
	return nil
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes the command registered under name.
func (r *Registry) Call(ctx context.Context, name string, args ...Value) (Value, error) {
	cmd, ok := r.Lookup(name)
	if !ok {
		return Nil(), fmt.Errorf("unknown command %q", name)
	}
	return cmd(ctx, args)
}

// OnExit registers a hook to run when the host shuts down. Hooks run
// once, in reverse registration order, matching the C runtime's
// atexit contract. Registering after the hooks have run is an error.
func (r *Registry) OnExit(hook func()) error {
	if hook == nil {
		return fmt.Errorf("nil exit hook")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exited {
		return fmt.Errorf("exit hooks already run")
	}
	r.hooks = append(r.hooks, hook)
	return nil
}

// RunExitHooks runs the registered hooks, last registered first.
// Subsequent calls are no-ops.
func (r *Registry) RunExitHooks() {
	r.mu.Lock()
	if r.exited {
		r.mu.Unlock()
		return
	}
	r.exited = true
	hooks := r.hooks
	r.hooks = nil
	r.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}
