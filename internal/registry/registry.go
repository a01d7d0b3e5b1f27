package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// Handler executes one diagnostic command.
type Handler interface {
	Definition() types.Command
	Execute(ctx context.Context, args []string) *types.Result
}

// Registry maps command names to handlers. It is the execution collaborator
// of the attach listener: the consumer loop hands it a decoded operation's
// name and arguments and writes whatever Result comes back to the client.
type Registry struct {
	handlers sync.Map
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a command handler.
func (r *Registry) Register(h Handler) error {
	def := h.Definition()
	if def.Name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	r.handlers.Store(def.Name, h)
	return nil
}

// Unregister removes a command handler.
func (r *Registry) Unregister(name string) {
	r.handlers.Delete(name)
}

// Get retrieves a handler by command name.
func (r *Registry) Get(name string) (Handler, bool) {
	val, ok := r.handlers.Load(name)
	if !ok {
		return nil, false
	}
	return val.(Handler), true
}

// List returns all registered commands sorted by name.
func (r *Registry) List() []types.Command {
	var commands []types.Command
	r.handlers.Range(func(_, value interface{}) bool {
		commands = append(commands, value.(Handler).Definition())
		return true
	})
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name < commands[j].Name
	})
	return commands
}

// Execute dispatches a command. An unknown name yields a Result with
// CodeUnknownCommand rather than an error: the consumer loop always has
// something to write back.
func (r *Registry) Execute(ctx context.Context, name string, args []string) *types.Result {
	handler, ok := r.Get(name)
	if !ok {
		return types.Errorf(types.CodeUnknownCommand, fmt.Sprintf("command not found: %s", name))
	}
	return handler.Execute(ctx, args)
}
