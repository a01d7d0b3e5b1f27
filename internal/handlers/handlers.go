package handlers

import "github.com/GriffinCanCode/AttachKit/internal/registry"

// Builtin returns one instance of every builtin command handler, in
// registration order.
func Builtin() []registry.Handler {
	return []registry.Handler{
		Ping{},
		Stacks{},
		MemStats{},
		Properties{},
		GC{},
	}
}
