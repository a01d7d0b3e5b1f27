package handlers

import (
	"context"
	"fmt"
	"runtime"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// GC forces a garbage collection and reports the heap delta.
type GC struct{}

// Definition returns the command definition
func (GC) Definition() types.Command {
	return types.Command{
		Name:        "gc",
		Description: "Force a garbage collection and report freed heap bytes",
	}
}

// Execute runs the command
func (GC) Execute(_ context.Context, _ []string) *types.Result {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	runtime.GC()
	runtime.ReadMemStats(&after)

	freed := int64(before.HeapAlloc) - int64(after.HeapAlloc)
	out := fmt.Sprintf("heap_alloc_before=%d heap_alloc_after=%d freed=%d num_gc=%d\n",
		before.HeapAlloc, after.HeapAlloc, freed, after.NumGC)
	return types.OK([]byte(out))
}
