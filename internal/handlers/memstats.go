package handlers

import (
	"context"
	"fmt"
	"runtime"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// MemStats reports runtime memory statistics as JSON.
type MemStats struct{}

// memReport is the subset of runtime.MemStats worth shipping to a client.
type memReport struct {
	HeapAlloc    uint64 `json:"heap_alloc"`
	HeapSys      uint64 `json:"heap_sys"`
	HeapObjects  uint64 `json:"heap_objects"`
	StackInuse   uint64 `json:"stack_inuse"`
	TotalAlloc   uint64 `json:"total_alloc"`
	Sys          uint64 `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	PauseTotalNs uint64 `json:"pause_total_ns"`
	NumGoroutine int    `json:"num_goroutine"`
}

// Definition returns the command definition
func (MemStats) Definition() types.Command {
	return types.Command{
		Name:        "memstats",
		Description: "Report runtime memory statistics as JSON",
	}
}

// Execute runs the command
func (MemStats) Execute(_ context.Context, _ []string) *types.Result {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	payload, err := sonic.Marshal(memReport{
		HeapAlloc:    ms.HeapAlloc,
		HeapSys:      ms.HeapSys,
		HeapObjects:  ms.HeapObjects,
		StackInuse:   ms.StackInuse,
		TotalAlloc:   ms.TotalAlloc,
		Sys:          ms.Sys,
		NumGC:        ms.NumGC,
		PauseTotalNs: ms.PauseTotalNs,
		NumGoroutine: runtime.NumGoroutine(),
	})
	if err != nil {
		return types.Errorf(types.CodeInternal, fmt.Sprintf("encode failed: %v", err))
	}
	return types.OK(payload)
}
