package handlers

import (
	"context"
	"os"
	"strconv"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// Ping answers liveness probes with the target's pid.
type Ping struct{}

// Definition returns the command definition
func (Ping) Definition() types.Command {
	return types.Command{
		Name:        "ping",
		Description: "Liveness check; replies with the target process ID",
	}
}

// Execute runs the command
func (Ping) Execute(_ context.Context, _ []string) *types.Result {
	return types.OK([]byte(strconv.Itoa(os.Getpid())))
}
