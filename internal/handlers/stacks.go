package handlers

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/klauspost/compress/gzip"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// stackBufStart is the initial dump buffer size; it doubles until the full
// dump fits.
const stackBufStart = 64 * 1024

// Stacks dumps the stacks of every goroutine, optionally gzip-compressed.
type Stacks struct{}

// Definition returns the command definition
func (Stacks) Definition() types.Command {
	return types.Command{
		Name:        "stacks",
		Description: "Dump all goroutine stacks",
		ArgHints:    []string{"gz: compress the dump with gzip"},
	}
}

// Execute runs the command
func (Stacks) Execute(_ context.Context, args []string) *types.Result {
	buf := make([]byte, stackBufStart)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, len(buf)*2)
	}

	if hasArg(args, "gz") {
		var out bytes.Buffer
		zw := gzip.NewWriter(&out)
		if _, err := zw.Write(buf); err != nil {
			return types.Errorf(types.CodeInternal, fmt.Sprintf("compress failed: %v", err))
		}
		if err := zw.Close(); err != nil {
			return types.Errorf(types.CodeInternal, fmt.Sprintf("compress failed: %v", err))
		}
		return types.OK(out.Bytes())
	}
	return types.OK(buf)
}

func hasArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
