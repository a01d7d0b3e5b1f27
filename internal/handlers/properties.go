package handlers

import (
	"context"
	"os"
	"strings"

	"github.com/GriffinCanCode/AttachKit/internal/types"
)

// Properties lists the target's environment, one k=v pair per line. An
// optional prefix argument filters the listing.
type Properties struct{}

// Definition returns the command definition
func (Properties) Definition() types.Command {
	return types.Command{
		Name:        "properties",
		Description: "List process environment variables",
		ArgHints:    []string{"prefix: only variables whose name starts with prefix"},
	}
}

// Execute runs the command
func (Properties) Execute(_ context.Context, args []string) *types.Result {
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}

	var sb strings.Builder
	for _, kv := range os.Environ() {
		if prefix == "" || strings.HasPrefix(kv, prefix) {
			sb.WriteString(kv)
			sb.WriteByte('\n')
		}
	}
	return types.OK([]byte(sb.String()))
}
