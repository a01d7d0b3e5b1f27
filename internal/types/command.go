package types

// Result codes written back to the client in the reply line. Zero is
// success; handler-specific failures use codes above the reserved range.
const (
	CodeOK             int32 = 0
	CodeUnknownCommand int32 = 1
	CodeInvalidArgs    int32 = 2
	CodeInternal       int32 = 3
)

// Command describes a registered diagnostic command.
type Command struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ArgHints    []string `json:"arg_hints,omitempty"`
}

// Result is a handler's output: a result code plus an arbitrary byte
// payload, both written verbatim to the reply channel.
type Result struct {
	Code   int32
	Output []byte
}

// OK builds a success result with the given payload.
func OK(output []byte) *Result {
	return &Result{Code: CodeOK, Output: output}
}

// Errorf builds a failure result with a textual payload.
func Errorf(code int32, msg string) *Result {
	return &Result{Code: code, Output: []byte(msg)}
}
