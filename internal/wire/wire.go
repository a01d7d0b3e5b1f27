package wire

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Limits agreed between producers and the listener at build time. Any
// reimplementation of either side must enforce these identically.
const (
	MaxCommandLen     = 16
	MaxArgLen         = 1024
	MaxArgs           = 3
	MaxChannelNameLen = 256
)

// VersionTag is the protocol version string a v2 client writes as the first
// field of an encoded request.
const VersionTag = "2"

var (
	ErrBadVersion   = errors.New("wire: unsupported protocol version")
	ErrFieldTooLong = errors.New("wire: field exceeds maximum length")
	ErrTruncated    = errors.New("wire: truncated request")
)

// Request is a fully decoded v2 request. Unused argument entries are empty
// strings, never absent.
type Request struct {
	Command string
	Args    [MaxArgs]string
}

// ReadRequest decodes a v2 request from the channel: the version tag, the
// command name, then exactly MaxArgs arguments, each NUL-terminated and
// length-bounded.
func ReadRequest(r io.Reader) (*Request, error) {
	ver, err := readString(r, len(VersionTag))
	if err != nil {
		return nil, err
	}
	if ver != VersionTag {
		return nil, fmt.Errorf("%w: %q", ErrBadVersion, ver)
	}

	req := &Request{}
	if req.Command, err = readString(r, MaxCommandLen); err != nil {
		return nil, err
	}
	for i := 0; i < MaxArgs; i++ {
		if req.Args[i], err = readString(r, MaxArgLen); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// WriteRequest encodes a v2 request. It is the client-side counterpart of
// ReadRequest; missing arguments are sent as empty strings.
func WriteRequest(w io.Writer, command string, args ...string) error {
	if len(command) > MaxCommandLen {
		return ErrFieldTooLong
	}
	if len(args) > MaxArgs {
		return fmt.Errorf("wire: too many arguments: %d", len(args))
	}

	fields := make([]string, 0, 2+MaxArgs)
	fields = append(fields, VersionTag, command)
	for i := 0; i < MaxArgs; i++ {
		arg := ""
		if i < len(args) {
			arg = args[i]
		}
		if len(arg) > MaxArgLen {
			return ErrFieldTooLong
		}
		fields = append(fields, arg)
	}

	buf := make([]byte, 0, 64)
	for _, f := range fields {
		buf = append(buf, f...)
		buf = append(buf, 0)
	}
	_, err := w.Write(buf)
	return err
}

// WriteReply writes the result code as decimal ASCII followed by a newline,
// then the raw payload bytes. Both protocol versions share this format.
func WriteReply(w io.Writer, code int32, payload []byte) error {
	if _, err := io.WriteString(w, strconv.FormatInt(int64(code), 10)+"\n"); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// ReadReply is the client-side counterpart of WriteReply: it parses the
// result code line and then consumes the payload until the target closes the
// channel.
func ReadReply(r io.Reader) (int32, []byte, error) {
	line, err := readLine(r)
	if err != nil {
		return 0, nil, err
	}
	code, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("wire: malformed result code %q: %w", line, err)
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return 0, nil, err
	}
	return int32(code), payload, nil
}

// readString reads a NUL-terminated string of at most max bytes. The
// byte-at-a-time read is deliberate: it never consumes past the terminator,
// so the reader needs no buffering layer.
func readString(r io.Reader, max int) (string, error) {
	buf := make([]byte, 0, 16)
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n == 0 {
			if err == nil || err == io.EOF {
				return "", ErrTruncated
			}
			return "", err
		}
		if b[0] == 0 {
			return string(buf), nil
		}
		if len(buf) >= max {
			return "", ErrFieldTooLong
		}
		buf = append(buf, b[0])
	}
}

// readLine reads until '\n', excluding the terminator.
func readLine(r io.Reader) (string, error) {
	buf := make([]byte, 0, 8)
	var b [1]byte
	for {
		n, err := r.Read(b[:])
		if n == 0 {
			if err == nil || err == io.EOF {
				return "", ErrTruncated
			}
			return "", err
		}
		if b[0] == '\n' {
			return string(buf), nil
		}
		buf = append(buf, b[0])
	}
}
