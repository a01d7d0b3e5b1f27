package channel

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Mode restricts which directions of a channel may be used. The underlying
// socket is always duplex; the mode is enforced at the API boundary.
type Mode int

const (
	ReadOnly Mode = iota
	WriteOnly
	ReadWrite
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadWrite:
		return "read-write"
	default:
		return "unknown"
	}
}

var (
	ErrClosed      = errors.New("channel: closed")
	ErrNotReadable = errors.New("channel: not opened for reading")
	ErrNotWritable = errors.New("channel: not opened for writing")
)

// DialTimeout bounds how long Open waits for the peer's socket to accept.
const DialTimeout = 10 * time.Second

// Channel is a named, blocking byte stream to an attach client. The client
// owns the endpoint (it created the socket); the target opens it by name.
type Channel struct {
	name string
	mode Mode
	conn net.Conn
	bw   *bufio.Writer

	mu     sync.Mutex
	closed bool
}

// Open connects to the named channel. A missing socket, a refused
// connection, or a permission error all surface as a returned transport
// error; callers treat it as a per-request failure, not process-fatal.
func Open(name string, mode Mode) (*Channel, error) {
	conn, err := net.DialTimeout("unix", name, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("channel: open %s (%s): %w", name, mode, err)
	}
	return &Channel{
		name: name,
		mode: mode,
		conn: conn,
		bw:   bufio.NewWriter(conn),
	}, nil
}

// Name returns the channel name it was opened with.
func (c *Channel) Name() string { return c.name }

// Mode returns the mode the channel was opened with.
func (c *Channel) Mode() Mode { return c.mode }

// Read fills p with bytes from the peer. Blocking.
func (c *Channel) Read(p []byte) (int, error) {
	if c.mode == WriteOnly {
		return 0, ErrNotReadable
	}
	if c.isClosed() {
		return 0, ErrClosed
	}
	return c.conn.Read(p)
}

// Write buffers p toward the peer. Call Flush to force delivery.
func (c *Channel) Write(p []byte) (int, error) {
	if c.mode == ReadOnly {
		return 0, ErrNotWritable
	}
	if c.isClosed() {
		return 0, ErrClosed
	}
	return c.bw.Write(p)
}

// Flush forces buffered output to the peer.
func (c *Channel) Flush() error {
	if c.mode == ReadOnly {
		return ErrNotWritable
	}
	if c.isClosed() {
		return ErrClosed
	}
	return c.bw.Flush()
}

// Close releases the endpoint. Safe to call multiple times.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Channel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
