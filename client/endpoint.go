package client

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/GriffinCanCode/AttachKit/internal/wire"
)

// AcceptTimeout bounds how long an endpoint waits for the target to open
// the channel after the enqueue was triggered.
const AcceptTimeout = 30 * time.Second

// Endpoint is the client side of one attach exchange. The client owns the
// channel: it creates the socket under the target's namespace prefix,
// triggers the enqueue out-of-band, then accepts exactly one connection from
// the target.
type Endpoint struct {
	name string
	ln   net.Listener

	mu     sync.Mutex
	conn   net.Conn
	closed bool
}

// Listen creates the named channel. The name must start with the target's
// namespace prefix or the enqueue will be rejected with illegal-argument.
func Listen(name string) (*Endpoint, error) {
	ln, err := net.Listen("unix", name)
	if err != nil {
		return nil, fmt.Errorf("client: listen %s: %w", name, err)
	}
	return &Endpoint{name: name, ln: ln}, nil
}

// Name returns the channel name.
func (e *Endpoint) Name() string { return e.name }

// Accept waits for the target to open the channel.
func (e *Endpoint) Accept() error {
	if ul, ok := e.ln.(*net.UnixListener); ok {
		ul.SetDeadline(time.Now().Add(AcceptTimeout))
	}
	conn, err := e.ln.Accept()
	if err != nil {
		return fmt.Errorf("client: accept on %s: %w", e.name, err)
	}
	e.mu.Lock()
	e.conn = conn
	e.mu.Unlock()
	return nil
}

// SendRequest writes the v2-encoded request. Only meaningful after Accept
// on a v2 exchange; a v1 exchange carries its parameters in the trigger.
func (e *Endpoint) SendRequest(command string, args ...string) error {
	conn := e.connection()
	if conn == nil {
		return fmt.Errorf("client: no connection on %s", e.name)
	}
	return wire.WriteRequest(conn, command, args...)
}

// ReadReply reads the result code and payload the target wrote back.
func (e *Endpoint) ReadReply() (int32, []byte, error) {
	conn := e.connection()
	if conn == nil {
		return 0, nil, fmt.Errorf("client: no connection on %s", e.name)
	}
	return wire.ReadReply(conn)
}

// Close releases the connection and the socket. Safe to call multiple
// times.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.conn != nil {
		e.conn.Close()
	}
	return e.ln.Close()
}

func (e *Endpoint) connection() net.Conn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn
}
