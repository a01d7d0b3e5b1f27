package client

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AttachKit/internal/wire"
)

func TestListenDuplicateName(t *testing.T) {
	name := filepath.Join(t.TempDir(), "dup.sock")

	e, err := Listen(name)
	require.NoError(t, err)
	defer e.Close()

	_, err = Listen(name)
	assert.Error(t, err)
}

func TestSendBeforeAccept(t *testing.T) {
	name := filepath.Join(t.TempDir(), "early.sock")

	e, err := Listen(name)
	require.NoError(t, err)
	defer e.Close()

	assert.Error(t, e.SendRequest("ping"))
	_, _, err = e.ReadReply()
	assert.Error(t, err)
}

func TestExchangeAgainstFakeTarget(t *testing.T) {
	name := filepath.Join(t.TempDir(), "fake.sock")

	e, err := Listen(name)
	require.NoError(t, err)
	defer e.Close()

	// Fake target: dial, decode the request, echo the command back.
	targetDone := make(chan error, 1)
	go func() {
		conn, err := net.Dial("unix", name)
		if err != nil {
			targetDone <- err
			return
		}
		defer conn.Close()
		req, err := wire.ReadRequest(conn)
		if err != nil {
			targetDone <- err
			return
		}
		targetDone <- wire.WriteReply(conn, 0, []byte(req.Command+":"+req.Args[0]))
	}()

	require.NoError(t, e.Accept())
	require.NoError(t, e.SendRequest("echo", "x"))

	code, payload, err := e.ReadReply()
	require.NoError(t, err)
	require.NoError(t, <-targetDone)
	assert.Equal(t, int32(0), code)
	assert.Equal(t, "echo:x", string(payload))
}

func TestCloseIdempotent(t *testing.T) {
	name := filepath.Join(t.TempDir(), "close.sock")

	e, err := Listen(name)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	assert.NoError(t, e.Close())
}
