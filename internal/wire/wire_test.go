package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		args     []string
		wantArgs [MaxArgs]string
	}{
		{
			name:     "command with one arg",
			command:  "bar",
			args:     []string{"x"},
			wantArgs: [MaxArgs]string{"x", "", ""},
		},
		{
			name:     "command with all args",
			command:  "foo",
			args:     []string{"a", "b", "c"},
			wantArgs: [MaxArgs]string{"a", "b", "c"},
		},
		{
			name:     "command with no args",
			command:  "ping",
			args:     nil,
			wantArgs: [MaxArgs]string{"", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteRequest(&buf, tt.command, tt.args...))

			req, err := ReadRequest(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.command, req.Command)
			assert.Equal(t, tt.wantArgs, req.Args)
		})
	}
}

func TestReadRequestBadVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("1\x00cmd\x00\x00\x00\x00")

	_, err := ReadRequest(&buf)
	assert.ErrorIs(t, err, ErrBadVersion)
}

func TestReadRequestOverlongField(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("2\x00")
	buf.WriteString(strings.Repeat("x", MaxCommandLen+1))
	buf.WriteByte(0)

	_, err := ReadRequest(&buf)
	assert.ErrorIs(t, err, ErrFieldTooLong)
}

func TestReadRequestTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("2\x00cmd\x00arg0") // missing terminators

	_, err := ReadRequest(&buf)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestWriteRequestValidation(t *testing.T) {
	var buf bytes.Buffer

	err := WriteRequest(&buf, strings.Repeat("x", MaxCommandLen+1))
	assert.ErrorIs(t, err, ErrFieldTooLong)

	err = WriteRequest(&buf, "cmd", strings.Repeat("y", MaxArgLen+1))
	assert.ErrorIs(t, err, ErrFieldTooLong)

	err = WriteRequest(&buf, "cmd", "a", "b", "c", "d")
	assert.Error(t, err)
}

func TestReplyRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		code    int32
		payload []byte
	}{
		{name: "success with payload", code: 0, payload: []byte("hello")},
		{name: "failure empty payload", code: 7, payload: nil},
		{name: "negative code", code: -1, payload: []byte("err")},
		{name: "binary payload", code: 0, payload: []byte{0, 1, 2, '\n', 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteReply(&buf, tt.code, tt.payload))

			code, payload, err := ReadReply(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.code, code)
			if len(tt.payload) == 0 {
				assert.Empty(t, payload)
			} else {
				assert.Equal(t, tt.payload, payload)
			}
		})
	}
}

func TestReadReplyMalformedCode(t *testing.T) {
	_, _, err := ReadReply(strings.NewReader("boom\npayload"))
	assert.Error(t, err)
}

func TestFieldAtExactMaximum(t *testing.T) {
	var buf bytes.Buffer
	command := strings.Repeat("c", MaxCommandLen)
	arg := strings.Repeat("a", MaxArgLen)
	require.NoError(t, WriteRequest(&buf, command, arg))

	req, err := ReadRequest(&buf)
	require.NoError(t, err)
	assert.Equal(t, command, req.Command)
	assert.Equal(t, arg, req.Args[0])
}
