package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, []byte("hello world")))

	got, err := ReadMessage(&buf)
	require.NoError(t, err)
	require.Equal(t, "hello world", string(got))
}

func TestWriteReadMessageEmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, nil))

	got, err := ReadMessage(&buf)
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestFramingSurvivesExactChunkMultiple guards the specific defect the
// length-prefix framing replaces: a payload whose length happens to be an
// exact multiple of a fixed chunk size must still be delimited correctly.
func TestFramingSurvivesExactChunkMultiple(t *testing.T) {
	payload := []byte(strings.Repeat("x", 512))

	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, payload))
	buf.WriteString("trailing-message-goes-here")

	got, err := ReadMessage(&buf)
	require.NoError(t, err)
	require.Equal(t, payload, got)
	require.Equal(t, "trailing-message-goes-here", buf.String())
}

func TestWriteReadRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := NewSetRequest("k", "v")
	require.NoError(t, WriteRequest(&buf, req))

	got, err := ReadRequest(&buf)
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestWriteReadResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	resp := OkValueResponse("v")
	require.NoError(t, WriteResponse(&buf, resp))

	got, err := ReadResponse(&buf)
	require.NoError(t, err)
	value, ok := got.Value()
	require.True(t, ok)
	require.Equal(t, "v", value)
}

func TestReadMessageRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xff, 0xff, 0xff, 0xff})

	_, err := ReadMessage(&buf)
	require.Error(t, err)
}
