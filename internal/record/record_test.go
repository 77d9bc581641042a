package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// readerAt adapts a byte slice to io.ReaderAt, as *logfile.LogFile does.
type readerAt struct {
	data []byte
}

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.ErrUnexpectedEOF
	}
	return n, nil
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	data := Encode("hello", []byte("world"))
	rec, err := ReadAt(readerAt{data}, 0)
	require.NoError(t, err)
	require.Equal(t, "hello", rec.Key)
	require.Equal(t, []byte("world"), rec.Value)
	require.False(t, rec.Tombstone)
	require.Equal(t, int64(HeaderSize+len("hello")+len("world")), rec.Size)
}

func TestEncodeTombstone(t *testing.T) {
	data := EncodeTombstone("gone")
	rec, err := ReadAt(readerAt{data}, 0)
	require.NoError(t, err)
	require.Equal(t, "gone", rec.Key)
	require.Empty(t, rec.Value)
	require.True(t, rec.Tombstone)
	require.Equal(t, int64(HeaderSize+len("gone")), rec.Size)
}

func TestReadAtMultipleRecordsAtOffset(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Encode("a", []byte("1")))
	second := int64(buf.Len())
	buf.Write(Encode("bb", []byte("22")))

	r := readerAt{buf.Bytes()}

	first, err := ReadAt(r, 0)
	require.NoError(t, err)
	require.Equal(t, "a", first.Key)

	rec, err := ReadAt(r, second)
	require.NoError(t, err)
	require.Equal(t, "bb", rec.Key)
	require.Equal(t, []byte("22"), rec.Value)
}

func TestReadAtCleanEOF(t *testing.T) {
	data := Encode("k", []byte("v"))
	_, err := ReadAt(readerAt{data}, int64(len(data)))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadAtShortPayloadIsCorruption(t *testing.T) {
	data := Encode("key", []byte("value"))
	truncated := data[:len(data)-2]

	_, err := ReadAt(readerAt{truncated}, 0)
	require.Error(t, err)
	var ce interface{ Offset() int64 }
	require.ErrorAs(t, err, &ce)
}

func TestReadAtInvalidUTF8Key(t *testing.T) {
	data := Encode("k", []byte("v"))
	// Corrupt the key byte (offset HeaderSize) with an invalid UTF-8 lead byte.
	data[HeaderSize] = 0xff

	_, err := ReadAt(readerAt{data}, 0)
	require.Error(t, err)
}

func TestReadAtInvalidUTF8Value(t *testing.T) {
	data := Encode("k", []byte("v"))
	data[HeaderSize+1] = 0xff

	_, err := ReadAt(readerAt{data}, 0)
	require.Error(t, err)
}
