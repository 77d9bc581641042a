// Package record implements the on-disk codec for a single log entry:
//
//	4 bytes  key length (little-endian uint32)
//	4 bytes  value length (little-endian uint32)
//	N bytes  key
//	M bytes  value
//
// A value length of zero marks the entry as a tombstone: the key it names
// was removed, not set to an empty value.
package record

import (
	"encoding/binary"
	"io"
	"unicode/utf8"

	kvserrors "github.com/ignitedb/kvs/pkg/errors"
)

// HeaderSize is the fixed width, in bytes, of the key-length/value-length pair.
const HeaderSize = 8

// Record is a single decoded log entry together with the total number of
// bytes it occupies on disk (header + key + value), which callers use as
// the index entry's length.
type Record struct {
	Key       string
	Value     []byte
	Tombstone bool
	Size      int64
}

// Encode serializes a put of key/value into the wire layout described above.
func Encode(key string, value []byte) []byte {
	return encode(key, value, false)
}

// EncodeTombstone serializes the removal marker for key: a record with the
// same key and a value length of zero.
func EncodeTombstone(key string) []byte {
	return encode(key, nil, true)
}

func encode(key string, value []byte, tombstone bool) []byte {
	keyBytes := []byte(key)
	valueLen := len(value)
	if tombstone {
		valueLen = 0
	}

	buf := make([]byte, HeaderSize+len(keyBytes)+valueLen)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(keyBytes)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(valueLen))
	copy(buf[HeaderSize:], keyBytes)
	if !tombstone {
		copy(buf[HeaderSize+len(keyBytes):], value)
	}
	return buf
}

// ReadAt decodes a single record starting at offset from r.
//
// io.EOF is returned verbatim when offset sits exactly at the end of the
// readable stream, signaling callers should stop scanning cleanly. Any
// other short read, or key/value bytes that fail UTF-8 validation, is
// reported as a *kvserrors.CorruptionError so corrupted tails can be
// distinguished from a clean end of file.
func ReadAt(r io.ReaderAt, offset int64) (Record, error) {
	header := make([]byte, HeaderSize)
	if n, err := r.ReadAt(header, offset); n < HeaderSize {
		if n == 0 && err == io.EOF {
			return Record{}, io.EOF
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Record{}, kvserrors.NewCorruptionError(offset, "short read inside log record header")
		}
		return Record{}, err
	}

	keyLen := binary.LittleEndian.Uint32(header[0:4])
	valueLen := binary.LittleEndian.Uint32(header[4:8])

	payload := make([]byte, int64(keyLen)+int64(valueLen))
	if len(payload) > 0 {
		if _, err := r.ReadAt(payload, offset+HeaderSize); err != nil {
			return Record{}, kvserrors.NewCorruptionError(
				offset, "short read inside log record payload",
			)
		}
	}

	key := payload[:keyLen]
	value := payload[keyLen:]
	if !utf8.Valid(key) {
		return Record{}, kvserrors.NewCorruptionError(offset, "record key is not valid UTF-8")
	}

	size := int64(HeaderSize) + int64(keyLen) + int64(valueLen)
	if valueLen == 0 {
		return Record{Key: string(key), Tombstone: true, Size: size}, nil
	}

	if !utf8.Valid(value) {
		return Record{}, kvserrors.NewCorruptionError(offset, "record value is not valid UTF-8")
	}

	return Record{Key: string(key), Value: value, Size: size}, nil
}
