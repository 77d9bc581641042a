package protocol

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// maxMessageSize bounds a single framed payload, guarding against a
// malformed or hostile length prefix forcing an unbounded allocation.
const maxMessageSize = 64 * 1024 * 1024

// WriteMessage frames payload as a 4-byte little-endian length prefix
// followed by the payload bytes, replacing the fixed 512-byte NUL-trimmed
// chunking that the original protocol used: that scheme loses the
// boundary between a message and whatever follows it whenever a payload's
// length is an exact multiple of the chunk size, since there is no
// trailing short chunk left to mark the end.
func WriteMessage(w io.Writer, payload []byte) error {
	var lengthPrefix [4]byte
	binary.LittleEndian.PutUint32(lengthPrefix[:], uint32(len(payload)))

	if _, err := w.Write(lengthPrefix[:]); err != nil {
		return fmt.Errorf("protocol: failed to write length prefix: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("protocol: failed to write message body: %w", err)
	}
	return nil
}

// ReadMessage reads one length-prefixed payload written by WriteMessage.
func ReadMessage(r io.Reader) ([]byte, error) {
	var lengthPrefix [4]byte
	if _, err := io.ReadFull(r, lengthPrefix[:]); err != nil {
		return nil, err
	}

	length := binary.LittleEndian.Uint32(lengthPrefix[:])
	if length > maxMessageSize {
		return nil, fmt.Errorf("protocol: message length %d exceeds maximum %d", length, maxMessageSize)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("protocol: failed to read message body: %w", err)
	}
	return payload, nil
}

// WriteRequest encodes and frames req.
func WriteRequest(w io.Writer, req Request) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return WriteMessage(w, data)
}

// ReadRequest reads and decodes a framed Request.
func ReadRequest(r io.Reader) (Request, error) {
	data, err := ReadMessage(r)
	if err != nil {
		return Request{}, err
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// WriteResponse encodes and frames resp.
func WriteResponse(w io.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return WriteMessage(w, data)
}

// ReadResponse reads and decodes a framed Response.
func ReadResponse(r io.Reader) (Response, error) {
	data, err := ReadMessage(r)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}
