// Package protocol defines the server/client wire types and their JSON
// encoding. The shapes mirror the externally-tagged enums of the command
// set this protocol was distilled from: a request names exactly one of
// Get/Set/Rm, and a response is either {"Ok": value-or-null} or
// {"Err": message}.
package protocol

import "encoding/json"

// Request is a single command sent from client to server. Exactly one of
// Get, Set, or Rm is non-nil.
type Request struct {
	Get *GetRequest `json:"Get,omitempty"`
	Set *SetRequest `json:"Set,omitempty"`
	Rm  *RmRequest  `json:"Rm,omitempty"`
}

type GetRequest struct {
	Key string `json:"key"`
}

type SetRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type RmRequest struct {
	Key string `json:"key"`
}

// NewGetRequest builds a Get request for key.
func NewGetRequest(key string) Request {
	return Request{Get: &GetRequest{Key: key}}
}

// NewSetRequest builds a Set request storing value under key.
func NewSetRequest(key, value string) Request {
	return Request{Set: &SetRequest{Key: key, Value: value}}
}

// NewRmRequest builds a Rm request removing key.
func NewRmRequest(key string) Request {
	return Request{Rm: &RmRequest{Key: key}}
}

// Response is the server's reply to a Request. It encodes as {"Ok": ...}
// on success (value is nil for set/remove, or for a get that found
// nothing) or {"Err": message} on failure; the two are mutually exclusive
// on the wire, which is why Response carries its own MarshalJSON rather
// than leaning on struct tags.
type Response struct {
	ok    *string
	isErr bool
	err   string
}

// OkResponse builds a successful response carrying no value, used for
// set/remove and for a get that found no value for its key.
func OkResponse() Response {
	return Response{}
}

// OkValueResponse builds a successful get response carrying value.
func OkValueResponse(value string) Response {
	return Response{ok: &value}
}

// ErrResponse builds a failure response carrying message.
func ErrResponse(message string) Response {
	return Response{isErr: true, err: message}
}

// IsErr reports whether this response represents a failure.
func (r Response) IsErr() bool {
	return r.isErr
}

// Err returns the failure message; only meaningful when IsErr is true.
func (r Response) Err() string {
	return r.err
}

// Value returns the carried value and whether one was present; only
// meaningful when IsErr is false.
func (r Response) Value() (string, bool) {
	if r.ok == nil {
		return "", false
	}
	return *r.ok, true
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.isErr {
		return json.Marshal(struct {
			Err string `json:"Err"`
		}{r.err})
	}
	return json.Marshal(struct {
		Ok *string `json:"Ok"`
	}{r.ok})
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var wire struct {
		Ok  *string `json:"Ok"`
		Err *string `json:"Err"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Err != nil {
		*r = ErrResponse(*wire.Err)
		return nil
	}
	*r = Response{ok: wire.Ok}
	return nil
}
