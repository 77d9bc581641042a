package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestMarshalShape(t *testing.T) {
	data, err := json.Marshal(NewGetRequest("k"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Get":{"key":"k"}}`, string(data))

	data, err = json.Marshal(NewSetRequest("k", "v"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Set":{"key":"k","value":"v"}}`, string(data))

	data, err = json.Marshal(NewRmRequest("k"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Rm":{"key":"k"}}`, string(data))
}

func TestRequestUnmarshalPicksExactlyOneField(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"Set":{"key":"k","value":"v"}}`), &req))
	require.Nil(t, req.Get)
	require.Nil(t, req.Rm)
	require.NotNil(t, req.Set)
	require.Equal(t, "k", req.Set.Key)
	require.Equal(t, "v", req.Set.Value)
}

func TestOkResponseMarshalsToNullValue(t *testing.T) {
	data, err := json.Marshal(OkResponse())
	require.NoError(t, err)
	require.JSONEq(t, `{"Ok":null}`, string(data))
}

func TestOkValueResponseMarshalsToValue(t *testing.T) {
	data, err := json.Marshal(OkValueResponse("hello"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Ok":"hello"}`, string(data))
}

func TestErrResponseMarshalsToMessage(t *testing.T) {
	data, err := json.Marshal(ErrResponse("boom"))
	require.NoError(t, err)
	require.JSONEq(t, `{"Err":"boom"}`, string(data))
}

func TestResponseRoundTrip(t *testing.T) {
	for _, resp := range []Response{OkResponse(), OkValueResponse("v"), ErrResponse("e")} {
		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded Response
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, resp.IsErr(), decoded.IsErr())
		if resp.IsErr() {
			require.Equal(t, resp.Err(), decoded.Err())
			continue
		}
		wantValue, wantOk := resp.Value()
		gotValue, gotOk := decoded.Value()
		require.Equal(t, wantOk, gotOk)
		require.Equal(t, wantValue, gotValue)
	}
}
