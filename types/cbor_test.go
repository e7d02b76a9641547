package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type CustomData struct {
	Name  string
	Value int
}

var (
	validInput  = CustomData{Name: "foo", Value: 30}
	validCbor   = []byte{0xa2, 0x64, 0x4e, 0x61, 0x6d, 0x65, 0x63, 0x66, 0x6f, 0x6f, 0x65, 0x56, 0x61, 0x6c, 0x75, 0x65, 0x18, 0x1e}
	invalidCbor = []byte{0xa2, 0x64, 0x4e, 0x61, 0x6d, 0x65, 0x63, 0x66, 0x6f, 0x6f, 0x65, 0x56, 0x61, 0x6c, 0x75, 0x65, 0x18} // missing final value
)

func TestCborHandler_Marshal(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected []byte
		wantErr  string
	}{
		{
			name:     "Marshal valid input",
			input:    validInput,
			expected: validCbor,
		},
		{
			name:     "Marshal invalid data input",
			input:    complex(20, 10),
			expected: nil,
			wantErr:  "cbor: unsupported type: complex128",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cbor.Marshal(tc.input)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			}
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestCborHandler_Unmarshal(t *testing.T) {
	t.Run("Unmarshal valid input", func(t *testing.T) {
		var got CustomData
		err := Cbor.Unmarshal(validCbor, &got)
		require.NoError(t, err)
		require.Equal(t, validInput, got)
	})

	t.Run("Unmarshal nil and empty input", func(t *testing.T) {
		var got CustomData
		err := Cbor.Unmarshal(nil, &got)
		require.ErrorContains(t, err, "EOF")
		require.Equal(t, CustomData{}, got)

		err = Cbor.Unmarshal([]byte{}, &got)
		require.ErrorContains(t, err, "EOF")
		require.Equal(t, CustomData{}, got)
	})

	t.Run("Unmarshal invalid input data", func(t *testing.T) {
		var got CustomData
		err := Cbor.Unmarshal(invalidCbor, &got)
		require.ErrorContains(t, err, "unexpected EOF")
		require.Equal(t, CustomData{}, got)
	})
}

func TestCborHandler_EncodeDecode(t *testing.T) {
	buf := bytes.Buffer{}
	require.NoError(t, Cbor.Encode(&buf, validInput))
	require.Equal(t, validCbor, buf.Bytes())

	var got CustomData
	require.NoError(t, Cbor.Decode(&buf, &got))
	require.Equal(t, validInput, got)
}

func TestRawCBOR(t *testing.T) {
	t.Run("empty value marshals to CBOR nil", func(t *testing.T) {
		data, err := Cbor.Marshal(RawCBOR(nil))
		require.NoError(t, err)
		require.Equal(t, cborNil, data)
	})

	t.Run("round trip", func(t *testing.T) {
		raw := RawCBOR(validCbor)
		data, err := Cbor.Marshal(raw)
		require.NoError(t, err)

		var got RawCBOR
		require.NoError(t, Cbor.Unmarshal(data, &got))
		require.Equal(t, raw, got)
	})
}
