package types

import (
	"errors"
	"io"

	"github.com/fxamacker/cbor/v2"
)

type (
	cborHandler struct{}

	// RawCBOR is a raw encoded CBOR value.
	RawCBOR []byte
)

// Cbor is the codec used for all canonical serialization in this module.
var Cbor = cborHandler{}

// cborNil is the CBOR representation of "null".
var cborNil = []byte{0xf6}

func (c cborHandler) encMode() (cbor.EncMode, error) {
	return cbor.CoreDetEncOptions().EncMode()
}

func (c cborHandler) Marshal(v any) ([]byte, error) {
	enc, err := c.encMode()
	if err != nil {
		return nil, err
	}
	return enc.Marshal(v)
}

func (c cborHandler) Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func (c cborHandler) Encode(w io.Writer, v any) error {
	enc, err := c.encMode()
	if err != nil {
		return err
	}
	return enc.NewEncoder(w).Encode(v)
}

func (c cborHandler) Decode(r io.Reader, v any) error {
	return cbor.NewDecoder(r).Decode(v)
}

// MarshalCBOR returns r or CBOR nil if r is empty.
func (r RawCBOR) MarshalCBOR() ([]byte, error) {
	if len(r) == 0 {
		return cborNil, nil
	}
	return r, nil
}

// UnmarshalCBOR creates a copy of the data.
func (r *RawCBOR) UnmarshalCBOR(data []byte) error {
	if r == nil {
		return errors.New("UnmarshalCBOR on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}
