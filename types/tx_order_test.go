package types

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/require"
)

type testAttributes struct {
	_     struct{} `cbor:",toarray"`
	Nonce []byte
}

func TestTransactionOrder_Accessors(t *testing.T) {
	t.Run("nil order", func(t *testing.T) {
		var txo *TransactionOrder
		require.EqualValues(t, 0, txo.SystemID())
		require.Nil(t, txo.UnitID())
		require.EqualValues(t, 0, txo.ExpirationTime())
		require.Equal(t, "", txo.PayloadType())
		require.EqualValues(t, 0, txo.GetClientMaxTxFee())
		require.ErrorContains(t, txo.UnmarshalAttributes(&testAttributes{}), "transaction order is nil")
	})

	t.Run("nil payload", func(t *testing.T) {
		txo := &TransactionOrder{}
		require.EqualValues(t, 0, txo.SystemID())
		require.Nil(t, txo.UnitID())
		require.EqualValues(t, 0, txo.ExpirationTime())
		require.Equal(t, "", txo.PayloadType())
		require.EqualValues(t, 0, txo.GetClientMaxTxFee())
	})

	t.Run("nil client metadata", func(t *testing.T) {
		txo := &TransactionOrder{Payload: &Payload{SystemID: 7, Type: "nop"}}
		require.EqualValues(t, 7, txo.SystemID())
		require.EqualValues(t, 0, txo.ExpirationTime())
	})

	t.Run("assigned values", func(t *testing.T) {
		txo := &TransactionOrder{Payload: &Payload{
			SystemID: 7,
			Type:     "nop",
			UnitID:   UnitID{1, 2, 3},
			ClientMetadata: &ClientMetadata{
				ExpirationTime:    86_500,
				MaxTransactionFee: 10,
			},
		}}
		require.EqualValues(t, 86_500, txo.ExpirationTime())
		require.EqualValues(t, 10, txo.GetClientMaxTxFee())
		require.Equal(t, "nop", txo.PayloadType())
		require.True(t, txo.UnitID().Eq(UnitID{1, 2, 3}))
	})
}

func TestTransactionOrder_Attributes(t *testing.T) {
	payload := &Payload{SystemID: 1, Type: "nop"}
	require.NoError(t, payload.SetAttributes(testAttributes{Nonce: []byte{0xAB}}))

	txo := &TransactionOrder{Payload: payload}
	attr := &testAttributes{}
	require.NoError(t, txo.UnmarshalAttributes(attr))
	require.Equal(t, []byte{0xAB}, attr.Nonce)
}

func TestTransactionOrder_Serialization(t *testing.T) {
	payload := &Payload{
		SystemID:       1,
		Type:           "nop",
		UnitID:         UnitID{0x01},
		ClientMetadata: &ClientMetadata{ExpirationTime: 101},
	}
	require.NoError(t, payload.SetAttributes(testAttributes{Nonce: []byte{0x01}}))
	txo := &TransactionOrder{Payload: payload, OwnerProof: []byte{0x53}}
	data, err := Cbor.Marshal(txo)
	require.NoError(t, err)

	got := &TransactionOrder{}
	require.NoError(t, Cbor.Unmarshal(data, got))
	require.Equal(t, txo, got)
	require.Equal(t, txo.Hash(crypto.SHA256), got.Hash(crypto.SHA256))
}
