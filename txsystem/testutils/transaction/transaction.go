package transaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	test "github.com/tempochain/tempo/internal/testutils"
	"github.com/tempochain/tempo/types"
)

const defaultSystemID types.SystemID = 1

func defaultTx() *types.TransactionOrder {
	payload := &types.Payload{
		SystemID:       defaultSystemID,
		Type:           "nop",
		UnitID:         test.RandomBytes(32),
		ClientMetadata: defaultClientMetadata(),
	}
	return &types.TransactionOrder{Payload: payload}
}

func defaultClientMetadata() *types.ClientMetadata {
	return &types.ClientMetadata{ExpirationTime: 10, MaxTransactionFee: 2}
}

type Option func(*types.TransactionOrder) error

func WithSystemID(id types.SystemID) Option {
	return func(tx *types.TransactionOrder) error {
		tx.Payload.SystemID = id
		return nil
	}
}

func WithUnitID(id []byte) Option {
	return func(tx *types.TransactionOrder) error {
		tx.Payload.UnitID = id
		return nil
	}
}

func WithPayloadType(t string) Option {
	return func(tx *types.TransactionOrder) error {
		tx.Payload.Type = t
		return nil
	}
}

func WithClientMetadata(m *types.ClientMetadata) Option {
	return func(tx *types.TransactionOrder) error {
		tx.Payload.ClientMetadata = m
		return nil
	}
}

func WithExpirationTime(seconds uint64) Option {
	return func(tx *types.TransactionOrder) error {
		if tx.Payload.ClientMetadata == nil {
			tx.Payload.ClientMetadata = defaultClientMetadata()
		}
		tx.Payload.ClientMetadata.ExpirationTime = seconds
		return nil
	}
}

func WithAttributes(attr any) Option {
	return func(tx *types.TransactionOrder) error {
		return tx.Payload.SetAttributes(attr)
	}
}

func NewTransactionOrder(t *testing.T, options ...Option) *types.TransactionOrder {
	tx := defaultTx()
	for _, o := range options {
		require.NoError(t, o(tx))
	}
	return tx
}
