package txsystem

import (
	"errors"

	"github.com/tempochain/tempo/types"
)

var _ Module = (*NopModule)(nil)

// TxNop is the payload type of the built-in no-op transaction. It carries no
// state change, the interesting part of its lifecycle is the admission check.
const TxNop = "nop"

type (
	NopModule struct{}

	NopAttributes struct {
		_     struct{} `cbor:",toarray"`
		Nonce []byte
	}
)

func NewNopModule() Module {
	return &NopModule{}
}

func (n *NopModule) TxExecutors() map[string]ExecuteFunc {
	return map[string]ExecuteFunc{
		TxNop: n.handleNopTx().ExecuteFunc(),
	}
}

func (n *NopModule) handleNopTx() GenericExecuteFunc[NopAttributes] {
	return func(tx *types.TransactionOrder, attr *NopAttributes, exeCtx *TxExecutionContext) (*types.ServerMetadata, error) {
		if tx.UnitID() == nil {
			return nil, errors.New("invalid nop tx: unit ID is missing")
		}
		return &types.ServerMetadata{
			ActualFee:        0,
			TargetUnits:      []types.UnitID{tx.UnitID()},
			SuccessIndicator: types.TxStatusExecuted,
		}, nil
	}
}
