package types

import (
	"crypto"
	"fmt"
)

// TxStatus is the terminal status of a processed transaction. The string
// representations are a fixed contract, test harnesses and explorers match
// on them literally.
type TxStatus uint64

const (
	// TxStatusExpired - the transaction was rejected by the admission check:
	// its expiration time is not later than current ledger time. No further
	// execution took place.
	TxStatusExpired TxStatus = 0
	// TxStatusExecuted - the transaction was admitted and executed.
	TxStatusExecuted TxStatus = 1
)

type (
	ServerMetadata struct {
		_                struct{} `cbor:",toarray"`
		ActualFee        uint64
		TargetUnits      []UnitID
		SuccessIndicator TxStatus
	}

	TransactionRecord struct {
		_                struct{} `cbor:",toarray"`
		TransactionOrder *TransactionOrder
		ServerMetadata   *ServerMetadata
	}
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusExecuted:
		return "EXECUTED"
	case TxStatusExpired:
		return "TRANSACTION_EXPIRED"
	}
	return fmt.Sprintf("TxStatus(%d)", uint64(s))
}

func (t *TransactionRecord) Hash(algorithm crypto.Hash) []byte {
	hasher := algorithm.New()
	bytes, err := Cbor.Marshal(t)
	if err != nil {
		panic(fmt.Errorf("marshaling transaction record: %w", err))
	}
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

func (t *TransactionRecord) Status() TxStatus {
	if t == nil || t.ServerMetadata == nil {
		return TxStatusExpired
	}
	return t.ServerMetadata.SuccessIndicator
}
