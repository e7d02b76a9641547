package types

import (
	"crypto"
	"errors"
	"fmt"
)

type (
	TransactionOrder struct {
		_          struct{} `cbor:",toarray"`
		Payload    *Payload
		OwnerProof []byte
	}

	Payload struct {
		_              struct{} `cbor:",toarray"`
		SystemID       SystemID
		Type           string
		UnitID         UnitID
		Attributes     RawCBOR
		ClientMetadata *ClientMetadata
	}

	ClientMetadata struct {
		_ struct{} `cbor:",toarray"`
		// ExpirationTime is the deadline declared by the submitter, seconds
		// since epoch. The transaction must not be admitted for execution
		// once ledger time has reached it.
		ExpirationTime    uint64
		MaxTransactionFee uint64
	}
)

func (t *TransactionOrder) UnmarshalAttributes(v any) error {
	if t == nil {
		return errors.New("transaction order is nil")
	}
	return t.Payload.UnmarshalAttributes(v)
}

// The accessors are nil-safe: a CBOR null in a transaction list decodes to a
// nil order and must not take the node down.

func (t *TransactionOrder) UnitID() UnitID {
	if t == nil || t.Payload == nil {
		return nil
	}
	return t.Payload.UnitID
}

func (t *TransactionOrder) SystemID() SystemID {
	if t == nil || t.Payload == nil {
		return 0
	}
	return t.Payload.SystemID
}

// ExpirationTime returns the submitter declared expiration time of the
// transaction (seconds since epoch), zero when metadata is missing. Zero is
// always in the past so such an order can never be admitted.
func (t *TransactionOrder) ExpirationTime() uint64 {
	if t == nil || t.Payload == nil || t.Payload.ClientMetadata == nil {
		return 0
	}
	return t.Payload.ClientMetadata.ExpirationTime
}

func (t *TransactionOrder) PayloadType() string {
	if t == nil || t.Payload == nil {
		return ""
	}
	return t.Payload.Type
}

func (t *TransactionOrder) GetClientMaxTxFee() uint64 {
	if t == nil || t.Payload == nil || t.Payload.ClientMetadata == nil {
		return 0
	}
	return t.Payload.ClientMetadata.MaxTransactionFee
}

func (t *TransactionOrder) Hash(algorithm crypto.Hash) []byte {
	hasher := algorithm.New()
	bytes, err := Cbor.Marshal(t)
	if err != nil {
		panic(fmt.Errorf("marshaling transaction order: %w", err))
	}
	hasher.Write(bytes)
	return hasher.Sum(nil)
}

func (p *Payload) UnmarshalAttributes(v any) error {
	if p == nil {
		return errors.New("payload is nil")
	}
	return Cbor.Unmarshal(p.Attributes, v)
}

func (p *Payload) SetAttributes(attr any) error {
	bytes, err := Cbor.Marshal(attr)
	if err != nil {
		return fmt.Errorf("marshaling attributes: %w", err)
	}
	p.Attributes = bytes
	return nil
}
