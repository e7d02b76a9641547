package types

import (
	"crypto"
	"errors"
)

// GenesisTime is the ledger time before the first block, ie the value a
// fresh ledger clock starts at. The first block prologue sets the real time.
const GenesisTime uint64 = 0

var (
	errBlockIsNil             = errors.New("block is nil")
	errBlockHeaderIsNil       = errors.New("block header is nil")
	errBlockProposerIDMissing = errors.New("block proposer node identifier is missing")
	errSystemIDIsNil          = errors.New("system identifier is unassigned")
	errTimestampMissing       = errors.New("block timestamp is unassigned")
)

type (
	Block struct {
		_            struct{} `cbor:",toarray"`
		Header       *Header
		Transactions []*TransactionRecord
	}

	// Header is the block prologue: metadata agreed by block production,
	// delivered once per block before any transaction is processed. Timestamp
	// is the new ledger time, microseconds since epoch.
	Header struct {
		_                 struct{} `cbor:",toarray"`
		SystemID          SystemID
		Round             uint64
		ProposerID        string
		Timestamp         uint64
		PreviousBlockHash []byte
	}
)

func (b *Block) IsValid() error {
	if b == nil {
		return errBlockIsNil
	}
	if err := b.Header.IsValid(); err != nil {
		return err
	}
	return nil
}

// Hash of a block is computed over the CBOR encoding of the header and all
// transaction record hashes.
func (b *Block) Hash(algorithm crypto.Hash) ([]byte, error) {
	if err := b.IsValid(); err != nil {
		return nil, err
	}
	headerBytes, err := Cbor.Marshal(b.Header)
	if err != nil {
		return nil, err
	}
	hasher := algorithm.New()
	hasher.Write(headerBytes)
	for _, tx := range b.Transactions {
		hasher.Write(tx.Hash(algorithm))
	}
	return hasher.Sum(nil), nil
}

func (h *Header) IsValid() error {
	if h == nil {
		return errBlockHeaderIsNil
	}
	if h.SystemID == 0 {
		return errSystemIDIsNil
	}
	if h.ProposerID == "" {
		return errBlockProposerIDMissing
	}
	if h.Timestamp == 0 {
		return errTimestampMissing
	}
	return nil
}
