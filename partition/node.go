package partition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tempochain/tempo/logger"
	"github.com/tempochain/tempo/txsystem"
	"github.com/tempochain/tempo/types"
)

type (
	Observability interface {
		Logger() *slog.Logger
	}

	/*
		Node drives the transaction system of a single partition: it feeds
		block prologues delivered by the consensus collaborator to the
		transaction system and reports a terminal status for every processed
		transaction.
	*/
	Node struct {
		name     string
		txSystem *txsystem.TxSystem
		log      *slog.Logger
	}
)

func NewNode(name string, txSystem *txsystem.TxSystem, observe Observability) (*Node, error) {
	if name == "" {
		return nil, errors.New("node name must be assigned")
	}
	if txSystem == nil {
		return nil, errors.New("transaction system is nil")
	}
	return &Node{
		name:     name,
		txSystem: txSystem,
		log:      observe.Logger().With(logger.NodeID(name)),
	}, nil
}

/*
ProcessBlock processes a block proposal: the prologue first advances ledger
time to the block timestamp, then the transactions are executed one by one
against the updated clock. The returned block carries a record with the
terminal status of every transaction.

The whole block is rejected when its prologue would move ledger time
backwards; a single expired transaction only loses its own execution slot.
*/
func (n *Node) ProcessBlock(header *types.Header, txs []*types.TransactionOrder) (*types.Block, error) {
	if err := n.txSystem.BeginBlock(header); err != nil {
		return nil, fmt.Errorf("block rejected: %w", err)
	}

	records := make([]*types.TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		rec, err := n.executeTx(tx)
		if err != nil {
			// not part of the status contract, the order is dropped
			n.log.Warn(fmt.Sprintf("failed to execute %s transaction", tx.PayloadType()),
				logger.Error(err), logger.UnitID(tx.UnitID()))
			continue
		}
		records = append(records, rec)
	}
	return &types.Block{Header: header, Transactions: records}, nil
}

/*
SubmitTransaction admits and executes a single submitted transaction,
returning its terminal status. An expired transaction is reported with
types.TxStatusExpired and a nil error - rejection of one transaction is not
an error of the node. Errors are returned only for transactions that cannot
be processed at all (unknown type, malformed payload etc).
*/
func (n *Node) SubmitTransaction(ctx context.Context, tx *types.TransactionOrder) (types.TxStatus, error) {
	if err := ctx.Err(); err != nil {
		return types.TxStatusExpired, err
	}
	rec, err := n.executeTx(tx)
	if err != nil {
		return types.TxStatusExpired, fmt.Errorf("executing transaction: %w", err)
	}
	return rec.Status(), nil
}

/*
executeTx runs a single transaction, returning its record: the order plus
server metadata carrying the terminal status. Expiration is a terminal
status, not an error; the error return is for transactions that cannot be
processed at all.
*/
func (n *Node) executeTx(tx *types.TransactionOrder) (*types.TransactionRecord, error) {
	sm, err := n.txSystem.Execute(tx)
	switch {
	case err == nil:
		n.log.Info(fmt.Sprintf("transaction status: %s", types.TxStatusExecuted), logger.UnitID(tx.UnitID()))
		return &types.TransactionRecord{TransactionOrder: tx, ServerMetadata: sm}, nil
	case errors.Is(err, txsystem.ErrTransactionExpired):
		n.log.Info(fmt.Sprintf("transaction status: %s", types.TxStatusExpired), logger.UnitID(tx.UnitID()))
		return &types.TransactionRecord{
			TransactionOrder: tx,
			ServerMetadata:   &types.ServerMetadata{SuccessIndicator: types.TxStatusExpired},
		}, nil
	default:
		return nil, err
	}
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) SystemID() types.SystemID {
	return n.txSystem.SystemID()
}

func (n *Node) CurrentRound() uint64 {
	return n.txSystem.CurrentRound()
}

// LedgerTime returns current ledger time, microseconds since epoch.
func (n *Node) LedgerTime() uint64 {
	return n.txSystem.LedgerTime()
}
