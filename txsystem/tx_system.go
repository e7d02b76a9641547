package txsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tempochain/tempo/clock"
	"github.com/tempochain/tempo/logger"
	"github.com/tempochain/tempo/types"
)

type (
	// Module is a set of transaction handlers, ie the "further execution"
	// that takes place after a transaction has been admitted.
	Module interface {
		TxExecutors() map[string]ExecuteFunc
	}

	Observability interface {
		Meter(name string, opts ...metric.MeterOption) metric.Meter
		Logger() *slog.Logger
	}

	/*
		TxSystem processes the transactions of a single transaction system:
		a block prologue advances the ledger clock to the block timestamp,
		after which each transaction is individually checked against the
		updated clock value before its handler runs.
	*/
	TxSystem struct {
		systemIdentifier types.SystemID
		clock            *clock.LedgerClock
		executors        TxExecutors
		currentRound     atomic.Uint64
		log              *slog.Logger

		execCnt metric.Int64Counter
	}
)

func NewTxSystem(systemID types.SystemID, ledgerClock *clock.LedgerClock, modules []Module, observe Observability) (*TxSystem, error) {
	if systemID == 0 {
		return nil, errors.New("system ID must be assigned")
	}
	if ledgerClock == nil {
		return nil, errors.New("ledger clock must be assigned")
	}
	txs := &TxSystem{
		systemIdentifier: systemID,
		clock:            ledgerClock,
		executors:        make(TxExecutors),
		log:              observe.Logger(),
	}

	modules = append(modules, NewNopModule())
	for _, module := range modules {
		if err := txs.executors.Add(module.TxExecutors()); err != nil {
			return nil, fmt.Errorf("registering tx executors: %w", err)
		}
	}

	if err := txs.initMetrics(observe.Meter("txsystem")); err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}

	return txs, nil
}

/*
BeginBlock starts a new block round: the block timestamp becomes the new
ledger time. A block whose timestamp is smaller than current ledger time is
rejected with an error wrapping clock.ErrNonMonotonic - block production
must never move ledger time backwards.

BeginBlock calls are serialized by block production, no two calls may be in
flight concurrently.
*/
func (m *TxSystem) BeginBlock(header *types.Header) error {
	if err := header.IsValid(); err != nil {
		return fmt.Errorf("invalid block header: %w", err)
	}
	if err := m.clock.Advance(header.Timestamp); err != nil {
		return fmt.Errorf("advancing ledger time to block timestamp: %w", err)
	}
	m.currentRound.Store(header.Round)
	m.log.Debug(fmt.Sprintf("begin block proposed by %s", header.ProposerID), logger.Round(header.Round))
	return nil
}

/*
Execute admits and executes a single transaction order. The admission check
re-reads current ledger time on every call, so a transaction admitted before
a clock advance may be rejected after it. An expired transaction yields an
error wrapping ErrTransactionExpired and no handler runs for it; execution
of other transactions is unaffected.
*/
func (m *TxSystem) Execute(tx *types.TransactionOrder) (*types.ServerMetadata, error) {
	currentTime := m.clock.Current()
	if err := m.validateGenericTransaction(tx, currentTime); err != nil {
		if errors.Is(err, ErrTransactionExpired) {
			m.countExec(types.TxStatusExpired)
		}
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}

	exeCtx := &TxExecutionContext{
		CurrentTime:  currentTime,
		CurrentRound: m.currentRound.Load(),
	}
	m.log.Debug(fmt.Sprintf("execute %s", tx.PayloadType()), logger.UnitID(tx.UnitID()), logger.Round(exeCtx.CurrentRound))
	sm, err := m.executors.Execute(tx, exeCtx)
	if err != nil {
		return nil, err
	}
	m.countExec(types.TxStatusExecuted)
	return sm, nil
}

/*
validateGenericTransaction does the validation common to all transaction
types:
  - the transaction is sent to this system;
  - the transaction has not expired relative to current ledger time.

The type specific validity conditions are implemented by the tx handler.
*/
func (m *TxSystem) validateGenericTransaction(tx *types.TransactionOrder, currentTime uint64) error {
	if m.systemIdentifier != tx.SystemID() {
		return ErrInvalidSystemIdentifier
	}
	if err := CheckExpiration(tx.ExpirationTime(), currentTime); err != nil {
		return err
	}
	return nil
}

func (m *TxSystem) SystemID() types.SystemID {
	return m.systemIdentifier
}

// CurrentRound returns the round number of the latest block prologue.
func (m *TxSystem) CurrentRound() uint64 {
	return m.currentRound.Load()
}

// LedgerTime returns current ledger time, microseconds since epoch.
func (m *TxSystem) LedgerTime() uint64 {
	return m.clock.Current()
}

func (m *TxSystem) initMetrics(mtr metric.Meter) error {
	var err error
	if m.execCnt, err = mtr.Int64Counter(
		"tx.count",
		metric.WithDescription(`Number of transactions processed, by terminal status.`),
		metric.WithUnit("{transaction}"),
	); err != nil {
		return fmt.Errorf("creating tx counter: %w", err)
	}

	if _, err = mtr.Int64ObservableUpDownCounter(
		"ledger.time",
		metric.WithDescription(`Current ledger time, microseconds since epoch.`),
		metric.WithUnit("us"),
		metric.WithInt64Callback(func(ctx context.Context, io metric.Int64Observer) error {
			io.Observe(int64(m.clock.Current()))
			return nil
		}),
	); err != nil {
		return fmt.Errorf("creating ledger time gauge: %w", err)
	}

	return nil
}

func (m *TxSystem) countExec(status types.TxStatus) {
	m.execCnt.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("status", status.String())))
}
