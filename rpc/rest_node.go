package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tempochain/tempo/logger"
	"github.com/tempochain/tempo/types"
)

type (
	// partitionNode is the subset of the partition node API the REST
	// endpoints depend on.
	partitionNode interface {
		Name() string
		SystemID() types.SystemID
		CurrentRound() uint64
		LedgerTime() uint64
		SubmitTransaction(ctx context.Context, tx *types.TransactionOrder) (types.TxStatus, error)
		ProcessBlock(header *types.Header, txs []*types.TransactionOrder) (*types.Block, error)
	}

	infoResponse struct {
		SystemID string `json:"system_id"` // hex encoded system identifier
		Name     string `json:"name"`
		Round    uint64 `json:"round"`
	}

	timeResponse struct {
		// LedgerTime is current ledger time, microseconds since epoch.
		LedgerTime uint64 `json:"ledger_time"`
	}

	txResponse struct {
		Status string `json:"status"`
	}

	// blockRequest is a block proposal: the prologue plus the transaction
	// orders to process under it.
	blockRequest struct {
		_            struct{} `cbor:",toarray"`
		Header       *types.Header
		Transactions []*types.TransactionOrder
	}
)

func NodeEndpoints(node partitionNode, obs Observability) RegistrarFunc {
	return func(r *mux.Router) {
		log := obs.Logger()

		r.HandleFunc("/info", infoHandler(node, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/time", timeHandler(node, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/transactions", submitTransactionHandler(node, log)).Methods(http.MethodPost, http.MethodOptions)
		r.HandleFunc("/blocks", processBlockHandler(node, log)).Methods(http.MethodPost, http.MethodOptions)
	}
}

func infoHandler(node partitionNode, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, infoResponse{
			SystemID: node.SystemID().String(),
			Name:     node.Name(),
			Round:    node.CurrentRound(),
		}, log)
	}
}

func timeHandler(node partitionNode, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, timeResponse{LedgerTime: node.LedgerTime()}, log)
	}
}

/*
submitTransactionHandler accepts a CBOR encoded transaction order and
responds with its terminal status. An expired transaction is a "client
error", the status token is in the response body either way.
*/
func submitTransactionHandler(node partitionNode, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		tx := &types.TransactionOrder{}
		if err := types.Cbor.Decode(r.Body, tx); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "failed to parse transaction order: %v", err)
			return
		}
		log.DebugContext(r.Context(), "transaction order received", logger.UnitID(tx.UnitID()), logger.Data(tx))

		status, err := node.SubmitTransaction(r.Context(), tx)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "failed to process transaction: %v", err)
			return
		}

		httpStatus := http.StatusAccepted
		if status != types.TxStatusExecuted {
			httpStatus = http.StatusBadRequest
		}
		writeJSON(w, r, httpStatus, txResponse{Status: status.String()}, log)
	}
}

/*
processBlockHandler accepts a CBOR encoded block proposal from the
orchestration collaborator and responds with the processed block, every
transaction record carrying its terminal status.
*/
func processBlockHandler(node partitionNode, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		req := &blockRequest{}
		if err := types.Cbor.Decode(r.Body, req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "failed to parse block proposal: %v", err)
			return
		}

		block, err := node.ProcessBlock(req.Header, req.Transactions)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, "block rejected: %v", err)
			return
		}

		w.Header().Set(headerContentType, applicationCBOR)
		w.WriteHeader(http.StatusCreated)
		if err := types.Cbor.Encode(w, block); err != nil {
			log.WarnContext(r.Context(), "failed to write block response", logger.Error(err))
		}
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any, log *slog.Logger) {
	w.Header().Set(headerContentType, applicationJson)
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.WarnContext(r.Context(), "failed to write response", logger.Error(err))
	}
}
