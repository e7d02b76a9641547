package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tempochain/tempo/clock"
	"github.com/tempochain/tempo/keyvaluedb/boltdb"
	"github.com/tempochain/tempo/logger"
	"github.com/tempochain/tempo/partition"
	"github.com/tempochain/tempo/rpc"
	"github.com/tempochain/tempo/txsystem"
	"github.com/tempochain/tempo/types"
)

const clockStoreFileName = "clock.db"

type nodeConfiguration struct {
	Base *baseConfiguration

	Name         string
	SystemID     uint32
	DbFile       string
	RESTAddress  string
	MaxBodyBytes int64
}

func newNodeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &nodeConfiguration{Base: baseConfig}
	var nodeCmd = &cobra.Command{
		Use:   "node",
		Short: "Starts a tempo node",
		Long:  `Starts a tempo node, serving the transaction and ledger time API on the address provided by configuration.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(cmd.Context(), config)
		},
	}

	nodeCmd.Flags().StringVarP(&config.Name, "name", "n", "tempo", "node name, reported by the info endpoint and carried in log output")
	nodeCmd.Flags().Uint32Var(&config.SystemID, "system-id", 1, "system identifier of the transaction system")
	nodeCmd.Flags().StringVarP(&config.DbFile, "db", "f", "",
		fmt.Sprintf("path to the ledger clock database file (default %s)", filepath.Join("$TEMPO_HOME", clockStoreFileName)))
	nodeCmd.Flags().StringVar(&config.RESTAddress, "rest-server-address", "localhost:8002", "REST server address (host:port)")
	nodeCmd.Flags().Int64Var(&config.MaxBodyBytes, "rest-server-max-body-size", 1<<22, "REST server maximum request body size in bytes")
	return nodeCmd
}

func runNode(ctx context.Context, cfg *nodeConfiguration) error {
	obs := cfg.Base.observe
	log := obs.Logger()

	systemID := types.SystemID(cfg.SystemID)
	if systemID == 0 {
		return fmt.Errorf("system identifier must not be zero")
	}

	db, err := boltdb.New(cfg.Base.pathWithDefault(cfg.DbFile, clockStoreFileName))
	if err != nil {
		return fmt.Errorf("opening clock database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WarnContext(ctx, "closing clock database", logger.Error(err))
		}
	}()

	ledgerClock, err := clock.New(db, log)
	if err != nil {
		return fmt.Errorf("initializing ledger clock: %w", err)
	}

	txSystem, err := txsystem.NewTxSystem(systemID, ledgerClock, nil, obs)
	if err != nil {
		return fmt.Errorf("creating transaction system: %w", err)
	}

	node, err := partition.NewNode(cfg.Name, txSystem, obs)
	if err != nil {
		return fmt.Errorf("creating node: %w", err)
	}

	log.InfoContext(ctx, fmt.Sprintf("starting node %s: system=%s time=%d", cfg.Name, systemID, node.LedgerTime()))
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		restServer := rpc.NewRESTServer(cfg.RESTAddress, cfg.MaxBodyBytes, obs,
			rpc.NodeEndpoints(node, obs),
			rpc.MetricsEndpoints(obs.MetricsHandler()),
		)

		errch := make(chan error, 1)
		go func() {
			log.InfoContext(ctx, fmt.Sprintf("REST server starting on %s", restServer.Addr))
			if err := restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errch <- err
				return
			}
			errch <- nil
		}()

		select {
		case <-ctx.Done():
			if err := restServer.Close(); err != nil {
				log.WarnContext(ctx, "REST server close error", logger.Error(err))
			}
			if exitErr := <-errch; exitErr != nil {
				log.WarnContext(ctx, "REST server exited with error", logger.Error(exitErr))
			} else {
				log.InfoContext(ctx, "REST server exited")
			}
			return ctx.Err()
		case err := <-errch:
			return err
		}
	})

	return g.Wait()
}
