// Package daemon wires the pieces of treelotd together: configuration,
// storage, the market engine, persistence hooks, and the RPC surfaces.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/treelot/treelotd/internal/config"
	"github.com/treelot/treelotd/internal/core/market"
	"github.com/treelot/treelotd/internal/core/money"
	"github.com/treelot/treelotd/internal/core/types"
	"github.com/treelot/treelotd/internal/crypto"
	grpcsrv "github.com/treelot/treelotd/internal/grpc"
	"github.com/treelot/treelotd/internal/rpc"
	"github.com/treelot/treelotd/internal/storage/journal"
	"github.com/treelot/treelotd/internal/storage/kvstore"
	"github.com/treelot/treelotd/internal/storage/statestore"
)

// SettlementNamespace seeds the genesis settlement class derivation.
const SettlementNamespace = "treelot/settlement"

// Daemon is the assembled treelotd process.
type Daemon struct {
	cfg    *config.Config
	logger zerolog.Logger

	db      kvstore.DB
	store   *statestore.Store
	journal journal.Journal
	engine  *market.Engine

	rpcServer  *rpc.Server
	grpcServer *grpcsrv.Server
}

// New assembles a daemon from configuration. The returned daemon owns its
// storage handles until Close.
func New(cfg *config.Config) (*Daemon, error) {
	logger := newLogger(cfg.LogLevel)

	db, err := kvstore.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	store, err := statestore.New(db, cfg.Storage.CacheSize)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	jrnl, err := journal.Open(cfg.Journal.Backend, cfg.Journal.DSN)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}

	engine, err := buildEngine(cfg, logger, store)
	if err != nil {
		jrnl.Close()
		db.Close()
		return nil, err
	}

	d := &Daemon{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		store:   store,
		journal: jrnl,
		engine:  engine,
	}
	d.registerPersistence()

	d.rpcServer = rpc.NewServer(rpc.NewHandler(engine), logger, cfg.Server.RPCAddress)
	if cfg.Server.GRPCAddress != "" {
		gcfg := grpcsrv.DefaultServerConfig()
		gcfg.Address = cfg.Server.GRPCAddress
		d.grpcServer, err = grpcsrv.NewServer(gcfg, engine, logger)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("build grpc server: %w", err)
		}
	}
	return d, nil
}

// Engine returns the daemon's market engine.
func (d *Daemon) Engine() *market.Engine {
	return d.engine
}

// Run serves until ctx is cancelled, then shuts both listeners down.
func (d *Daemon) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(d.rpcServer.ListenAndServe)
	if d.grpcServer != nil {
		g.Go(d.grpcServer.Start)
	}

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if d.grpcServer != nil {
			d.grpcServer.Stop()
		}
		return d.rpcServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the daemon's storage handles.
func (d *Daemon) Close() error {
	var firstErr error
	if err := d.journal.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := d.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// buildEngine restores the latest saved state, or runs genesis when the
// store is empty.
func buildEngine(cfg *config.Config, logger zerolog.Logger, store *statestore.Store) (*market.Engine, error) {
	ctx := context.Background()

	seq, state, err := store.LoadLatest(ctx)
	switch {
	case err == nil:
		logger.Info().Uint64("seq", seq).Msg("restored state from snapshot")
		return market.NewEngineAt(state, seq), nil
	case errors.Is(err, kvstore.ErrKeyNotFound):
		// Fresh database; fall through to genesis.
	default:
		return nil, fmt.Errorf("load latest snapshot: %w", err)
	}

	state, err = genesisState(cfg.Contract)
	if err != nil {
		return nil, err
	}
	engine := market.NewEngine(state)
	if err := store.Save(ctx, 0, state); err != nil {
		return nil, fmt.Errorf("save genesis snapshot: %w", err)
	}
	logger.Info().Msg("initialized genesis state")
	return engine, nil
}

// genesisState creates the settlement class and initializes the contract
// singleton from configuration.
func genesisState(cc config.ContractConfig) (*market.State, error) {
	admin, err := types.ParseAccountID(cc.Admin)
	if err != nil {
		return nil, fmt.Errorf("contract.admin: %w", err)
	}

	state := market.NewState()
	settlement := crypto.DeriveClassID(SettlementNamespace, admin, 0)
	err = state.Book.CreateClass(settlement, admin, money.SettlementDecimals, cc.SettlementName, nil, false)
	if err != nil {
		return nil, fmt.Errorf("create settlement class: %w", err)
	}

	op := &market.InitContract{
		Admin:           admin,
		TreesPerLot:     cc.TreesPerLot,
		SettlementClass: settlement,
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if err := op.Apply(&market.ApplyContext{State: state}); err != nil {
		return nil, err
	}
	return state, nil
}

// registerPersistence hooks snapshot saving and journaling onto every
// commit. Persistence failures are logged, not fatal; the in-memory state
// stays authoritative.
func (d *Daemon) registerPersistence() {
	d.engine.OnCommit(func(name string, seq uint64, state *market.State) {
		ctx := context.Background()
		if err := d.store.Save(ctx, seq, state); err != nil {
			d.logger.Error().Uint64("seq", seq).Err(err).Msg("snapshot save failed")
		}
		rec := journal.Record{Seq: seq, Operation: name, AppliedAt: time.Now().UTC()}
		if err := d.journal.Append(ctx, rec); err != nil {
			d.logger.Error().Uint64("seq", seq).Err(err).Msg("journal append failed")
		}
	})
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
