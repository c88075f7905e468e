// Package indexer runs the main loop: take the lease, advance the ledger
// to the chain tip, announce what changed, repeat.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chorusnet/discovery-indexer/internal/adapter"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/ledger"
	"github.com/chorusnet/discovery-indexer/internal/lock"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/messaging"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store"
)

// checkpointKey is where the last applied height is mirrored for operators
const checkpointKey = "last_indexed_block"

// Config holds the configuration for the indexer loop
type Config struct {
	TickInterval       time.Duration
	CheckpointSaveFreq int64         // Save checkpoint every N blocks
	CheckpointDelay    time.Duration // Or save checkpoint every N seconds
}

// Indexer defines the interface for the indexing loop
//
//go:generate mockgen -source=indexer.go -destination=../mocks/indexer.go -package=mocks -mock_names=Indexer=MockIndexer
type Indexer interface {
	// Run starts the loop and blocks until ctx is done
	Run(ctx context.Context) error
}

type indexer struct {
	ledger    *ledger.Ledger
	lease     lock.Lease
	publisher messaging.Publisher
	store     store.Store
	clock     adapter.Clock
	config    Config

	// checkpoint throttle state, carried across ticks
	lastCheckpoint int64
	lastSaveTime   time.Time
}

// New creates an indexer loop
func New(
	lg *ledger.Ledger,
	lease lock.Lease,
	pub messaging.Publisher,
	st store.Store,
	clock adapter.Clock,
	cfg Config,
) Indexer {
	return &indexer{
		ledger:    lg,
		lease:     lease,
		publisher: pub,
		store:     st,
		clock:     clock,
		config:    cfg,
	}
}

// Run starts the loop and blocks until ctx is done
func (i *indexer) Run(ctx context.Context) error {
	ticker := time.NewTicker(i.config.TickInterval)
	defer ticker.Stop()

	for {
		if err := i.tick(ctx); err != nil {
			logger.ErrorCtx(ctx, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick advances the ledger as far as the chain allows under one lease
func (i *indexer) tick(ctx context.Context) error {
	if err := i.lease.Acquire(ctx); err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			logger.DebugCtx(ctx, "another instance holds the lease, skipping tick")
			return nil
		}
		return err
	}
	defer func() {
		if err := i.lease.Release(ctx); err != nil {
			logger.WarnCtx(ctx, "failed to release lease", zap.Error(err))
		}
	}()

	if i.lastSaveTime.IsZero() {
		i.lastSaveTime = i.clock.Now()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome, err := i.ledger.Advance(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrBlockNotAvailable) {
				return nil
			}
			if errors.Is(err, domain.ErrForkDetected) {
				// keep unwinding until linkage restores
				continue
			}
			return err
		}

		i.publish(ctx, outcome)

		shouldSave := outcome.Block.Number-i.lastCheckpoint >= i.config.CheckpointSaveFreq ||
			i.clock.Since(i.lastSaveTime) >= i.config.CheckpointDelay
		if shouldSave {
			if err := i.store.SetCheckpoint(ctx, checkpointKey, fmt.Sprintf("%d", outcome.Block.Number)); err != nil {
				logger.WarnCtx(ctx, "failed to save checkpoint", zap.Error(err))
			} else {
				i.lastCheckpoint = outcome.Block.Number
				i.lastSaveTime = i.clock.Now()
			}
		}
	}
}

// publish announces the touched entities per kind. The block is already
// committed, so a broker hiccup only costs downstream a notification.
func (i *indexer) publish(ctx context.Context, outcome *reconciler.Outcome) {
	for kind, keys := range outcome.Changed {
		if len(keys) == 0 {
			continue
		}
		event := &messaging.ChangeEvent{
			Blocknumber: outcome.Block.Number,
			Blockhash:   outcome.Block.Hash,
			Kind:        kind,
			Keys:        make([]string, 0, len(keys)),
		}
		for _, k := range keys {
			event.Keys = append(event.Keys, string(k))
		}
		if err := i.publisher.PublishChanges(ctx, event); err != nil {
			logger.WarnCtx(ctx, "failed to publish change event",
				zap.String("kind", string(kind)),
				zap.Error(err))
		}
	}
}
