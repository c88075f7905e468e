// Package ledger maintains the local block ledger: advancing the tip along
// the canonical chain, detecting forks by parent-hash linkage, and unwinding
// reorged blocks from the versioned store.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/chorusnet/discovery-indexer/internal/chain"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// Config holds ledger settings
type Config struct {
	// StartBlock is the height the ledger bootstraps from when empty
	StartBlock int64
}

// Ledger advances and reverts the local tip
type Ledger struct {
	st     store.Store
	rec    *reconciler.Reconciler
	source chain.Source
	config Config
}

// New creates a ledger over st, reconciling with rec and reading blocks
// from source
func New(st store.Store, rec *reconciler.Reconciler, source chain.Source, cfg Config) *Ledger {
	return &Ledger{st: st, rec: rec, source: source, config: cfg}
}

// Advance fetches the next block and applies it inside one database
// transaction together with the ledger bookkeeping.
//
// Returns domain.ErrBlockNotAvailable when the chain has nothing new and
// domain.ErrForkDetected after unwinding one reorged block; callers loop on
// the latter until linkage restores.
func (l *Ledger) Advance(ctx context.Context) (*reconciler.Outcome, error) {
	tip, err := l.st.GetCurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	next := l.config.StartBlock
	if tip != nil {
		next = tip.Number + 1
	}

	blk, err := l.source.BlockByNumber(ctx, next)
	if err != nil {
		return nil, err
	}

	if tip != nil && blk.ParentHash != tip.Blockhash {
		logger.WarnCtx(ctx, "fork detected, unwinding tip",
			zap.Int64("height", tip.Number),
			zap.String("tip", tip.Blockhash),
			zap.String("expected_parent", blk.ParentHash))
		if err := l.Revert(ctx); err != nil {
			return nil, err
		}
		return nil, domain.ErrForkDetected
	}

	var outcome *reconciler.Outcome
	err = l.st.WithinTransaction(ctx, func(tx store.Store) error {
		err := tx.InsertBlock(ctx, &schema.Block{
			Blockhash:  blk.Hash,
			Parenthash: blk.ParentHash,
			Number:     blk.Number,
		})
		if err != nil {
			return err
		}

		outcome, err = l.rec.Reconcile(ctx, tx, blk.BlockRef, blk.Txs)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply block %d: %w", blk.Number, err)
	}

	logger.InfoCtx(ctx, "block applied",
		zap.Int64("height", blk.Number),
		zap.String("blockhash", blk.Hash),
		zap.Int("txs", len(blk.Txs)),
		zap.Int("mutations", outcome.Mutations),
		zap.Int("skipped", outcome.Skipped))
	return outcome, nil
}

// Revert unwinds the current tip: entity versions produced at that height
// are deleted and the displaced versions named by the captured pre-images
// become current again, routes are deleted with the newest survivor
// promoted, and the parent becomes the tip again.
func (l *Ledger) Revert(ctx context.Context) error {
	return l.st.WithinTransaction(ctx, func(tx store.Store) error {
		tip, err := tx.GetCurrentBlock(ctx)
		if err != nil {
			return err
		}
		if tip == nil {
			return domain.ErrNoCurrentBlock
		}

		if err := tx.DeleteVersionsAtBlock(ctx, tip.Number); err != nil {
			return err
		}

		rb, err := tx.GetRevertBlock(ctx, tip.Number)
		if err != nil {
			return err
		}
		if rb != nil {
			var prev map[string][]json.RawMessage
			if err := json.Unmarshal(rb.PrevRecords, &prev); err != nil {
				return fmt.Errorf("failed to decode pre-images for block %d: %w", tip.Number, err)
			}
			if err := tx.RestoreRows(ctx, prev); err != nil {
				return err
			}
			if err := tx.DeleteRevertBlock(ctx, tip.Number); err != nil {
				return err
			}
		}

		if err := tx.RevertRoutesAtBlock(ctx, tip.Number); err != nil {
			return err
		}

		if err := tx.DeleteBlock(ctx, tip.Blockhash); err != nil {
			return err
		}
		if tip.Parenthash != "" {
			if err := tx.SetBlockCurrent(ctx, tip.Parenthash, true); err != nil {
				return err
			}
		}

		logger.InfoCtx(ctx, "block reverted",
			zap.Int64("height", tip.Number),
			zap.String("blockhash", tip.Blockhash))
		return nil
	})
}
