// Package chain reads blocks from the host chain and decodes the
// manage-entity transactions they carry.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// Source fetches blocks by height
//
//go:generate mockgen -source=chain.go -destination=../mocks/chain.go -package=mocks -mock_names=Source=MockSource,Decoder=MockDecoder
type Source interface {
	// BlockByNumber returns the block at the given height with its decoded
	// entity transactions. Returns domain.ErrBlockNotAvailable when the chain
	// has not reached that height yet.
	BlockByNumber(ctx context.Context, number int64) (*domain.BlockData, error)

	// LatestHeight returns the height of the chain tip
	LatestHeight(ctx context.Context) (int64, error)
}

// Decoder extracts an entity transaction from a raw chain transaction.
// The second return is false for transactions the indexer does not care
// about (wrong contract, wrong method).
type Decoder interface {
	Decode(tx *types.Transaction, index int) (*domain.EntityTx, bool, error)
}
