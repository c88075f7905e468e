package reconciler

import (
	"context"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
	"github.com/chorusnet/discovery-indexer/internal/store"
)

// TxParams carries everything a handler needs to apply one transaction.
// Handlers read entity state through the overlay and queue the versions they
// produce back onto it; the only side channel is the route reader for slug
// collision lookups.
type TxParams struct {
	Ctx   context.Context
	Block domain.BlockRef
	Tx    *domain.EntityTx
	// Metadata is the parsed envelope, nil for actions that carry none
	Metadata *metadata.Parsed
	Overlay  *Overlay
	Routes   store.RouteReader
	// VerifierWallet is the only signer allowed to issue Verify actions
	VerifierWallet string
}

// Handler applies transactions for one entity kind.
//
// Apply returns a domain.RejectionError to drop the transaction without
// aborting the block; any other error aborts the whole block.
type Handler interface {
	// Kind returns the entity kind this handler owns
	Kind() domain.EntityKind
	// Collect adds the entity keys tx references to the fetch set
	Collect(tx *domain.EntityTx, fs *FetchSet)
	// Apply validates tx against the overlay and queues new versions
	Apply(p *TxParams) error
}
