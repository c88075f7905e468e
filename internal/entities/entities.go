// Package entities implements the per-kind transaction handlers that
// validate manage-entity transactions and produce new entity versions.
package entities

import (
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// Handlers returns one handler per entity kind the indexer supports.
// Albums share the playlist handler; they differ only in save/repost type
// and the owner-only track rule.
func Handlers() []reconciler.Handler {
	return []reconciler.Handler{
		NewUserHandler(),
		NewTrackHandler(),
		NewPlaylistHandler(domain.KindPlaylist),
		NewPlaylistHandler(domain.KindAlbum),
		NewGrantHandler(),
		NewDeveloperAppHandler(),
	}
}

// stamp writes the block provenance of p onto a new version
func stamp(s *schema.BlockStamp, p *reconciler.TxParams) {
	s.Stamp(p.Block.Hash, p.Block.Number, p.Tx.TxHash, p.Block.Timestamp)
}

// rejectAction is the fallback for actions a kind does not support
func rejectAction(p *reconciler.TxParams) error {
	return domain.Rejectf(domain.RejectInvalidTx,
		"action %s is not valid for %s", p.Tx.Action, p.Tx.Kind)
}
