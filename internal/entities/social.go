package entities

import (
	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// Social edges are idempotent in both directions: re-adding an active edge
// or removing an absent one is a silent no-op. Only an actual transition
// queues a new version.

func applyFollow(p *reconciler.TxParams) error {
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}
	followerID, followeeID := p.Tx.UserID, p.Tx.EntityID
	if followerID == followeeID {
		return domain.Rejectf(domain.RejectInvalidField, "user %d cannot follow themselves", followerID)
	}
	target := p.Overlay.User(followeeID)
	if target == nil || target.IsDeactivated {
		return domain.Rejectf(domain.RejectNotFound, "followee user %d does not exist", followeeID)
	}

	existing := p.Overlay.Follow(followerID, followeeID)
	wantDelete := p.Tx.Action == domain.ActionUnfollow
	if edgeUnchanged(existing == nil || existing.IsDelete, wantDelete) {
		return nil
	}

	row := &schema.Follow{FollowerUserID: followerID, FolloweeUserID: followeeID, IsDelete: wantDelete}
	if existing != nil {
		row.CreatedAt = existing.CreatedAt
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueFollow(row)
	return nil
}

func applySubscription(p *reconciler.TxParams) error {
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}
	subscriberID, userID := p.Tx.UserID, p.Tx.EntityID
	if subscriberID == userID {
		return domain.Rejectf(domain.RejectInvalidField, "user %d cannot subscribe to themselves", subscriberID)
	}
	target := p.Overlay.User(userID)
	if target == nil || target.IsDeactivated {
		return domain.Rejectf(domain.RejectNotFound, "subscribed user %d does not exist", userID)
	}

	existing := p.Overlay.Subscription(subscriberID, userID)
	wantDelete := p.Tx.Action == domain.ActionUnsubscribe
	if edgeUnchanged(existing == nil || existing.IsDelete, wantDelete) {
		return nil
	}

	row := &schema.Subscription{SubscriberID: subscriberID, UserID: userID, IsDelete: wantDelete}
	if existing != nil {
		row.CreatedAt = existing.CreatedAt
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueSubscription(row)
	return nil
}

func applySave(p *reconciler.TxParams, saveType schema.SaveType) error {
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}
	if err := checkSaveTarget(p, saveType); err != nil {
		return err
	}

	userID, itemID := p.Tx.UserID, p.Tx.EntityID
	existing := p.Overlay.Save(userID, saveType, itemID)
	wantDelete := p.Tx.Action == domain.ActionUnsave
	if edgeUnchanged(existing == nil || existing.IsDelete, wantDelete) {
		return nil
	}

	row := &schema.Save{UserID: userID, SaveItemID: itemID, SaveType: saveType, IsDelete: wantDelete}
	if existing != nil {
		row.CreatedAt = existing.CreatedAt
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueSave(row)
	return nil
}

func applyRepost(p *reconciler.TxParams, repostType schema.SaveType) error {
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}
	if err := checkSaveTarget(p, repostType); err != nil {
		return err
	}

	userID, itemID := p.Tx.UserID, p.Tx.EntityID
	existing := p.Overlay.Repost(userID, repostType, itemID)
	wantDelete := p.Tx.Action == domain.ActionUnrepost
	if edgeUnchanged(existing == nil || existing.IsDelete, wantDelete) {
		return nil
	}

	row := &schema.Repost{UserID: userID, RepostItemID: itemID, RepostType: repostType, IsDelete: wantDelete}
	if existing != nil {
		row.CreatedAt = existing.CreatedAt
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueRepost(row)
	return nil
}

// edgeUnchanged reports whether the requested transition is a no-op
func edgeUnchanged(currentlyAbsent, wantDelete bool) bool {
	return currentlyAbsent == wantDelete
}

func checkSaveTarget(p *reconciler.TxParams, saveType schema.SaveType) error {
	itemID := p.Tx.EntityID
	switch saveType {
	case schema.SaveTypeTrack:
		track := p.Overlay.Track(itemID)
		if track == nil || track.IsDelete {
			return domain.Rejectf(domain.RejectNotFound, "track %d does not exist", itemID)
		}
	case schema.SaveTypePlaylist, schema.SaveTypeAlbum:
		pl := p.Overlay.Playlist(itemID)
		if pl == nil || pl.IsDelete {
			return domain.Rejectf(domain.RejectNotFound, "playlist %d does not exist", itemID)
		}
	}
	return nil
}

// saveTypeFor maps a transaction kind to the save/repost edge type
func saveTypeFor(kind domain.EntityKind) schema.SaveType {
	switch kind {
	case domain.KindAlbum:
		return schema.SaveTypeAlbum
	case domain.KindPlaylist:
		return schema.SaveTypePlaylist
	default:
		return schema.SaveTypeTrack
	}
}
