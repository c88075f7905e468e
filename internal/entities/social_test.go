package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

func socialTx(kind domain.EntityKind, action domain.Action, userID, entityID int32, signer string) *domain.EntityTx {
	return &domain.EntityTx{
		TxHash:   "0xsocial",
		UserID:   userID,
		Kind:     kind,
		EntityID: entityID,
		Action:   action,
		Signer:   signer,
	}
}

func TestFollow(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedUser(bobID, bobWallet)

	err := tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, bobID, aliceWallet))
	require.NoError(t, err)

	edge := tm.overlay.Follow(aliceID, bobID)
	require.NotNil(t, edge)
	assert.False(t, edge.IsDelete)

	// unfollow flips the edge
	err = tm.apply(t, socialTx(domain.KindUser, domain.ActionUnfollow, aliceID, bobID, aliceWallet))
	require.NoError(t, err)
	assert.True(t, tm.overlay.Follow(aliceID, bobID).IsDelete)
}

func TestFollow_Idempotent(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedUser(bobID, bobWallet)

	// unfollowing an absent edge is a silent no-op, nothing is queued
	err := tm.apply(t, socialTx(domain.KindUser, domain.ActionUnfollow, aliceID, bobID, aliceWallet))
	require.NoError(t, err)
	assert.Nil(t, tm.overlay.Follow(aliceID, bobID))

	// re-following an active edge queues nothing either
	active := &schema.Follow{FollowerUserID: aliceID, FolloweeUserID: bobID}
	tm.overlay.QueueFollow(active)
	err = tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, bobID, aliceWallet))
	require.NoError(t, err)
	assert.Same(t, active, tm.overlay.Follow(aliceID, bobID))
}

func TestFollow_Rejections(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)

	// self edge
	err := tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, aliceID, aliceWallet))
	requireRejected(t, err, domain.RejectInvalidField)

	// missing target
	err = tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, bobID, aliceWallet))
	requireRejected(t, err, domain.RejectNotFound)

	// deactivated target
	tm.overlay.QueueUser(&schema.User{UserID: bobID, Wallet: strPtr(bobWallet), IsDeactivated: true})
	err = tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, bobID, aliceWallet))
	requireRejected(t, err, domain.RejectNotFound)
}

func TestSubscribe(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedUser(bobID, bobWallet)

	err := tm.apply(t, socialTx(domain.KindUser, domain.ActionSubscribe, aliceID, bobID, aliceWallet))
	require.NoError(t, err)
	require.NotNil(t, tm.overlay.Subscription(aliceID, bobID))

	err = tm.apply(t, socialTx(domain.KindUser, domain.ActionUnsubscribe, aliceID, bobID, aliceWallet))
	require.NoError(t, err)
	assert.True(t, tm.overlay.Subscription(aliceID, bobID).IsDelete)
}

func TestSaveTrack(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedTrack(2_000_001, bobID, "Song")

	err := tm.apply(t, socialTx(domain.KindTrack, domain.ActionSave, aliceID, 2_000_001, aliceWallet))
	require.NoError(t, err)

	save := tm.overlay.Save(aliceID, schema.SaveTypeTrack, 2_000_001)
	require.NotNil(t, save)
	assert.Equal(t, schema.SaveTypeTrack, save.SaveType)

	// a deleted track cannot be saved
	tm.overlay.QueueTrack(&schema.Track{TrackID: 2_000_002, OwnerID: bobID, IsDelete: true})
	err = tm.apply(t, socialTx(domain.KindTrack, domain.ActionSave, aliceID, 2_000_002, aliceWallet))
	requireRejected(t, err, domain.RejectNotFound)
}

func TestRepostTypes(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedPlaylist(400_001, bobID, "Mix", false)
	tm.seedPlaylist(400_002, bobID, "LP", true)

	// the repost type follows the transaction kind, not the row
	err := tm.apply(t, socialTx(domain.KindPlaylist, domain.ActionRepost, aliceID, 400_001, aliceWallet))
	require.NoError(t, err)
	require.NotNil(t, tm.overlay.Repost(aliceID, schema.SaveTypePlaylist, 400_001))

	err = tm.apply(t, socialTx(domain.KindAlbum, domain.ActionRepost, aliceID, 400_002, aliceWallet))
	require.NoError(t, err)
	require.NotNil(t, tm.overlay.Repost(aliceID, schema.SaveTypeAlbum, 400_002))
}

func TestSocialEdgePreservesCreatedAt(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedUser(bobID, bobWallet)

	first := tm.overlay.Follow(aliceID, bobID)
	require.Nil(t, first)

	require.NoError(t, tm.apply(t, socialTx(domain.KindUser, domain.ActionFollow, aliceID, bobID, aliceWallet)))
	created := tm.overlay.Follow(aliceID, bobID).CreatedAt

	require.NoError(t, tm.apply(t, socialTx(domain.KindUser, domain.ActionUnfollow, aliceID, bobID, aliceWallet)))
	assert.Equal(t, created, tm.overlay.Follow(aliceID, bobID).CreatedAt)
}
