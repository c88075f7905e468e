package entities_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

func trackTx(action domain.Action, trackID, userID int32, signer, data string) *domain.EntityTx {
	tx := &domain.EntityTx{
		TxHash:   "0xtrack",
		UserID:   userID,
		Kind:     domain.KindTrack,
		EntityID: trackID,
		Action:   action,
		Signer:   signer,
	}
	if data != "" {
		tx.Metadata = `{"cid": "QmTrack", "data": ` + data + `}`
	}
	return tx
}

func TestTrackCreate(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.noRouteCollisions()

	err := tm.apply(t, trackTx(domain.ActionCreate, 2_000_001, aliceID, aliceWallet,
		`{"title": "Night Drive", "genre": "Electronic", "duration": 215}`))
	require.NoError(t, err)

	track := tm.overlay.Track(2_000_001)
	require.NotNil(t, track)
	assert.Equal(t, "Night Drive", *track.Title)
	assert.Equal(t, "Electronic", *track.Genre)
	assert.Equal(t, int32(215), track.Duration)
	assert.Equal(t, aliceID, track.OwnerID)
	assert.Equal(t, "QmTrack", *track.MetadataMultihash)

	route := tm.overlay.CurrentTrackRoute(2_000_001)
	require.NotNil(t, route)
	assert.Equal(t, "night-drive", route.Slug)
	assert.Equal(t, "night-drive", route.TitleSlug)
	assert.Equal(t, int32(0), route.CollisionID)
}

func TestTrackCreate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		tx   func(tm *testHandlerMocks) *domain.EntityTx
		code domain.RejectCode
	}{
		{
			"reserved id",
			func(tm *testHandlerMocks) *domain.EntityTx {
				return trackTx(domain.ActionCreate, 500, aliceID, aliceWallet, `{"title": "t"}`)
			},
			domain.RejectReservedID,
		},
		{
			"already exists",
			func(tm *testHandlerMocks) *domain.EntityTx {
				tm.seedTrack(2_000_001, aliceID, "Existing")
				return trackTx(domain.ActionCreate, 2_000_001, aliceID, aliceWallet, `{"title": "t"}`)
			},
			domain.RejectAlreadyExists,
		},
		{
			"missing title",
			func(tm *testHandlerMocks) *domain.EntityTx {
				return trackTx(domain.ActionCreate, 2_000_001, aliceID, aliceWallet, `{"genre": "Rock"}`)
			},
			domain.RejectInvalidField,
		},
		{
			"unknown genre",
			func(tm *testHandlerMocks) *domain.EntityTx {
				return trackTx(domain.ActionCreate, 2_000_001, aliceID, aliceWallet,
					`{"title": "t", "genre": "Yodelcore"}`)
			},
			domain.RejectInvalidField,
		},
		{
			"unauthorized signer",
			func(tm *testHandlerMocks) *domain.EntityTx {
				return trackTx(domain.ActionCreate, 2_000_001, aliceID, bobWallet, `{"title": "t"}`)
			},
			domain.RejectUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tm := setupTestHandlers(t)
			defer tearDownTestHandlers(tm)
			tm.seedUser(aliceID, aliceWallet)

			requireRejected(t, tm.apply(t, tc.tx(tm)), tc.code)
		})
	}
}

func TestTrackRouteCollision(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)

	// two persisted routes already use this slug
	tm.store.EXPECT().
		MaxTrackRouteCollision(gomock.Any(), aliceID, "night-drive").
		Return(int32(2), true, nil)

	err := tm.apply(t, trackTx(domain.ActionCreate, 2_000_001, aliceID, aliceWallet,
		`{"title": "Night Drive"}`))
	require.NoError(t, err)

	route := tm.overlay.CurrentTrackRoute(2_000_001)
	require.NotNil(t, route)
	assert.Equal(t, "night-drive-3", route.Slug)
	assert.Equal(t, int32(3), route.CollisionID)
}

func TestTrackUpdate(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedTrack(2_000_001, aliceID, "Old Title")
	tm.noRouteCollisions()

	err := tm.apply(t, trackTx(domain.ActionUpdate, 2_000_001, aliceID, aliceWallet,
		`{"title": "New Title", "mood": "Energetic"}`))
	require.NoError(t, err)

	track := tm.overlay.Track(2_000_001)
	assert.Equal(t, "New Title", *track.Title)
	assert.Equal(t, "Energetic", *track.Mood)

	// the title moved, so a new route was produced
	route := tm.overlay.CurrentTrackRoute(2_000_001)
	require.NotNil(t, route)
	assert.Equal(t, "new-title", route.TitleSlug)
}

func TestTrackUpdate_TitleUnchangedKeepsRoute(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedTrack(2_000_001, aliceID, "Same Title")

	// no route reader calls expected at all
	err := tm.apply(t, trackTx(domain.ActionUpdate, 2_000_001, aliceID, aliceWallet,
		`{"title": "Same Title", "mood": "Chill"}`))
	require.NoError(t, err)
	assert.Nil(t, tm.overlay.CurrentTrackRoute(2_000_001))
}

func TestTrackUpdate_PublicStaysPublic(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedTrack(2_000_001, aliceID, "Public Track")

	err := tm.apply(t, trackTx(domain.ActionUpdate, 2_000_001, aliceID, aliceWallet,
		`{"is_unlisted": true}`))
	requireRejected(t, err, domain.RejectInvalidField)
}

func TestTrackUpdate_NotOwner(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedUser(bobID, bobWallet)
	tm.seedTrack(2_000_001, aliceID, "Alice Song")

	err := tm.apply(t, trackTx(domain.ActionUpdate, 2_000_001, bobID, bobWallet,
		`{"title": "Stolen"}`))
	requireRejected(t, err, domain.RejectUnauthorized)
}

func TestTrackDelete(t *testing.T) {
	tm := setupTestHandlers(t)
	defer tearDownTestHandlers(tm)
	tm.seedUser(aliceID, aliceWallet)
	tm.seedTrack(2_000_001, aliceID, "Doomed")

	err := tm.apply(t, trackTx(domain.ActionDelete, 2_000_001, aliceID, aliceWallet, ""))
	require.NoError(t, err)

	track := tm.overlay.Track(2_000_001)
	assert.True(t, track.IsDelete)
	assert.Nil(t, track.StemOf)

	// a deleted track no longer resolves for mutation
	err = tm.apply(t, trackTx(domain.ActionUpdate, 2_000_001, aliceID, aliceWallet,
		`{"title": "Back"}`))
	requireRejected(t, err, domain.RejectNotFound)
}
