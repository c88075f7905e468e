package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

func TestNormalizeWallet(t *testing.T) {
	assert.Equal(t, "0xabcdef", domain.NormalizeWallet("0xABCdef"))
	assert.Equal(t, "0xabc", domain.NormalizeWallet("  0xAbC  "))
	assert.Equal(t, "", domain.NormalizeWallet(""))
}

func TestCarriesMetadata(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
		kind   domain.EntityKind
		want   bool
	}{
		{"user create", domain.ActionCreate, domain.KindUser, true},
		{"user update", domain.ActionUpdate, domain.KindUser, true},
		{"track create", domain.ActionCreate, domain.KindTrack, true},
		{"playlist update", domain.ActionUpdate, domain.KindPlaylist, true},
		{"album create", domain.ActionCreate, domain.KindAlbum, true},
		{"user delete", domain.ActionDelete, domain.KindUser, false},
		{"user verify", domain.ActionVerify, domain.KindUser, false},
		{"user follow", domain.ActionFollow, domain.KindUser, false},
		{"track save", domain.ActionSave, domain.KindTrack, false},
		{"grant create", domain.ActionCreate, domain.KindGrant, false},
		{"grant approve", domain.ActionApprove, domain.KindGrant, false},
		{"grant reject", domain.ActionReject, domain.KindGrant, false},
		{"developer app create", domain.ActionCreate, domain.KindDeveloperApp, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.CarriesMetadata(tc.action, tc.kind))
		})
	}
}

func TestActionIsSocial(t *testing.T) {
	social := []domain.Action{
		domain.ActionFollow, domain.ActionUnfollow,
		domain.ActionSave, domain.ActionUnsave,
		domain.ActionRepost, domain.ActionUnrepost,
		domain.ActionSubscribe, domain.ActionUnsubscribe,
	}
	for _, a := range social {
		assert.True(t, a.IsSocial(), string(a))
	}

	nonSocial := []domain.Action{
		domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete,
		domain.ActionVerify, domain.ActionApprove, domain.ActionReject,
	}
	for _, a := range nonSocial {
		assert.False(t, a.IsSocial(), string(a))
	}
}

func TestRecordKeys(t *testing.T) {
	assert.Equal(t, domain.RecordKey("42"), domain.IDKey(42))
	assert.Equal(t, domain.RecordKey("0xabc|7"), domain.GrantKey("0xABC", 7))
	assert.Equal(t, domain.RecordKey("0xdef"), domain.AddressKey(" 0xDEF "))
	assert.Equal(t, domain.RecordKey("1|follow|2"), domain.EdgeKey(1, "follow", 2))
}

func TestOffsetFor(t *testing.T) {
	assert.Equal(t, int32(domain.UserIDOffset), domain.OffsetFor(domain.KindUser))
	assert.Equal(t, int32(domain.TrackIDOffset), domain.OffsetFor(domain.KindTrack))
	assert.Equal(t, int32(domain.PlaylistIDOffset), domain.OffsetFor(domain.KindPlaylist))
	assert.Equal(t, int32(domain.PlaylistIDOffset), domain.OffsetFor(domain.KindAlbum))
}

func TestValidGenre(t *testing.T) {
	assert.True(t, domain.ValidGenre("Electronic"))
	assert.True(t, domain.ValidGenre("Rock"))
	assert.True(t, domain.ValidGenre(""))
	assert.False(t, domain.ValidGenre("Elevator Jazzcore"))
}

func TestRejectionError(t *testing.T) {
	err := domain.Rejectf(domain.RejectUnauthorized, "signer %s has no say", "0xabc")
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectUnauthorized, rej.Code)
	assert.Contains(t, rej.Reason, "0xabc")

	_, ok = domain.AsRejection(assert.AnError)
	assert.False(t, ok)
}
