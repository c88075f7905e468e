package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

const (
	ownerWallet   = "0xAAaa00000000000000000000000000000000aaAA"
	granteeWallet = "0xBBbb00000000000000000000000000000000bbBB"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func seedUser(ov *reconciler.Overlay, id int32, wallet string) {
	ov.QueueUser(&schema.User{UserID: id, Wallet: strPtr(wallet)})
}

func TestAuthorize_WalletOwner(t *testing.T) {
	ov := reconciler.NewOverlay()
	seedUser(ov, 3_000_001, ownerWallet)

	// wallet comparison is case-insensitive
	user, err := authz.Authorize(ov, "0xaaAA00000000000000000000000000000000AAaa", 3_000_001)
	assert.NoError(t, err)
	assert.Equal(t, int32(3_000_001), user.UserID)
}

func TestAuthorize_UserMissing(t *testing.T) {
	ov := reconciler.NewOverlay()

	_, err := authz.Authorize(ov, ownerWallet, 3_000_001)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectNotFound, rej.Code)
}

func TestAuthorize_UserWithoutWallet(t *testing.T) {
	ov := reconciler.NewOverlay()
	ov.QueueUser(&schema.User{UserID: 3_000_001})

	_, err := authz.Authorize(ov, ownerWallet, 3_000_001)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectUnauthorized, rej.Code)
}

func TestAuthorize_NoGrant(t *testing.T) {
	ov := reconciler.NewOverlay()
	seedUser(ov, 3_000_001, ownerWallet)

	_, err := authz.Authorize(ov, granteeWallet, 3_000_001)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectUnauthorized, rej.Code)
}

func TestAuthorize_RevokedGrant(t *testing.T) {
	ov := reconciler.NewOverlay()
	seedUser(ov, 3_000_001, ownerWallet)
	ov.QueueGrant(&schema.Grant{
		GranteeAddress: domain.NormalizeWallet(granteeWallet),
		UserID:         3_000_001,
		IsRevoked:      true,
	})

	_, err := authz.Authorize(ov, granteeWallet, 3_000_001)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectUnauthorized, rej.Code)
}

func TestAuthorize_DeveloperAppGrantee(t *testing.T) {
	tests := []struct {
		name     string
		approved *bool
		wantOK   bool
	}{
		{"implicit approval", nil, true},
		{"explicit approval", boolPtr(true), true},
		{"explicit rejection", boolPtr(false), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ov := reconciler.NewOverlay()
			seedUser(ov, 3_000_001, ownerWallet)
			ov.QueueDeveloperApp(&schema.DeveloperApp{
				Address: domain.NormalizeWallet(granteeWallet),
				UserID:  3_000_001,
				Name:    "tuner",
			})
			ov.QueueGrant(&schema.Grant{
				GranteeAddress: domain.NormalizeWallet(granteeWallet),
				UserID:         3_000_001,
				IsApproved:     tc.approved,
			})

			user, err := authz.Authorize(ov, granteeWallet, 3_000_001)
			if tc.wantOK {
				assert.NoError(t, err)
				assert.NotNil(t, user)
			} else {
				rej, ok := domain.AsRejection(err)
				assert.True(t, ok)
				assert.Equal(t, domain.RejectUnauthorized, rej.Code)
			}
		})
	}
}

func TestAuthorize_UserGrantee(t *testing.T) {
	tests := []struct {
		name        string
		approved    *bool
		deactivated bool
		wantOK      bool
	}{
		{"approved", boolPtr(true), false, true},
		{"pending approval", nil, false, false},
		{"rejected", boolPtr(false), false, false},
		{"deactivated grantee", boolPtr(true), true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ov := reconciler.NewOverlay()
			seedUser(ov, 3_000_001, ownerWallet)
			ov.QueueUser(&schema.User{
				UserID:        3_000_002,
				Wallet:        strPtr(granteeWallet),
				IsDeactivated: tc.deactivated,
			})
			ov.QueueGrant(&schema.Grant{
				GranteeAddress: domain.NormalizeWallet(granteeWallet),
				UserID:         3_000_001,
				IsApproved:     tc.approved,
			})

			user, err := authz.Authorize(ov, granteeWallet, 3_000_001)
			if tc.wantOK {
				assert.NoError(t, err)
				assert.Equal(t, int32(3_000_001), user.UserID)
			} else {
				rej, ok := domain.AsRejection(err)
				assert.True(t, ok)
				assert.Equal(t, domain.RejectUnauthorized, rej.Code)
			}
		})
	}
}

func TestAuthorize_DeletedAppIsNotAGrantee(t *testing.T) {
	ov := reconciler.NewOverlay()
	seedUser(ov, 3_000_001, ownerWallet)
	ov.QueueDeveloperApp(&schema.DeveloperApp{
		Address:  domain.NormalizeWallet(granteeWallet),
		UserID:   3_000_001,
		Name:     "tuner",
		IsDelete: true,
	})
	ov.QueueGrant(&schema.Grant{
		GranteeAddress: domain.NormalizeWallet(granteeWallet),
		UserID:         3_000_001,
	})

	// the address no longer resolves to a live app or a user
	_, err := authz.Authorize(ov, granteeWallet, 3_000_001)
	rej, ok := domain.AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, domain.RejectUnauthorized, rej.Code)
}
