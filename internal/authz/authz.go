package authz

import (
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// Authorize decides whether signer may act as userID. The signer either owns
// the user's wallet directly, or holds an active approved grant from the
// user. Returns the acting user's current row on success and a
// RejectionError otherwise.
func Authorize(ov *reconciler.Overlay, signer string, userID int32) (*schema.User, error) {
	user := ov.User(userID)
	if user == nil {
		return nil, domain.Rejectf(domain.RejectNotFound, "user %d does not exist", userID)
	}
	if user.Wallet == nil {
		return nil, domain.Rejectf(domain.RejectUnauthorized, "user %d has no wallet", userID)
	}

	signerLower := domain.NormalizeWallet(signer)
	if domain.NormalizeWallet(*user.Wallet) == signerLower {
		return user, nil
	}

	grant := ov.Grant(signerLower, userID)
	if grant == nil || grant.IsRevoked {
		return nil, domain.Rejectf(domain.RejectUnauthorized,
			"signer %s has no active grant from user %d", signerLower, userID)
	}

	// developer-app grantee: approval is implicit unless explicitly rescinded
	if app := ov.DeveloperApp(signerLower); app != nil && !app.IsDelete {
		if grant.IsApproved == nil || *grant.IsApproved {
			return user, nil
		}
		return nil, domain.Rejectf(domain.RejectUnauthorized,
			"grant from user %d to app %s was rejected", userID, signerLower)
	}

	// user-to-user grantee: must resolve to a live user and be explicitly approved
	grantee := ov.UserByWallet(signerLower)
	if grantee == nil || grantee.IsDeactivated {
		return nil, domain.Rejectf(domain.RejectUnauthorized,
			"grantee wallet %s does not resolve to an active user or app", signerLower)
	}
	if grant.IsApproved != nil && *grant.IsApproved {
		return user, nil
	}
	return nil, domain.Rejectf(domain.RejectUnauthorized,
		"grant from user %d to %s is not approved", userID, signerLower)
}
