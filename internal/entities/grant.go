package entities

import (
	"encoding/json"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// grantPayload is the bare JSON metadata grant transactions carry
type grantPayload struct {
	GranteeAddress string `json:"grantee_address"`
}

func decodeGrantPayload(raw string) (*grantPayload, error) {
	var payload grantPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "grant metadata is not valid JSON: %v", err)
	}
	if payload.GranteeAddress == "" {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "grant metadata missing grantee_address")
	}
	payload.GranteeAddress = domain.NormalizeWallet(payload.GranteeAddress)
	return &payload, nil
}

type grantHandler struct{}

// NewGrantHandler creates the handler for grant transactions
func NewGrantHandler() reconciler.Handler {
	return &grantHandler{}
}

func (h *grantHandler) Kind() domain.EntityKind {
	return domain.KindGrant
}

func (h *grantHandler) Collect(tx *domain.EntityTx, fs *reconciler.FetchSet) {
	payload, err := decodeGrantPayload(tx.Metadata)
	if err != nil {
		return
	}
	fs.AddGrant(payload.GranteeAddress, tx.UserID)
	fs.AddDeveloperApp(payload.GranteeAddress)
	fs.AddWallet(payload.GranteeAddress)
}

func (h *grantHandler) Apply(p *reconciler.TxParams) error {
	payload, err := decodeGrantPayload(p.Tx.Metadata)
	if err != nil {
		return err
	}
	switch p.Tx.Action {
	case domain.ActionCreate:
		return h.create(p, payload)
	case domain.ActionApprove:
		return h.approve(p, payload, true)
	case domain.ActionReject:
		return h.approve(p, payload, false)
	case domain.ActionDelete:
		return h.revoke(p, payload)
	default:
		return rejectAction(p)
	}
}

func (h *grantHandler) create(p *reconciler.TxParams, payload *grantPayload) error {
	grantor, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID)
	if err != nil {
		return err
	}
	if grantor.Wallet != nil && domain.NormalizeWallet(*grantor.Wallet) == payload.GranteeAddress {
		return domain.Rejectf(domain.RejectInvalidField,
			"user %d cannot grant to their own wallet", p.Tx.UserID)
	}

	// the grantee must resolve to something that can act on the grant
	app := p.Overlay.DeveloperApp(payload.GranteeAddress)
	granteeIsApp := app != nil && !app.IsDelete
	granteeUser := p.Overlay.UserByWallet(payload.GranteeAddress)
	if !granteeIsApp && granteeUser == nil {
		return domain.Rejectf(domain.RejectNotFound,
			"grantee %s is neither a developer app nor a user wallet", payload.GranteeAddress)
	}

	existing := p.Overlay.Grant(payload.GranteeAddress, p.Tx.UserID)
	if existing != nil && !existing.IsRevoked {
		return domain.Rejectf(domain.RejectAlreadyExists,
			"grant from user %d to %s already active", p.Tx.UserID, payload.GranteeAddress)
	}

	// re-creating a revoked grant starts the approval lifecycle over
	row := &schema.Grant{
		GranteeAddress: payload.GranteeAddress,
		UserID:         p.Tx.UserID,
		IsRevoked:      false,
		IsApproved:     nil,
	}
	if existing != nil {
		row.CreatedAt = existing.CreatedAt
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueGrant(row)
	return nil
}

// approve handles both Approve and Reject: only the grantee of a
// user-to-user grant acts on it, by signing with the grantee wallet
func (h *grantHandler) approve(p *reconciler.TxParams, payload *grantPayload, approved bool) error {
	if domain.NormalizeWallet(p.Tx.Signer) != payload.GranteeAddress {
		return domain.Rejectf(domain.RejectUnauthorized,
			"grant decisions must be signed by the grantee %s", payload.GranteeAddress)
	}
	grantee := p.Overlay.UserByWallet(payload.GranteeAddress)
	if grantee == nil || grantee.IsDeactivated {
		return domain.Rejectf(domain.RejectNotFound,
			"grantee wallet %s does not resolve to an active user", payload.GranteeAddress)
	}

	existing := p.Overlay.Grant(payload.GranteeAddress, p.Tx.UserID)
	if existing == nil || existing.IsRevoked {
		return domain.Rejectf(domain.RejectNotFound,
			"no active grant from user %d to %s", p.Tx.UserID, payload.GranteeAddress)
	}

	row := *existing
	row.ID = 0
	row.IsApproved = &approved
	if !approved {
		// a rejected grant is dead; the grantor may re-create it later
		row.IsRevoked = true
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueGrant(&row)
	return nil
}

// revoke tombstones a grant; the grantor or the grantee may do it
func (h *grantHandler) revoke(p *reconciler.TxParams, payload *grantPayload) error {
	existing := p.Overlay.Grant(payload.GranteeAddress, p.Tx.UserID)
	if existing == nil || existing.IsRevoked {
		return domain.Rejectf(domain.RejectNotFound,
			"no active grant from user %d to %s", p.Tx.UserID, payload.GranteeAddress)
	}

	signer := domain.NormalizeWallet(p.Tx.Signer)
	if signer != payload.GranteeAddress {
		grantor := p.Overlay.User(p.Tx.UserID)
		if grantor == nil || grantor.Wallet == nil || domain.NormalizeWallet(*grantor.Wallet) != signer {
			return domain.Rejectf(domain.RejectUnauthorized,
				"grant revocation must be signed by the grantor or grantee")
		}
	}

	row := *existing
	row.ID = 0
	row.IsRevoked = true
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueGrant(&row)
	return nil
}
