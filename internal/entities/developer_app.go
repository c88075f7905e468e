package entities

import (
	"encoding/json"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// developerAppPayload is the bare JSON metadata developer-app transactions carry
type developerAppPayload struct {
	Address          string  `json:"address"`
	Name             string  `json:"name"`
	Description      *string `json:"description"`
	IsPersonalAccess bool    `json:"is_personal_access"`
}

func decodeDeveloperAppPayload(raw string) (*developerAppPayload, error) {
	var payload developerAppPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "developer app metadata is not valid JSON: %v", err)
	}
	if payload.Address == "" {
		return nil, domain.Rejectf(domain.RejectInvalidMetadata, "developer app metadata missing address")
	}
	payload.Address = domain.NormalizeWallet(payload.Address)
	return &payload, nil
}

type developerAppHandler struct{}

// NewDeveloperAppHandler creates the handler for developer app transactions
func NewDeveloperAppHandler() reconciler.Handler {
	return &developerAppHandler{}
}

func (h *developerAppHandler) Kind() domain.EntityKind {
	return domain.KindDeveloperApp
}

func (h *developerAppHandler) Collect(tx *domain.EntityTx, fs *reconciler.FetchSet) {
	payload, err := decodeDeveloperAppPayload(tx.Metadata)
	if err != nil {
		return
	}
	fs.AddDeveloperApp(payload.Address)
}

func (h *developerAppHandler) Apply(p *reconciler.TxParams) error {
	payload, err := decodeDeveloperAppPayload(p.Tx.Metadata)
	if err != nil {
		return err
	}
	switch p.Tx.Action {
	case domain.ActionCreate:
		return h.create(p, payload)
	case domain.ActionDelete:
		return h.delete(p, payload)
	default:
		return rejectAction(p)
	}
}

func (h *developerAppHandler) create(p *reconciler.TxParams, payload *developerAppPayload) error {
	if payload.Name == "" {
		return domain.Rejectf(domain.RejectInvalidField, "developer app requires a name")
	}
	if len(payload.Name) > domain.MaxDeveloperAppNameLength {
		return domain.Rejectf(domain.RejectInvalidField,
			"developer app name exceeds %d characters", domain.MaxDeveloperAppNameLength)
	}
	if existing := p.Overlay.DeveloperApp(payload.Address); existing != nil && !existing.IsDelete {
		return domain.Rejectf(domain.RejectAlreadyExists,
			"developer app %s already registered", payload.Address)
	}
	// an app address cannot double as a user wallet
	if owner := p.Overlay.UserByWallet(payload.Address); owner != nil {
		return domain.Rejectf(domain.RejectAlreadyExists,
			"address %s belongs to user %d", payload.Address, owner.UserID)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}

	row := &schema.DeveloperApp{
		Address:          payload.Address,
		UserID:           p.Tx.UserID,
		Name:             payload.Name,
		Description:      payload.Description,
		IsPersonalAccess: payload.IsPersonalAccess,
	}
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueDeveloperApp(row)
	return nil
}

func (h *developerAppHandler) delete(p *reconciler.TxParams, payload *developerAppPayload) error {
	existing := p.Overlay.DeveloperApp(payload.Address)
	if existing == nil || existing.IsDelete {
		return domain.Rejectf(domain.RejectNotFound, "developer app %s does not exist", payload.Address)
	}
	if existing.UserID != p.Tx.UserID {
		return domain.Rejectf(domain.RejectUnauthorized,
			"developer app %s belongs to user %d, not %d", payload.Address, existing.UserID, p.Tx.UserID)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}

	row := *existing
	row.ID = 0
	row.IsDelete = true
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueDeveloperApp(&row)
	return nil
}
