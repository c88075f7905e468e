package entities

import (
	"encoding/json"
	"strings"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type userHandler struct{}

// NewUserHandler creates the handler for user transactions, including the
// follow and subscribe edges that target users
func NewUserHandler() reconciler.Handler {
	return &userHandler{}
}

func (h *userHandler) Kind() domain.EntityKind {
	return domain.KindUser
}

func (h *userHandler) Collect(tx *domain.EntityTx, fs *reconciler.FetchSet) {
	fs.AddUser(tx.EntityID)
	switch tx.Action {
	case domain.ActionFollow, domain.ActionUnfollow:
		fs.AddFollow(tx.UserID, tx.EntityID)
	case domain.ActionSubscribe, domain.ActionUnsubscribe:
		fs.AddSubscription(tx.UserID, tx.EntityID)
	}
}

func (h *userHandler) Apply(p *reconciler.TxParams) error {
	switch p.Tx.Action {
	case domain.ActionCreate:
		return h.create(p)
	case domain.ActionUpdate:
		return h.update(p)
	case domain.ActionVerify:
		return h.verify(p)
	case domain.ActionFollow, domain.ActionUnfollow:
		return applyFollow(p)
	case domain.ActionSubscribe, domain.ActionUnsubscribe:
		return applySubscription(p)
	default:
		return rejectAction(p)
	}
}

func (h *userHandler) create(p *reconciler.TxParams) error {
	id := p.Tx.EntityID
	if id < domain.UserIDOffset {
		return domain.Rejectf(domain.RejectReservedID, "user id %d is below the reserved offset", id)
	}
	if p.Overlay.User(id) != nil {
		return domain.Rejectf(domain.RejectAlreadyExists, "user %d already exists", id)
	}

	wallet := domain.NormalizeWallet(p.Tx.Signer)
	if app := p.Overlay.DeveloperApp(wallet); app != nil && !app.IsDelete {
		return domain.Rejectf(domain.RejectUnauthorized, "developer apps cannot create users")
	}
	if owner := p.Overlay.UserByWallet(wallet); owner != nil {
		return domain.Rejectf(domain.RejectAlreadyExists,
			"wallet %s already owns user %d", wallet, owner.UserID)
	}

	row := &schema.User{UserID: id, Wallet: &wallet}
	if err := h.applyMetadata(p, row); err != nil {
		return err
	}
	cid := p.Metadata.CID
	row.MetadataMultihash = &cid

	stamp(&row.BlockStamp, p)
	p.Overlay.QueueUser(row)
	return nil
}

func (h *userHandler) update(p *reconciler.TxParams) error {
	if p.Tx.EntityID != p.Tx.UserID {
		return domain.Rejectf(domain.RejectInvalidTx,
			"user update must target the acting user (%d != %d)", p.Tx.EntityID, p.Tx.UserID)
	}
	user, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID)
	if err != nil {
		return err
	}

	row := *user
	row.ID = 0
	if err := h.applyMetadata(p, &row); err != nil {
		return err
	}
	cid := p.Metadata.CID
	row.MetadataMultihash = &cid

	stamp(&row.BlockStamp, p)
	p.Overlay.QueueUser(&row)
	return nil
}

// verify marks a user verified; only the configured verifier may sign it
func (h *userHandler) verify(p *reconciler.TxParams) error {
	if domain.NormalizeWallet(p.Tx.Signer) != domain.NormalizeWallet(p.VerifierWallet) {
		return domain.Rejectf(domain.RejectUnauthorized,
			"verify must be signed by the verifier, got %s", p.Tx.Signer)
	}
	user := p.Overlay.User(p.Tx.EntityID)
	if user == nil {
		return domain.Rejectf(domain.RejectNotFound, "user %d does not exist", p.Tx.EntityID)
	}

	row := *user
	row.ID = 0
	row.IsVerified = true
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueUser(&row)
	return nil
}

// applyMetadata copies the recognized metadata fields onto row. Creates see
// the full template; updates only the fields the client submitted.
func (h *userHandler) applyMetadata(p *reconciler.TxParams, row *schema.User) error {
	data := p.Metadata.Data

	if bio := metadata.String(data, "bio"); bio != nil {
		if len(*bio) > domain.MaxUserBioLength {
			return domain.Rejectf(domain.RejectInvalidField,
				"bio exceeds %d characters", domain.MaxUserBioLength)
		}
		row.Bio = bio
	}
	if handle := metadata.String(data, "handle"); handle != nil {
		lc := strings.ToLower(*handle)
		row.Handle = handle
		row.HandleLC = &lc
	}
	if name := metadata.String(data, "name"); name != nil {
		row.Name = name
	}
	if location := metadata.String(data, "location"); location != nil {
		row.Location = location
	}
	if pick := metadata.Int32(data, "artist_pick_track_id"); pick != nil {
		row.ArtistPickTrackID = pick
	}
	if v, ok := metadata.Bool(data, "is_deactivated"); ok {
		row.IsDeactivated = v
	}
	if v, ok := metadata.Bool(data, "allow_ai_attribution"); ok {
		row.AllowAIAttribution = v
	}
	if library, ok := metadata.Raw(data, "playlist_library"); ok {
		row.PlaylistLibrary = library
	}
	if events, ok := metadata.Raw(data, "events"); ok {
		row.Events = events
	}
	if metadata.Has(data, "collectibles") {
		row.HasCollectibles = len(metadata.Object(data, "collectibles")) > 0
	}

	h.applyImages(data, row)
	h.applyAssociatedWallets(p, data, row)
	return nil
}

// applyImages handles the legacy single-size image fields: a bare
// profile_picture or cover_photo migrates into the sizes column as well
func (h *userHandler) applyImages(data map[string]interface{}, row *schema.User) {
	if sizes := metadata.String(data, "profile_picture_sizes"); sizes != nil {
		row.ProfilePictureSizes = sizes
	} else if legacy := metadata.String(data, "profile_picture"); legacy != nil {
		row.ProfilePicture = legacy
		row.ProfilePictureSizes = legacy
	}
	if sizes := metadata.String(data, "cover_photo_sizes"); sizes != nil {
		row.CoverPhotoSizes = sizes
	} else if legacy := metadata.String(data, "cover_photo"); legacy != nil {
		row.CoverPhoto = legacy
		row.CoverPhotoSizes = legacy
	}
}

// applyAssociatedWallets keeps only the wallets whose ownership proof
// verifies; invalid entries are dropped, not fatal
func (h *userHandler) applyAssociatedWallets(p *reconciler.TxParams, data map[string]interface{}, row *schema.User) {
	submitted := metadata.Object(data, "associated_wallets")
	if submitted == nil {
		return
	}

	verified := make(map[string]interface{}, len(submitted))
	for wallet, rawProof := range submitted {
		proof, ok := rawProof.(map[string]interface{})
		if !ok {
			continue
		}
		sig, _ := proof["signature"].(string)
		chain, _ := proof["chain"].(string)

		var err error
		switch chain {
		case "sol":
			err = authz.VerifySolWalletProof(wallet, p.Tx.UserID, sig)
		default:
			err = authz.VerifyEVMWalletProof(wallet, p.Tx.UserID, sig)
		}
		if err != nil {
			logger.WarnCtx(p.Ctx, "dropping associated wallet with invalid proof",
				zap.Int32("user_id", p.Tx.UserID),
				zap.String("wallet", wallet),
				zap.Error(err))
			continue
		}
		verified[wallet] = map[string]interface{}{"chain": chain}
	}

	if b, err := json.Marshal(verified); err == nil {
		row.AssociatedWallets = datatypes.JSON(b)
	}
}
