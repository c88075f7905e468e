package entities

import (
	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

type trackHandler struct{}

// NewTrackHandler creates the handler for track transactions, including the
// save and repost edges that target tracks
func NewTrackHandler() reconciler.Handler {
	return &trackHandler{}
}

func (h *trackHandler) Kind() domain.EntityKind {
	return domain.KindTrack
}

func (h *trackHandler) Collect(tx *domain.EntityTx, fs *reconciler.FetchSet) {
	fs.AddTrack(tx.EntityID)
	switch tx.Action {
	case domain.ActionSave, domain.ActionUnsave:
		fs.AddSave(tx.UserID, schema.SaveTypeTrack, tx.EntityID)
	case domain.ActionRepost, domain.ActionUnrepost:
		fs.AddRepost(tx.UserID, schema.SaveTypeTrack, tx.EntityID)
	}
}

func (h *trackHandler) Apply(p *reconciler.TxParams) error {
	switch p.Tx.Action {
	case domain.ActionCreate:
		return h.create(p)
	case domain.ActionUpdate:
		return h.update(p)
	case domain.ActionDelete:
		return h.delete(p)
	case domain.ActionSave, domain.ActionUnsave:
		return applySave(p, schema.SaveTypeTrack)
	case domain.ActionRepost, domain.ActionUnrepost:
		return applyRepost(p, schema.SaveTypeTrack)
	default:
		return rejectAction(p)
	}
}

func (h *trackHandler) create(p *reconciler.TxParams) error {
	id := p.Tx.EntityID
	if id < domain.TrackIDOffset {
		return domain.Rejectf(domain.RejectReservedID, "track id %d is below the reserved offset", id)
	}
	if p.Overlay.Track(id) != nil {
		return domain.Rejectf(domain.RejectAlreadyExists, "track %d already exists", id)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}

	row := &schema.Track{TrackID: id, OwnerID: p.Tx.UserID}
	if err := h.applyMetadata(p, row, true); err != nil {
		return err
	}
	if row.Title == nil {
		return domain.Rejectf(domain.RejectInvalidField, "track create requires a title")
	}
	cid := p.Metadata.CID
	row.MetadataMultihash = &cid

	stamp(&row.BlockStamp, p)
	p.Overlay.QueueTrack(row)
	return queueTrackRoute(p, row.OwnerID, id, *row.Title)
}

func (h *trackHandler) update(p *reconciler.TxParams) error {
	track, err := h.ownedTrack(p)
	if err != nil {
		return err
	}

	row := *track
	row.ID = 0
	if err := h.applyMetadata(p, &row, false); err != nil {
		return err
	}
	// a public track stays public
	if track.IsUnlisted != row.IsUnlisted && row.IsUnlisted {
		return domain.Rejectf(domain.RejectInvalidField, "track %d cannot go from public to unlisted", track.TrackID)
	}
	cid := p.Metadata.CID
	row.MetadataMultihash = &cid

	stamp(&row.BlockStamp, p)
	p.Overlay.QueueTrack(&row)

	// routes only move when the title does
	if row.Title != nil && (track.Title == nil || *track.Title != *row.Title) {
		return queueTrackRoute(p, row.OwnerID, row.TrackID, *row.Title)
	}
	return nil
}

func (h *trackHandler) delete(p *reconciler.TxParams) error {
	track, err := h.ownedTrack(p)
	if err != nil {
		return err
	}

	row := *track
	row.ID = 0
	row.IsDelete = true
	row.StemOf = nil
	stamp(&row.BlockStamp, p)
	p.Overlay.QueueTrack(&row)
	return nil
}

// ownedTrack loads the live track and checks ownership and authorization
func (h *trackHandler) ownedTrack(p *reconciler.TxParams) (*schema.Track, error) {
	track := p.Overlay.Track(p.Tx.EntityID)
	if track == nil || track.IsDelete {
		return nil, domain.Rejectf(domain.RejectNotFound, "track %d does not exist", p.Tx.EntityID)
	}
	if track.OwnerID != p.Tx.UserID {
		return nil, domain.Rejectf(domain.RejectUnauthorized,
			"track %d belongs to user %d, not %d", track.TrackID, track.OwnerID, p.Tx.UserID)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return nil, err
	}
	return track, nil
}

func (h *trackHandler) applyMetadata(p *reconciler.TxParams, row *schema.Track, isCreate bool) error {
	data := p.Metadata.Data

	if desc := metadata.String(data, "description"); desc != nil {
		if len(*desc) > domain.MaxDescriptionLength {
			return domain.Rejectf(domain.RejectInvalidField,
				"description exceeds %d characters", domain.MaxDescriptionLength)
		}
		row.Description = desc
	}
	if genre := metadata.String(data, "genre"); genre != nil {
		if !domain.ValidGenre(*genre) {
			return domain.Rejectf(domain.RejectInvalidField, "unknown genre %q", *genre)
		}
		row.Genre = genre
	}
	if title := metadata.String(data, "title"); title != nil {
		row.Title = title
	}
	if mood := metadata.String(data, "mood"); mood != nil {
		row.Mood = mood
	}
	if tags := metadata.String(data, "tags"); tags != nil {
		row.Tags = tags
	}
	if isrc := metadata.String(data, "isrc"); isrc != nil {
		row.ISRC = isrc
	}
	if iswc := metadata.String(data, "iswc"); iswc != nil {
		row.ISWC = iswc
	}
	if license := metadata.String(data, "license"); license != nil {
		row.License = license
	}
	if release := metadata.String(data, "release_date"); release != nil {
		row.ReleaseDate = release
	}
	if duration := metadata.Int32(data, "duration"); duration != nil {
		row.Duration = *duration
	}
	if cover := metadata.String(data, "cover_art_sizes"); cover != nil {
		row.CoverArtSizes = cover
	} else if legacy := metadata.String(data, "cover_art"); legacy != nil {
		row.CoverArt = legacy
		row.CoverArtSizes = legacy
	}
	if segments, ok := metadata.Raw(data, "track_segments"); ok {
		row.TrackSegments = segments
	}
	if download, ok := metadata.Raw(data, "download"); ok {
		row.Download = download
	}
	if visibility, ok := metadata.Raw(data, "field_visibility"); ok {
		row.FieldVisibility = visibility
	}
	if remixOf, ok := metadata.Raw(data, "remix_of"); ok {
		row.RemixOf = remixOf
	}
	if v, ok := metadata.Bool(data, "is_unlisted"); ok {
		row.IsUnlisted = v
	}
	// stems attach at upload and never move afterwards
	if isCreate {
		if stemOf, ok := metadata.Raw(data, "stem_of"); ok {
			row.StemOf = stemOf
		}
	}
	return nil
}
