package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/chorusnet/discovery-indexer/internal/authz"
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

type playlistHandler struct {
	kind domain.EntityKind
}

// NewPlaylistHandler creates the handler for playlist or album transactions,
// including the save and repost edges that target them
func NewPlaylistHandler(kind domain.EntityKind) reconciler.Handler {
	return &playlistHandler{kind: kind}
}

func (h *playlistHandler) Kind() domain.EntityKind {
	return h.kind
}

func (h *playlistHandler) Collect(tx *domain.EntityTx, fs *reconciler.FetchSet) {
	fs.AddPlaylist(tx.EntityID)
	switch tx.Action {
	case domain.ActionSave, domain.ActionUnsave:
		fs.AddSave(tx.UserID, saveTypeFor(tx.Kind), tx.EntityID)
	case domain.ActionRepost, domain.ActionUnrepost:
		fs.AddRepost(tx.UserID, saveTypeFor(tx.Kind), tx.EntityID)
	case domain.ActionCreate, domain.ActionUpdate:
		// contents reference tracks we need for ownership and timestamps
		for _, id := range contentsTrackIDs(tx.Metadata) {
			fs.AddTrack(id)
		}
	}
}

func (h *playlistHandler) Apply(p *reconciler.TxParams) error {
	switch p.Tx.Action {
	case domain.ActionCreate:
		return h.create(p)
	case domain.ActionUpdate:
		return h.update(p)
	case domain.ActionDelete:
		return h.delete(p)
	case domain.ActionSave, domain.ActionUnsave:
		return applySave(p, saveTypeFor(h.kind))
	case domain.ActionRepost, domain.ActionUnrepost:
		return applyRepost(p, saveTypeFor(h.kind))
	default:
		return rejectAction(p)
	}
}

func (h *playlistHandler) create(p *reconciler.TxParams) error {
	id := p.Tx.EntityID
	if id < domain.PlaylistIDOffset {
		return domain.Rejectf(domain.RejectReservedID, "playlist id %d is below the reserved offset", id)
	}
	if p.Overlay.Playlist(id) != nil {
		return domain.Rejectf(domain.RejectAlreadyExists, "playlist %d already exists", id)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return err
	}

	row := &schema.Playlist{
		PlaylistID:      id,
		PlaylistOwnerID: p.Tx.UserID,
		IsAlbum:         h.kind == domain.KindAlbum,
	}
	if err := h.applyMetadata(p, row, nil); err != nil {
		return err
	}
	if row.PlaylistName == nil {
		return domain.Rejectf(domain.RejectInvalidField, "playlist create requires a name")
	}

	stamp(&row.BlockStamp, p)
	p.Overlay.QueuePlaylist(row)
	return queuePlaylistRoute(p, row.PlaylistOwnerID, id, *row.PlaylistName)
}

func (h *playlistHandler) update(p *reconciler.TxParams) error {
	pl, err := h.ownedPlaylist(p)
	if err != nil {
		return err
	}

	row := *pl
	row.ID = 0
	if err := h.applyMetadata(p, &row, pl); err != nil {
		return err
	}
	// a public playlist stays public
	if !pl.IsPrivate && row.IsPrivate {
		return domain.Rejectf(domain.RejectInvalidField,
			"playlist %d cannot go from public to private", pl.PlaylistID)
	}

	stamp(&row.BlockStamp, p)
	p.Overlay.QueuePlaylist(&row)

	if row.PlaylistName != nil && (pl.PlaylistName == nil || *pl.PlaylistName != *row.PlaylistName) {
		return queuePlaylistRoute(p, row.PlaylistOwnerID, row.PlaylistID, *row.PlaylistName)
	}
	return nil
}

func (h *playlistHandler) delete(p *reconciler.TxParams) error {
	pl, err := h.ownedPlaylist(p)
	if err != nil {
		return err
	}

	row := *pl
	row.ID = 0
	row.IsDelete = true
	stamp(&row.BlockStamp, p)
	p.Overlay.QueuePlaylist(&row)
	return nil
}

func (h *playlistHandler) ownedPlaylist(p *reconciler.TxParams) (*schema.Playlist, error) {
	pl := p.Overlay.Playlist(p.Tx.EntityID)
	if pl == nil || pl.IsDelete {
		return nil, domain.Rejectf(domain.RejectNotFound, "playlist %d does not exist", p.Tx.EntityID)
	}
	if pl.PlaylistOwnerID != p.Tx.UserID {
		return nil, domain.Rejectf(domain.RejectUnauthorized,
			"playlist %d belongs to user %d, not %d", pl.PlaylistID, pl.PlaylistOwnerID, p.Tx.UserID)
	}
	if _, err := authz.Authorize(p.Overlay, p.Tx.Signer, p.Tx.UserID); err != nil {
		return nil, err
	}
	return pl, nil
}

func (h *playlistHandler) applyMetadata(p *reconciler.TxParams, row *schema.Playlist, previous *schema.Playlist) error {
	data := p.Metadata.Data

	if desc := metadata.String(data, "description"); desc != nil {
		if len(*desc) > domain.MaxDescriptionLength {
			return domain.Rejectf(domain.RejectInvalidField,
				"description exceeds %d characters", domain.MaxDescriptionLength)
		}
		row.Description = desc
	}
	if name := metadata.String(data, "playlist_name"); name != nil {
		row.PlaylistName = name
	}
	if upc := metadata.String(data, "upc"); upc != nil {
		row.UPC = upc
	}
	if image := metadata.String(data, "playlist_image_sizes_multihash"); image != nil {
		row.PlaylistImageSizesMultihash = image
	} else if legacy := metadata.String(data, "playlist_image_multihash"); legacy != nil {
		row.PlaylistImageMultihash = legacy
		row.PlaylistImageSizesMultihash = legacy
	}
	if v, ok := metadata.Bool(data, "is_private"); ok {
		row.IsPrivate = v
	}
	if v, ok := metadata.Bool(data, "is_album"); ok && previous == nil {
		row.IsAlbum = v
	}

	if metadata.Has(data, "playlist_contents") {
		var old []schema.PlaylistTrack
		if previous != nil {
			old = decodeContents(previous.PlaylistContents)
		}
		merged, lastAdded, err := h.mergeContents(p, data, old, row)
		if err != nil {
			return err
		}
		body, err := json.Marshal(map[string]interface{}{"track_ids": merged})
		if err != nil {
			return domain.Rejectf(domain.RejectInvalidMetadata, "playlist contents cannot be encoded")
		}
		row.PlaylistContents = datatypes.JSON(body)
		row.LastAddedTo = lastAdded
	}
	return nil
}

// mergeContents rebuilds the track list. An entry carrying the same
// (track, metadata time) pair as a previous entry keeps its original index
// time; genuinely new entries are stamped with the block timestamp. Albums
// silently drop tracks the owner does not own.
func (h *playlistHandler) mergeContents(p *reconciler.TxParams, data map[string]interface{}, old []schema.PlaylistTrack, row *schema.Playlist) ([]schema.PlaylistTrack, *time.Time, error) {
	submitted := metadata.Object(data, "playlist_contents")
	rawEntries, _ := submitted["track_ids"].([]interface{})
	if len(rawEntries) > domain.MaxPlaylistTrackCount {
		return nil, nil, domain.Rejectf(domain.RejectInvalidField,
			"playlist exceeds %d tracks", domain.MaxPlaylistTrackCount)
	}

	type prevKey struct {
		track int32
		mt    int64
	}
	prevTimes := make(map[prevKey]int64, len(old))
	for _, entry := range old {
		mt := entry.MetadataTime
		if mt == 0 {
			mt = entry.Time
		}
		prevTimes[prevKey{entry.TrackID, mt}] = entry.Time
	}

	blockTime := p.Block.Timestamp.Unix()
	merged := make([]schema.PlaylistTrack, 0, len(rawEntries))
	var lastAdded *time.Time

	for _, raw := range rawEntries {
		entry, ok := raw.(map[string]interface{})
		if !ok {
			return nil, nil, domain.Rejectf(domain.RejectInvalidMetadata, "malformed playlist contents entry")
		}
		trackID := metadata.Int32(entry, "track")
		if trackID == nil {
			return nil, nil, domain.Rejectf(domain.RejectInvalidMetadata, "playlist contents entry missing track id")
		}
		mt := int64(0)
		if t := metadata.Int64(entry, "time"); t != nil {
			mt = *t
		}

		if row.IsAlbum {
			track := p.Overlay.Track(*trackID)
			if track == nil || track.IsDelete || track.OwnerID != row.PlaylistOwnerID {
				continue
			}
		}

		indexTime := blockTime
		if t, ok := prevTimes[prevKey{*trackID, mt}]; ok {
			indexTime = t
		}
		merged = append(merged, schema.PlaylistTrack{TrackID: *trackID, Time: indexTime, MetadataTime: mt})

		added := time.Unix(indexTime, 0).UTC()
		if lastAdded == nil || added.After(*lastAdded) {
			lastAdded = &added
		}
	}
	return merged, lastAdded, nil
}

func decodeContents(raw datatypes.JSON) []schema.PlaylistTrack {
	if len(raw) == 0 {
		return nil
	}
	var contents struct {
		TrackIDs []schema.PlaylistTrack `json:"track_ids"`
	}
	if err := json.Unmarshal(raw, &contents); err != nil {
		return nil
	}
	return contents.TrackIDs
}

// contentsTrackIDs loosely pre-parses metadata during the collect pass; bad
// payloads simply contribute nothing and fail properly during apply
func contentsTrackIDs(raw string) []int32 {
	var env struct {
		Data struct {
			PlaylistContents struct {
				TrackIDs []struct {
					Track int32 `json:"track"`
				} `json:"track_ids"`
			} `json:"playlist_contents"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil
	}
	ids := make([]int32, 0, len(env.Data.PlaylistContents.TrackIDs))
	for _, t := range env.Data.PlaylistContents.TrackIDs {
		ids = append(ids, t.Track)
	}
	return ids
}
