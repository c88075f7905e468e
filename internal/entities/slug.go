package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chorusnet/discovery-indexer/internal/reconciler"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a display title
func slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "untitled"
	}
	return s
}

// nextTrackSlug resolves the collision-suffixed slug for a track title under
// one owner, consulting both persisted routes and routes queued this block
func nextTrackSlug(p *reconciler.TxParams, ownerID int32, titleSlug string) (string, int32, error) {
	dbMax, dbFound, err := p.Routes.MaxTrackRouteCollision(p.Ctx, ownerID, titleSlug)
	if err != nil {
		return "", 0, err
	}
	pendingMax, pendingFound := p.Overlay.PendingTrackRouteCollision(ownerID, titleSlug)
	return resolveSlug(titleSlug, dbMax, dbFound, pendingMax, pendingFound)
}

// nextPlaylistSlug resolves the collision-suffixed slug for a playlist name
// under one owner
func nextPlaylistSlug(p *reconciler.TxParams, ownerID int32, titleSlug string) (string, int32, error) {
	dbMax, dbFound, err := p.Routes.MaxPlaylistRouteCollision(p.Ctx, ownerID, titleSlug)
	if err != nil {
		return "", 0, err
	}
	pendingMax, pendingFound := p.Overlay.PendingPlaylistRouteCollision(ownerID, titleSlug)
	return resolveSlug(titleSlug, dbMax, dbFound, pendingMax, pendingFound)
}

func resolveSlug(titleSlug string, dbMax int32, dbFound bool, pendingMax int32, pendingFound bool) (string, int32, error) {
	if !dbFound && !pendingFound {
		return titleSlug, 0, nil
	}
	max := dbMax
	if pendingFound && pendingMax > max {
		max = pendingMax
	}
	collision := max + 1
	return fmt.Sprintf("%s-%d", titleSlug, collision), collision, nil
}

// queueTrackRoute produces a route row for a track title, skipping the queue
// when the visible route already carries the same title slug
func queueTrackRoute(p *reconciler.TxParams, ownerID, trackID int32, title string) error {
	titleSlug := slugify(title)
	if pending := p.Overlay.CurrentTrackRoute(trackID); pending != nil && pending.TitleSlug == titleSlug {
		return nil
	}

	slug, collision, err := nextTrackSlug(p, ownerID, titleSlug)
	if err != nil {
		return err
	}
	p.Overlay.QueueTrackRoute(&schema.TrackRoute{
		Slug:        slug,
		TitleSlug:   titleSlug,
		CollisionID: collision,
		OwnerID:     ownerID,
		TrackID:     trackID,
		Blockhash:   p.Block.Hash,
		Blocknumber: p.Block.Number,
		Txhash:      p.Tx.TxHash,
	})
	return nil
}

// queuePlaylistRoute produces a route row for a playlist name, skipping the
// queue when the visible route already carries the same title slug
func queuePlaylistRoute(p *reconciler.TxParams, ownerID, playlistID int32, name string) error {
	titleSlug := slugify(name)
	if pending := p.Overlay.CurrentPlaylistRoute(playlistID); pending != nil && pending.TitleSlug == titleSlug {
		return nil
	}

	slug, collision, err := nextPlaylistSlug(p, ownerID, titleSlug)
	if err != nil {
		return err
	}
	p.Overlay.QueuePlaylistRoute(&schema.PlaylistRoute{
		Slug:        slug,
		TitleSlug:   titleSlug,
		CollisionID: collision,
		OwnerID:     ownerID,
		PlaylistID:  playlistID,
		Blockhash:   p.Block.Hash,
		Blocknumber: p.Block.Number,
		Txhash:      p.Tx.TxHash,
	})
	return nil
}
