package metadata

import "github.com/chorusnet/discovery-indexer/internal/domain"

// Default metadata templates per entity kind. Create actions merge the
// submitted data onto a copy of the template; a merge that changes nothing
// is rejected as empty metadata.

var userTemplate = map[string]interface{}{
	"handle":                nil,
	"name":                  nil,
	"profile_picture":       nil,
	"profile_picture_sizes": nil,
	"cover_photo":           nil,
	"cover_photo_sizes":     nil,
	"bio":                   nil,
	"location":              nil,
	"artist_pick_track_id":  nil,
	"is_deactivated":        nil,
	"allow_ai_attribution":  nil,
	"playlist_library":      nil,
	"associated_wallets":    nil,
	"collectibles":          nil,
	"events":                nil,
}

var trackTemplate = map[string]interface{}{
	"title":            nil,
	"cover_art":        nil,
	"cover_art_sizes":  nil,
	"genre":            nil,
	"mood":             nil,
	"tags":             nil,
	"description":      nil,
	"isrc":             nil,
	"iswc":             nil,
	"license":          nil,
	"duration":         nil,
	"track_segments":   nil,
	"download":         nil,
	"field_visibility": nil,
	"stem_of":          nil,
	"remix_of":         nil,
	"release_date":     nil,
	"is_unlisted":      nil,
}

var playlistTemplate = map[string]interface{}{
	"playlist_name":                  nil,
	"playlist_contents":              nil,
	"playlist_image_multihash":       nil,
	"playlist_image_sizes_multihash": nil,
	"description":                    nil,
	"upc":                            nil,
	"is_album":                       nil,
	"is_private":                     nil,
}

// Template returns a fresh copy of the default metadata for a kind, or nil
// when the kind has no template (grants, developer apps).
func Template(kind domain.EntityKind) map[string]interface{} {
	var src map[string]interface{}
	switch kind {
	case domain.KindUser:
		src = userTemplate
	case domain.KindTrack:
		src = trackTemplate
	case domain.KindPlaylist, domain.KindAlbum:
		src = playlistTemplate
	default:
		return nil
	}

	out := make(map[string]interface{}, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
