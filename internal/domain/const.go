package domain

// Reserved id offsets. IDs below the offset belong to the legacy registry
// contracts; the indexer only accepts entity creation at or above them.
const (
	PlaylistIDOffset int32 = 400_000
	TrackIDOffset    int32 = 2_000_000
	UserIDOffset     int32 = 3_000_000
)

// Field length limits enforced during validation
const (
	MaxUserBioLength          = 250
	MaxDescriptionLength      = 1000
	MaxPlaylistTrackCount     = 5000
	MaxDeveloperAppNameLength = 50
)

// OffsetFor returns the reserved id offset for the given kind, or 0 when the
// kind is not id-addressed.
func OffsetFor(k EntityKind) int32 {
	switch k {
	case KindUser:
		return UserIDOffset
	case KindTrack:
		return TrackIDOffset
	case KindPlaylist, KindAlbum:
		return PlaylistIDOffset
	}
	return 0
}

// genres is the allowlist for the track genre field
var genres = map[string]struct{}{}

func init() {
	for _, g := range []string{
		"All Genres", "Electronic", "Rock", "Metal", "Alternative",
		"Hip-Hop/Rap", "Experimental", "Punk", "Folk", "Pop", "Ambient",
		"Soundtrack", "World", "Jazz", "Acoustic", "Funk", "R&B/Soul",
		"Devotional", "Classical", "Reggae", "Podcasts", "Country",
		"Spoken Word", "Comedy", "Blues", "Kids", "Audiobooks", "Latin",
		"Lo-Fi", "Hyperpop", "Dancehall",
		"Techno", "Trap", "House", "Tech House", "Deep House", "Disco",
		"Electro", "Jungle", "Progressive House", "Hardstyle",
		"Glitch Hop", "Trance", "Future Bass", "Future House",
		"Tropical House", "Downtempo", "Drum & Bass", "Dubstep",
		"Jersey Club", "Vaporwave", "Moombahton",
	} {
		genres[g] = struct{}{}
	}
}

// ValidGenre reports whether g is on the genre allowlist. The empty string
// is allowed so that partial updates can leave the genre untouched.
func ValidGenre(g string) bool {
	if g == "" {
		return true
	}
	_, ok := genres[g]
	return ok
}
