package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Track represents the tracks table - versioned state for an uploaded track
type Track struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// TrackID is the on-chain track identifier
	TrackID int32 `gorm:"column:track_id;not null;index:idx_tracks_track_id_current" json:"track_id"`
	// OwnerID is the user id of the uploading artist
	OwnerID int32 `gorm:"column:owner_id;not null;index" json:"owner_id"`
	// Title is the track title
	Title *string `gorm:"column:title;type:text" json:"title"`
	// CoverArt is the legacy single-size cover art CID
	CoverArt *string `gorm:"column:cover_art;type:text" json:"cover_art"`
	// CoverArtSizes is the multi-size cover art CID
	CoverArtSizes *string `gorm:"column:cover_art_sizes;type:text" json:"cover_art_sizes"`
	// Genre must be on the genre allowlist
	Genre *string `gorm:"column:genre;type:text" json:"genre"`
	// Mood is the free-form mood label
	Mood *string `gorm:"column:mood;type:text" json:"mood"`
	// Tags is a comma-separated tag list
	Tags *string `gorm:"column:tags;type:text" json:"tags"`
	// Description is capped at 1000 characters
	Description *string `gorm:"column:description;type:text" json:"description"`
	// ISRC is the International Standard Recording Code
	ISRC *string `gorm:"column:isrc;type:text" json:"isrc"`
	// ISWC is the International Standard Musical Work Code
	ISWC *string `gorm:"column:iswc;type:text" json:"iswc"`
	// License is the distribution license label
	License *string `gorm:"column:license;type:text" json:"license"`
	// Duration is the track length in seconds
	Duration int32 `gorm:"column:duration;not null;default:0" json:"duration"`
	// TrackSegments is the transcoded segment manifest
	TrackSegments datatypes.JSON `gorm:"column:track_segments" json:"track_segments"`
	// Download holds the download gating settings
	Download datatypes.JSON `gorm:"column:download" json:"download"`
	// FieldVisibility controls which optional fields clients display
	FieldVisibility datatypes.JSON `gorm:"column:field_visibility" json:"field_visibility"`
	// StemOf links a stem upload to its parent track; cleared on delete
	StemOf datatypes.JSON `gorm:"column:stem_of" json:"stem_of"`
	// RemixOf links a remix to its parent tracks
	RemixOf datatypes.JSON `gorm:"column:remix_of" json:"remix_of"`
	// ReleaseDate is the artist-declared release date string
	ReleaseDate *string `gorm:"column:release_date;type:text" json:"release_date"`
	// MetadataMultihash is the CID of the metadata blob that produced this version
	MetadataMultihash *string `gorm:"column:metadata_multihash;type:text" json:"metadata_multihash"`
	// IsUnlisted hides the track from public listings
	IsUnlisted bool `gorm:"column:is_unlisted;not null;default:false" json:"is_unlisted"`
	// IsDelete is the tombstone flag; deleted tracks keep their history
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Track model
func (Track) TableName() string {
	return "tracks"
}

// PlaylistTrack is one entry of a playlist's contents list
type PlaylistTrack struct {
	TrackID int32 `json:"track"`
	// Time is the unix time the entry was added, preserved across updates
	// that carry the same metadata timestamp
	Time int64 `json:"time"`
	// MetadataTime is the client-declared add time used for entry identity
	MetadataTime int64 `json:"metadata_time,omitempty"`
}

// Playlist represents the playlists table - versioned state for a playlist or album
type Playlist struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// PlaylistID is the on-chain playlist identifier
	PlaylistID int32 `gorm:"column:playlist_id;not null;index:idx_playlists_playlist_id_current" json:"playlist_id"`
	// PlaylistOwnerID is the user id of the owner
	PlaylistOwnerID int32 `gorm:"column:playlist_owner_id;not null;index" json:"playlist_owner_id"`
	// PlaylistName is the display name
	PlaylistName *string `gorm:"column:playlist_name;type:text" json:"playlist_name"`
	// PlaylistContents is the ordered track list with add times
	PlaylistContents datatypes.JSON `gorm:"column:playlist_contents" json:"playlist_contents"`
	// PlaylistImageMultihash is the legacy single-size image CID
	PlaylistImageMultihash *string `gorm:"column:playlist_image_multihash;type:text" json:"playlist_image_multihash"`
	// PlaylistImageSizesMultihash is the multi-size image CID
	PlaylistImageSizesMultihash *string `gorm:"column:playlist_image_sizes_multihash;type:text" json:"playlist_image_sizes_multihash"`
	// Description is capped at 1000 characters
	Description *string `gorm:"column:description;type:text" json:"description"`
	// UPC is the Universal Product Code for albums
	UPC *string `gorm:"column:upc;type:text" json:"upc"`
	// IsAlbum distinguishes albums from playlists; albums only hold the
	// owner's own tracks
	IsAlbum bool `gorm:"column:is_album;not null;default:false" json:"is_album"`
	// IsPrivate hides the playlist; a public playlist can never go private again
	IsPrivate bool `gorm:"column:is_private;not null;default:false" json:"is_private"`
	// IsDelete is the tombstone flag
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`
	// LastAddedTo is the most recent track add time
	LastAddedTo *time.Time `gorm:"column:last_added_to" json:"last_added_to"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Playlist model
func (Playlist) TableName() string {
	return "playlists"
}
