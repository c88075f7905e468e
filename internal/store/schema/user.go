package schema

import (
	"gorm.io/datatypes"
)

// User represents the users table - versioned profile state for a platform user
type User struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// UserID is the on-chain user identifier (>= the user id offset for
	// entity-manager-created users)
	UserID int32 `gorm:"column:user_id;not null;index:idx_users_user_id_current" json:"user_id"`
	// Handle is the display handle as submitted
	Handle *string `gorm:"column:handle;type:text" json:"handle"`
	// HandleLC is the lowercased handle used for uniqueness checks
	HandleLC *string `gorm:"column:handle_lc;type:text;index" json:"handle_lc"`
	// Wallet is the lowercased wallet that owns the account
	Wallet *string `gorm:"column:wallet;type:text;index" json:"wallet"`
	// Name is the display name
	Name *string `gorm:"column:name;type:text" json:"name"`
	// ProfilePicture is the legacy single-size profile picture CID
	ProfilePicture *string `gorm:"column:profile_picture;type:text" json:"profile_picture"`
	// ProfilePictureSizes is the multi-size profile picture CID
	ProfilePictureSizes *string `gorm:"column:profile_picture_sizes;type:text" json:"profile_picture_sizes"`
	// CoverPhoto is the legacy single-size cover photo CID
	CoverPhoto *string `gorm:"column:cover_photo;type:text" json:"cover_photo"`
	// CoverPhotoSizes is the multi-size cover photo CID
	CoverPhotoSizes *string `gorm:"column:cover_photo_sizes;type:text" json:"cover_photo_sizes"`
	// Bio is the profile bio, capped at 250 characters
	Bio *string `gorm:"column:bio;type:text" json:"bio"`
	// Location is the free-form profile location
	Location *string `gorm:"column:location;type:text" json:"location"`
	// MetadataMultihash is the CID of the metadata blob that produced this version
	MetadataMultihash *string `gorm:"column:metadata_multihash;type:text" json:"metadata_multihash"`
	// ArtistPickTrackID is the track pinned to the top of the profile
	ArtistPickTrackID *int32 `gorm:"column:artist_pick_track_id" json:"artist_pick_track_id"`
	// IsVerified is set by the Verify action signed by the configured verifier
	IsVerified bool `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	// IsDeactivated marks a self-deactivated account
	IsDeactivated bool `gorm:"column:is_deactivated;not null;default:false" json:"is_deactivated"`
	// HasCollectibles is set when the profile exposes a collectibles section
	HasCollectibles bool `gorm:"column:has_collectibles;not null;default:false" json:"has_collectibles"`
	// AllowAIAttribution permits AI-generated works to attribute this user
	AllowAIAttribution bool `gorm:"column:allow_ai_attribution;not null;default:false" json:"allow_ai_attribution"`
	// PlaylistLibrary is the user's playlist folder structure
	PlaylistLibrary datatypes.JSON `gorm:"column:playlist_library" json:"playlist_library"`
	// AssociatedWallets holds signature-proven external wallets per chain
	AssociatedWallets datatypes.JSON `gorm:"column:associated_wallets" json:"associated_wallets"`
	// Events holds signup provenance (referrer, mobile user flag)
	Events datatypes.JSON `gorm:"column:events" json:"events"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
