package schema

// TrackRoute represents the track_routes table - URL slugs for tracks.
// Unlike entity tables, every produced row stays in place; reverting a block
// deletes the rows at that height and promotes the newest remaining row.
type TrackRoute struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Slug is the full slug including any collision suffix
	Slug string `gorm:"column:slug;not null;type:text;index:idx_track_routes_owner_slug" json:"slug"`
	// TitleSlug is the collision-free base slug derived from the title
	TitleSlug string `gorm:"column:title_slug;not null;type:text" json:"title_slug"`
	// CollisionID disambiguates identical title slugs under one owner
	CollisionID int32 `gorm:"column:collision_id;not null;default:0" json:"collision_id"`
	// OwnerID is the track owner's user id
	OwnerID int32 `gorm:"column:owner_id;not null;index:idx_track_routes_owner_slug" json:"owner_id"`
	// TrackID is the routed track
	TrackID int32 `gorm:"column:track_id;not null;index" json:"track_id"`
	// IsCurrent marks the slug clients should generate links with
	IsCurrent bool `gorm:"column:is_current;not null" json:"is_current"`
	// Blockhash of the block that produced this route
	Blockhash string `gorm:"column:blockhash;not null;type:text" json:"blockhash"`
	// Blocknumber of the block that produced this route
	Blocknumber int64 `gorm:"column:blocknumber;not null;index" json:"blocknumber"`
	// Txhash of the transaction that produced this route
	Txhash string `gorm:"column:txhash;not null;type:text" json:"txhash"`
}

// TableName specifies the table name for the TrackRoute model
func (TrackRoute) TableName() string {
	return "track_routes"
}

// PlaylistRoute represents the playlist_routes table - URL slugs for
// playlists and albums, with the same revert semantics as track routes
type PlaylistRoute struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Slug is the full slug including any collision suffix
	Slug string `gorm:"column:slug;not null;type:text;index:idx_playlist_routes_owner_slug" json:"slug"`
	// TitleSlug is the collision-free base slug derived from the name
	TitleSlug string `gorm:"column:title_slug;not null;type:text" json:"title_slug"`
	// CollisionID disambiguates identical title slugs under one owner
	CollisionID int32 `gorm:"column:collision_id;not null;default:0" json:"collision_id"`
	// OwnerID is the playlist owner's user id
	OwnerID int32 `gorm:"column:owner_id;not null;index:idx_playlist_routes_owner_slug" json:"owner_id"`
	// PlaylistID is the routed playlist
	PlaylistID int32 `gorm:"column:playlist_id;not null;index" json:"playlist_id"`
	// IsCurrent marks the slug clients should generate links with
	IsCurrent bool `gorm:"column:is_current;not null" json:"is_current"`
	// Blockhash of the block that produced this route
	Blockhash string `gorm:"column:blockhash;not null;type:text" json:"blockhash"`
	// Blocknumber of the block that produced this route
	Blocknumber int64 `gorm:"column:blocknumber;not null;index" json:"blocknumber"`
	// Txhash of the transaction that produced this route
	Txhash string `gorm:"column:txhash;not null;type:text" json:"txhash"`
}

// TableName specifies the table name for the PlaylistRoute model
func (PlaylistRoute) TableName() string {
	return "playlist_routes"
}
