package schema

// SaveType distinguishes what kind of entity a save or repost points at
type SaveType string

const (
	SaveTypeTrack    SaveType = "track"
	SaveTypePlaylist SaveType = "playlist"
	SaveTypeAlbum    SaveType = "album"
)

// Follow represents the follows table - a versioned follower edge between users
type Follow struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// FollowerUserID is the acting user
	FollowerUserID int32 `gorm:"column:follower_user_id;not null;index:idx_follows_edge" json:"follower_user_id"`
	// FolloweeUserID is the followed user
	FolloweeUserID int32 `gorm:"column:followee_user_id;not null;index:idx_follows_edge" json:"followee_user_id"`
	// IsDelete marks an unfollow
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Follow model
func (Follow) TableName() string {
	return "follows"
}

// Save represents the saves table - a versioned favorite edge from a user to
// a track, playlist or album
type Save struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// UserID is the acting user
	UserID int32 `gorm:"column:user_id;not null;index:idx_saves_edge" json:"user_id"`
	// SaveItemID is the saved entity id
	SaveItemID int32 `gorm:"column:save_item_id;not null;index:idx_saves_edge" json:"save_item_id"`
	// SaveType is track, playlist or album
	SaveType SaveType `gorm:"column:save_type;not null;type:text;index:idx_saves_edge" json:"save_type"`
	// IsDelete marks an unsave
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Save model
func (Save) TableName() string {
	return "saves"
}

// Repost represents the reposts table - a versioned repost edge from a user
// to a track, playlist or album
type Repost struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// UserID is the acting user
	UserID int32 `gorm:"column:user_id;not null;index:idx_reposts_edge" json:"user_id"`
	// RepostItemID is the reposted entity id
	RepostItemID int32 `gorm:"column:repost_item_id;not null;index:idx_reposts_edge" json:"repost_item_id"`
	// RepostType is track, playlist or album
	RepostType SaveType `gorm:"column:repost_type;not null;type:text;index:idx_reposts_edge" json:"repost_type"`
	// IsDelete marks an unrepost
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Repost model
func (Repost) TableName() string {
	return "reposts"
}

// Subscription represents the subscriptions table - a versioned notification
// subscription from one user to another
type Subscription struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// SubscriberID is the acting user
	SubscriberID int32 `gorm:"column:subscriber_id;not null;index:idx_subscriptions_edge" json:"subscriber_id"`
	// UserID is the subscribed-to user
	UserID int32 `gorm:"column:user_id;not null;index:idx_subscriptions_edge" json:"user_id"`
	// IsDelete marks an unsubscribe
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}
