package schema

// Grant represents the grants table - a delegation from a grantor user to a
// grantee wallet (a developer app or another user's wallet). Keyed by
// (lowercased grantee address, grantor user id).
type Grant struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// GranteeAddress is the lowercased wallet the authority is granted to
	GranteeAddress string `gorm:"column:grantee_address;not null;type:text;index:idx_grants_grantee_user" json:"grantee_address"`
	// UserID is the grantor user id
	UserID int32 `gorm:"column:user_id;not null;index:idx_grants_grantee_user" json:"user_id"`
	// IsRevoked is set by Delete; a revoked grant can be re-created
	IsRevoked bool `gorm:"column:is_revoked;not null;default:false" json:"is_revoked"`
	// IsApproved is nil until the grantee acts on the grant. Developer-app
	// grantees are treated as approved while nil; user-to-user grants
	// require an explicit Approve.
	IsApproved *bool `gorm:"column:is_approved" json:"is_approved"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the Grant model
func (Grant) TableName() string {
	return "grants"
}

// DeveloperApp represents the developer_apps table - a registered API client
// keyed by its lowercased address
type DeveloperApp struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Address is the lowercased app wallet, unique among non-deleted apps
	Address string `gorm:"column:address;not null;type:text;index" json:"address"`
	// UserID is the owning user
	UserID int32 `gorm:"column:user_id;not null;index" json:"user_id"`
	// Name is the display name, required on create
	Name string `gorm:"column:name;not null;type:text" json:"name"`
	// Description is optional
	Description *string `gorm:"column:description;type:text" json:"description"`
	// IsPersonalAccess marks an app auto-created for personal API access
	IsPersonalAccess bool `gorm:"column:is_personal_access;not null;default:false" json:"is_personal_access"`
	// IsDelete is the tombstone flag
	IsDelete bool `gorm:"column:is_delete;not null;default:false" json:"is_delete"`

	BlockStamp `gorm:"embedded"`
}

// TableName specifies the table name for the DeveloperApp model
func (DeveloperApp) TableName() string {
	return "developer_apps"
}
