package store

import (
	"context"
	"encoding/json"

	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// GrantRef identifies a grant by its logical key
type GrantRef struct {
	GranteeAddress string
	UserID         int32
}

// EdgeRef identifies a user-to-user edge (follow, subscription)
type EdgeRef struct {
	ActorID  int32
	TargetID int32
}

// ItemRef identifies a user-to-item edge (save, repost)
type ItemRef struct {
	UserID int32
	ItemID int32
	Type   schema.SaveType
}

// RouteReader is the read-only slice of the store handlers use to resolve
// slug collisions while applying a block
type RouteReader interface {
	// MaxTrackRouteCollision returns the highest collision id recorded for
	// (ownerID, titleSlug) and whether any route exists for the pair
	MaxTrackRouteCollision(ctx context.Context, ownerID int32, titleSlug string) (int32, bool, error)
	// MaxPlaylistRouteCollision returns the highest collision id recorded for
	// (ownerID, titleSlug) and whether any route exists for the pair
	MaxPlaylistRouteCollision(ctx context.Context, ownerID int32, titleSlug string) (int32, bool, error)
}

// Store defines the interface for all persistence operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	RouteReader

	// WithinTransaction runs fn against a store bound to one database
	// transaction; returning an error rolls everything back
	WithinTransaction(ctx context.Context, fn func(Store) error) error

	// --- block ledger ---

	// GetCurrentBlock returns the local tip, or nil when the ledger is empty.
	// More than one current block is a corrupted ledger and an error.
	GetCurrentBlock(ctx context.Context) (*schema.Block, error)
	// GetBlock returns a block by hash, nil when absent
	GetBlock(ctx context.Context, blockhash string) (*schema.Block, error)
	// InsertBlock flips the old tip not-current and inserts b as the new tip
	InsertBlock(ctx context.Context, b *schema.Block) error
	// DeleteBlock removes a block row by hash
	DeleteBlock(ctx context.Context, blockhash string) error
	// SetBlockCurrent flips a block's is_current flag
	SetBlockCurrent(ctx context.Context, blockhash string, current bool) error

	// --- current-version prefetch ---

	CurrentUsers(ctx context.Context, ids []int32) ([]*schema.User, error)
	CurrentUsersByWallets(ctx context.Context, wallets []string) ([]*schema.User, error)
	CurrentTracks(ctx context.Context, ids []int32) ([]*schema.Track, error)
	CurrentPlaylists(ctx context.Context, ids []int32) ([]*schema.Playlist, error)
	CurrentGrants(ctx context.Context, refs []GrantRef) ([]*schema.Grant, error)
	CurrentDeveloperApps(ctx context.Context, addresses []string) ([]*schema.DeveloperApp, error)
	CurrentFollows(ctx context.Context, refs []EdgeRef) ([]*schema.Follow, error)
	CurrentSubscriptions(ctx context.Context, refs []EdgeRef) ([]*schema.Subscription, error)
	CurrentSaves(ctx context.Context, refs []ItemRef) ([]*schema.Save, error)
	CurrentReposts(ctx context.Context, refs []ItemRef) ([]*schema.Repost, error)

	// --- version append ---

	FlipUsersNotCurrent(ctx context.Context, ids []int32) error
	FlipTracksNotCurrent(ctx context.Context, ids []int32) error
	FlipPlaylistsNotCurrent(ctx context.Context, ids []int32) error
	FlipGrantsNotCurrent(ctx context.Context, refs []GrantRef) error
	FlipDeveloperAppsNotCurrent(ctx context.Context, addresses []string) error
	FlipFollowsNotCurrent(ctx context.Context, refs []EdgeRef) error
	FlipSubscriptionsNotCurrent(ctx context.Context, refs []EdgeRef) error
	FlipSavesNotCurrent(ctx context.Context, refs []ItemRef) error
	FlipRepostsNotCurrent(ctx context.Context, refs []ItemRef) error
	FlipTrackRoutesNotCurrent(ctx context.Context, trackIDs []int32) error
	FlipPlaylistRoutesNotCurrent(ctx context.Context, playlistIDs []int32) error

	InsertUsers(ctx context.Context, rows []*schema.User) error
	InsertTracks(ctx context.Context, rows []*schema.Track) error
	InsertPlaylists(ctx context.Context, rows []*schema.Playlist) error
	InsertGrants(ctx context.Context, rows []*schema.Grant) error
	InsertDeveloperApps(ctx context.Context, rows []*schema.DeveloperApp) error
	InsertFollows(ctx context.Context, rows []*schema.Follow) error
	InsertSubscriptions(ctx context.Context, rows []*schema.Subscription) error
	InsertSaves(ctx context.Context, rows []*schema.Save) error
	InsertReposts(ctx context.Context, rows []*schema.Repost) error
	InsertTrackRoutes(ctx context.Context, rows []*schema.TrackRoute) error
	InsertPlaylistRoutes(ctx context.Context, rows []*schema.PlaylistRoute) error

	// --- reorg ---

	// GetRevertBlock returns the captured pre-images for a height, nil when absent
	GetRevertBlock(ctx context.Context, blocknumber int64) (*schema.RevertBlock, error)
	// PutRevertBlock stores the pre-images captured while applying a block
	PutRevertBlock(ctx context.Context, rb *schema.RevertBlock) error
	// DeleteRevertBlock drops the pre-images for a reverted height
	DeleteRevertBlock(ctx context.Context, blocknumber int64) error
	// DeleteVersionsAtBlock removes every entity version produced at a height
	DeleteVersionsAtBlock(ctx context.Context, blocknumber int64) error
	// RestoreRows flips the rows captured as pre-images back to current,
	// keyed by table name. The displaced versions survive a revert with
	// is_current=false, so each pre-image is matched against its surviving
	// row; a pre-image whose row is gone is re-inserted instead.
	RestoreRows(ctx context.Context, prev map[string][]json.RawMessage) error
	// RevertRoutesAtBlock deletes route rows produced at a height and
	// promotes the newest remaining route per entity
	RevertRoutesAtBlock(ctx context.Context, blocknumber int64) error

	// --- bookkeeping ---

	// InsertSkippedTransactions records transactions the reconciler rejected
	InsertSkippedTransactions(ctx context.Context, rows []*schema.SkippedTransaction) error

	// GetCheckpoint retrieves an operational checkpoint value, "" when unset
	GetCheckpoint(ctx context.Context, key string) (string, error)
	// SetCheckpoint stores an operational checkpoint value
	SetCheckpoint(ctx context.Context, key, value string) error
}
