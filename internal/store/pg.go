package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults: 20 open, 5 idle,
// 5 minute lifetime, 10 minute idle time.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// calculateSafeBatchSize computes a bulk-insert batch size that stays under
// PostgreSQL's 65535 bind-parameter limit. Each record consumes one parameter
// per field; a fixed headroom covers gorm bookkeeping.
func calculateSafeBatchSize(totalRecords, fieldsPerRecord int) int {
	const maxParams = 65535
	const headroom = 1000

	if fieldsPerRecord <= 0 {
		fieldsPerRecord = 1
	}
	size := (maxParams - headroom) / fieldsPerRecord
	if size < 1 {
		size = 1
	}
	if totalRecords > 0 && size > totalRecords {
		size = totalRecords
	}
	return size
}

// WithinTransaction runs fn against a store bound to one database transaction
func (s *pgStore) WithinTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// --- block ledger ---

// GetCurrentBlock returns the local tip, or nil when the ledger is empty
func (s *pgStore) GetCurrentBlock(ctx context.Context) (*schema.Block, error) {
	var blocks []*schema.Block
	err := s.db.WithContext(ctx).Where("is_current = ?", true).Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current block: %w", err)
	}
	switch len(blocks) {
	case 0:
		return nil, nil
	case 1:
		return blocks[0], nil
	default:
		return nil, fmt.Errorf("ledger corrupted: %d current blocks", len(blocks))
	}
}

// GetBlock returns a block by hash, nil when absent
func (s *pgStore) GetBlock(ctx context.Context, blockhash string) (*schema.Block, error) {
	var b schema.Block
	err := s.db.WithContext(ctx).Where("blockhash = ?", blockhash).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get block %s: %w", blockhash, err)
	}
	return &b, nil
}

// InsertBlock flips the old tip not-current and inserts b as the new tip
func (s *pgStore) InsertBlock(ctx context.Context, b *schema.Block) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Block{}).
		Where("is_current = ?", true).
		Update("is_current", false).Error
	if err != nil {
		return fmt.Errorf("failed to flip old tip: %w", err)
	}

	b.IsCurrent = true
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to insert block %d: %w", b.Number, err)
	}
	return nil
}

// DeleteBlock removes a block row by hash
func (s *pgStore) DeleteBlock(ctx context.Context, blockhash string) error {
	err := s.db.WithContext(ctx).Where("blockhash = ?", blockhash).Delete(&schema.Block{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete block %s: %w", blockhash, err)
	}
	return nil
}

// SetBlockCurrent flips a block's is_current flag
func (s *pgStore) SetBlockCurrent(ctx context.Context, blockhash string, current bool) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Block{}).
		Where("blockhash = ?", blockhash).
		Update("is_current", current).Error
	if err != nil {
		return fmt.Errorf("failed to set block %s current=%t: %w", blockhash, current, err)
	}
	return nil
}

// --- current-version prefetch ---

func fetchCurrent[T any, K comparable](ctx context.Context, db *gorm.DB, column string, keys []K) ([]*T, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var rows []*T
	err := db.WithContext(ctx).
		Where("is_current = ?", true).
		Where(column+" IN ?", keys).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current rows by %s: %w", column, err)
	}
	return rows, nil
}

func fetchCurrentTuples[T any](ctx context.Context, db *gorm.DB, columns string, tuples [][]interface{}) ([]*T, error) {
	if len(tuples) == 0 {
		return nil, nil
	}
	var rows []*T
	err := db.WithContext(ctx).
		Where("is_current = ?", true).
		Where("("+columns+") IN ?", tuples).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current rows by (%s): %w", columns, err)
	}
	return rows, nil
}

func grantTuples(refs []GrantRef) [][]interface{} {
	tuples := make([][]interface{}, 0, len(refs))
	for _, r := range refs {
		tuples = append(tuples, []interface{}{r.GranteeAddress, r.UserID})
	}
	return tuples
}

func edgeTuples(refs []EdgeRef) [][]interface{} {
	tuples := make([][]interface{}, 0, len(refs))
	for _, r := range refs {
		tuples = append(tuples, []interface{}{r.ActorID, r.TargetID})
	}
	return tuples
}

func itemTuples(refs []ItemRef) [][]interface{} {
	tuples := make([][]interface{}, 0, len(refs))
	for _, r := range refs {
		tuples = append(tuples, []interface{}{r.UserID, r.ItemID, r.Type})
	}
	return tuples
}

func (s *pgStore) CurrentUsers(ctx context.Context, ids []int32) ([]*schema.User, error) {
	return fetchCurrent[schema.User](ctx, s.db, "user_id", ids)
}

func (s *pgStore) CurrentUsersByWallets(ctx context.Context, wallets []string) ([]*schema.User, error) {
	return fetchCurrent[schema.User](ctx, s.db, "wallet", wallets)
}

func (s *pgStore) CurrentTracks(ctx context.Context, ids []int32) ([]*schema.Track, error) {
	return fetchCurrent[schema.Track](ctx, s.db, "track_id", ids)
}

func (s *pgStore) CurrentPlaylists(ctx context.Context, ids []int32) ([]*schema.Playlist, error) {
	return fetchCurrent[schema.Playlist](ctx, s.db, "playlist_id", ids)
}

func (s *pgStore) CurrentGrants(ctx context.Context, refs []GrantRef) ([]*schema.Grant, error) {
	return fetchCurrentTuples[schema.Grant](ctx, s.db, "grantee_address, user_id", grantTuples(refs))
}

func (s *pgStore) CurrentDeveloperApps(ctx context.Context, addresses []string) ([]*schema.DeveloperApp, error) {
	return fetchCurrent[schema.DeveloperApp](ctx, s.db, "address", addresses)
}

func (s *pgStore) CurrentFollows(ctx context.Context, refs []EdgeRef) ([]*schema.Follow, error) {
	return fetchCurrentTuples[schema.Follow](ctx, s.db, "follower_user_id, followee_user_id", edgeTuples(refs))
}

func (s *pgStore) CurrentSubscriptions(ctx context.Context, refs []EdgeRef) ([]*schema.Subscription, error) {
	return fetchCurrentTuples[schema.Subscription](ctx, s.db, "subscriber_id, user_id", edgeTuples(refs))
}

func (s *pgStore) CurrentSaves(ctx context.Context, refs []ItemRef) ([]*schema.Save, error) {
	return fetchCurrentTuples[schema.Save](ctx, s.db, "user_id, save_item_id, save_type", itemTuples(refs))
}

func (s *pgStore) CurrentReposts(ctx context.Context, refs []ItemRef) ([]*schema.Repost, error) {
	return fetchCurrentTuples[schema.Repost](ctx, s.db, "user_id, repost_item_id, repost_type", itemTuples(refs))
}

// --- version append ---

func flipNotCurrent[K comparable](ctx context.Context, db *gorm.DB, model interface{}, column string, keys []K) error {
	if len(keys) == 0 {
		return nil
	}
	err := db.WithContext(ctx).
		Model(model).
		Where("is_current = ?", true).
		Where(column+" IN ?", keys).
		Update("is_current", false).Error
	if err != nil {
		return fmt.Errorf("failed to flip current rows by %s: %w", column, err)
	}
	return nil
}

func flipNotCurrentTuples(ctx context.Context, db *gorm.DB, model interface{}, columns string, tuples [][]interface{}) error {
	if len(tuples) == 0 {
		return nil
	}
	err := db.WithContext(ctx).
		Model(model).
		Where("is_current = ?", true).
		Where("("+columns+") IN ?", tuples).
		Update("is_current", false).Error
	if err != nil {
		return fmt.Errorf("failed to flip current rows by (%s): %w", columns, err)
	}
	return nil
}

func (s *pgStore) FlipUsersNotCurrent(ctx context.Context, ids []int32) error {
	return flipNotCurrent(ctx, s.db, &schema.User{}, "user_id", ids)
}

func (s *pgStore) FlipTracksNotCurrent(ctx context.Context, ids []int32) error {
	return flipNotCurrent(ctx, s.db, &schema.Track{}, "track_id", ids)
}

func (s *pgStore) FlipPlaylistsNotCurrent(ctx context.Context, ids []int32) error {
	return flipNotCurrent(ctx, s.db, &schema.Playlist{}, "playlist_id", ids)
}

func (s *pgStore) FlipGrantsNotCurrent(ctx context.Context, refs []GrantRef) error {
	return flipNotCurrentTuples(ctx, s.db, &schema.Grant{}, "grantee_address, user_id", grantTuples(refs))
}

func (s *pgStore) FlipDeveloperAppsNotCurrent(ctx context.Context, addresses []string) error {
	return flipNotCurrent(ctx, s.db, &schema.DeveloperApp{}, "address", addresses)
}

func (s *pgStore) FlipFollowsNotCurrent(ctx context.Context, refs []EdgeRef) error {
	return flipNotCurrentTuples(ctx, s.db, &schema.Follow{}, "follower_user_id, followee_user_id", edgeTuples(refs))
}

func (s *pgStore) FlipSubscriptionsNotCurrent(ctx context.Context, refs []EdgeRef) error {
	return flipNotCurrentTuples(ctx, s.db, &schema.Subscription{}, "subscriber_id, user_id", edgeTuples(refs))
}

func (s *pgStore) FlipSavesNotCurrent(ctx context.Context, refs []ItemRef) error {
	return flipNotCurrentTuples(ctx, s.db, &schema.Save{}, "user_id, save_item_id, save_type", itemTuples(refs))
}

func (s *pgStore) FlipRepostsNotCurrent(ctx context.Context, refs []ItemRef) error {
	return flipNotCurrentTuples(ctx, s.db, &schema.Repost{}, "user_id, repost_item_id, repost_type", itemTuples(refs))
}

func (s *pgStore) FlipTrackRoutesNotCurrent(ctx context.Context, trackIDs []int32) error {
	return flipNotCurrent(ctx, s.db, &schema.TrackRoute{}, "track_id", trackIDs)
}

func (s *pgStore) FlipPlaylistRoutesNotCurrent(ctx context.Context, playlistIDs []int32) error {
	return flipNotCurrent(ctx, s.db, &schema.PlaylistRoute{}, "playlist_id", playlistIDs)
}

func insertBatch[T any](ctx context.Context, db *gorm.DB, rows []*T, fieldsPerRecord int) error {
	if len(rows) == 0 {
		return nil
	}
	batch := calculateSafeBatchSize(len(rows), fieldsPerRecord)
	if err := db.WithContext(ctx).CreateInBatches(rows, batch).Error; err != nil {
		return fmt.Errorf("failed to insert %d rows: %w", len(rows), err)
	}
	return nil
}

func (s *pgStore) InsertUsers(ctx context.Context, rows []*schema.User) error {
	return insertBatch(ctx, s.db, rows, 27)
}

func (s *pgStore) InsertTracks(ctx context.Context, rows []*schema.Track) error {
	return insertBatch(ctx, s.db, rows, 28)
}

func (s *pgStore) InsertPlaylists(ctx context.Context, rows []*schema.Playlist) error {
	return insertBatch(ctx, s.db, rows, 20)
}

func (s *pgStore) InsertGrants(ctx context.Context, rows []*schema.Grant) error {
	return insertBatch(ctx, s.db, rows, 11)
}

func (s *pgStore) InsertDeveloperApps(ctx context.Context, rows []*schema.DeveloperApp) error {
	return insertBatch(ctx, s.db, rows, 13)
}

func (s *pgStore) InsertFollows(ctx context.Context, rows []*schema.Follow) error {
	return insertBatch(ctx, s.db, rows, 10)
}

func (s *pgStore) InsertSubscriptions(ctx context.Context, rows []*schema.Subscription) error {
	return insertBatch(ctx, s.db, rows, 10)
}

func (s *pgStore) InsertSaves(ctx context.Context, rows []*schema.Save) error {
	return insertBatch(ctx, s.db, rows, 11)
}

func (s *pgStore) InsertReposts(ctx context.Context, rows []*schema.Repost) error {
	return insertBatch(ctx, s.db, rows, 11)
}

func (s *pgStore) InsertTrackRoutes(ctx context.Context, rows []*schema.TrackRoute) error {
	return insertBatch(ctx, s.db, rows, 10)
}

func (s *pgStore) InsertPlaylistRoutes(ctx context.Context, rows []*schema.PlaylistRoute) error {
	return insertBatch(ctx, s.db, rows, 10)
}

// --- routes ---

func maxRouteCollision(ctx context.Context, db *gorm.DB, model interface{}, ownerID int32, titleSlug string) (int32, bool, error) {
	var max *int32
	err := db.WithContext(ctx).
		Model(model).
		Where("owner_id = ? AND title_slug = ?", ownerID, titleSlug).
		Select("max(collision_id)").
		Scan(&max).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to query route collisions: %w", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}

func (s *pgStore) MaxTrackRouteCollision(ctx context.Context, ownerID int32, titleSlug string) (int32, bool, error) {
	return maxRouteCollision(ctx, s.db, &schema.TrackRoute{}, ownerID, titleSlug)
}

func (s *pgStore) MaxPlaylistRouteCollision(ctx context.Context, ownerID int32, titleSlug string) (int32, bool, error) {
	return maxRouteCollision(ctx, s.db, &schema.PlaylistRoute{}, ownerID, titleSlug)
}

// --- reorg ---

// GetRevertBlock returns the captured pre-images for a height, nil when absent
func (s *pgStore) GetRevertBlock(ctx context.Context, blocknumber int64) (*schema.RevertBlock, error) {
	var rb schema.RevertBlock
	err := s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).First(&rb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get revert block %d: %w", blocknumber, err)
	}
	return &rb, nil
}

// PutRevertBlock stores the pre-images captured while applying a block
func (s *pgStore) PutRevertBlock(ctx context.Context, rb *schema.RevertBlock) error {
	if err := s.db.WithContext(ctx).Create(rb).Error; err != nil {
		return fmt.Errorf("failed to put revert block %d: %w", rb.Blocknumber, err)
	}
	return nil
}

// DeleteRevertBlock drops the pre-images for a reverted height
func (s *pgStore) DeleteRevertBlock(ctx context.Context, blocknumber int64) error {
	err := s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Delete(&schema.RevertBlock{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete revert block %d: %w", blocknumber, err)
	}
	return nil
}

// versionedModels lists every table whose rows are displaced and restored
// during a revert. Routes are excluded; they have their own revert path.
var versionedModels = []interface{}{
	&schema.User{},
	&schema.Track{},
	&schema.Playlist{},
	&schema.Grant{},
	&schema.DeveloperApp{},
	&schema.Follow{},
	&schema.Subscription{},
	&schema.Save{},
	&schema.Repost{},
}

// DeleteVersionsAtBlock removes every entity version produced at a height
func (s *pgStore) DeleteVersionsAtBlock(ctx context.Context, blocknumber int64) error {
	for _, model := range versionedModels {
		err := s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Delete(model).Error
		if err != nil {
			return fmt.Errorf("failed to delete versions at block %d: %w", blocknumber, err)
		}
	}
	return nil
}

// restoreRows flips each captured pre-image's surviving row back to
// current. Displaced versions are flipped, not deleted, when a block is
// applied, so after DeleteVersionsAtBlock the prior version is still on
// disk with is_current=false; re-inserting the pre-image would duplicate
// it. match builds the where clause locating that surviving row. A
// pre-image with no surviving row is re-inserted as captured.
func restoreRows[T any](ctx context.Context, db *gorm.DB, raw []json.RawMessage, match func(*T) map[string]interface{}) error {
	for _, r := range raw {
		var row T
		if err := json.Unmarshal(r, &row); err != nil {
			return fmt.Errorf("failed to decode pre-image: %w", err)
		}
		res := db.WithContext(ctx).Model(new(T)).Where(match(&row)).Update("is_current", true)
		if res.Error != nil {
			return fmt.Errorf("failed to flip pre-image row current: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			if err := db.WithContext(ctx).Create(&row).Error; err != nil {
				return fmt.Errorf("failed to re-insert pre-image row: %w", err)
			}
		}
	}
	return nil
}

// RestoreRows flips the rows captured as pre-images back to current,
// keyed by table name. Rows are matched by entity key and provenance.
func (s *pgStore) RestoreRows(ctx context.Context, prev map[string][]json.RawMessage) error {
	for table, raw := range prev {
		if len(raw) == 0 {
			continue
		}
		var err error
		switch table {
		case schema.User{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.User) map[string]interface{} {
				return map[string]interface{}{"user_id": r.UserID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Track{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Track) map[string]interface{} {
				return map[string]interface{}{"track_id": r.TrackID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Playlist{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Playlist) map[string]interface{} {
				return map[string]interface{}{"playlist_id": r.PlaylistID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Grant{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Grant) map[string]interface{} {
				return map[string]interface{}{"grantee_address": r.GranteeAddress, "user_id": r.UserID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.DeveloperApp{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.DeveloperApp) map[string]interface{} {
				return map[string]interface{}{"address": r.Address, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Follow{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Follow) map[string]interface{} {
				return map[string]interface{}{"follower_user_id": r.FollowerUserID, "followee_user_id": r.FolloweeUserID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Subscription{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Subscription) map[string]interface{} {
				return map[string]interface{}{"subscriber_id": r.SubscriberID, "user_id": r.UserID, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Save{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Save) map[string]interface{} {
				return map[string]interface{}{"user_id": r.UserID, "save_item_id": r.SaveItemID, "save_type": r.SaveType, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		case schema.Repost{}.TableName():
			err = restoreRows(ctx, s.db, raw, func(r *schema.Repost) map[string]interface{} {
				return map[string]interface{}{"user_id": r.UserID, "repost_item_id": r.RepostItemID, "repost_type": r.RepostType, "blocknumber": r.Blocknumber, "txhash": r.Txhash}
			})
		default:
			return fmt.Errorf("unknown pre-image table %q", table)
		}
		if err != nil {
			return fmt.Errorf("failed to restore %s: %w", table, err)
		}
	}
	return nil
}

// RevertRoutesAtBlock deletes route rows produced at a height and promotes
// the newest remaining route per entity, preferring the lexically first slug
// on equal heights
func (s *pgStore) RevertRoutesAtBlock(ctx context.Context, blocknumber int64) error {
	if err := s.revertTrackRoutes(ctx, blocknumber); err != nil {
		return err
	}
	return s.revertPlaylistRoutes(ctx, blocknumber)
}

func (s *pgStore) revertTrackRoutes(ctx context.Context, blocknumber int64) error {
	var affected []schema.TrackRoute
	err := s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Find(&affected).Error
	if err != nil {
		return fmt.Errorf("failed to load track routes at block %d: %w", blocknumber, err)
	}
	if len(affected) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Delete(&schema.TrackRoute{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete track routes at block %d: %w", blocknumber, err)
	}

	seen := make(map[int32]struct{})
	for _, route := range affected {
		if _, ok := seen[route.TrackID]; ok {
			continue
		}
		seen[route.TrackID] = struct{}{}

		var prev schema.TrackRoute
		err := s.db.WithContext(ctx).
			Where("track_id = ? AND blocknumber < ?", route.TrackID, blocknumber).
			Order("blocknumber desc, slug asc").
			First(&prev).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("failed to find previous track route: %w", err)
		}

		err = s.db.WithContext(ctx).
			Model(&schema.TrackRoute{}).
			Where("id = ?", prev.ID).
			Update("is_current", true).Error
		if err != nil {
			return fmt.Errorf("failed to promote track route: %w", err)
		}
	}
	return nil
}

func (s *pgStore) revertPlaylistRoutes(ctx context.Context, blocknumber int64) error {
	var affected []schema.PlaylistRoute
	err := s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Find(&affected).Error
	if err != nil {
		return fmt.Errorf("failed to load playlist routes at block %d: %w", blocknumber, err)
	}
	if len(affected) == 0 {
		return nil
	}

	err = s.db.WithContext(ctx).Where("blocknumber = ?", blocknumber).Delete(&schema.PlaylistRoute{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete playlist routes at block %d: %w", blocknumber, err)
	}

	seen := make(map[int32]struct{})
	for _, route := range affected {
		if _, ok := seen[route.PlaylistID]; ok {
			continue
		}
		seen[route.PlaylistID] = struct{}{}

		var prev schema.PlaylistRoute
		err := s.db.WithContext(ctx).
			Where("playlist_id = ? AND blocknumber < ?", route.PlaylistID, blocknumber).
			Order("blocknumber desc, slug asc").
			First(&prev).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return fmt.Errorf("failed to find previous playlist route: %w", err)
		}

		err = s.db.WithContext(ctx).
			Model(&schema.PlaylistRoute{}).
			Where("id = ?", prev.ID).
			Update("is_current", true).Error
		if err != nil {
			return fmt.Errorf("failed to promote playlist route: %w", err)
		}
	}
	return nil
}

// --- bookkeeping ---

// InsertSkippedTransactions records transactions the reconciler rejected
func (s *pgStore) InsertSkippedTransactions(ctx context.Context, rows []*schema.SkippedTransaction) error {
	return insertBatch(ctx, s.db, rows, 7)
}

// GetCheckpoint retrieves an operational checkpoint value, "" when unset
func (s *pgStore) GetCheckpoint(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get checkpoint %s: %w", key, err)
	}
	return kv.Value, nil
}

// SetCheckpoint stores an operational checkpoint value
func (s *pgStore) SetCheckpoint(ctx context.Context, key, value string) error {
	kv := schema.KeyValueStore{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set checkpoint %s: %w", key, err)
	}
	return nil
}
