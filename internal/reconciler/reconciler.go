package reconciler

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/logger"
	"github.com/chorusnet/discovery-indexer/internal/metadata"
	"github.com/chorusnet/discovery-indexer/internal/store"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// Config holds reconciler settings
type Config struct {
	// OrderCutover is the height at which strict transaction-index ordering
	// became canonical. Blocks below it replay with the historical
	// (kind, action) grouping so old state reproduces byte for byte.
	OrderCutover int64
	// VerifierWallet is the only signer allowed to issue Verify actions
	VerifierWallet string
}

// Outcome summarizes one reconciled block
type Outcome struct {
	// Block is the block the outcome belongs to
	Block domain.BlockRef
	// Mutations is the number of new versions produced (routes included)
	Mutations int
	// Changed lists the touched entity keys per kind, in first-touch order
	Changed map[domain.EntityKind][]domain.RecordKey
	// Skipped is the number of rejected transactions
	Skipped int
}

// Reconciler applies a block's entity transactions against the versioned
// store: batch prefetch, ordered apply over an overlay, then one bulk save.
type Reconciler struct {
	handlers map[domain.EntityKind]Handler
	config   Config
}

// New creates a reconciler dispatching to the given handlers
func New(cfg Config, handlers []Handler) *Reconciler {
	byKind := make(map[domain.EntityKind]Handler, len(handlers))
	for _, h := range handlers {
		byKind[h.Kind()] = h
	}
	return &Reconciler{handlers: byKind, config: cfg}
}

// Reconcile applies txs for one block using st, which the caller has already
// bound to the block's database transaction.
func (r *Reconciler) Reconcile(ctx context.Context, st store.Store, block domain.BlockRef, txs []domain.EntityTx) (*Outcome, error) {
	ordered := r.orderTxs(block, txs)

	fs := NewFetchSet()
	for _, tx := range ordered {
		if !tx.Kind.Valid() || !tx.Action.Valid() {
			continue
		}
		// authorization context for every tx
		fs.AddUser(tx.UserID)
		fs.AddWallet(tx.Signer)
		fs.AddDeveloperApp(tx.Signer)
		fs.AddGrant(tx.Signer, tx.UserID)
		if h, ok := r.handlers[tx.Kind]; ok {
			h.Collect(tx, fs)
		}
	}

	ov := NewOverlay()
	if err := r.prefetch(ctx, st, fs, ov); err != nil {
		return nil, err
	}

	var skipped []*schema.SkippedTransaction
	for _, tx := range ordered {
		err := r.applyOne(ctx, st, block, tx, ov)
		if rej, ok := domain.AsRejection(err); ok {
			logger.WarnCtx(ctx, "transaction rejected",
				zap.String("txhash", tx.TxHash),
				zap.String("kind", string(tx.Kind)),
				zap.String("action", string(tx.Action)),
				zap.String("code", string(rej.Code)),
				zap.String("reason", rej.Reason))
			skipped = append(skipped, &schema.SkippedTransaction{
				Blocknumber: block.Number,
				Blockhash:   block.Hash,
				Txhash:      tx.TxHash,
				Code:        string(rej.Code),
				Reason:      rej.Reason,
			})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply tx %s: %w", tx.TxHash, err)
		}
	}

	outcome, err := r.save(ctx, st, block, ov, skipped)
	if err != nil {
		return nil, err
	}
	outcome.Block = block
	outcome.Skipped = len(skipped)
	return outcome, nil
}

// orderTxs fixes the apply order. Strict transaction-index order is
// canonical; blocks below the cutover keep the historical grouping by
// (kind, action) with input order as the tie-break.
func (r *Reconciler) orderTxs(block domain.BlockRef, txs []domain.EntityTx) []*domain.EntityTx {
	ordered := make([]*domain.EntityTx, len(txs))
	for i := range txs {
		ordered[i] = &txs[i]
	}
	if block.Number >= r.config.OrderCutover {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].TxIndex < ordered[j].TxIndex
		})
	} else {
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].Kind != ordered[j].Kind {
				return ordered[i].Kind < ordered[j].Kind
			}
			return ordered[i].Action < ordered[j].Action
		})
	}
	return ordered
}

func (r *Reconciler) prefetch(ctx context.Context, st store.Store, fs *FetchSet, ov *Overlay) error {
	users, err := st.CurrentUsers(ctx, fs.userIDList())
	if err != nil {
		return err
	}
	walletUsers, err := st.CurrentUsersByWallets(ctx, fs.walletList())
	if err != nil {
		return err
	}
	for _, row := range append(users, walletUsers...) {
		key := domain.IDKey(row.UserID)
		ov.users.seed(key, row)
		if row.Wallet != nil {
			ov.usersByWallet[domain.NormalizeWallet(*row.Wallet)] = key
		}
	}

	tracks, err := st.CurrentTracks(ctx, fs.trackIDList())
	if err != nil {
		return err
	}
	for _, row := range tracks {
		ov.tracks.seed(domain.IDKey(row.TrackID), row)
	}

	playlists, err := st.CurrentPlaylists(ctx, fs.playlistIDList())
	if err != nil {
		return err
	}
	for _, row := range playlists {
		ov.playlists.seed(domain.IDKey(row.PlaylistID), row)
	}

	grants, err := st.CurrentGrants(ctx, fs.grantList())
	if err != nil {
		return err
	}
	for _, row := range grants {
		ov.grants.seed(domain.GrantKey(row.GranteeAddress, row.UserID), row)
	}

	apps, err := st.CurrentDeveloperApps(ctx, fs.appAddressList())
	if err != nil {
		return err
	}
	for _, row := range apps {
		ov.developerApps.seed(domain.AddressKey(row.Address), row)
	}

	follows, err := st.CurrentFollows(ctx, fs.followList())
	if err != nil {
		return err
	}
	for _, row := range follows {
		ov.follows.seed(domain.EdgeKey(row.FollowerUserID, "follow", row.FolloweeUserID), row)
	}

	subs, err := st.CurrentSubscriptions(ctx, fs.subscriptionList())
	if err != nil {
		return err
	}
	for _, row := range subs {
		ov.subscriptions.seed(domain.EdgeKey(row.SubscriberID, "subscribe", row.UserID), row)
	}

	saves, err := st.CurrentSaves(ctx, fs.saveList())
	if err != nil {
		return err
	}
	for _, row := range saves {
		ov.saves.seed(domain.EdgeKey(row.UserID, string(row.SaveType)+"-save", row.SaveItemID), row)
	}

	reposts, err := st.CurrentReposts(ctx, fs.repostList())
	if err != nil {
		return err
	}
	for _, row := range reposts {
		ov.reposts.seed(domain.EdgeKey(row.UserID, string(row.RepostType)+"-repost", row.RepostItemID), row)
	}

	return nil
}

func (r *Reconciler) applyOne(ctx context.Context, st store.Store, block domain.BlockRef, tx *domain.EntityTx, ov *Overlay) error {
	if !tx.Kind.Valid() {
		return domain.Rejectf(domain.RejectInvalidTx, "unknown entity kind %q", tx.Kind)
	}
	if !tx.Action.Valid() {
		return domain.Rejectf(domain.RejectInvalidTx, "unknown action %q", tx.Action)
	}
	h, ok := r.handlers[tx.Kind]
	if !ok {
		return domain.Rejectf(domain.RejectInvalidTx, "no handler for entity kind %q", tx.Kind)
	}

	parsed, err := metadata.Parse(tx.Kind, tx.Action, tx.Metadata)
	if err != nil {
		return err
	}

	return h.Apply(&TxParams{
		Ctx:            ctx,
		Block:          block,
		Tx:             tx,
		Metadata:       parsed,
		Overlay:        ov,
		Routes:         st,
		VerifierWallet: r.config.VerifierWallet,
	})
}

// save flips displaced rows, captures their pre-images, marks the last
// queued version per key current, and bulk-inserts everything.
func (r *Reconciler) save(ctx context.Context, st store.Store, block domain.BlockRef, ov *Overlay, skipped []*schema.SkippedTransaction) (*Outcome, error) {
	outcome := &Outcome{Changed: make(map[domain.EntityKind][]domain.RecordKey)}
	prev := make(map[string][]json.RawMessage)

	capture := func(table string, row interface{}) error {
		b, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to capture pre-image for %s: %w", table, err)
		}
		prev[table] = append(prev[table], b)
		return nil
	}

	// users
	if len(ov.users.keys) > 0 {
		ids := make([]int32, 0, len(ov.users.keys))
		for _, key := range ov.users.keys {
			last := ov.users.queued[key]
			last.IsCurrent = true
			ids = append(ids, last.UserID)
			if old, ok := ov.users.snapshot[key]; ok {
				if err := capture(schema.User{}.TableName(), old); err != nil {
					return nil, err
				}
			}
		}
		if err := st.FlipUsersNotCurrent(ctx, ids); err != nil {
			return nil, err
		}
		if err := st.InsertUsers(ctx, ov.users.finish()); err != nil {
			return nil, err
		}
		outcome.Changed[domain.KindUser] = ov.users.keys
		outcome.Mutations += len(ov.users.order)
	}

	// tracks
	if len(ov.tracks.keys) > 0 {
		ids := make([]int32, 0, len(ov.tracks.keys))
		for _, key := range ov.tracks.keys {
			last := ov.tracks.queued[key]
			last.IsCurrent = true
			ids = append(ids, last.TrackID)
			if old, ok := ov.tracks.snapshot[key]; ok {
				if err := capture(schema.Track{}.TableName(), old); err != nil {
					return nil, err
				}
			}
		}
		if err := st.FlipTracksNotCurrent(ctx, ids); err != nil {
			return nil, err
		}
		if err := st.InsertTracks(ctx, ov.tracks.finish()); err != nil {
			return nil, err
		}
		outcome.Changed[domain.KindTrack] = ov.tracks.keys
		outcome.Mutations += len(ov.tracks.order)
	}

	// playlists
	if len(ov.playlists.keys) > 0 {
		ids := make([]int32, 0, len(ov.playlists.keys))
		for _, key := range ov.playlists.keys {
			last := ov.playlists.queued[key]
			last.IsCurrent = true
			ids = append(ids, last.PlaylistID)
			if old, ok := ov.playlists.snapshot[key]; ok {
				if err := capture(schema.Playlist{}.TableName(), old); err != nil {
					return nil, err
				}
			}
		}
		if err := st.FlipPlaylistsNotCurrent(ctx, ids); err != nil {
			return nil, err
		}
		if err := st.InsertPlaylists(ctx, ov.playlists.finish()); err != nil {
			return nil, err
		}
		outcome.Changed[domain.KindPlaylist] = ov.playlists.keys
		outcome.Mutations += len(ov.playlists.order)
	}

	// grants
	if len(ov.grants.keys) > 0 {
		refs := make([]store.GrantRef, 0, len(ov.grants.keys))
		for _, key := range ov.grants.keys {
			last := ov.grants.queued[key]
			last.IsCurrent = true
			refs = append(refs, store.GrantRef{GranteeAddress: last.GranteeAddress, UserID: last.UserID})
			if old, ok := ov.grants.snapshot[key]; ok {
				if err := capture(schema.Grant{}.TableName(), old); err != nil {
					return nil, err
				}
			}
		}
		if err := st.FlipGrantsNotCurrent(ctx, refs); err != nil {
			return nil, err
		}
		if err := st.InsertGrants(ctx, ov.grants.finish()); err != nil {
			return nil, err
		}
		outcome.Changed[domain.KindGrant] = ov.grants.keys
		outcome.Mutations += len(ov.grants.order)
	}

	// developer apps
	if len(ov.developerApps.keys) > 0 {
		addrs := make([]string, 0, len(ov.developerApps.keys))
		for _, key := range ov.developerApps.keys {
			last := ov.developerApps.queued[key]
			last.IsCurrent = true
			addrs = append(addrs, last.Address)
			if old, ok := ov.developerApps.snapshot[key]; ok {
				if err := capture(schema.DeveloperApp{}.TableName(), old); err != nil {
					return nil, err
				}
			}
		}
		if err := st.FlipDeveloperAppsNotCurrent(ctx, addrs); err != nil {
			return nil, err
		}
		if err := st.InsertDeveloperApps(ctx, ov.developerApps.finish()); err != nil {
			return nil, err
		}
		outcome.Changed[domain.KindDeveloperApp] = ov.developerApps.keys
		outcome.Mutations += len(ov.developerApps.order)
	}

	if err := r.saveSocial(ctx, st, ov, outcome, capture); err != nil {
		return nil, err
	}
	if err := r.saveRoutes(ctx, st, ov, outcome); err != nil {
		return nil, err
	}

	if len(skipped) > 0 {
		if err := st.InsertSkippedTransactions(ctx, skipped); err != nil {
			return nil, err
		}
	}

	if len(prev) > 0 {
		body, err := json.Marshal(prev)
		if err != nil {
			return nil, fmt.Errorf("failed to encode revert pre-images: %w", err)
		}
		err = st.PutRevertBlock(ctx, &schema.RevertBlock{Blocknumber: block.Number, PrevRecords: body})
		if err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

func (r *Reconciler) saveSocial(ctx context.Context, st store.Store, ov *Overlay, outcome *Outcome, capture func(string, interface{}) error) error {
	// follows
	if len(ov.follows.keys) > 0 {
		refs := make([]store.EdgeRef, 0, len(ov.follows.keys))
		for _, key := range ov.follows.keys {
			last := ov.follows.queued[key]
			last.IsCurrent = true
			refs = append(refs, store.EdgeRef{ActorID: last.FollowerUserID, TargetID: last.FolloweeUserID})
			if old, ok := ov.follows.snapshot[key]; ok {
				if err := capture(schema.Follow{}.TableName(), old); err != nil {
					return err
				}
			}
		}
		if err := st.FlipFollowsNotCurrent(ctx, refs); err != nil {
			return err
		}
		if err := st.InsertFollows(ctx, ov.follows.finish()); err != nil {
			return err
		}
		outcome.Mutations += len(ov.follows.order)
	}

	// subscriptions
	if len(ov.subscriptions.keys) > 0 {
		refs := make([]store.EdgeRef, 0, len(ov.subscriptions.keys))
		for _, key := range ov.subscriptions.keys {
			last := ov.subscriptions.queued[key]
			last.IsCurrent = true
			refs = append(refs, store.EdgeRef{ActorID: last.SubscriberID, TargetID: last.UserID})
			if old, ok := ov.subscriptions.snapshot[key]; ok {
				if err := capture(schema.Subscription{}.TableName(), old); err != nil {
					return err
				}
			}
		}
		if err := st.FlipSubscriptionsNotCurrent(ctx, refs); err != nil {
			return err
		}
		if err := st.InsertSubscriptions(ctx, ov.subscriptions.finish()); err != nil {
			return err
		}
		outcome.Mutations += len(ov.subscriptions.order)
	}

	// saves
	if len(ov.saves.keys) > 0 {
		refs := make([]store.ItemRef, 0, len(ov.saves.keys))
		for _, key := range ov.saves.keys {
			last := ov.saves.queued[key]
			last.IsCurrent = true
			refs = append(refs, store.ItemRef{UserID: last.UserID, ItemID: last.SaveItemID, Type: last.SaveType})
			if old, ok := ov.saves.snapshot[key]; ok {
				if err := capture(schema.Save{}.TableName(), old); err != nil {
					return err
				}
			}
		}
		if err := st.FlipSavesNotCurrent(ctx, refs); err != nil {
			return err
		}
		if err := st.InsertSaves(ctx, ov.saves.finish()); err != nil {
			return err
		}
		outcome.Mutations += len(ov.saves.order)
	}

	// reposts
	if len(ov.reposts.keys) > 0 {
		refs := make([]store.ItemRef, 0, len(ov.reposts.keys))
		for _, key := range ov.reposts.keys {
			last := ov.reposts.queued[key]
			last.IsCurrent = true
			refs = append(refs, store.ItemRef{UserID: last.UserID, ItemID: last.RepostItemID, Type: last.RepostType})
			if old, ok := ov.reposts.snapshot[key]; ok {
				if err := capture(schema.Repost{}.TableName(), old); err != nil {
					return err
				}
			}
		}
		if err := st.FlipRepostsNotCurrent(ctx, refs); err != nil {
			return err
		}
		if err := st.InsertReposts(ctx, ov.reposts.finish()); err != nil {
			return err
		}
		outcome.Mutations += len(ov.reposts.order)
	}

	return nil
}

// saveRoutes keeps every queued route row but flips currency so only the
// last route per entity stays linkable
func (r *Reconciler) saveRoutes(ctx context.Context, st store.Store, ov *Overlay, outcome *Outcome) error {
	if len(ov.trackRoutes) > 0 {
		lastByTrack := make(map[int32]*schema.TrackRoute)
		ids := make([]int32, 0, len(ov.trackRoutes))
		for _, route := range ov.trackRoutes {
			if _, ok := lastByTrack[route.TrackID]; !ok {
				ids = append(ids, route.TrackID)
			}
			lastByTrack[route.TrackID] = route
		}
		for _, route := range ov.trackRoutes {
			route.IsCurrent = lastByTrack[route.TrackID] == route
		}
		if err := st.FlipTrackRoutesNotCurrent(ctx, ids); err != nil {
			return err
		}
		if err := st.InsertTrackRoutes(ctx, ov.trackRoutes); err != nil {
			return err
		}
		outcome.Mutations += len(ov.trackRoutes)
	}

	if len(ov.playlistRoutes) > 0 {
		lastByPlaylist := make(map[int32]*schema.PlaylistRoute)
		ids := make([]int32, 0, len(ov.playlistRoutes))
		for _, route := range ov.playlistRoutes {
			if _, ok := lastByPlaylist[route.PlaylistID]; !ok {
				ids = append(ids, route.PlaylistID)
			}
			lastByPlaylist[route.PlaylistID] = route
		}
		for _, route := range ov.playlistRoutes {
			route.IsCurrent = lastByPlaylist[route.PlaylistID] == route
		}
		if err := st.FlipPlaylistRoutesNotCurrent(ctx, ids); err != nil {
			return err
		}
		if err := st.InsertPlaylistRoutes(ctx, ov.playlistRoutes); err != nil {
			return err
		}
		outcome.Mutations += len(ov.playlistRoutes)
	}

	return nil
}
