package reconciler

import (
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// layer is one entity kind's view during a reconciliation pass: the
// prefetched snapshot of current rows plus the versions queued so far.
// Queued versions shadow the snapshot so later transactions in the same
// block read their predecessors' writes; the snapshot itself is never
// mutated.
type layer[T any] struct {
	snapshot map[domain.RecordKey]*T
	queued   map[domain.RecordKey]*T
	order    []*T
	keys     []domain.RecordKey
}

func newLayer[T any]() layer[T] {
	return layer[T]{
		snapshot: make(map[domain.RecordKey]*T),
		queued:   make(map[domain.RecordKey]*T),
	}
}

func (l *layer[T]) get(key domain.RecordKey) *T {
	if v, ok := l.queued[key]; ok {
		return v
	}
	return l.snapshot[key]
}

func (l *layer[T]) seed(key domain.RecordKey, v *T) {
	l.snapshot[key] = v
}

func (l *layer[T]) put(key domain.RecordKey, v *T) {
	if _, ok := l.queued[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.queued[key] = v
	l.order = append(l.order, v)
}

// finish returns every queued version in queue order
func (l *layer[T]) finish() []*T {
	return l.order
}

// Overlay is the working set of one reconciliation pass. Handlers read
// entity state through it and queue the new versions they produce.
type Overlay struct {
	users         layer[schema.User]
	tracks        layer[schema.Track]
	playlists     layer[schema.Playlist]
	grants        layer[schema.Grant]
	developerApps layer[schema.DeveloperApp]
	follows       layer[schema.Follow]
	subscriptions layer[schema.Subscription]
	saves         layer[schema.Save]
	reposts       layer[schema.Repost]

	// wallet -> user key, kept in sync as users are seeded and queued so
	// wallet lookups see in-block creations
	usersByWallet map[string]domain.RecordKey

	trackRoutes    []*schema.TrackRoute
	playlistRoutes []*schema.PlaylistRoute
}

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{
		users:         newLayer[schema.User](),
		tracks:        newLayer[schema.Track](),
		playlists:     newLayer[schema.Playlist](),
		grants:        newLayer[schema.Grant](),
		developerApps: newLayer[schema.DeveloperApp](),
		follows:       newLayer[schema.Follow](),
		subscriptions: newLayer[schema.Subscription](),
		saves:         newLayer[schema.Save](),
		reposts:       newLayer[schema.Repost](),
		usersByWallet: make(map[string]domain.RecordKey),
	}
}

// User returns the visible state for a user id, nil when absent
func (o *Overlay) User(id int32) *schema.User {
	return o.users.get(domain.IDKey(id))
}

// UserByWallet returns the visible user owning a wallet, nil when absent
func (o *Overlay) UserByWallet(wallet string) *schema.User {
	key, ok := o.usersByWallet[domain.NormalizeWallet(wallet)]
	if !ok {
		return nil
	}
	return o.users.get(key)
}

// Track returns the visible state for a track id, nil when absent
func (o *Overlay) Track(id int32) *schema.Track {
	return o.tracks.get(domain.IDKey(id))
}

// Playlist returns the visible state for a playlist id, nil when absent
func (o *Overlay) Playlist(id int32) *schema.Playlist {
	return o.playlists.get(domain.IDKey(id))
}

// Grant returns the visible grant for (grantee wallet, grantor), nil when absent
func (o *Overlay) Grant(granteeWallet string, userID int32) *schema.Grant {
	return o.grants.get(domain.GrantKey(granteeWallet, userID))
}

// DeveloperApp returns the visible app at an address, nil when absent
func (o *Overlay) DeveloperApp(address string) *schema.DeveloperApp {
	return o.developerApps.get(domain.AddressKey(address))
}

// Follow returns the visible follow edge, nil when absent
func (o *Overlay) Follow(followerID, followeeID int32) *schema.Follow {
	return o.follows.get(domain.EdgeKey(followerID, "follow", followeeID))
}

// Subscription returns the visible subscription edge, nil when absent
func (o *Overlay) Subscription(subscriberID, userID int32) *schema.Subscription {
	return o.subscriptions.get(domain.EdgeKey(subscriberID, "subscribe", userID))
}

// Save returns the visible save edge, nil when absent
func (o *Overlay) Save(userID int32, saveType schema.SaveType, itemID int32) *schema.Save {
	return o.saves.get(domain.EdgeKey(userID, string(saveType)+"-save", itemID))
}

// Repost returns the visible repost edge, nil when absent
func (o *Overlay) Repost(userID int32, repostType schema.SaveType, itemID int32) *schema.Repost {
	return o.reposts.get(domain.EdgeKey(userID, string(repostType)+"-repost", itemID))
}

// QueueUser queues a new user version and indexes its wallet
func (o *Overlay) QueueUser(row *schema.User) {
	key := domain.IDKey(row.UserID)
	o.users.put(key, row)
	if row.Wallet != nil {
		o.usersByWallet[domain.NormalizeWallet(*row.Wallet)] = key
	}
}

// QueueTrack queues a new track version
func (o *Overlay) QueueTrack(row *schema.Track) {
	o.tracks.put(domain.IDKey(row.TrackID), row)
}

// QueuePlaylist queues a new playlist version
func (o *Overlay) QueuePlaylist(row *schema.Playlist) {
	o.playlists.put(domain.IDKey(row.PlaylistID), row)
}

// QueueGrant queues a new grant version
func (o *Overlay) QueueGrant(row *schema.Grant) {
	o.grants.put(domain.GrantKey(row.GranteeAddress, row.UserID), row)
}

// QueueDeveloperApp queues a new developer app version
func (o *Overlay) QueueDeveloperApp(row *schema.DeveloperApp) {
	o.developerApps.put(domain.AddressKey(row.Address), row)
}

// QueueFollow queues a new follow version
func (o *Overlay) QueueFollow(row *schema.Follow) {
	o.follows.put(domain.EdgeKey(row.FollowerUserID, "follow", row.FolloweeUserID), row)
}

// QueueSubscription queues a new subscription version
func (o *Overlay) QueueSubscription(row *schema.Subscription) {
	o.subscriptions.put(domain.EdgeKey(row.SubscriberID, "subscribe", row.UserID), row)
}

// QueueSave queues a new save version
func (o *Overlay) QueueSave(row *schema.Save) {
	o.saves.put(domain.EdgeKey(row.UserID, string(row.SaveType)+"-save", row.SaveItemID), row)
}

// QueueRepost queues a new repost version
func (o *Overlay) QueueRepost(row *schema.Repost) {
	o.reposts.put(domain.EdgeKey(row.UserID, string(row.RepostType)+"-repost", row.RepostItemID), row)
}

// QueueTrackRoute queues a new track route row
func (o *Overlay) QueueTrackRoute(row *schema.TrackRoute) {
	o.trackRoutes = append(o.trackRoutes, row)
}

// QueuePlaylistRoute queues a new playlist route row
func (o *Overlay) QueuePlaylistRoute(row *schema.PlaylistRoute) {
	o.playlistRoutes = append(o.playlistRoutes, row)
}

// PendingTrackRouteCollision scans in-block queued routes for
// (ownerID, titleSlug) and returns the highest collision id seen
func (o *Overlay) PendingTrackRouteCollision(ownerID int32, titleSlug string) (int32, bool) {
	var max int32
	found := false
	for _, r := range o.trackRoutes {
		if r.OwnerID == ownerID && r.TitleSlug == titleSlug {
			found = true
			if r.CollisionID > max {
				max = r.CollisionID
			}
		}
	}
	return max, found
}

// PendingPlaylistRouteCollision scans in-block queued routes for
// (ownerID, titleSlug) and returns the highest collision id seen
func (o *Overlay) PendingPlaylistRouteCollision(ownerID int32, titleSlug string) (int32, bool) {
	var max int32
	found := false
	for _, r := range o.playlistRoutes {
		if r.OwnerID == ownerID && r.TitleSlug == titleSlug {
			found = true
			if r.CollisionID > max {
				max = r.CollisionID
			}
		}
	}
	return max, found
}

// CurrentTrackRoute returns the queued current route for a track, nil when
// none was produced this block
func (o *Overlay) CurrentTrackRoute(trackID int32) *schema.TrackRoute {
	for i := len(o.trackRoutes) - 1; i >= 0; i-- {
		if o.trackRoutes[i].TrackID == trackID {
			return o.trackRoutes[i]
		}
	}
	return nil
}

// CurrentPlaylistRoute returns the queued current route for a playlist, nil
// when none was produced this block
func (o *Overlay) CurrentPlaylistRoute(playlistID int32) *schema.PlaylistRoute {
	for i := len(o.playlistRoutes) - 1; i >= 0; i-- {
		if o.playlistRoutes[i].PlaylistID == playlistID {
			return o.playlistRoutes[i]
		}
	}
	return nil
}
