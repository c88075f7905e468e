package reconciler

import (
	"github.com/chorusnet/discovery-indexer/internal/domain"
	"github.com/chorusnet/discovery-indexer/internal/store"
	"github.com/chorusnet/discovery-indexer/internal/store/schema"
)

// FetchSet accumulates the entity keys a block's transactions reference so
// the current rows can be prefetched in one round of batched queries.
type FetchSet struct {
	userIDs       map[int32]struct{}
	trackIDs      map[int32]struct{}
	playlistIDs   map[int32]struct{}
	wallets       map[string]struct{}
	appAddresses  map[string]struct{}
	grants        map[store.GrantRef]struct{}
	follows       map[store.EdgeRef]struct{}
	subscriptions map[store.EdgeRef]struct{}
	saves         map[store.ItemRef]struct{}
	reposts       map[store.ItemRef]struct{}
}

// NewFetchSet creates an empty fetch set
func NewFetchSet() *FetchSet {
	return &FetchSet{
		userIDs:       make(map[int32]struct{}),
		trackIDs:      make(map[int32]struct{}),
		playlistIDs:   make(map[int32]struct{}),
		wallets:       make(map[string]struct{}),
		appAddresses:  make(map[string]struct{}),
		grants:        make(map[store.GrantRef]struct{}),
		follows:       make(map[store.EdgeRef]struct{}),
		subscriptions: make(map[store.EdgeRef]struct{}),
		saves:         make(map[store.ItemRef]struct{}),
		reposts:       make(map[store.ItemRef]struct{}),
	}
}

// AddUser requests the current row for a user id
func (f *FetchSet) AddUser(id int32) { f.userIDs[id] = struct{}{} }

// AddTrack requests the current row for a track id
func (f *FetchSet) AddTrack(id int32) { f.trackIDs[id] = struct{}{} }

// AddPlaylist requests the current row for a playlist id
func (f *FetchSet) AddPlaylist(id int32) { f.playlistIDs[id] = struct{}{} }

// AddWallet requests the current user owning a wallet
func (f *FetchSet) AddWallet(wallet string) {
	f.wallets[domain.NormalizeWallet(wallet)] = struct{}{}
}

// AddDeveloperApp requests the current app at an address
func (f *FetchSet) AddDeveloperApp(address string) {
	f.appAddresses[domain.NormalizeWallet(address)] = struct{}{}
}

// AddGrant requests the current grant for (grantee wallet, grantor)
func (f *FetchSet) AddGrant(granteeWallet string, userID int32) {
	f.grants[store.GrantRef{GranteeAddress: domain.NormalizeWallet(granteeWallet), UserID: userID}] = struct{}{}
}

// AddFollow requests the current follow edge
func (f *FetchSet) AddFollow(followerID, followeeID int32) {
	f.follows[store.EdgeRef{ActorID: followerID, TargetID: followeeID}] = struct{}{}
}

// AddSubscription requests the current subscription edge
func (f *FetchSet) AddSubscription(subscriberID, userID int32) {
	f.subscriptions[store.EdgeRef{ActorID: subscriberID, TargetID: userID}] = struct{}{}
}

// AddSave requests the current save edge
func (f *FetchSet) AddSave(userID int32, saveType schema.SaveType, itemID int32) {
	f.saves[store.ItemRef{UserID: userID, ItemID: itemID, Type: saveType}] = struct{}{}
}

// AddRepost requests the current repost edge
func (f *FetchSet) AddRepost(userID int32, repostType schema.SaveType, itemID int32) {
	f.reposts[store.ItemRef{UserID: userID, ItemID: itemID, Type: repostType}] = struct{}{}
}

func (f *FetchSet) userIDList() []int32       { return int32Keys(f.userIDs) }
func (f *FetchSet) trackIDList() []int32      { return int32Keys(f.trackIDs) }
func (f *FetchSet) playlistIDList() []int32   { return int32Keys(f.playlistIDs) }
func (f *FetchSet) walletList() []string      { return stringKeys(f.wallets) }
func (f *FetchSet) appAddressList() []string  { return stringKeys(f.appAddresses) }
func (f *FetchSet) grantList() []store.GrantRef {
	out := make([]store.GrantRef, 0, len(f.grants))
	for r := range f.grants {
		out = append(out, r)
	}
	return out
}

func (f *FetchSet) followList() []store.EdgeRef       { return edgeKeys(f.follows) }
func (f *FetchSet) subscriptionList() []store.EdgeRef { return edgeKeys(f.subscriptions) }
func (f *FetchSet) saveList() []store.ItemRef         { return itemKeys(f.saves) }
func (f *FetchSet) repostList() []store.ItemRef       { return itemKeys(f.reposts) }

func int32Keys(m map[int32]struct{}) []int32 {
	out := make([]int32, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func stringKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func edgeKeys(m map[store.EdgeRef]struct{}) []store.EdgeRef {
	out := make([]store.EdgeRef, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func itemKeys(m map[store.ItemRef]struct{}) []store.ItemRef {
	out := make([]store.ItemRef, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
