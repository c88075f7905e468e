package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EntityKind identifies the kind of entity a manage-entity transaction targets
type EntityKind string

const (
	KindUser         EntityKind = "User"
	KindTrack        EntityKind = "Track"
	KindPlaylist     EntityKind = "Playlist"
	KindAlbum        EntityKind = "Album"
	KindGrant        EntityKind = "Grant"
	KindDeveloperApp EntityKind = "DeveloperApp"
)

// Valid reports whether the kind is one the indexer knows how to handle
func (k EntityKind) Valid() bool {
	switch k {
	case KindUser, KindTrack, KindPlaylist, KindAlbum, KindGrant, KindDeveloperApp:
		return true
	}
	return false
}

// Action identifies the operation a manage-entity transaction performs
type Action string

const (
	ActionCreate      Action = "Create"
	ActionUpdate      Action = "Update"
	ActionDelete      Action = "Delete"
	ActionVerify      Action = "Verify"
	ActionFollow      Action = "Follow"
	ActionUnfollow    Action = "Unfollow"
	ActionSave        Action = "Save"
	ActionUnsave      Action = "Unsave"
	ActionRepost      Action = "Repost"
	ActionUnrepost    Action = "Unrepost"
	ActionSubscribe   Action = "Subscribe"
	ActionUnsubscribe Action = "Unsubscribe"
	ActionApprove     Action = "Approve"
	ActionReject      Action = "Reject"
)

// Valid reports whether the action is one the indexer knows how to handle
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionVerify,
		ActionFollow, ActionUnfollow, ActionSave, ActionUnsave,
		ActionRepost, ActionUnrepost, ActionSubscribe, ActionUnsubscribe,
		ActionApprove, ActionReject:
		return true
	}
	return false
}

// IsSocial reports whether the action is a social edge mutation. Social
// actions carry no metadata envelope and are idempotent in both directions.
func (a Action) IsSocial() bool {
	switch a {
	case ActionFollow, ActionUnfollow, ActionSave, ActionUnsave,
		ActionRepost, ActionUnrepost, ActionSubscribe, ActionUnsubscribe:
		return true
	}
	return false
}

// CarriesMetadata reports whether a transaction with this action and kind is
// expected to carry a cid/data metadata envelope.
func CarriesMetadata(a Action, k EntityKind) bool {
	if a.IsSocial() || a == ActionApprove || a == ActionReject || a == ActionVerify || a == ActionDelete {
		return false
	}
	switch k {
	case KindGrant, KindDeveloperApp:
		// bare JSON payloads, no envelope; the handler decodes them itself
		return false
	}
	return a == ActionCreate || a == ActionUpdate
}

// EntityTx is one decoded manage-entity transaction. The chain source has
// already recovered the signer from the transaction signature; wire-level
// decoding never reaches this layer.
type EntityTx struct {
	TxHash   string
	TxIndex  int
	UserID   int32
	Kind     EntityKind
	EntityID int32
	Action   Action
	Metadata string
	Signer   string
}

// BlockRef carries the chain coordinates every produced version is stamped with
type BlockRef struct {
	Number     int64
	Hash       string
	ParentHash string
	Timestamp  time.Time
}

// BlockData is a fetched block together with its decoded entity transactions
type BlockData struct {
	BlockRef
	Txs []EntityTx
}

// NormalizeWallet lowercases a wallet address for storage and comparison.
// Wallet matching is case-insensitive everywhere.
func NormalizeWallet(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// ChecksumWallet returns the EIP-55 form of an EVM address for display
func ChecksumWallet(addr string) string {
	return common.HexToAddress(addr).Hex()
}

// RecordKey identifies a logical entity inside a reconciliation pass.
// Keys are plain strings so that one overlay map serves every kind.
type RecordKey string

// IDKey keys entities addressed by numeric id (users, tracks, playlists)
func IDKey(id int32) RecordKey {
	return RecordKey(fmt.Sprintf("%d", id))
}

// GrantKey keys grants by (grantee wallet, grantor user id)
func GrantKey(granteeWallet string, userID int32) RecordKey {
	return RecordKey(fmt.Sprintf("%s|%d", NormalizeWallet(granteeWallet), userID))
}

// AddressKey keys developer apps by their lowercased address
func AddressKey(addr string) RecordKey {
	return RecordKey(NormalizeWallet(addr))
}

// EdgeKey keys social edges by actor, edge name and target
func EdgeKey(userID int32, edge string, targetID int32) RecordKey {
	return RecordKey(fmt.Sprintf("%d|%s|%d", userID, edge, targetID))
}
