package schema

import "time"

// BlockStamp carries the chain provenance every versioned row is stamped
// with. A logical entity accumulates one row per mutating transaction;
// exactly one of those rows has IsCurrent=true.
type BlockStamp struct {
	// Blockhash of the block that produced this version
	Blockhash string `gorm:"column:blockhash;not null;type:text" json:"blockhash"`
	// Blocknumber of the block that produced this version
	Blocknumber int64 `gorm:"column:blocknumber;not null;index" json:"blocknumber"`
	// Txhash of the transaction that produced this version
	Txhash string `gorm:"column:txhash;not null;type:text" json:"txhash"`
	// IsCurrent marks the row presented as the entity's live state
	IsCurrent bool `gorm:"column:is_current;not null;index" json:"is_current"`
	// CreatedAt is the block timestamp of the version
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	// UpdatedAt is the block timestamp of the latest mutation
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// Stamp restamps the row with new provenance. Used when copying the current
// version into a new one.
func (s *BlockStamp) Stamp(blockhash string, blocknumber int64, txhash string, at time.Time) {
	s.Blockhash = blockhash
	s.Blocknumber = blocknumber
	s.Txhash = txhash
	s.IsCurrent = false
	s.UpdatedAt = at
	if s.CreatedAt.IsZero() {
		s.CreatedAt = at
	}
}
