package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Block represents the blocks table - the local ledger of indexed chain blocks.
// Exactly one row has IsCurrent=true at any time; it is the local tip.
type Block struct {
	// Blockhash is the block's hash and the primary key
	Blockhash string `gorm:"column:blockhash;primaryKey;type:text" json:"blockhash"`
	// Parenthash links the block to its predecessor
	Parenthash string `gorm:"column:parenthash;type:text" json:"parenthash"`
	// Number is the block height
	Number int64 `gorm:"column:number;not null;uniqueIndex" json:"number"`
	// IsCurrent marks the local tip
	IsCurrent bool `gorm:"column:is_current;not null;index" json:"is_current"`
	// CreatedAt is when the block was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Block model
func (Block) TableName() string {
	return "blocks"
}

// RevertBlock stores the serialized pre-images of every row a block's
// reconciliation displaced, keyed by table name. Reverting the block
// re-inserts these rows verbatim.
type RevertBlock struct {
	// Blocknumber is the height whose displaced rows are captured
	Blocknumber int64 `gorm:"column:blocknumber;primaryKey" json:"blocknumber"`
	// PrevRecords maps table name to the JSON rows that were current before
	// the block was applied
	PrevRecords datatypes.JSON `gorm:"column:prev_records;not null" json:"prev_records"`
}

// TableName specifies the table name for the RevertBlock model
func (RevertBlock) TableName() string {
	return "revert_blocks"
}

// SkippedTransaction records a transaction the reconciler rejected, with the
// reason, so operators can audit what was dropped and why.
type SkippedTransaction struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Blocknumber int64     `gorm:"column:blocknumber;not null;index" json:"blocknumber"`
	Blockhash   string    `gorm:"column:blockhash;not null;type:text" json:"blockhash"`
	Txhash      string    `gorm:"column:txhash;not null;type:text" json:"txhash"`
	Code        string    `gorm:"column:code;not null;type:text" json:"code"`
	Reason      string    `gorm:"column:reason;not null;type:text" json:"reason"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SkippedTransaction model
func (SkippedTransaction) TableName() string {
	return "skipped_transactions"
}
