package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLockHeld is returned when another writer holds the indexing lease
	ErrLockHeld = errors.New("indexing lease held by another writer")

	// ErrNoCurrentBlock is returned when the ledger has no is_current block
	ErrNoCurrentBlock = errors.New("no current block in ledger")

	// ErrBlockNotAvailable is returned when the chain source has not produced
	// the requested block yet
	ErrBlockNotAvailable = errors.New("block not available")

	// ErrForkDetected is returned when the next block does not link to the tip
	ErrForkDetected = errors.New("parent hash does not match local tip")
)

// RejectCode classifies why a transaction was rejected during reconciliation
type RejectCode string

const (
	RejectInvalidMetadata RejectCode = "invalid_metadata"
	RejectUnauthorized    RejectCode = "unauthorized"
	RejectNotFound        RejectCode = "not_found"
	RejectAlreadyExists   RejectCode = "already_exists"
	RejectInvalidField    RejectCode = "invalid_field"
	RejectReservedID      RejectCode = "reserved_id"
	RejectInvalidTx       RejectCode = "invalid_tx"
)

// RejectionError marks a transaction as invalid without aborting the block.
// The reconciler records it and moves on; infrastructure failures are plain
// errors and do abort.
type RejectionError struct {
	Code   RejectCode
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("tx rejected (%s): %s", e.Code, e.Reason)
}

// Rejectf builds a RejectionError with a formatted reason
func Rejectf(code RejectCode, format string, args ...interface{}) *RejectionError {
	return &RejectionError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// AsRejection unwraps err into a RejectionError if it is one
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
