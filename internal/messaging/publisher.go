package messaging

import (
	"context"

	"github.com/chorusnet/discovery-indexer/internal/domain"
)

// ChangeEvent announces the entities of one kind touched by an applied block.
// Downstream services re-read current rows keyed by Keys.
type ChangeEvent struct {
	Blocknumber int64             `json:"blocknumber"`
	Blockhash   string            `json:"blockhash"`
	Kind        domain.EntityKind `json:"kind"`
	Keys        []string          `json:"keys"`
}

// Publisher defines the interface for publishing change events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishChanges publishes one change event
	PublishChanges(ctx context.Context, event *ChangeEvent) error
	// Close closes the connection
	Close()
}
