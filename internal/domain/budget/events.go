package budget

import (
	"context"
	"time"
)

const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
)

// Publisher delivers transaction lifecycle events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type TransactionEvent struct {
	TransactionID     string          `json:"transaction_id"`
	AuthorID          string          `json:"author_id"`
	CategoryID        string          `json:"category_id,omitempty"`
	Type              TransactionType `json:"type,omitempty"`
	AmountCents       int64           `json:"amount_cents"`
	DateOfTransaction string          `json:"date_of_transaction,omitempty"`
	OccurredAt        time.Time       `json:"occurred_at"`
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error {
	return nil
}
