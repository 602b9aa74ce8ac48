package faq

import "context"

// Repository is the durable record store for FAQ entries.
type Repository interface {
	Create(ctx context.Context, question, answer string) (Record, error)
	Get(ctx context.Context, id int64) (Record, bool, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]Record, error)
	// Update applies the non-nil fields of req and refreshes UpdatedAt.
	Update(ctx context.Context, id int64, req UpdateRequest) (Record, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
