package domain

import "context"

// Tx exposes repositories bound to a single unit of work.
type Tx interface {
	Events() EventRepository
	Requests() EventRequestRepository
	Favorites() FavoriteRepository
	Users() UserRepository
}

// UnitOfWork runs fn inside one transaction. The transaction commits when fn returns nil and
// rolls back otherwise; it is always released before WithinTx returns.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
