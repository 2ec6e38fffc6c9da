package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"together/internal/domain"
)

// Store is the postgres unit of work. Each WithinTx call owns one *sql.Tx for its whole duration.
type Store struct {
	db *sql.DB
}

// NewStore returns a domain.UnitOfWork backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(newTxRepos(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txRepos struct {
	events    domain.EventRepository
	requests  domain.EventRequestRepository
	favorites domain.FavoriteRepository
	users     domain.UserRepository
}

func newTxRepos(db DBTX) *txRepos {
	return &txRepos{
		events:    NewEventRepository(db),
		requests:  NewEventRequestRepository(db),
		favorites: NewFavoriteRepository(db),
		users:     NewUserRepository(db),
	}
}

func (t *txRepos) Events() domain.EventRepository          { return t.events }
func (t *txRepos) Requests() domain.EventRequestRepository { return t.requests }
func (t *txRepos) Favorites() domain.FavoriteRepository    { return t.favorites }
func (t *txRepos) Users() domain.UserRepository            { return t.users }
