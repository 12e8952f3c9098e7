package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx methods shared by *pgxpool.Pool and pgx.Tx.
// Workflow-facing repository methods take a Querier so that the claim and
// resolve operations run every statement on one transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	LostPostRepository  *LostPostRepository
	FoundPostRepository *FoundPostRepository
	MatchRepository     *MatchRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		LostPostRepository:  NewLostPostRepository(db),
		FoundPostRepository: NewFoundPostRepository(db),
		MatchRepository:     NewMatchRepository(db),
	}
}
