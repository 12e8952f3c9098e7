package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/pkg/apperrors"
	"github.com/selim/campusfind/internal/pkg/dberrors"
)

// ILostPostRepository defines the interface for lost post database operations.
// There is deliberately no free-form update: status moves only through the
// workflow methods that take a Querier.
type ILostPostRepository interface {
	Create(ctx context.Context, post *models.LostPost) error
	GetByID(ctx context.Context, lostID string) (*models.LostPost, error)
	ListByStatus(ctx context.Context, status models.LostStatus) ([]*models.LostPost, error)
	ListByUser(ctx context.Context, userID string) ([]*models.LostPost, error)
	Delete(ctx context.Context, lostID string) error
	GetForUpdate(ctx context.Context, q Querier, lostID string) (*models.LostPost, error)
	UpdateStatus(ctx context.Context, q Querier, lostID string, status models.LostStatus) error
}

// LostPostRepository handles database operations for lost posts
type LostPostRepository struct {
	db *pgxpool.Pool
}

// NewLostPostRepository creates a new lost post repository
func NewLostPostRepository(db *pgxpool.Pool) *LostPostRepository {
	return &LostPostRepository{
		db: db,
	}
}

const lostPostColumns = `lost_id, user_id, item_name, category, description, date_lost, last_seen_location, date_posted, status`

func scanLostPost(row pgx.Row) (*models.LostPost, error) {
	var post models.LostPost
	err := row.Scan(
		&post.LostID,
		&post.UserID,
		&post.ItemName,
		&post.Category,
		&post.Description,
		&post.DateLost,
		&post.LastSeenLocation,
		&post.DatePosted,
		&post.Status,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new lost post in the open state.
func (r *LostPostRepository) Create(ctx context.Context, post *models.LostPost) error {
	query := `
		INSERT INTO lost_posts (lost_id, user_id, item_name, category, description, date_lost, last_seen_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING date_posted, status
	`

	err := r.db.QueryRow(ctx, query,
		post.LostID,
		post.UserID,
		post.ItemName,
		post.Category,
		post.Description,
		post.DateLost,
		post.LastSeenLocation,
	).Scan(&post.DatePosted, &post.Status)
	if err != nil {
		switch {
		case dberrors.IsCheckViolation(err, "lost_posts_category_check"):
			return apperrors.ErrInvalidCategory
		case dberrors.IsForeignKeyViolation(err, "lost_posts_user_id_fkey"):
			return apperrors.ErrPostOwnerMissing
		case dberrors.IsUniqueViolation(err, "lost_posts_pkey"):
			return apperrors.NewCustomError(apperrors.ErrConflict, "lost post identifier already exists")
		}
		return fmt.Errorf("error creating lost post: %w", err)
	}

	return nil
}

// GetByID retrieves a lost post by identifier
func (r *LostPostRepository) GetByID(ctx context.Context, lostID string) (*models.LostPost, error) {
	query := `SELECT ` + lostPostColumns + ` FROM lost_posts WHERE lost_id = $1`

	post, err := scanLostPost(r.db.QueryRow(ctx, query, lostID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLostPostNotFound
		}
		return nil, fmt.Errorf("error retrieving lost post: %w", err)
	}
	return post, nil
}

// ListByStatus retrieves lost posts in the given state, newest first.
func (r *LostPostRepository) ListByStatus(ctx context.Context, status models.LostStatus) ([]*models.LostPost, error) {
	query := `
		SELECT ` + lostPostColumns + `
		FROM lost_posts
		WHERE status = $1
		ORDER BY date_posted DESC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error listing lost posts: %w", err)
	}
	defer rows.Close()

	return collectLostPosts(rows)
}

// ListByUser retrieves all lost posts owned by a user, newest first.
func (r *LostPostRepository) ListByUser(ctx context.Context, userID string) ([]*models.LostPost, error) {
	query := `
		SELECT ` + lostPostColumns + `
		FROM lost_posts
		WHERE user_id = $1
		ORDER BY date_posted DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing lost posts by user: %w", err)
	}
	defer rows.Close()

	return collectLostPosts(rows)
}

func collectLostPosts(rows pgx.Rows) ([]*models.LostPost, error) {
	var posts []*models.LostPost
	for rows.Next() {
		post, err := scanLostPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes a lost post; dependent matches are cascade-deleted.
func (r *LostPostRepository) Delete(ctx context.Context, lostID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM lost_posts WHERE lost_id = $1`, lostID)
	if err != nil {
		return fmt.Errorf("error deleting lost post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLostPostNotFound
	}
	return nil
}

// GetForUpdate locks the lost post row for the duration of the surrounding
// transaction, serializing concurrent claims against it.
func (r *LostPostRepository) GetForUpdate(ctx context.Context, q Querier, lostID string) (*models.LostPost, error) {
	query := `SELECT ` + lostPostColumns + ` FROM lost_posts WHERE lost_id = $1 FOR UPDATE`

	post, err := scanLostPost(q.QueryRow(ctx, query, lostID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLostPostNotFound
		}
		if dberrors.IsLockTimeout(err) {
			return nil, apperrors.ErrLockTimeout
		}
		return nil, fmt.Errorf("error locking lost post: %w", err)
	}
	return post, nil
}

// UpdateStatus moves a lost post to a new state. Only the claim/resolve
// workflow calls this, inside its transaction.
func (r *LostPostRepository) UpdateStatus(ctx context.Context, q Querier, lostID string, status models.LostStatus) error {
	tag, err := q.Exec(ctx, `UPDATE lost_posts SET status = $1 WHERE lost_id = $2`, status, lostID)
	if err != nil {
		return fmt.Errorf("error updating lost post status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLostPostNotFound
	}
	return nil
}
