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

// IFoundPostRepository defines the interface for found post database
// operations. Status moves only through the workflow methods.
type IFoundPostRepository interface {
	Create(ctx context.Context, post *models.FoundPost) error
	GetByID(ctx context.Context, foundID string) (*models.FoundPost, error)
	ListByStatus(ctx context.Context, status models.FoundStatus) ([]*models.FoundPost, error)
	ListByUser(ctx context.Context, userID string) ([]*models.FoundPost, error)
	Delete(ctx context.Context, foundID string) error
	GetForUpdate(ctx context.Context, q Querier, foundID string) (*models.FoundPost, error)
	UpdateStatus(ctx context.Context, q Querier, foundID string, status models.FoundStatus) error
}

// FoundPostRepository handles database operations for found posts
type FoundPostRepository struct {
	db *pgxpool.Pool
}

// NewFoundPostRepository creates a new found post repository
func NewFoundPostRepository(db *pgxpool.Pool) *FoundPostRepository {
	return &FoundPostRepository{
		db: db,
	}
}

const foundPostColumns = `found_id, user_id, item_name, category, description, date_found, found_location, storage_location, date_posted, status`

func scanFoundPost(row pgx.Row) (*models.FoundPost, error) {
	var post models.FoundPost
	err := row.Scan(
		&post.FoundID,
		&post.UserID,
		&post.ItemName,
		&post.Category,
		&post.Description,
		&post.DateFound,
		&post.FoundLocation,
		&post.StorageLocation,
		&post.DatePosted,
		&post.Status,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new found post in the available state. An empty storage
// location falls back to the schema default.
func (r *FoundPostRepository) Create(ctx context.Context, post *models.FoundPost) error {
	query := `
		INSERT INTO found_posts (found_id, user_id, item_name, category, description, date_found, found_location, storage_location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'Campus Security Office'))
		RETURNING storage_location, date_posted, status
	`

	err := r.db.QueryRow(ctx, query,
		post.FoundID,
		post.UserID,
		post.ItemName,
		post.Category,
		post.Description,
		post.DateFound,
		post.FoundLocation,
		post.StorageLocation,
	).Scan(&post.StorageLocation, &post.DatePosted, &post.Status)
	if err != nil {
		switch {
		case dberrors.IsCheckViolation(err, "found_posts_category_check"):
			return apperrors.ErrInvalidCategory
		case dberrors.IsForeignKeyViolation(err, "found_posts_user_id_fkey"):
			return apperrors.ErrPostOwnerMissing
		case dberrors.IsUniqueViolation(err, "found_posts_pkey"):
			return apperrors.NewCustomError(apperrors.ErrConflict, "found post identifier already exists")
		}
		return fmt.Errorf("error creating found post: %w", err)
	}

	return nil
}

// GetByID retrieves a found post by identifier
func (r *FoundPostRepository) GetByID(ctx context.Context, foundID string) (*models.FoundPost, error) {
	query := `SELECT ` + foundPostColumns + ` FROM found_posts WHERE found_id = $1`

	post, err := scanFoundPost(r.db.QueryRow(ctx, query, foundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFoundPostNotFound
		}
		return nil, fmt.Errorf("error retrieving found post: %w", err)
	}
	return post, nil
}

// ListByStatus retrieves found posts in the given state, newest first.
func (r *FoundPostRepository) ListByStatus(ctx context.Context, status models.FoundStatus) ([]*models.FoundPost, error) {
	query := `
		SELECT ` + foundPostColumns + `
		FROM found_posts
		WHERE status = $1
		ORDER BY date_posted DESC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error listing found posts: %w", err)
	}
	defer rows.Close()

	return collectFoundPosts(rows)
}

// ListByUser retrieves all found posts reported by a user, newest first.
func (r *FoundPostRepository) ListByUser(ctx context.Context, userID string) ([]*models.FoundPost, error) {
	query := `
		SELECT ` + foundPostColumns + `
		FROM found_posts
		WHERE user_id = $1
		ORDER BY date_posted DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing found posts by user: %w", err)
	}
	defer rows.Close()

	return collectFoundPosts(rows)
}

func collectFoundPosts(rows pgx.Rows) ([]*models.FoundPost, error) {
	var posts []*models.FoundPost
	for rows.Next() {
		post, err := scanFoundPost(rows)
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

// Delete removes a found post; dependent matches are cascade-deleted.
func (r *FoundPostRepository) Delete(ctx context.Context, foundID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM found_posts WHERE found_id = $1`, foundID)
	if err != nil {
		return fmt.Errorf("error deleting found post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFoundPostNotFound
	}
	return nil
}

// GetForUpdate locks the found post row for the duration of the surrounding
// transaction, serializing concurrent claims against it.
func (r *FoundPostRepository) GetForUpdate(ctx context.Context, q Querier, foundID string) (*models.FoundPost, error) {
	query := `SELECT ` + foundPostColumns + ` FROM found_posts WHERE found_id = $1 FOR UPDATE`

	post, err := scanFoundPost(q.QueryRow(ctx, query, foundID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFoundPostNotFound
		}
		if dberrors.IsLockTimeout(err) {
			return nil, apperrors.ErrLockTimeout
		}
		return nil, fmt.Errorf("error locking found post: %w", err)
	}
	return post, nil
}

// UpdateStatus moves a found post to a new state. Only the claim/resolve
// workflow calls this, inside its transaction.
func (r *FoundPostRepository) UpdateStatus(ctx context.Context, q Querier, foundID string, status models.FoundStatus) error {
	tag, err := q.Exec(ctx, `UPDATE found_posts SET status = $1 WHERE found_id = $2`, status, foundID)
	if err != nil {
		return fmt.Errorf("error updating found post status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrFoundPostNotFound
	}
	return nil
}
