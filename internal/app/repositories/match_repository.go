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

// IMatchRepository defines the interface for match database operations.
// Matches are never deleted directly; only post cascades remove them.
type IMatchRepository interface {
	Create(ctx context.Context, q Querier, match *models.Match) error
	GetByID(ctx context.Context, matchID int64) (*models.Match, error)
	GetForUpdate(ctx context.Context, q Querier, matchID int64) (*models.Match, error)
	MarkResolved(ctx context.Context, q Querier, matchID int64, notes string) error
	ListUnresolved(ctx context.Context) ([]*models.MatchDetail, error)
	ListByUser(ctx context.Context, userID string) ([]*models.MatchDetail, error)
}

// MatchRepository handles database operations for matches
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{
		db: db,
	}
}

const matchColumns = `match_id, lost_id, found_id, matched_by_user_id, date_matched, resolved, notes`

func scanMatch(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.MatchID,
		&match.LostID,
		&match.FoundID,
		&match.MatchedByUserID,
		&match.DateMatched,
		&match.Resolved,
		&match.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Create inserts a new unresolved match inside the claim transaction. The
// partial unique indexes back the at-most-one-active-match invariant.
func (r *MatchRepository) Create(ctx context.Context, q Querier, match *models.Match) error {
	query := `
		INSERT INTO matches (lost_id, found_id, matched_by_user_id, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING match_id, date_matched, resolved
	`

	err := q.QueryRow(ctx, query,
		match.LostID,
		match.FoundID,
		match.MatchedByUserID,
		match.Notes,
	).Scan(&match.MatchID, &match.DateMatched, &match.Resolved)
	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err, "uniq_matches_active_lost"):
			return apperrors.ErrLostPostNotOpen
		case dberrors.IsUniqueViolation(err, "uniq_matches_active_found"):
			return apperrors.ErrFoundPostNotAvailable
		case dberrors.IsForeignKeyViolation(err, "matches_lost_id_fkey"):
			return apperrors.ErrLostPostNotFound
		case dberrors.IsForeignKeyViolation(err, "matches_found_id_fkey"):
			return apperrors.ErrFoundPostNotFound
		case dberrors.IsForeignKeyViolation(err, "matches_matched_by_user_id_fkey"):
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error creating match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by identifier
func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1`

	match, err := scanMatch(r.db.QueryRow(ctx, query, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		return nil, fmt.Errorf("error retrieving match: %w", err)
	}
	return match, nil
}

// GetForUpdate locks the match row for the duration of the surrounding
// transaction, so resolve cannot race with itself.
func (r *MatchRepository) GetForUpdate(ctx context.Context, q Querier, matchID int64) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE match_id = $1 FOR UPDATE`

	match, err := scanMatch(q.QueryRow(ctx, query, matchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchNotFound
		}
		if dberrors.IsLockTimeout(err) {
			return nil, apperrors.ErrLockTimeout
		}
		return nil, fmt.Errorf("error locking match: %w", err)
	}
	return match, nil
}

// MarkResolved flips the resolved flag exactly once, inside the resolve
// transaction. The WHERE clause guards against a double resolve.
func (r *MatchRepository) MarkResolved(ctx context.Context, q Querier, matchID int64, notes string) error {
	query := `
		UPDATE matches
		SET resolved = TRUE, notes = $1
		WHERE match_id = $2 AND resolved = FALSE
	`

	tag, err := q.Exec(ctx, query, notes, matchID)
	if err != nil {
		return fmt.Errorf("error resolving match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrMatchResolved
	}
	return nil
}

const matchDetailSelect = `
	SELECT
		m.match_id, m.lost_id, m.found_id, m.matched_by_user_id,
		m.date_matched, m.resolved, m.notes,
		lp.item_name AS lost_item_name,
		fp.item_name AS found_item_name,
		u.name AS matched_by_user_name
	FROM matches m
	JOIN lost_posts lp ON m.lost_id = lp.lost_id
	JOIN found_posts fp ON m.found_id = fp.found_id
	LEFT JOIN users u ON m.matched_by_user_id = u.user_id
`

func collectMatchDetails(rows pgx.Rows) ([]*models.MatchDetail, error) {
	var details []*models.MatchDetail
	for rows.Next() {
		var d models.MatchDetail
		if err := rows.Scan(
			&d.MatchID,
			&d.LostID,
			&d.FoundID,
			&d.MatchedByUserID,
			&d.DateMatched,
			&d.Resolved,
			&d.Notes,
			&d.LostItemName,
			&d.FoundItemName,
			&d.MatchedByUserName,
		); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// ListUnresolved retrieves every pending match for the admin view, newest
// first, enriched with item and claimant display names. The claimant name is
// NULL for rows whose user was deleted.
func (r *MatchRepository) ListUnresolved(ctx context.Context) ([]*models.MatchDetail, error) {
	query := matchDetailSelect + `
		WHERE m.resolved = FALSE
		ORDER BY m.date_matched DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing unresolved matches: %w", err)
	}
	defer rows.Close()

	return collectMatchDetails(rows)
}

// ListByUser retrieves matches touching any post owned by the user,
// unresolved first and then by recency.
func (r *MatchRepository) ListByUser(ctx context.Context, userID string) ([]*models.MatchDetail, error) {
	query := matchDetailSelect + `
		WHERE lp.user_id = $1 OR fp.user_id = $1
		ORDER BY m.resolved ASC, m.date_matched DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing matches by user: %w", err)
	}
	defer rows.Close()

	return collectMatchDetails(rows)
}
