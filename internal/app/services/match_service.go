package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/app/repositories"
	"github.com/selim/campusfind/internal/db"
	"github.com/selim/campusfind/internal/pkg/apperrors"
)

// Notes written by the workflow itself.
const (
	claimNotes   = "Item claimed by owner. Awaiting admin resolution."
	resolveNotes = "Match resolved by admin. Item returned."
)

// TxRunner runs a function inside a single storage transaction; every
// statement the function issues commits or rolls back as one unit.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// MatchService is the claim/resolve workflow. It owns every status
// transition of posts and matches:
//
//	lost:  open -> matched -> closed
//	found: available -> matched -> returned
//	match: unresolved -> resolved (exactly once)
type MatchService interface {
	Claim(ctx context.Context, lostID, foundID, claimantUserID string) (int64, error)
	Resolve(ctx context.Context, matchID int64, actingUserID string) error
	ListUnresolved(ctx context.Context) ([]*models.MatchDetail, error)
	ListForUser(ctx context.Context, userID string) ([]*models.MatchDetail, error)
}

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	tx        TxRunner
	lostRepo  repositories.ILostPostRepository
	foundRepo repositories.IFoundPostRepository
	matchRepo repositories.IMatchRepository
	userRepo  repositories.IUserRepository
	logger    zerolog.Logger
}

// NewMatchService creates a new match service instance
func NewMatchService(
	tx TxRunner,
	lostRepo repositories.ILostPostRepository,
	foundRepo repositories.IFoundPostRepository,
	matchRepo repositories.IMatchRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) MatchService {
	return &matchServiceImpl{
		tx:        tx,
		lostRepo:  lostRepo,
		foundRepo: foundRepo,
		matchRepo: matchRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Claim creates a match between an open lost post and an available found
// post. Preconditions are checked in order against row-locked state, so a
// concurrent claim on either post loses cleanly with a wrong-status error.
// The match insert and both status updates commit atomically.
func (s *matchServiceImpl) Claim(ctx context.Context, lostID, foundID, claimantUserID string) (int64, error) {
	var matchID int64

	err := s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		lost, err := s.lostRepo.GetForUpdate(ctx, tx, lostID)
		if err != nil {
			return err
		}
		if lost.Status != models.LostStatusOpen {
			return apperrors.ErrLostPostNotOpen
		}

		found, err := s.foundRepo.GetForUpdate(ctx, tx, foundID)
		if err != nil {
			return err
		}
		if found.Status != models.FoundStatusAvailable {
			return apperrors.ErrFoundPostNotAvailable
		}

		// Only the owner of the lost post may claim a found item for it.
		if lost.UserID != claimantUserID {
			return apperrors.ErrNotPostOwner
		}

		match := &models.Match{
			LostID:          lostID,
			FoundID:         foundID,
			MatchedByUserID: &claimantUserID,
			Notes:           claimNotes,
		}
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return err
		}

		if err := s.lostRepo.UpdateStatus(ctx, tx, lostID, models.LostStatusMatched); err != nil {
			return err
		}
		if err := s.foundRepo.UpdateStatus(ctx, tx, foundID, models.FoundStatusMatched); err != nil {
			return err
		}

		matchID = match.MatchID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().
		Int64("matchId", matchID).
		Str("lostId", lostID).
		Str("foundId", foundID).
		Str("claimantId", claimantUserID).
		Msg("Claim created")

	return matchID, nil
}

// Resolve finalizes a match: the match becomes resolved, the lost post
// closes and the found post is returned, all in one transaction. Only admins
// may resolve, and a match resolves exactly once.
func (s *matchServiceImpl) Resolve(ctx context.Context, matchID int64, actingUserID string) error {
	actor, err := s.userRepo.GetByID(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.ErrAdminRequired
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		match, err := s.matchRepo.GetForUpdate(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.Resolved {
			return apperrors.ErrMatchResolved
		}

		if err := s.matchRepo.MarkResolved(ctx, tx, matchID, resolveNotes); err != nil {
			return err
		}
		if err := s.lostRepo.UpdateStatus(ctx, tx, match.LostID, models.LostStatusClosed); err != nil {
			return err
		}
		if err := s.foundRepo.UpdateStatus(ctx, tx, match.FoundID, models.FoundStatusReturned); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("matchId", matchID).
		Str("resolvedBy", actingUserID).
		Msg("Match resolved")

	return nil
}

// ListUnresolved returns every pending match for the admin view, newest first.
func (s *matchServiceImpl) ListUnresolved(ctx context.Context) ([]*models.MatchDetail, error) {
	return s.matchRepo.ListUnresolved(ctx)
}

// ListForUser returns matches touching any of the user's posts, unresolved
// first then by recency.
func (s *matchServiceImpl) ListForUser(ctx context.Context, userID string) ([]*models.MatchDetail, error) {
	return s.matchRepo.ListByUser(ctx, userID)
}
