package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/app/models/dto"
	"github.com/selim/campusfind/internal/app/repositories"
	"github.com/selim/campusfind/internal/pkg/apperrors"
)

// PostService defines the interface for lost/found post operations. Status is
// never touched here; only the match workflow transitions it.
type PostService interface {
	CreateLostPost(ctx context.Context, userID string, req *dto.CreateLostPostRequest) (*models.LostPost, error)
	GetLostPost(ctx context.Context, lostID string) (*models.LostPost, error)
	ListLostPosts(ctx context.Context, status models.LostStatus) ([]*models.LostPost, error)
	ListLostPostsByUser(ctx context.Context, userID string) ([]*models.LostPost, error)
	DeleteLostPost(ctx context.Context, lostID, actingUserID string) error

	CreateFoundPost(ctx context.Context, userID string, req *dto.CreateFoundPostRequest) (*models.FoundPost, error)
	GetFoundPost(ctx context.Context, foundID string) (*models.FoundPost, error)
	ListFoundPosts(ctx context.Context, status models.FoundStatus) ([]*models.FoundPost, error)
	ListFoundPostsByUser(ctx context.Context, userID string) ([]*models.FoundPost, error)
	DeleteFoundPost(ctx context.Context, foundID, actingUserID string) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	lostRepo  repositories.ILostPostRepository
	foundRepo repositories.IFoundPostRepository
	userRepo  repositories.IUserRepository
	logger    zerolog.Logger
}

// NewPostService creates a new post service instance
func NewPostService(
	lostRepo repositories.ILostPostRepository,
	foundRepo repositories.IFoundPostRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		lostRepo:  lostRepo,
		foundRepo: foundRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// parsePostDate accepts the YYYY-MM-DD form dates arrive in; empty is fine.
func parsePostDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}
	return &t, nil
}

// CreateLostPost validates and inserts a new lost item report.
func (s *postServiceImpl) CreateLostPost(ctx context.Context, userID string, req *dto.CreateLostPostRequest) (*models.LostPost, error) {
	if !models.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, req.Category)
	}
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", apperrors.ErrValidationFailed)
	}

	dateLost, err := parsePostDate(req.DateLost)
	if err != nil {
		return nil, err
	}

	post := &models.LostPost{
		LostID:           newPostID("lost"),
		UserID:           userID,
		ItemName:         strings.TrimSpace(req.ItemName),
		Category:         req.Category,
		Description:      req.Description,
		DateLost:         dateLost,
		LastSeenLocation: req.LastSeenLocation,
	}

	if err := s.lostRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("lostId", post.LostID).Str("userId", userID).Msg("Lost post created")
	return post, nil
}

// GetLostPost retrieves a single lost post.
func (s *postServiceImpl) GetLostPost(ctx context.Context, lostID string) (*models.LostPost, error) {
	return s.lostRepo.GetByID(ctx, lostID)
}

// ListLostPosts lists lost posts by status; empty status means open.
func (s *postServiceImpl) ListLostPosts(ctx context.Context, status models.LostStatus) ([]*models.LostPost, error) {
	if status == "" {
		status = models.LostStatusOpen
	}
	if !models.ValidLostStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
	}
	return s.lostRepo.ListByStatus(ctx, status)
}

// ListLostPostsByUser lists every lost post owned by the user.
func (s *postServiceImpl) ListLostPostsByUser(ctx context.Context, userID string) ([]*models.LostPost, error) {
	return s.lostRepo.ListByUser(ctx, userID)
}

// DeleteLostPost removes a post; only its owner or an admin may do so.
func (s *postServiceImpl) DeleteLostPost(ctx context.Context, lostID, actingUserID string) error {
	post, err := s.lostRepo.GetByID(ctx, lostID)
	if err != nil {
		return err
	}

	if err := s.authorizePostDelete(ctx, post.UserID, actingUserID); err != nil {
		return err
	}

	if err := s.lostRepo.Delete(ctx, lostID); err != nil {
		return err
	}

	s.logger.Info().Str("lostId", lostID).Str("deletedBy", actingUserID).Msg("Lost post deleted")
	return nil
}

// CreateFoundPost validates and inserts a new found item report.
func (s *postServiceImpl) CreateFoundPost(ctx context.Context, userID string, req *dto.CreateFoundPostRequest) (*models.FoundPost, error) {
	if !models.ValidCategory(req.Category) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, req.Category)
	}
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, fmt.Errorf("%w: item name cannot be empty", apperrors.ErrValidationFailed)
	}

	dateFound, err := parsePostDate(req.DateFound)
	if err != nil {
		return nil, err
	}

	post := &models.FoundPost{
		FoundID:         newPostID("found"),
		UserID:          userID,
		ItemName:        strings.TrimSpace(req.ItemName),
		Category:        req.Category,
		Description:     req.Description,
		DateFound:       dateFound,
		FoundLocation:   req.FoundLocation,
		StorageLocation: req.StorageLocation,
	}

	if err := s.foundRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("foundId", post.FoundID).Str("userId", userID).Msg("Found post created")
	return post, nil
}

// GetFoundPost retrieves a single found post.
func (s *postServiceImpl) GetFoundPost(ctx context.Context, foundID string) (*models.FoundPost, error) {
	return s.foundRepo.GetByID(ctx, foundID)
}

// ListFoundPosts lists found posts by status; empty status means available.
func (s *postServiceImpl) ListFoundPosts(ctx context.Context, status models.FoundStatus) ([]*models.FoundPost, error) {
	if status == "" {
		status = models.FoundStatusAvailable
	}
	if !models.ValidFoundStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, status)
	}
	return s.foundRepo.ListByStatus(ctx, status)
}

// ListFoundPostsByUser lists every found post reported by the user.
func (s *postServiceImpl) ListFoundPostsByUser(ctx context.Context, userID string) ([]*models.FoundPost, error) {
	return s.foundRepo.ListByUser(ctx, userID)
}

// DeleteFoundPost removes a post; only its reporter or an admin may do so.
func (s *postServiceImpl) DeleteFoundPost(ctx context.Context, foundID, actingUserID string) error {
	post, err := s.foundRepo.GetByID(ctx, foundID)
	if err != nil {
		return err
	}

	if err := s.authorizePostDelete(ctx, post.UserID, actingUserID); err != nil {
		return err
	}

	if err := s.foundRepo.Delete(ctx, foundID); err != nil {
		return err
	}

	s.logger.Info().Str("foundId", foundID).Str("deletedBy", actingUserID).Msg("Found post deleted")
	return nil
}

func (s *postServiceImpl) authorizePostDelete(ctx context.Context, ownerID, actingUserID string) error {
	if ownerID == actingUserID {
		return nil
	}
	actor, err := s.userRepo.GetByID(ctx, actingUserID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.ErrNotPostOwner
	}
	return nil
}

// newPostID builds the prefixed unique token used for post identifiers,
// e.g. lost_1f2e3d4c.
func newPostID(prefix string) string {
	return prefix + "_" + uuidHex(8)
}
