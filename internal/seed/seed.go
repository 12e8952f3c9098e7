package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/selim/campusfind/internal/app/models"
	appRepos "github.com/selim/campusfind/internal/app/repositories"
	"github.com/selim/campusfind/internal/config"
	"github.com/selim/campusfind/internal/pkg/apperrors"
	pkgauth "github.com/selim/campusfind/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account and a small set of demo
// users and posts if they don't exist. All inserts are idempotent: rows that
// already exist are skipped, not treated as failures.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	lostRepo := appRepos.NewLostPostRepository(dbPool)
	foundRepo := appRepos.NewFoundPostRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Default Admin User --- //
	adminHash, err := pkgauth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}
	admin := &appModels.User{
		UserID:       "usr_admin001",
		Name:         "Campus Security",
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: adminHash,
		Role:         appModels.RoleAdmin,
		DateJoined:   time.Now(),
	}
	err = userRepo.Create(ctx, admin)
	switch {
	case err == nil:
		lgr.Info().Str("email", admin.Email).Msg("Created default admin user")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists), errors.Is(err, apperrors.ErrIdentifierExists):
		// Already seeded.
	default:
		lgr.Error().Err(err).Msg("Error creating default admin user")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Demo Users --- //
	demoHash, err := pkgauth.HashPassword("Password1")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing demo password")
		return errors.Join(finalErr, err)
	}
	demoUsers := []*appModels.User{
		{UserID: "usr_demo0001", Name: "Alice Johnson", Email: "alice.johnson@campus.edu", Role: appModels.RoleStudent},
		{UserID: "usr_demo0002", Name: "Bob Martinez", Email: "bob.martinez@campus.edu", Role: appModels.RoleStudent},
		{UserID: "usr_demo0003", Name: "Carol Chen", Email: "carol.chen@campus.edu", Role: appModels.RoleStaff},
	}
	for _, u := range demoUsers {
		u.PasswordHash = demoHash
		u.DateJoined = time.Now()
		err = userRepo.Create(ctx, u)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) && !errors.Is(err, apperrors.ErrIdentifierExists) {
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Demo Posts --- //
	dateLost := time.Now().AddDate(0, 0, -3)
	demoLost := &appModels.LostPost{
		LostID:           "lost_demo0001",
		UserID:           "usr_demo0001",
		ItemName:         "Blue Hydro Flask",
		Category:         appModels.CategoryOther,
		Description:      "32oz blue water bottle with a sticker of a mountain on the side.",
		DateLost:         &dateLost,
		LastSeenLocation: "Library 2nd Floor",
		Status:           appModels.LostStatusOpen,
	}
	err = lostRepo.Create(ctx, demoLost)
	if err != nil && !errors.Is(err, apperrors.ErrIdentifierExists) {
		lgr.Error().Err(err).Msg("Error creating demo lost post")
		finalErr = errors.Join(finalErr, err)
	}

	demoFound := &appModels.FoundPost{
		FoundID:         "found_demo0001",
		UserID:          "usr_demo0003",
		ItemName:        "Black Umbrella",
		Category:        appModels.CategoryOther,
		Description:     "Compact black umbrella left in a lecture hall.",
		FoundLocation:   "Science Building Room 140",
		StorageLocation: "Campus Security Office",
		Status:          appModels.FoundStatusAvailable,
	}
	err = foundRepo.Create(ctx, demoFound)
	if err != nil && !errors.Is(err, apperrors.ErrIdentifierExists) {
		lgr.Error().Err(err).Msg("Error creating demo found post")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Default data creation finished with errors")
	} else {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
