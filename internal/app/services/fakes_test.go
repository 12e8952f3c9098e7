package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/app/repositories"
	"github.com/selim/campusfind/internal/db"
	"github.com/selim/campusfind/internal/pkg/apperrors"
)

// In-memory repository fakes. They ignore the Querier argument; transactional
// behavior is simulated by fakeTxRunner, which snapshots the stores before
// running the function and restores them if it fails.

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.UserID]; ok {
		return apperrors.ErrIdentifierExists
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.UserID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeLostRepo struct {
	posts map[string]*models.LostPost
}

func newFakeLostRepo() *fakeLostRepo {
	return &fakeLostRepo{posts: make(map[string]*models.LostPost)}
}

func (r *fakeLostRepo) Create(ctx context.Context, post *models.LostPost) error {
	if _, ok := r.posts[post.LostID]; ok {
		return apperrors.ErrIdentifierExists
	}
	cp := *post
	r.posts[post.LostID] = &cp
	return nil
}

func (r *fakeLostRepo) GetByID(ctx context.Context, lostID string) (*models.LostPost, error) {
	p, ok := r.posts[lostID]
	if !ok {
		return nil, apperrors.ErrLostPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeLostRepo) ListByStatus(ctx context.Context, status models.LostStatus) ([]*models.LostPost, error) {
	var out []*models.LostPost
	for _, p := range r.posts {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLostRepo) ListByUser(ctx context.Context, userID string) ([]*models.LostPost, error) {
	var out []*models.LostPost
	for _, p := range r.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeLostRepo) Delete(ctx context.Context, lostID string) error {
	if _, ok := r.posts[lostID]; !ok {
		return apperrors.ErrLostPostNotFound
	}
	delete(r.posts, lostID)
	return nil
}

func (r *fakeLostRepo) GetForUpdate(ctx context.Context, q repositories.Querier, lostID string) (*models.LostPost, error) {
	return r.GetByID(ctx, lostID)
}

func (r *fakeLostRepo) UpdateStatus(ctx context.Context, q repositories.Querier, lostID string, status models.LostStatus) error {
	p, ok := r.posts[lostID]
	if !ok {
		return apperrors.ErrLostPostNotFound
	}
	p.Status = status
	return nil
}

type fakeFoundRepo struct {
	posts map[string]*models.FoundPost
}

func newFakeFoundRepo() *fakeFoundRepo {
	return &fakeFoundRepo{posts: make(map[string]*models.FoundPost)}
}

func (r *fakeFoundRepo) Create(ctx context.Context, post *models.FoundPost) error {
	if _, ok := r.posts[post.FoundID]; ok {
		return apperrors.ErrIdentifierExists
	}
	cp := *post
	r.posts[post.FoundID] = &cp
	return nil
}

func (r *fakeFoundRepo) GetByID(ctx context.Context, foundID string) (*models.FoundPost, error) {
	p, ok := r.posts[foundID]
	if !ok {
		return nil, apperrors.ErrFoundPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeFoundRepo) ListByStatus(ctx context.Context, status models.FoundStatus) ([]*models.FoundPost, error) {
	var out []*models.FoundPost
	for _, p := range r.posts {
		if p.Status == status {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFoundRepo) ListByUser(ctx context.Context, userID string) ([]*models.FoundPost, error) {
	var out []*models.FoundPost
	for _, p := range r.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeFoundRepo) Delete(ctx context.Context, foundID string) error {
	if _, ok := r.posts[foundID]; !ok {
		return apperrors.ErrFoundPostNotFound
	}
	delete(r.posts, foundID)
	return nil
}

func (r *fakeFoundRepo) GetForUpdate(ctx context.Context, q repositories.Querier, foundID string) (*models.FoundPost, error) {
	return r.GetByID(ctx, foundID)
}

func (r *fakeFoundRepo) UpdateStatus(ctx context.Context, q repositories.Querier, foundID string, status models.FoundStatus) error {
	p, ok := r.posts[foundID]
	if !ok {
		return apperrors.ErrFoundPostNotFound
	}
	p.Status = status
	return nil
}

type fakeMatchRepo struct {
	matches map[int64]*models.Match
	nextID  int64

	// failCreate makes the next Create fail, for atomicity tests.
	failCreate error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int64]*models.Match), nextID: 1}
}

func (r *fakeMatchRepo) Create(ctx context.Context, q repositories.Querier, match *models.Match) error {
	if r.failCreate != nil {
		err := r.failCreate
		r.failCreate = nil
		return err
	}
	// Partial unique indexes on active matches.
	for _, m := range r.matches {
		if m.Resolved {
			continue
		}
		if m.LostID == match.LostID {
			return apperrors.ErrLostPostNotOpen
		}
		if m.FoundID == match.FoundID {
			return apperrors.ErrFoundPostNotAvailable
		}
	}
	match.MatchID = r.nextID
	r.nextID++
	cp := *match
	r.matches[cp.MatchID] = &cp
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, matchID int64) (*models.Match, error) {
	m, ok := r.matches[matchID]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetForUpdate(ctx context.Context, q repositories.Querier, matchID int64) (*models.Match, error) {
	return r.GetByID(ctx, matchID)
}

func (r *fakeMatchRepo) MarkResolved(ctx context.Context, q repositories.Querier, matchID int64, notes string) error {
	m, ok := r.matches[matchID]
	if !ok {
		return apperrors.ErrMatchNotFound
	}
	if m.Resolved {
		return apperrors.ErrMatchResolved
	}
	m.Resolved = true
	m.Notes = notes
	return nil
}

func (r *fakeMatchRepo) ListUnresolved(ctx context.Context) ([]*models.MatchDetail, error) {
	var out []*models.MatchDetail
	for _, m := range r.matches {
		if !m.Resolved {
			out = append(out, &models.MatchDetail{Match: *m})
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) ListByUser(ctx context.Context, userID string) ([]*models.MatchDetail, error) {
	var out []*models.MatchDetail
	for _, m := range r.matches {
		if m.MatchedByUserID != nil && *m.MatchedByUserID == userID {
			out = append(out, &models.MatchDetail{Match: *m})
		}
	}
	return out, nil
}

// fakeTxRunner snapshots the fake stores before running fn and restores them
// if fn returns an error, mirroring transaction rollback.
type fakeTxRunner struct {
	lost  *fakeLostRepo
	found *fakeFoundRepo
	match *fakeMatchRepo
}

func (t *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	lostSnap := snapshotLost(t.lost.posts)
	foundSnap := snapshotFound(t.found.posts)
	matchSnap := snapshotMatches(t.match.matches)
	matchNext := t.match.nextID

	var tx pgx.Tx
	err := fn(ctx, tx)
	if err != nil {
		t.lost.posts = lostSnap
		t.found.posts = foundSnap
		t.match.matches = matchSnap
		t.match.nextID = matchNext
		return err
	}
	return nil
}

func snapshotLost(posts map[string]*models.LostPost) map[string]*models.LostPost {
	out := make(map[string]*models.LostPost, len(posts))
	for k, v := range posts {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotFound(posts map[string]*models.FoundPost) map[string]*models.FoundPost {
	out := make(map[string]*models.FoundPost, len(posts))
	for k, v := range posts {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotMatches(matches map[int64]*models.Match) map[int64]*models.Match {
	out := make(map[int64]*models.Match, len(matches))
	for k, v := range matches {
		cp := *v
		out[k] = &cp
	}
	return out
}

var errStorage = errors.New("storage failure")
