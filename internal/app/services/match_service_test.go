package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/pkg/apperrors"
)

type matchFixture struct {
	users *fakeUserRepo
	lost  *fakeLostRepo
	found *fakeFoundRepo
	match *fakeMatchRepo
	svc   MatchService
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()
	f := &matchFixture{
		users: newFakeUserRepo(),
		lost:  newFakeLostRepo(),
		found: newFakeFoundRepo(),
		match: newFakeMatchRepo(),
	}
	tx := &fakeTxRunner{lost: f.lost, found: f.found, match: f.match}
	f.svc = NewMatchService(tx, f.lost, f.found, f.match, f.users, zerolog.Nop())

	for _, u := range []*models.User{
		{UserID: "usr_owner", Name: "Alice Johnson", Email: "alice@campus.edu", Role: models.RoleStudent},
		{UserID: "usr_finder", Name: "Carol Chen", Email: "carol@campus.edu", Role: models.RoleStaff},
		{UserID: "usr_admin", Name: "Campus Security", Email: "security@campus.edu", Role: models.RoleAdmin},
	} {
		if err := f.users.Create(context.Background(), u); err != nil {
			t.Fatalf("seeding user %s: %v", u.UserID, err)
		}
	}
	return f
}

func (f *matchFixture) addLost(t *testing.T, id string, status models.LostStatus) {
	t.Helper()
	err := f.lost.Create(context.Background(), &models.LostPost{
		LostID:   id,
		UserID:   "usr_owner",
		ItemName: "Blue Backpack",
		Category: models.CategoryOther,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("seeding lost post %s: %v", id, err)
	}
}

func (f *matchFixture) addFound(t *testing.T, id string, status models.FoundStatus) {
	t.Helper()
	err := f.found.Create(context.Background(), &models.FoundPost{
		FoundID:  id,
		UserID:   "usr_finder",
		ItemName: "Blue Backpack",
		Category: models.CategoryOther,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("seeding found post %s: %v", id, err)
	}
}

func TestClaimHappyPath(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	matchID, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if matchID == 0 {
		t.Fatal("Claim returned zero match ID")
	}

	lost, _ := f.lost.GetByID(context.Background(), "lost_a1")
	if lost.Status != models.LostStatusMatched {
		t.Errorf("lost status = %q, want %q", lost.Status, models.LostStatusMatched)
	}
	found, _ := f.found.GetByID(context.Background(), "found_b1")
	if found.Status != models.FoundStatusMatched {
		t.Errorf("found status = %q, want %q", found.Status, models.FoundStatusMatched)
	}

	m, err := f.match.GetByID(context.Background(), matchID)
	if err != nil {
		t.Fatalf("GetByID(%d): %v", matchID, err)
	}
	if m.Resolved {
		t.Error("new match should be unresolved")
	}
	if m.MatchedByUserID == nil || *m.MatchedByUserID != "usr_owner" {
		t.Errorf("matched_by = %v, want usr_owner", m.MatchedByUserID)
	}
	if m.Notes != claimNotes {
		t.Errorf("notes = %q, want %q", m.Notes, claimNotes)
	}
}

func TestClaimPreconditionOrder(t *testing.T) {
	tests := []struct {
		name     string
		lostID   string
		foundID  string
		claimant string
		setup    func(t *testing.T, f *matchFixture)
		wantErr  error
	}{
		{
			name:    "lost post missing",
			lostID:  "lost_nope",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addFound(t, "found_b1", models.FoundStatusAvailable)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrLostPostNotFound,
		},
		{
			name:    "lost post already matched",
			lostID:  "lost_a1",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusMatched)
				f.addFound(t, "found_b1", models.FoundStatusAvailable)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrLostPostNotOpen,
		},
		{
			name:    "lost post closed",
			lostID:  "lost_a1",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusClosed)
				f.addFound(t, "found_b1", models.FoundStatusAvailable)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrLostPostNotOpen,
		},
		{
			name:    "found post missing",
			lostID:  "lost_a1",
			foundID: "found_nope",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusOpen)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrFoundPostNotFound,
		},
		{
			name:    "found post already matched",
			lostID:  "lost_a1",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusOpen)
				f.addFound(t, "found_b1", models.FoundStatusMatched)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrFoundPostNotAvailable,
		},
		{
			name:    "found post returned",
			lostID:  "lost_a1",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusOpen)
				f.addFound(t, "found_b1", models.FoundStatusReturned)
			},
			claimant: "usr_owner",
			wantErr:  apperrors.ErrFoundPostNotAvailable,
		},
		{
			name:    "claimant does not own lost post",
			lostID:  "lost_a1",
			foundID: "found_b1",
			setup: func(t *testing.T, f *matchFixture) {
				f.addLost(t, "lost_a1", models.LostStatusOpen)
				f.addFound(t, "found_b1", models.FoundStatusAvailable)
			},
			claimant: "usr_finder",
			wantErr:  apperrors.ErrNotPostOwner,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newMatchFixture(t)
			tc.setup(t, f)

			_, err := f.svc.Claim(context.Background(), tc.lostID, tc.foundID, tc.claimant)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Claim error = %v, want %v", err, tc.wantErr)
			}
			if len(f.match.matches) != 0 {
				t.Errorf("failed claim left %d matches behind", len(f.match.matches))
			}
		})
	}
}

// A failed claim must not leave either post in a half-updated state.
func TestClaimRollsBackOnStorageFailure(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)
	f.match.failCreate = errStorage

	_, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if !errors.Is(err, errStorage) {
		t.Fatalf("Claim error = %v, want %v", err, errStorage)
	}

	lost, _ := f.lost.GetByID(context.Background(), "lost_a1")
	if lost.Status != models.LostStatusOpen {
		t.Errorf("lost status = %q after rollback, want %q", lost.Status, models.LostStatusOpen)
	}
	found, _ := f.found.GetByID(context.Background(), "found_b1")
	if found.Status != models.FoundStatusAvailable {
		t.Errorf("found status = %q after rollback, want %q", found.Status, models.FoundStatusAvailable)
	}
}

// Two lost posts cannot claim the same found post; the second claim loses on
// the found post's status.
func TestClaimSameFoundPostTwice(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addLost(t, "lost_a2", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	if _, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner"); err != nil {
		t.Fatalf("first Claim: %v", err)
	}

	_, err := f.svc.Claim(context.Background(), "lost_a2", "found_b1", "usr_owner")
	if !errors.Is(err, apperrors.ErrFoundPostNotAvailable) {
		t.Fatalf("second Claim error = %v, want %v", err, apperrors.ErrFoundPostNotAvailable)
	}

	// The second lost post is untouched.
	lost, _ := f.lost.GetByID(context.Background(), "lost_a2")
	if lost.Status != models.LostStatusOpen {
		t.Errorf("lost_a2 status = %q, want %q", lost.Status, models.LostStatusOpen)
	}
}

func TestResolveHappyPath(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	matchID, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}

	if err := f.svc.Resolve(context.Background(), matchID, "usr_admin"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	m, _ := f.match.GetByID(context.Background(), matchID)
	if !m.Resolved {
		t.Error("match not marked resolved")
	}
	if m.Notes != resolveNotes {
		t.Errorf("notes = %q, want %q", m.Notes, resolveNotes)
	}
	lost, _ := f.lost.GetByID(context.Background(), "lost_a1")
	if lost.Status != models.LostStatusClosed {
		t.Errorf("lost status = %q, want %q", lost.Status, models.LostStatusClosed)
	}
	found, _ := f.found.GetByID(context.Background(), "found_b1")
	if found.Status != models.FoundStatusReturned {
		t.Errorf("found status = %q, want %q", found.Status, models.FoundStatusReturned)
	}
}

func TestResolveRequiresAdmin(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	matchID, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}

	for _, actor := range []string{"usr_owner", "usr_finder"} {
		if err := f.svc.Resolve(context.Background(), matchID, actor); !errors.Is(err, apperrors.ErrAdminRequired) {
			t.Errorf("Resolve by %s error = %v, want %v", actor, err, apperrors.ErrAdminRequired)
		}
	}

	// Posts are untouched by the denied attempts.
	lost, _ := f.lost.GetByID(context.Background(), "lost_a1")
	if lost.Status != models.LostStatusMatched {
		t.Errorf("lost status = %q, want %q", lost.Status, models.LostStatusMatched)
	}
}

func TestResolveTwice(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	matchID, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := f.svc.Resolve(context.Background(), matchID, "usr_admin"); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	err = f.svc.Resolve(context.Background(), matchID, "usr_admin")
	if !errors.Is(err, apperrors.ErrMatchResolved) {
		t.Fatalf("second Resolve error = %v, want %v", err, apperrors.ErrMatchResolved)
	}
}

func TestResolveUnknownMatch(t *testing.T) {
	f := newMatchFixture(t)

	err := f.svc.Resolve(context.Background(), 999, "usr_admin")
	if !errors.Is(err, apperrors.ErrMatchNotFound) {
		t.Fatalf("Resolve error = %v, want %v", err, apperrors.ErrMatchNotFound)
	}
}

// After resolution the claimant can claim again for a new lost post against a
// new found post; resolved matches don't block future activity.
func TestClaimAfterResolution(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)

	matchID, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := f.svc.Resolve(context.Background(), matchID, "usr_admin"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	f.addLost(t, "lost_a2", models.LostStatusOpen)
	f.addFound(t, "found_b2", models.FoundStatusAvailable)
	if _, err := f.svc.Claim(context.Background(), "lost_a2", "found_b2", "usr_owner"); err != nil {
		t.Fatalf("second Claim: %v", err)
	}
}

func TestListUnresolved(t *testing.T) {
	f := newMatchFixture(t)
	f.addLost(t, "lost_a1", models.LostStatusOpen)
	f.addLost(t, "lost_a2", models.LostStatusOpen)
	f.addFound(t, "found_b1", models.FoundStatusAvailable)
	f.addFound(t, "found_b2", models.FoundStatusAvailable)

	id1, err := f.svc.Claim(context.Background(), "lost_a1", "found_b1", "usr_owner")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if _, err := f.svc.Claim(context.Background(), "lost_a2", "found_b2", "usr_owner"); err != nil {
		t.Fatalf("Claim: %v", err)
	}

	pending, err := f.svc.ListUnresolved(context.Background())
	if err != nil {
		t.Fatalf("ListUnresolved: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending = %d, want 2", len(pending))
	}

	if err := f.svc.Resolve(context.Background(), id1, "usr_admin"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	pending, err = f.svc.ListUnresolved(context.Background())
	if err != nil {
		t.Fatalf("ListUnresolved: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending after resolve = %d, want 1", len(pending))
	}
}
