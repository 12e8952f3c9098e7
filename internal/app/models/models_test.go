package models

import "testing"

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleStudent, RoleStaff, RoleAdmin} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Admin"} {
		if ValidRole(r) {
			t.Errorf("ValidRole(%q) = true", r)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	for _, c := range []Category{"", "electronics", "Gadgets"} {
		if ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = true", c)
		}
	}
}

func TestValidStatuses(t *testing.T) {
	for _, s := range []LostStatus{LostStatusOpen, LostStatusMatched, LostStatusClosed} {
		if !ValidLostStatus(s) {
			t.Errorf("ValidLostStatus(%q) = false", s)
		}
	}
	if ValidLostStatus("available") {
		t.Error(`ValidLostStatus("available") = true; that is a found status`)
	}

	for _, s := range []FoundStatus{FoundStatusAvailable, FoundStatusMatched, FoundStatusReturned} {
		if !ValidFoundStatus(s) {
			t.Errorf("ValidFoundStatus(%q) = false", s)
		}
	}
	if ValidFoundStatus("open") {
		t.Error(`ValidFoundStatus("open") = true; that is a lost status`)
	}
}

func TestUserPublicProfile(t *testing.T) {
	u := &User{
		UserID:       "usr_1",
		Name:         "Alice",
		Email:        "alice@campus.edu",
		PasswordHash: "$2a$12$secret",
		Role:         RoleStudent,
	}

	pub := u.PublicProfile()
	if pub.PasswordHash != "" {
		t.Error("PublicProfile kept the credential")
	}
	if u.PasswordHash == "" {
		t.Error("PublicProfile mutated the source user")
	}
	if pub.UserID != u.UserID || pub.Email != u.Email {
		t.Error("PublicProfile dropped identity fields")
	}
}

func TestIsAdmin(t *testing.T) {
	if (&User{Role: RoleStudent}).IsAdmin() {
		t.Error("student reported as admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Error("admin not reported as admin")
	}
}
