package models

import (
	"time"
)

// Match links a lost post to a found post, based on the 'matches' table.
// Created only by a claim, resolved exactly once by an admin, never deleted
// except by post cascade (audit trail).
type Match struct {
	MatchID         int64     `json:"matchId" db:"match_id" example:"42"`
	LostID          string    `json:"lostId" db:"lost_id"`
	FoundID         string    `json:"foundId" db:"found_id"`
	MatchedByUserID *string   `json:"matchedByUserId,omitempty" db:"matched_by_user_id"` // NULL when the claimant account was deleted
	DateMatched     time.Time `json:"dateMatched" db:"date_matched"`
	Resolved        bool      `json:"resolved" db:"resolved"`
	Notes           string    `json:"notes" db:"notes"`
}

// MatchDetail is a match row enriched with display names for list views.
// MatchedByUserName is nil when the claimant reference is gone.
type MatchDetail struct {
	Match
	LostItemName      string  `json:"lostItemName"`
	FoundItemName     string  `json:"foundItemName"`
	MatchedByUserName *string `json:"matchedByUserName,omitempty"`
}
