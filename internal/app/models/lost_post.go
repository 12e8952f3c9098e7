package models

import (
	"time"
)

// LostPost defines a report of a lost item, based on the 'lost_posts' table.
// Status is mutated only by the claim/resolve workflow.
type LostPost struct {
	LostID           string     `json:"lostId" db:"lost_id" example:"lost_1f2e3d4c"`
	UserID           string     `json:"userId" db:"user_id"` // Owning user
	ItemName         string     `json:"itemName" db:"item_name" example:"Black backpack"`
	Category         Category   `json:"category" db:"category" example:"Accessories"`
	Description      string     `json:"description" db:"description"`
	DateLost         *time.Time `json:"dateLost,omitempty" db:"date_lost"`
	LastSeenLocation string     `json:"lastSeenLocation" db:"last_seen_location" example:"Library, 2nd floor"`
	DatePosted       time.Time  `json:"datePosted" db:"date_posted"`
	Status           LostStatus `json:"status" db:"status" example:"open"`
}
