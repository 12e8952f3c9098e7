package models

import (
	"time"
)

// FoundPost defines a report of a found item awaiting claim, based on the
// 'found_posts' table. Status is mutated only by the claim/resolve workflow.
type FoundPost struct {
	FoundID         string      `json:"foundId" db:"found_id" example:"found_9a8b7c6d"`
	UserID          string      `json:"userId" db:"user_id"` // Reporting user
	ItemName        string      `json:"itemName" db:"item_name" example:"Silver keychain"`
	Category        Category    `json:"category" db:"category" example:"Keys"`
	Description     string      `json:"description" db:"description"`
	DateFound       *time.Time  `json:"dateFound,omitempty" db:"date_found"`
	FoundLocation   string      `json:"foundLocation" db:"found_location" example:"Cafeteria entrance"`
	StorageLocation string      `json:"storageLocation" db:"storage_location" example:"Campus Security Office"`
	DatePosted      time.Time   `json:"datePosted" db:"date_posted"`
	Status          FoundStatus `json:"status" db:"status" example:"available"`
}
