package dto

import (
	"github.com/selim/campusfind/internal/app/models"
)

// CreateLostPostRequest represents a new lost item report. Dates arrive as
// YYYY-MM-DD strings, matching the web form.
type CreateLostPostRequest struct {
	ItemName         string          `json:"itemName" binding:"required"`
	Category         models.Category `json:"category" binding:"required"`
	Description      string          `json:"description"`
	DateLost         string          `json:"dateLost"`
	LastSeenLocation string          `json:"lastSeenLocation" binding:"required"`
}

// CreateFoundPostRequest represents a new found item report.
type CreateFoundPostRequest struct {
	ItemName        string          `json:"itemName" binding:"required"`
	Category        models.Category `json:"category" binding:"required"`
	Description     string          `json:"description"`
	DateFound       string          `json:"dateFound"`
	FoundLocation   string          `json:"foundLocation" binding:"required"`
	StorageLocation string          `json:"storageLocation"`
}
