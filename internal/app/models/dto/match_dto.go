package dto

// ClaimRequest asserts that a found post corresponds to the caller's lost post.
type ClaimRequest struct {
	LostID  string `json:"lostId" binding:"required"`
	FoundID string `json:"foundId" binding:"required"`
}

// ClaimResponse carries the identifier of the newly created match.
type ClaimResponse struct {
	MatchID int64 `json:"matchId"`
}
