package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models/dto"
	"github.com/selim/campusfind/internal/app/services"
	"github.com/selim/campusfind/internal/middleware"
)

// MatchController handles the claim/resolve workflow endpoints
type MatchController struct {
	matchService services.MatchService
	logger       zerolog.Logger
}

// NewMatchController creates a new MatchController
func NewMatchController(matchService services.MatchService, logger zerolog.Logger) *MatchController {
	return &MatchController{
		matchService: matchService,
		logger:       logger,
	}
}

// Claim matches the caller's lost post with a found post
// @Summary Claim a found item
// @Description Creates a match between the caller's open lost post and an available found post. Both posts move to matched atomically.
// @Tags matches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ClaimRequest true "Posts to match"
// @Success 201 {object} dto.APIResponse{data=dto.ClaimResponse}
// @Failure 403 {object} dto.ErrorResponse "Caller does not own the lost post"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 409 {object} dto.ErrorResponse "Post not open/available"
// @Router /matches/claim [post]
func (c *MatchController) Claim(ctx *gin.Context) {
	var req dto.ClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	matchID, err := c.matchService.Claim(ctx.Request.Context(), req.LostID, req.FoundID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(
		"Match created successfully. Awaiting admin resolution.",
		dto.ClaimResponse{MatchID: matchID},
	))
}

// Resolve finalizes a match (admin only)
// @Summary Resolve a match
// @Description Marks the match resolved, closes the lost post and returns the found post, atomically.
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Param id path int true "Match identifier"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Match not found"
// @Failure 409 {object} dto.ErrorResponse "Match is already resolved"
// @Router /matches/{id}/resolve [post]
func (c *MatchController) Resolve(ctx *gin.Context) {
	matchID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Match id must be a number").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.matchService.Resolve(ctx.Request.Context(), matchID, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Match resolved successfully", nil))
}

// ListUnresolved lists all pending matches (admin view)
// @Summary List unresolved matches
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.MatchDetail}
// @Router /matches/unresolved [get]
func (c *MatchController) ListUnresolved(ctx *gin.Context) {
	matches, err := c.matchService.ListUnresolved(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", matches))
}

// ListMine lists matches touching the caller's posts
// @Summary List own matches
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.MatchDetail}
// @Router /matches/mine [get]
func (c *MatchController) ListMine(ctx *gin.Context) {
	matches, err := c.matchService.ListForUser(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", matches))
}
