package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/selim/campusfind/internal/app/models"
	"github.com/selim/campusfind/internal/app/models/dto"
	"github.com/selim/campusfind/internal/app/services"
	"github.com/selim/campusfind/internal/middleware"
)

// PostController handles lost and found post endpoints
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// CreateLostPost reports a lost item
// @Summary Report a lost item
// @Tags lost
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLostPostRequest true "Lost item details"
// @Success 201 {object} dto.APIResponse{data=models.LostPost}
// @Failure 400 {object} dto.ErrorResponse "Invalid category or input"
// @Router /lost [post]
func (c *PostController) CreateLostPost(ctx *gin.Context) {
	var req dto.CreateLostPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.CreateLostPost(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Lost post created", post))
}

// ListLostPosts lists lost posts, filtered by status (default open)
// @Summary List lost posts
// @Tags lost
// @Produce json
// @Security BearerAuth
// @Param status query string false "open, matched or closed" default(open)
// @Success 200 {object} dto.APIResponse{data=[]models.LostPost}
// @Router /lost [get]
func (c *PostController) ListLostPosts(ctx *gin.Context) {
	status := models.LostStatus(ctx.Query("status"))

	posts, err := c.postService.ListLostPosts(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", posts))
}

// ListMyLostPosts lists the caller's own lost posts
// @Summary List own lost posts
// @Tags lost
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.LostPost}
// @Router /lost/mine [get]
func (c *PostController) ListMyLostPosts(ctx *gin.Context) {
	posts, err := c.postService.ListLostPostsByUser(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", posts))
}

// GetLostPost retrieves one lost post
// @Summary Get a lost post
// @Tags lost
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lost post identifier"
// @Success 200 {object} dto.APIResponse{data=models.LostPost}
// @Failure 404 {object} dto.ErrorResponse
// @Router /lost/{id} [get]
func (c *PostController) GetLostPost(ctx *gin.Context) {
	post, err := c.postService.GetLostPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", post))
}

// DeleteLostPost removes a lost post (owner or admin)
// @Summary Delete a lost post
// @Tags lost
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lost post identifier"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lost/{id} [delete]
func (c *PostController) DeleteLostPost(ctx *gin.Context) {
	err := c.postService.DeleteLostPost(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Lost post deleted", nil))
}

// CreateFoundPost reports a found item
// @Summary Report a found item
// @Tags found
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFoundPostRequest true "Found item details"
// @Success 201 {object} dto.APIResponse{data=models.FoundPost}
// @Failure 400 {object} dto.ErrorResponse "Invalid category or input"
// @Router /found [post]
func (c *PostController) CreateFoundPost(ctx *gin.Context) {
	var req dto.CreateFoundPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.postService.CreateFoundPost(ctx.Request.Context(), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Found post created", post))
}

// ListFoundPosts lists found posts, filtered by status (default available)
// @Summary List found posts
// @Tags found
// @Produce json
// @Security BearerAuth
// @Param status query string false "available, matched or returned" default(available)
// @Success 200 {object} dto.APIResponse{data=[]models.FoundPost}
// @Router /found [get]
func (c *PostController) ListFoundPosts(ctx *gin.Context) {
	status := models.FoundStatus(ctx.Query("status"))

	posts, err := c.postService.ListFoundPosts(ctx.Request.Context(), status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", posts))
}

// ListMyFoundPosts lists the caller's own found posts
// @Summary List own found posts
// @Tags found
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.FoundPost}
// @Router /found/mine [get]
func (c *PostController) ListMyFoundPosts(ctx *gin.Context) {
	posts, err := c.postService.ListFoundPostsByUser(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", posts))
}

// GetFoundPost retrieves one found post
// @Summary Get a found post
// @Tags found
// @Produce json
// @Security BearerAuth
// @Param id path string true "Found post identifier"
// @Success 200 {object} dto.APIResponse{data=models.FoundPost}
// @Failure 404 {object} dto.ErrorResponse
// @Router /found/{id} [get]
func (c *PostController) GetFoundPost(ctx *gin.Context) {
	post, err := c.postService.GetFoundPost(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("", post))
}

// DeleteFoundPost removes a found post (reporter or admin)
// @Summary Delete a found post
// @Tags found
// @Produce json
// @Security BearerAuth
// @Param id path string true "Found post identifier"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /found/{id} [delete]
func (c *PostController) DeleteFoundPost(ctx *gin.Context) {
	err := c.postService.DeleteFoundPost(ctx.Request.Context(), ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Found post deleted", nil))
}
