package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
)

// CommunityController handles community, membership and follow operations
type CommunityController struct {
	communityService *services.CommunityService
	followService    *services.FollowService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService *services.CommunityService, followService *services.FollowService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		followService:    followService,
		logger:           logger,
	}
}

// Create registers a new community in pending status
func (c *CommunityController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Name and handle are required"))
		return
	}

	community, err := c.communityService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommunityResponse(community))
}

// GetDetail returns the public view of an approved community
func (c *CommunityController) GetDetail(ctx *gin.Context) {
	detail, err := c.communityService.GetDetail(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Unmoderated communities are not publicly visible.
	if detail.Status != string(models.CommunityStatusApproved) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse("Community not found"))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// ListMembers returns the community's members, admins first
func (c *CommunityController) ListMembers(ctx *gin.Context) {
	members, err := c.communityService.ListMembers(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.MemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, dto.NewMemberResponse(member))
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListAdministered returns the approved communities the caller administers
func (c *CommunityController) ListAdministered(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	communities, err := c.communityService.ListAdministered(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.CommunityResponse, 0, len(communities))
	for _, community := range communities {
		resp = append(resp, dto.NewCommunityResponse(community))
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListUserCommunities returns the caller's communities annotated with
// their role, admins first then by name. Rejected communities appear
// only for their creator.
func (c *CommunityController) ListUserCommunities(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	communities, err := c.communityService.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.UserCommunityResponse, 0, len(communities))
	for _, uc := range communities {
		resp = append(resp, dto.UserCommunityResponse{
			CommunityResponse: dto.NewCommunityResponse(&uc.Community),
			Role:              string(uc.Role),
		})
	}
	ctx.JSON(http.StatusOK, resp)
}

// Join adds the caller as a member of an approved community
func (c *CommunityController) Join(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.communityService.Join(ctx.Request.Context(), userID, ctx.Param("handle")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Joined community"})
}

// Leave removes the caller's membership
func (c *CommunityController) Leave(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.communityService.Leave(ctx.Request.Context(), userID, ctx.Param("handle")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Left community"})
}

// Follow subscribes the caller to a community's activity
func (c *CommunityController) Follow(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.followService.Follow(ctx.Request.Context(), userID, ctx.Param("handle")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Following community"})
}

// Unfollow removes the caller's follow
func (c *CommunityController) Unfollow(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	if err := c.followService.Unfollow(ctx.Request.Context(), userID, ctx.Param("handle")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Unfollowed community"})
}

// ListFollowed returns the communities the caller follows, most
// recently followed first
func (c *CommunityController) ListFollowed(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	followed, err := c.followService.ListFollowed(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.FollowedCommunityResponse, 0, len(followed))
	for _, fc := range followed {
		resp = append(resp, dto.FollowedCommunityResponse{
			CommunityResponse:  dto.NewCommunityResponse(&fc.Community),
			MemberCount:        fc.MemberCount,
			UpcomingEventCount: fc.UpcomingEventCount,
			FollowedAt:         fc.FollowedAt,
		})
	}
	ctx.JSON(http.StatusOK, resp)
}
