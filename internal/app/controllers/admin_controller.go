package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/app/services"
	"github.com/namansharma28/gravitas-backend/internal/middleware"
	"github.com/namansharma28/gravitas-backend/internal/pkg/apperrors"
)

// AdminController handles admin login and community moderation
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// Login verifies admin credentials and issues an admin token
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Username and password are required"))
		return
	}

	token, err := c.adminService.Login(req.Username, req.Password)
	if err != nil {
		if err == apperrors.ErrInvalidCredentials {
			c.logger.Warn().Str("username", req.Username).Msg("Admin login rejected")
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Invalid username or password"))
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AdminLoginResponse{
		Token:   token,
		Role:    "admin",
		Message: "Login successful",
	})
}

// CheckAuth confirms the caller holds a valid admin token. The admin
// middleware has already validated it by the time this runs.
func (c *AdminController) CheckAuth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CheckAuthResponse{IsAdmin: true})
}

// ListPendingCommunities returns communities awaiting moderation
func (c *AdminController) ListPendingCommunities(ctx *gin.Context) {
	communities, err := c.adminService.ListPendingCommunities(ctx.Request.Context())
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

// ApproveCommunity approves a pending community
func (c *AdminController) ApproveCommunity(ctx *gin.Context) {
	community, err := c.adminService.ApproveCommunity(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommunityResponse(community))
}

// RejectCommunity rejects a pending community
func (c *AdminController) RejectCommunity(ctx *gin.Context) {
	community, err := c.adminService.RejectCommunity(ctx.Request.Context(), ctx.Param("handle"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewCommunityResponse(community))
}
