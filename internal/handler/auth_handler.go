package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/apperr"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/service"
	"github.com/wayfarerhq/wayfarer-api/internal/storage"
	"go.uber.org/zap"
)

// AuthHandler handles authentication and profile requests.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	response, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles user login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GoogleSignIn signs a user in with a Google-issued ID token, creating the
// account on first sight.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req dto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	response, err := h.authService.GoogleSignIn(c.Request.Context(), req.Credential)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh rotates a refresh token for a fresh pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout invalidates one refresh token. The token itself is the credential,
// so no access token is required.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, apperr.Validation("Refresh token is required"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Logged out successfully"})
}

// GetUser returns a user's public profile.
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authService.GetUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates the authenticated user's own profile. Accepts JSON or a
// multipart form carrying an optional profilePicture file.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID != callerID(c) {
		writeError(c, h.logger, apperr.Authentication("not allowed to modify this profile"))
		return
	}

	var req dto.UpdateUserRequest
	var avatar *storage.Upload
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			bindingError(c, err)
			return
		}
		upload, closeAll, err := singleUpload(c, "profilePicture")
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		defer closeAll()
		avatar = upload
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingError(c, err)
			return
		}
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), userID, &req, avatar)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
