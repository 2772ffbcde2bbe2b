package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/service"
	"go.uber.org/zap"
)

// PostHandler handles post requests.
type PostHandler struct {
	postService service.PostService
	logger      *zap.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// GetAll returns the feed, optionally filtered to one sender via the
// ?sender= query parameter.
func (h *PostHandler) GetAll(c *gin.Context) {
	posts, err := h.postService.GetAll(c.Request.Context(), c.Query("sender"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetByID returns one post.
func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Create creates a post for the authenticated user. Accepts JSON or a
// multipart form with image files under the images field.
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			bindingError(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	images, closeAll, err := formUploads(c, "images")
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	defer closeAll()

	post, err := h.postService.Create(c.Request.Context(), callerID(c), &req, images)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update edits a post's content. Only the author may do this.
func (h *PostHandler) Update(c *gin.Context) {
	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), c.Param("id"), callerID(c), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete removes a post along with its comments and images.
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post deleted"})
}

// ToggleLike likes the post if the caller hasn't liked it yet, otherwise
// removes the like. Returns the updated post.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	post, err := h.postService.ToggleLike(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, post)
}
