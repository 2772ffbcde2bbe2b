package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/service"
	"go.uber.org/zap"
)

// CommentHandler handles comment requests.
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// GetAll returns all comments, optionally filtered to one sender via the
// ?sender= query parameter.
func (h *CommentHandler) GetAll(c *gin.Context) {
	comments, err := h.commentService.GetAll(c.Request.Context(), c.Query("sender"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// GetByID returns one comment.
func (h *CommentHandler) GetByID(c *gin.Context) {
	comment, err := h.commentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// GetByPost returns the comments attached to one post.
func (h *CommentHandler) GetByPost(c *gin.Context) {
	comments, err := h.commentService.GetByPost(c.Request.Context(), c.Param("postId"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Create creates a comment on a post for the authenticated user.
func (h *CommentHandler) Create(c *gin.Context) {
	var req dto.CreateCommentRequest
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

	comment, err := h.commentService.Create(c.Request.Context(), callerID(c), &req, images)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update edits a comment's content. Only the author may do this.
func (h *CommentHandler) Update(c *gin.Context) {
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), c.Param("id"), callerID(c), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment and decrements its post's counter.
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.commentService.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Comment deleted"})
}

// ToggleLike flips the caller's like on a comment and returns the updated
// comment.
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	comment, err := h.commentService.ToggleLike(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}
