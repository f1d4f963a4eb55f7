package http

import (
	"net/http"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/middleware"
	"nomadnest/services/forum/internal/entity"
	"nomadnest/services/forum/internal/listing"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: logger}
}

type CreateCommentRequest struct {
	PostID         string `json:"post_id" binding:"required"`
	CommenterName  string `json:"commenter_name"`
	CommenterImage string `json:"commenter_image"`
	Comment        string `json:"comment" binding:"required"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

// CreateComment godoc
// @Summary      Comment on a post as the caller
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        request body CreateCommentRequest true "Comment"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment := &entity.Comment{
		PostID:         req.PostID,
		CommenterName:  req.CommenterName,
		CommenterImage: req.CommenterImage,
		Comment:        req.Comment,
	}
	if err := h.commentUseCase.CreateComment(c.Request.Context(), middleware.CallerEmail(c), comment); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": comment.ID})
}

// ListForPost godoc
// @Summary      List a post's comments, newest first
// @Tags         comments
// @Produce      json
// @Param        id path string true "Post ID"
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.Comment
// @Router       /comments/{id} [get]
func (h *CommentHandler) ListForPost(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("size"))
	comments, err := h.commentUseCase.ListForPost(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CountForPost godoc
// @Summary      Count a post's comments
// @Tags         comments
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]int64
// @Router       /postComments/{id} [get]
func (h *CommentHandler) CountForPost(c *gin.Context) {
	count, err := h.commentUseCase.CountForPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Report godoc
// @Summary      Report a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "Comment ID"
// @Param        request body FeedbackRequest true "Feedback"
// @Success      200  {object}  entity.UpdateResult
// @Router       /comments/{id} [patch]
func (h *CommentHandler) Report(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.commentUseCase.Report(c.Request.Context(), c.Param("id"), req.Feedback)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListReported godoc
// @Summary      List reported comments
// @Tags         comments
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.Comment
// @Router       /comments [get]
func (h *CommentHandler) ListReported(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("size"))
	comments, err := h.commentUseCase.ListReported(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CountReported(c *gin.Context) {
	count, err := h.commentUseCase.CountReported(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DeleteComment godoc
// @Summary      Remove a comment
// @Tags         comments
// @Produce      json
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]int64
// @Router       /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	deleted, err := h.commentUseCase.DeleteComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
