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

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{postUseCase: postUseCase, logger: logger}
}

type CreatePostRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorImage string `json:"author_image"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Tag         string `json:"tag" binding:"required"`
}

func postQuery(c *gin.Context) listing.PostQuery {
	return listing.PostQuery{
		Filter: listing.PostFilter{Search: c.Query("search")},
		Sort:   listing.ParseSort(c.Query("sort")),
		Page:   listing.ParsePage(c.Query("page"), c.Query("size")),
	}
}

// CreatePost godoc
// @Summary      Create a post as the caller
// @Description  Regular members may hold a limited number of posts; Gold lifts the cap
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        request body CreatePostRequest true "Post"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	post := &entity.Post{
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}
	if err := h.postUseCase.CreatePost(c.Request.Context(), middleware.CallerEmail(c), post); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": post.ID})
}

// ListPosts godoc
// @Summary      List posts
// @Description  Filters by tag substring, ranks by recency or vote difference, then paginates
// @Tags         posts
// @Produce      json
// @Param        search query string false "Tag substring"
// @Param        sort query string false "recency or score" Enums(recency, score)
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.Post
// @Router       /all-posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postUseCase.ListPosts(c.Request.Context(), postQuery(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CountPosts godoc
// @Summary      Count posts matching a tag search
// @Tags         posts
// @Produce      json
// @Param        search query string false "Tag substring"
// @Success      200  {object}  map[string]int64
// @Router       /posts-count [get]
func (h *PostHandler) CountPosts(c *gin.Context) {
	count, err := h.postUseCase.CountPosts(c.Request.Context(), postQuery(c).Filter)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /post/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByAuthor godoc
// @Summary      List a member's posts, newest first
// @Tags         posts
// @Produce      json
// @Param        email path string true "Author email"
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts/{email} [get]
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("size"))
	posts, err := h.postUseCase.ListByAuthor(c.Request.Context(), middleware.CallerEmail(c), c.Param("email"), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CountMyPosts godoc
// @Summary      Count the caller's posts
// @Tags         posts
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /my-posts-count [get]
func (h *PostHandler) CountMyPosts(c *gin.Context) {
	count, err := h.postUseCase.CountByAuthor(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// DeletePost godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]int64
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	deleted, err := h.postUseCase.DeletePost(c.Request.Context(), middleware.CallerEmail(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}

// Upvote godoc
// @Summary      Upvote a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.UpdateResult
// @Failure      404  {object}  map[string]string
// @Router       /upvote/{id} [put]
func (h *PostHandler) Upvote(c *gin.Context) {
	h.vote(c, entity.Upvote)
}

// Downvote godoc
// @Summary      Downvote a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.UpdateResult
// @Failure      404  {object}  map[string]string
// @Router       /downvote/{id} [put]
func (h *PostHandler) Downvote(c *gin.Context) {
	h.vote(c, entity.Downvote)
}

func (h *PostHandler) vote(c *gin.Context, direction entity.VoteDirection) {
	res, err := h.postUseCase.Vote(c.Request.Context(), c.Param("id"), direction)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
