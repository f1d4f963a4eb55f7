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

type BoardHandler struct {
	boardUseCase usecase.BoardUseCase
	logger       *logger.Logger
}

func NewBoardHandler(boardUseCase usecase.BoardUseCase, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{boardUseCase: boardUseCase, logger: logger}
}

type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

type AnnouncementRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorImage string `json:"author_image"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListTags godoc
// @Summary      List tags
// @Tags         board
// @Produce      json
// @Success      200  {array}   entity.Tag
// @Router       /tags [get]
func (h *BoardHandler) ListTags(c *gin.Context) {
	tags, err := h.boardUseCase.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// AddTag godoc
// @Summary      Add a tag
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        request body TagRequest true "Tag"
// @Success      201  {object}  map[string]string
// @Router       /tags [post]
func (h *BoardHandler) AddTag(c *gin.Context) {
	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := h.boardUseCase.AddTag(c.Request.Context(), req.Tag)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": tag.ID})
}

// ListAnnouncements godoc
// @Summary      List announcements, newest first
// @Tags         board
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.Announcement
// @Router       /announcements [get]
func (h *BoardHandler) ListAnnouncements(c *gin.Context) {
	page := listing.ParsePage(c.Query("page"), c.Query("size"))
	announcements, err := h.boardUseCase.ListAnnouncements(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (h *BoardHandler) CountAnnouncements(c *gin.Context) {
	count, err := h.boardUseCase.CountAnnouncements(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// CreateAnnouncement godoc
// @Summary      Publish an announcement
// @Tags         board
// @Accept       json
// @Produce      json
// @Param        request body AnnouncementRequest true "Announcement"
// @Success      201  {object}  map[string]string
// @Router       /announcements [post]
func (h *BoardHandler) CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	announcement := &entity.Announcement{
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.boardUseCase.CreateAnnouncement(c.Request.Context(), middleware.CallerEmail(c), announcement); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": announcement.ID})
}
