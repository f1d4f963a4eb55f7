package http

import (
	"net/http"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/middleware"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

type MediaHandler struct {
	mediaUseCase usecase.MediaUseCase
	logger       *logger.Logger
}

func NewMediaHandler(mediaUseCase usecase.MediaUseCase, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{mediaUseCase: mediaUseCase, logger: logger}
}

// UploadImage godoc
// @Summary      Upload an image
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        image formData file true "Image file (jpg/png/webp)"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /uploads [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds 5MB"})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open upload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer file.Close()

	url, err := h.mediaUseCase.UploadImage(c.Request.Context(), middleware.CallerEmail(c),
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
