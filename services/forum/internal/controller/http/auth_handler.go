package http

import (
	"net/http"

	"nomadnest/pkg/logger"
	"nomadnest/pkg/middleware"
	"nomadnest/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	cookies     middleware.CookiePolicy
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, cookies middleware.CookiePolicy, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		cookies:     cookies,
		logger:      logger,
	}
}

type TokenRequest struct {
	Email string `json:"email" binding:"required"`
}

// IssueToken godoc
// @Summary      Issue a session cookie
// @Description  Signs the signed-in user's email and stores it in the token cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body TokenRequest true "Identity"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.authUseCase.IssueToken(req.Email)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.cookies.Set(c, token, h.authUseCase.TokenTTL())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
