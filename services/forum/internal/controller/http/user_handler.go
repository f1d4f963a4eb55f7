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

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, logger: logger}
}

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"required"`
	Image string `json:"image"`
}

type WarningRequest struct {
	Warning string `json:"warning" binding:"required"`
}

// Register godoc
// @Summary      Store a user on first sign-in
// @Description  Inserts the user unless the email already exists
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "User"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user := &entity.User{Name: req.Name, Email: req.Email, Image: req.Image}
	inserted, err := h.userUseCase.Register(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if !inserted {
		c.JSON(http.StatusOK, gin.H{"message": "user already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": user.ID})
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        search query string false "Name substring"
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(4)
// @Success      200  {array}   entity.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := listing.UserFilter{Search: c.Query("search")}
	page := listing.ParsePage(c.Query("page"), c.Query("size"))

	users, err := h.userUseCase.ListUsers(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CountUsers godoc
// @Summary      Count users matching a name search
// @Tags         users
// @Produce      json
// @Param        search query string false "Name substring"
// @Success      200  {object}  map[string]int64
// @Router       /users-count [get]
func (h *UserHandler) CountUsers(c *gin.Context) {
	count, err := h.userUseCase.CountUsers(c.Request.Context(), listing.UserFilter{Search: c.Query("search")})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Promote godoc
// @Summary      Make a user an admin
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.UpdateResult
// @Router       /users/admin/{id} [patch]
func (h *UserHandler) Promote(c *gin.Context) {
	res, err := h.userUseCase.Promote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CheckAdmin godoc
// @Summary      Report whether the caller is an admin
// @Tags         users
// @Produce      json
// @Param        email path string true "Caller email"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Router       /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	admin, err := h.userUseCase.CheckAdmin(c.Request.Context(), middleware.CallerEmail(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// GetUser godoc
// @Summary      Get a user record
// @Tags         users
// @Produce      json
// @Param        email path string true "User email"
// @Success      200  {object}  entity.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /user/{email} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUseCase.GetUser(c.Request.Context(), middleware.CallerEmail(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// IssueWarning godoc
// @Summary      Warn a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email path string true "User email"
// @Param        request body WarningRequest true "Warning"
// @Success      200  {object}  entity.UpdateResult
// @Router       /users/warning/{email} [patch]
func (h *UserHandler) IssueWarning(c *gin.Context) {
	var req WarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.userUseCase.IssueWarning(c.Request.Context(), c.Param("email"), req.Warning)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ClearWarning godoc
// @Summary      Acknowledge or clear a warning
// @Tags         users
// @Produce      json
// @Param        email path string true "User email"
// @Success      200  {object}  entity.UpdateResult
// @Router       /users/warning/{email} [delete]
func (h *UserHandler) ClearWarning(c *gin.Context) {
	res, err := h.userUseCase.ClearWarning(c.Request.Context(), middleware.CallerEmail(c), c.Param("email"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UpgradeToGold godoc
// @Summary      Upgrade the caller to Gold
// @Description  Requires at least one payment recorded for the caller
// @Tags         users
// @Produce      json
// @Success      200  {object}  entity.UpdateResult
// @Failure      403  {object}  map[string]string
// @Router       /users/gold [patch]
func (h *UserHandler) UpgradeToGold(c *gin.Context) {
	res, err := h.userUseCase.UpgradeToGold(c.Request.Context(), middleware.CallerEmail(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
