package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AdminHandler handles HTTP requests for the admin surface
type AdminHandler struct {
	userRepository    repositories.UserRepository
	messageRepository repositories.AdminMessageRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository, messageRepo repositories.AdminMessageRepository) *AdminHandler {
	return &AdminHandler{
		userRepository:    userRepo,
		messageRepository: messageRepo,
	}
}

// RegisterAdminRoutes registers admin-only routes
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/ban", h.BanUser)
	g.POST("/messages", h.CreateMessage)
}

// RegisterMessageRoutes registers broadcast routes readable by all users
func (h *AdminHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetMessages)
}

// ListUsers retrieves a page of all users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := h.userRepository.ListUsers(page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users":    users,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// BanUserRequest defines the request body for toggling a user's ban flag
type BanUserRequest struct {
	IsBanned *bool `json:"is_banned" validate:"required"`
}

// BanUser sets or clears a user's ban flag
func (h *AdminHandler) BanUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req BanUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userRepository.SetBanned(uint(userID), *req.IsBanned); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": userID, "is_banned": *req.IsBanned})
}

// CreateMessage publishes a platform-wide broadcast
func (h *AdminHandler) CreateMessage(c echo.Context) error {
	var req models.CreateAdminMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg := &models.AdminMessage{
		Title:   req.Title,
		Message: req.Message,
	}

	if err := h.messageRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetMessages retrieves platform broadcasts, newest first
func (h *AdminHandler) GetMessages(c echo.Context) error {
	messages, err := h.messageRepository.GetMessages(c.Request().Context(), 50)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}
