package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/skillswap/backend/internal/middleware"
	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// SwapHandler handles HTTP requests related to swap requests
type SwapHandler struct {
	swapRepository repositories.SwapRepository
	userRepository repositories.UserRepository // To resolve providers on creation
}

// NewSwapHandler creates a new SwapHandler
func NewSwapHandler(swapRepo repositories.SwapRepository, userRepo repositories.UserRepository) *SwapHandler {
	return &SwapHandler{
		swapRepository: swapRepo,
		userRepository: userRepo,
	}
}

// RegisterSwapRoutes registers swap-request-related routes
func (h *SwapHandler) RegisterSwapRoutes(g *echo.Group) {
	g.POST("/swaps", h.CreateSwap)
	g.GET("/swaps", h.GetMySwaps)
	g.PUT("/swaps/:id/status", h.UpdateSwapStatus)
	g.DELETE("/swaps/:id", h.DeleteSwap)
}

// CreateSwap handles creating a new swap request against a provider
func (h *SwapHandler) CreateSwap(c echo.Context) error {
	actor := middleware.Actor(c)

	var req models.CreateSwapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Skill names are free text but must not be blank
	if strings.TrimSpace(req.SkillOffered) == "" || strings.TrimSpace(req.SkillWanted) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Skill names cannot be blank")
	}

	if req.ProviderID == actor.ID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot send a swap request to yourself")
	}

	// The provider must exist and not be banned
	provider, err := h.userRepository.GetUserByID(req.ProviderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Provider not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if provider.IsBanned {
		return echo.NewHTTPError(http.StatusNotFound, "Provider not found")
	}

	swap := &models.SwapRequest{
		RequesterID:  actor.ID,
		ProviderID:   req.ProviderID,
		SkillOffered: req.SkillOffered,
		SkillWanted:  req.SkillWanted,
		Message:      req.Message,
		Status:       models.SwapStatusPending,
	}

	if err := h.swapRepository.CreateSwapRequest(swap); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, swap)
}

// GetMySwaps retrieves the swap requests the authenticated user sent and received
func (h *SwapHandler) GetMySwaps(c echo.Context) error {
	actor := middleware.Actor(c)

	swaps, err := h.swapRepository.GetUserSwaps(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, swaps)
}

// UpdateSwapStatus handles accepting or rejecting a pending swap request
func (h *SwapHandler) UpdateSwapStatus(c echo.Context) error {
	actor := middleware.Actor(c)

	swapID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid swap request ID")
	}

	var req models.UpdateSwapStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	swap, err := h.swapRepository.GetSwapRequestByID(uint(swapID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Swap request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only the provider may accept or reject, regardless of current status
	if swap.ProviderID != actor.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the provider can accept or reject this swap request")
	}

	if swap.Status != models.SwapStatusPending {
		return echo.NewHTTPError(http.StatusConflict, "Swap request is no longer pending")
	}

	// The pending guard travels with the write; a concurrent transition or
	// delete on the same request leaves exactly one winner.
	updated, err := h.swapRepository.UpdateStatus(uint(swapID), actor.ID, req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !updated {
		return echo.NewHTTPError(http.StatusConflict, "Swap request is no longer pending")
	}

	swap, err = h.swapRepository.GetSwapRequestByID(uint(swapID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, swap)
}

// DeleteSwap handles a requester withdrawing a pending swap request
func (h *SwapHandler) DeleteSwap(c echo.Context) error {
	actor := middleware.Actor(c)

	swapID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid swap request ID")
	}

	swap, err := h.swapRepository.GetSwapRequestByID(uint(swapID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Swap request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Only the requester may withdraw a request, and only while pending
	if swap.RequesterID != actor.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the requester can delete this swap request")
	}

	if swap.Status != models.SwapStatusPending {
		return echo.NewHTTPError(http.StatusConflict, "Only pending swap requests can be deleted")
	}

	deleted, err := h.swapRepository.Delete(uint(swapID), actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !deleted {
		return echo.NewHTTPError(http.StatusConflict, "Swap request is no longer pending")
	}

	return c.NoContent(http.StatusNoContent)
}
