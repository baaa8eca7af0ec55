package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/anonto42/skillswap/backend/internal/middleware"
	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RatingHandler handles HTTP requests related to ratings and reputation
type RatingHandler struct {
	ratingRepository repositories.RatingRepository
	swapRepository   repositories.SwapRepository // To check rating eligibility
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(ratingRepo repositories.RatingRepository, swapRepo repositories.SwapRepository) *RatingHandler {
	return &RatingHandler{
		ratingRepository: ratingRepo,
		swapRepository:   swapRepo,
	}
}

// RegisterRatingRoutes registers rating-related routes
func (h *RatingHandler) RegisterRatingRoutes(g *echo.Group) {
	g.POST("/ratings", h.CreateRating)
	g.GET("/users/:id/ratings", h.GetUserRatings)
	g.GET("/users/:id/reputation", h.GetReputation)
}

// CreateRating handles submitting a rating for an accepted swap. Only the
// requester of the swap may rate, only about the provider, and only once.
// Every eligibility failure surfaces as 403; the cause is logged server-side.
func (h *RatingHandler) CreateRating(c echo.Context) error {
	actor := middleware.Actor(c)

	var req models.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	swap, err := h.swapRepository.GetSwapRequestByID(req.SwapRequestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Printf("rating rejected: swap request %d not found (rater %d)", req.SwapRequestID, actor.ID)
			return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if swap.Status != models.SwapStatusAccepted {
		log.Printf("rating rejected: swap request %d is %s, not accepted (rater %d)", swap.ID, swap.Status, actor.ID)
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
	}

	if swap.RequesterID != actor.ID {
		log.Printf("rating rejected: user %d is not the requester of swap request %d", actor.ID, swap.ID)
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
	}

	if req.RatedID != swap.ProviderID {
		log.Printf("rating rejected: rated user %d is not the provider of swap request %d", req.RatedID, swap.ID)
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
	}

	exists, err := h.ratingRepository.ExistsForSwapAndRater(swap.ID, actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if exists {
		log.Printf("rating rejected: swap request %d already rated by user %d", swap.ID, actor.ID)
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
	}

	rating := &models.Rating{
		SwapRequestID: swap.ID,
		RaterID:       actor.ID,
		RatedID:       swap.ProviderID,
		Score:         req.Score,
		Feedback:      req.Feedback,
	}

	if err := h.ratingRepository.CreateRating(rating); err != nil {
		// The unique index is the final arbiter under concurrent submissions
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("rating rejected: concurrent duplicate for swap request %d by user %d", swap.ID, actor.ID)
			return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to rate this swap")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, rating)
}

// GetUserRatings retrieves the ratings a user has received
func (h *RatingHandler) GetUserRatings(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	ratings, err := h.ratingRepository.GetUserRatings(uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"ratings": ratings})
}

// GetReputation retrieves the aggregate rating summary for a user
func (h *RatingHandler) GetReputation(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	summary, err := h.ratingRepository.GetReputation(uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, summary)
}
