package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/skillswap/backend/internal/middleware"
	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to user profiles and discovery
type UserHandler struct {
	userRepository   repositories.UserRepository
	skillRepository  repositories.SkillRepository
	ratingRepository repositories.RatingRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, skillRepo repositories.SkillRepository, ratingRepo repositories.RatingRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		skillRepository:  skillRepo,
		ratingRepository: ratingRepo,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.PUT("/profile", h.UpdateProfile) // Update own profile
	g.GET("/users/:id", h.GetUser)     // Get other user's public profile by ID
	g.GET("/users/search", h.SearchUsers)
}

// GetProfile retrieves the authenticated user's profile with skills and ratings
func (h *UserHandler) GetProfile(c echo.Context) error {
	actor := middleware.Actor(c)

	skills, err := h.skillRepository.GetUserSkills(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ratings, err := h.ratingRepository.GetUserRatings(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reputation, err := h.ratingRepository.GetReputation(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":       actor,
		"skills":     skills,
		"ratings":    ratings,
		"reputation": reputation,
	})
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor := middleware.Actor(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Name != nil {
		actor.Name = *req.Name
	}
	if req.Location != nil {
		actor.Location = *req.Location
	}
	if req.Bio != nil {
		actor.Bio = *req.Bio
	}
	if req.Availability != nil {
		actor.Availability = *req.Availability
	}
	if req.IsPublic != nil {
		actor.IsPublic = *req.IsPublic
	}

	if err := h.userRepository.UpdateUser(actor); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, actor)
}

// GetUser retrieves another user's public profile
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Private and banned profiles are indistinguishable from missing ones
	actor := middleware.Actor(c)
	if (!user.IsPublic && user.ID != actor.ID) || user.IsBanned {
		return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
	}

	skills, err := h.skillRepository.GetUserSkills(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reputation, err := h.ratingRepository.GetReputation(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":       user,
		"skills":     skills,
		"reputation": reputation,
	})
}

// SearchUsers searches public users by name, location or skill name
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.QueryParam("per_page"))
	if err != nil || perPage < 1 || perPage > 50 {
		perPage = 10
	}

	users, err := h.userRepository.SearchUsers(query, page, perPage)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Attach skills and reputation to each result
	results := make([]echo.Map, 0, len(users))
	for _, user := range users {
		skills, err := h.skillRepository.GetUserSkills(user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		reputation, err := h.ratingRepository.GetReputation(user.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		results = append(results, echo.Map{
			"user":       user,
			"skills":     skills,
			"reputation": reputation,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"users": results})
}
