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

// SkillHandler handles HTTP requests related to the skill catalog
type SkillHandler struct {
	skillRepository repositories.SkillRepository
}

// NewSkillHandler creates a new SkillHandler
func NewSkillHandler(skillRepo repositories.SkillRepository) *SkillHandler {
	return &SkillHandler{skillRepository: skillRepo}
}

// RegisterSkillRoutes registers skill-catalog-related routes
func (h *SkillHandler) RegisterSkillRoutes(g *echo.Group) {
	g.GET("/skills", h.GetMySkills)
	g.POST("/skills/offered", h.AddOffered)
	g.POST("/skills/wanted", h.AddWanted)
	g.DELETE("/skills/offered/:id", h.DeleteOffered)
	g.DELETE("/skills/wanted/:id", h.DeleteWanted)
}

// GetMySkills retrieves the authenticated user's skill lists
func (h *SkillHandler) GetMySkills(c echo.Context) error {
	actor := middleware.Actor(c)

	skills, err := h.skillRepository.GetUserSkills(actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, skills)
}

// AddOffered adds a skill the authenticated user can teach
func (h *SkillHandler) AddOffered(c echo.Context) error {
	actor := middleware.Actor(c)

	var req models.CreateSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skill := &models.SkillOffered{
		UserID:      actor.ID,
		SkillName:   req.SkillName,
		Description: req.Description,
	}

	if err := h.skillRepository.AddOffered(skill); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, skill)
}

// AddWanted adds a skill the authenticated user wants to learn
func (h *SkillHandler) AddWanted(c echo.Context) error {
	actor := middleware.Actor(c)

	var req models.CreateSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	skill := &models.SkillWanted{
		UserID:      actor.ID,
		SkillName:   req.SkillName,
		Description: req.Description,
	}

	if err := h.skillRepository.AddWanted(skill); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, skill)
}

// DeleteOffered removes one of the authenticated user's offered skills
func (h *SkillHandler) DeleteOffered(c echo.Context) error {
	actor := middleware.Actor(c)

	skillID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skill ID")
	}

	if err := h.skillRepository.DeleteOffered(uint(skillID), actor.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Skill not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteWanted removes one of the authenticated user's wanted skills
func (h *SkillHandler) DeleteWanted(c echo.Context) error {
	actor := middleware.Actor(c)

	skillID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid skill ID")
	}

	if err := h.skillRepository.DeleteWanted(uint(skillID), actor.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Skill not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
