package middleware

import (
	"net/http"

	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LoadActor resolves the JWT claims to a live user record and rejects banned
// accounts. Runs after JWTAuthMiddleware; stores *models.User under "actor".
func LoadActor(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("claims").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication claims")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusUnauthorized, "Account no longer exists")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}

			if user.IsBanned {
				return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
			}

			c.Set("actor", user)
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose actor is not an admin. Runs after LoadActor.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get("actor").(*models.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authenticated actor")
			}
			if !actor.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// Actor returns the authenticated user stored by LoadActor.
func Actor(c echo.Context) *models.User {
	actor, _ := c.Get("actor").(*models.User)
	return actor
}
