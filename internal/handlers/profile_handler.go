package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nahid-dv/pixelgram/backend/internal/models"
	"github.com/nahid-dv/pixelgram/backend/internal/services"
)

// ProfileHandler handles profile, search and suggestion requests
type ProfileHandler struct {
	accounts    *services.AccountService
	graph       *services.GraphService
	suggestions *services.SuggestionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(accounts *services.AccountService, graph *services.GraphService, suggestions *services.SuggestionService) *ProfileHandler {
	return &ProfileHandler{
		accounts:    accounts,
		graph:       graph,
		suggestions: suggestions,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetMyProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/profiles/:username", h.GetProfile)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/suggestions", h.GetSuggestions)
}

// GetMyProfile returns the authenticated user's profile with counts
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	view, err := h.accounts.ProfileViewByID(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view})
}

// UpdateProfile updates the authenticated user's bio, website or avatar
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.accounts.UpdateProfile(currentUserID, req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": profile})
}

// GetProfile returns any user's profile by username, with counts and the
// viewer-relative is_following flag
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	view, err := h.accounts.ProfileViewByUsername(c.Request().Context(), c.Param("username"), currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": view})
}

// SearchUsers searches users by username substring
func (h *ProfileHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": []models.UserCompact{}})
	}

	users, err := h.graph.Search(query, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}

// GetSuggestions returns people the current user may want to follow
func (h *ProfileHandler) GetSuggestions(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.suggestions.Suggest(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}
