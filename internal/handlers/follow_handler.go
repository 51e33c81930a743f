package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nahid-dv/pixelgram/backend/internal/repositories"
	"github.com/nahid-dv/pixelgram/backend/internal/services"
	"gorm.io/gorm"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	graph    *services.GraphService
	userRepo repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.GraphService, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{graph: graph, userRepo: userRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/profiles/:username/follow", h.ToggleFollow)
	g.DELETE("/profiles/:username/followers", h.RemoveFollower)
	g.GET("/profiles/:username/followers", h.GetFollowers)
	g.GET("/profiles/:username/following", h.GetFollowing)
}

func (h *FollowHandler) resolveUser(c echo.Context) (uint, error) {
	user, err := h.userRepo.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user.ID, nil
}

// ToggleFollow follows the target when no edge exists, unfollows otherwise
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	followed, err := h.graph.ToggleFollow(currentUserID, targetID)
	if err != nil {
		return toHTTPError(err)
	}

	status := "unfollowed"
	if followed {
		status = "followed"
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": status}})
}

// RemoveFollower forces the named user off the current user's follower list
func (h *FollowHandler) RemoveFollower(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followerID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	if err := h.graph.RemoveFollower(currentUserID, followerID); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"status": "removed"}})
}

// GetFollowers lists who follows the named user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	users, err := h.graph.Followers(targetID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}

// GetFollowing lists who the named user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.resolveUser(c)
	if err != nil {
		return err
	}

	users, err := h.graph.Following(targetID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": users})
}
