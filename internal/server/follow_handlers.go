// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FollowResponse is the wire shape of a follow edge: usernames, not IDs.
type FollowResponse struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Following string `json:"following"`
	CreatedAt string `json:"created_at"`
}

func followResponse(f *models.Follow) FollowResponse {
	return FollowResponse{
		ID:        f.ID,
		User:      f.Follower.Username,
		Following: f.Following.Username,
		CreatedAt: f.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateFollow creates a follow edge from the caller to another user (protected)
func (s *Server) CreateFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Following string `json:"following"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	follow, err := s.followService.Follow(ctx, service.CreateFollowInput{
		Caller:   s.caller(c),
		Username: req.Following,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(followResponse(follow))
}

// GetFollows lists the caller's follow edges, optionally filtered by
// ?search=<username substring> (protected)
func (s *Server) GetFollows(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	follows, err := s.followService.ListFollows(ctx, service.ListFollowsInput{
		Caller: s.caller(c),
		Search: c.Query("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]FollowResponse, 0, len(follows))
	for _, f := range follows {
		out = append(out, followResponse(f))
	}
	return c.JSON(out)
}

// DeleteFollow removes the caller's follow edge to the named user (protected)
func (s *Server) DeleteFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()

	username := c.Params("username")
	if username == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	if err := s.followService.Unfollow(ctx, s.caller(c), username); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
