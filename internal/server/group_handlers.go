// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGroups lists all groups (public)
func (s *Server) GetGroups(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 50)

	groups, err := s.groupRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	if groups == nil {
		groups = []*models.Group{}
	}
	return c.JSON(groups)
}

// GetGroup returns a single group by ID (public)
func (s *Server) GetGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(group)
}

// GetGroupPosts returns the paginated posts of a group (public)
func (s *Server) GetGroupPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 10)

	posts, err := s.postService.ListGroupPosts(ctx, groupID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}
