// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"plume/internal/models"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the mutable subset of a post. Author and timestamps are
// server-derived and silently ignored if a client sends them.
type postRequest struct {
	Text     string  `json:"text"`
	ImageURL *string `json:"image_url"`
	GroupID  *uint   `json:"group_id"`
	// group_id: null in an update payload detaches the post. BodyParser
	// can't tell "absent" from "null", so updates carry an explicit flag.
	ClearGroup bool `json:"clear_group"`
}

// CreatePost creates a new post (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req postRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	imageURL := ""
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		Caller:   s.caller(c),
		Text:     req.Text,
		ImageURL: imageURL,
		GroupID:  req.GroupID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns the paginated post feed, oldest first (public)
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := parsePagination(c, 10)

	posts, err := s.postService.ListPosts(ctx, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	if posts == nil {
		posts = []*models.Post{}
	}
	return c.JSON(posts)
}

// GetPost returns a single post by ID (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost updates a post (owner only)
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	updated, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		Caller:     s.caller(c),
		PostID:     postID,
		Text:       req.Text,
		ImageURL:   req.ImageURL,
		GroupID:    req.GroupID,
		ClearGroup: req.ClearGroup,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(updated)
}

// DeletePost deletes a post and its comments (owner only)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		Caller: s.caller(c),
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
