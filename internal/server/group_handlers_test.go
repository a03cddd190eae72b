package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGroups(t *testing.T) {
	s, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Group{Title: "Poetry", Slug: "poetry"}).Error)
	require.NoError(t, db.Create(&models.Group{Title: "Prose", Slug: "prose"}).Error)

	app := fiber.New()
	app.Get("/groups", s.GetGroups)

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var groups []models.Group
	decodeBody(t, resp, &groups)
	assert.Len(t, groups, 2)
}

func TestGetGroup_UnknownIDIs404(t *testing.T) {
	s, _ := newTestServer(t)

	app := fiber.New()
	app.Get("/groups/:id", s.GetGroup)

	req := httptest.NewRequest(http.MethodGet, "/groups/42", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetGroupPosts(t *testing.T) {
	s, db := newTestServer(t)
	author := createTestUser(t, db, "author")
	group := &models.Group{Title: "Poetry", Slug: "poetry"}
	require.NoError(t, db.Create(group).Error)

	require.NoError(t, db.Create(&models.Post{Text: "in group", UserID: author.ID, GroupID: &group.ID}).Error)
	require.NoError(t, db.Create(&models.Post{Text: "outside", UserID: author.ID}).Error)

	app := fiber.New()
	app.Get("/groups/:id/posts", s.GetGroupPosts)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/groups/%d/posts", group.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "in group", posts[0].Text)
}

func TestGroupDelete_DetachesPostsViaSetNull(t *testing.T) {
	s, db := newTestServer(t)
	author := createTestUser(t, db, "author")
	group := &models.Group{Title: "Doomed", Slug: "doomed"}
	require.NoError(t, db.Create(group).Error)

	post := &models.Post{Text: "orphan-to-be", UserID: author.ID, GroupID: &group.ID}
	require.NoError(t, db.Create(post).Error)

	require.NoError(t, s.groupRepo.Delete(t.Context(), group.ID))

	// The post survives, detached from the deleted group.
	var reloaded models.Post
	require.NoError(t, db.First(&reloaded, post.ID).Error)
	assert.Nil(t, reloaded.GroupID)

	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/posts/%d", post.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
