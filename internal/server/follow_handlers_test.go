package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"plume/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postFollow(t *testing.T, app *fiber.App, following string) *http.Response {
	t.Helper()
	body := []byte(fmt.Sprintf(`{"following":%q}`, following))
	req := httptest.NewRequest(http.MethodPost, "/follows", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateFollow(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	_ = bob

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Post("/follows", s.CreateFollow)

	t.Run("success returns usernames", func(t *testing.T) {
		resp := postFollow(t, app, "bob")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var edge FollowResponse
		decodeBody(t, resp, &edge)
		assert.Equal(t, "alice", edge.User)
		assert.Equal(t, "bob", edge.Following)
	})

	t.Run("duplicate is 400", func(t *testing.T) {
		resp := postFollow(t, app, "bob")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errBody models.ErrorResponse
		decodeBody(t, resp, &errBody)
		assert.Equal(t, models.CodeValidation, errBody.Code)
	})

	t.Run("self follow is 400", func(t *testing.T) {
		resp := postFollow(t, app, "alice")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown username is 404", func(t *testing.T) {
		resp := postFollow(t, app, "nobody")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetFollows_ScopedToCallerAndSearchable(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// alice follows bob and carol; carol follows bob.
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: carol.ID, FollowingID: bob.ID}).Error)

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Get("/follows", s.GetFollows)

	t.Run("lists only the caller's edges", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/follows", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var edges []FollowResponse
		decodeBody(t, resp, &edges)
		require.Len(t, edges, 2)
		for _, e := range edges {
			assert.Equal(t, "alice", e.User)
		}
	})

	t.Run("search filters by followed username", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/follows?search=CAR", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var edges []FollowResponse
		decodeBody(t, resp, &edges)
		require.Len(t, edges, 1)
		assert.Equal(t, "carol", edges[0].Following)
	})

	t.Run("search with no match returns empty array", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/follows?search=zzz", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var edges []FollowResponse
		decodeBody(t, resp, &edges)
		assert.Len(t, edges, 0)
	})
}

func TestGetFollows_AnonymousGets401(t *testing.T) {
	s, _ := newTestServer(t)

	app := fiber.New()
	s.SetupRoutes(app)

	req := httptest.NewRequest(http.MethodGet, "/api/follows/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteFollow(t *testing.T) {
	s, db := newTestServer(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)

	app := fiber.New()
	app.Use(asUser(alice.ID))
	app.Delete("/follows/:username", s.DeleteFollow)

	req := httptest.NewRequest(http.MethodDelete, "/follows/bob", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Second delete finds no edge.
	req = httptest.NewRequest(http.MethodDelete, "/follows/bob", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
