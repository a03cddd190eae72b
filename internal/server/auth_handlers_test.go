package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "CorrectHorse9!"

func signupBody(username string) []byte {
	body, _ := json.Marshal(fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": strongPassword,
	})
	return body
}

func TestSignupAndLoginFlow(t *testing.T) {
	s, _ := newTestServer(t)

	app := fiber.New()
	app.Post("/auth/signup", s.Signup)
	app.Post("/auth/login", s.Login)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(signupBody("newuser")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var signupResp struct {
		Token string `json:"token"`
		User  struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"user"`
	}
	decodeBody(t, resp, &signupResp)
	assert.NotEmpty(t, signupResp.Token)
	assert.Equal(t, "newuser", signupResp.User.Username)
	assert.Empty(t, signupResp.User.Password, "password hash never leaves the server")

	// Login with the same credentials.
	loginBody, _ := json.Marshal(fiber.Map{
		"email":    "newuser@example.com",
		"password": strongPassword,
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(loginBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Wrong password.
	badBody, _ := json.Marshal(fiber.Map{
		"email":    "newuser@example.com",
		"password": "WrongHorse9!!!",
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(badBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSignup_RejectsWeakInput(t *testing.T) {
	s, _ := newTestServer(t)

	app := fiber.New()
	app.Post("/auth/signup", s.Signup)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"weak password", fiber.Map{"username": "gooduser", "email": "u@example.com", "password": "short"}},
		{"bad username", fiber.Map{"username": "x", "email": "u@example.com", "password": strongPassword}},
		{"bad email", fiber.Map{"username": "gooduser", "email": "not-an-email", "password": strongPassword}},
		{"missing fields", fiber.Map{"username": "gooduser"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSignup_DuplicateEmailIs409(t *testing.T) {
	s, _ := newTestServer(t)

	app := fiber.New()
	app.Post("/auth/signup", s.Signup)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(signupBody("original")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body, _ := json.Marshal(fiber.Map{
		"username": "different",
		"email":    "original@example.com",
		"password": strongPassword,
	})
	req = httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAuthRequired_AcceptsIssuedToken(t *testing.T) {
	s, db := newTestServer(t)
	user := createTestUser(t, db, "tokenuser")

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", s.AuthRequired(), s.GetMyProfile)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Username string `json:"username"`
	}
	decodeBody(t, resp, &profile)
	assert.Equal(t, "tokenuser", profile.Username)
}

func TestAuthRequired_RejectsBadTokens(t *testing.T) {
	s, db := newTestServer(t)
	user := createTestUser(t, db, "tokenuser")

	// A token signed with a different secret.
	otherCfg := *s.config
	otherCfg.JWTSecret = "some-other-secret"
	forged, err := (&Server{config: &otherCfg}).generateToken(user.ID, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", s.AuthRequired(), s.GetMyProfile)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Bearer"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestRefresh_IssuesNewToken(t *testing.T) {
	s, db := newTestServer(t)
	user := createTestUser(t, db, "refresher")

	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/auth/refresh", s.Refresh)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshResp struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &refreshResp)
	assert.NotEmpty(t, refreshResp.Token)
}
