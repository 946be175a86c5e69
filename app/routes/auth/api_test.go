package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestApp(t *testing.T) (*fiber.App, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	config.SetStore(store)

	app := fiber.New()
	SetupAuthRoutes(app)
	app.Get("/api/whoami", AuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": c.Locals("user_email"), "clearance": Clearance(c)})
	})
	return app, store
}

func seedUser(t *testing.T, store *database.MemoryStore, email, password string, roles ...string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: email, Password: string(hash), Active: true}
	require.NoError(t, store.CreateUser(user, roles))
	return user
}

func postLogin(t *testing.T, app *fiber.App, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestLoginSuccess(t *testing.T) {
	app, store := newTestApp(t)
	seedUser(t, store, "gm@example.com", "hunter22", "GM")

	resp, body := postLogin(t, app, fiber.Map{"email": "gm@example.com", "password": "hunter22"})
	assert.Equal(t, 200, resp.StatusCode)
	token, ok := body["auth"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "gm@example.com", claims.Email)
	assert.Equal(t, []string{"GM"}, claims.Roles)
}

func TestLoginUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postLogin(t, app, fiber.Map{"email": "nobody@example.com", "password": "whatever"})
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "User not found", body["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	app, store := newTestApp(t)
	seedUser(t, store, "gm@example.com", "hunter22", "GM")

	resp, body := postLogin(t, app, fiber.Map{"email": "gm@example.com", "password": "wrong"})
	assert.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "Wrong password", body["message"])
}

func TestLoginMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := postLogin(t, app, fiber.Map{})
	assert.Equal(t, 400, resp.StatusCode)

	errs, ok := body["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestAuthMiddlewareAcceptsBothHeaders(t *testing.T) {
	app, store := newTestApp(t)
	user := seedUser(t, store, "gm@example.com", "hunter22", "GM")
	token, err := GenerateJWT(user.ID, user.Email, []string{"GM"})
	require.NoError(t, err)

	for _, set := range []func(*http.Request){
		func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
		func(r *http.Request) { r.Header.Set("Auth", token) },
	} {
		req := httptest.NewRequest("GET", "/api/whoami", nil)
		set(req)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}
}

func TestAuthMiddlewareRejectsRolelessToken(t *testing.T) {
	app, _ := newTestApp(t)
	token, err := GenerateJWT("some-id", "roleless@example.com", nil)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
