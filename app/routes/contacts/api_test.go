package contacts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sandvich/runnersbackend/app/config"
	"github.com/Sandvich/runnersbackend/app/database"
	"github.com/Sandvich/runnersbackend/app/models"
	"github.com/Sandvich/runnersbackend/app/routes/auth"
	"github.com/Sandvich/runnersbackend/app/security"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app   *fiber.App
	store *database.MemoryStore
	pc    *models.PC
	npc   *models.NPC
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemoryStore()
	config.SetStore(store)

	app := fiber.New()
	SetupContactRoutes(app)

	pc := &models.PC{Name: "Rook", Status: "Active", Owner: "owner-1", Karma: 20, Nuyen: 100000}
	require.NoError(t, store.CreatePC(pc, false))
	npc := &models.NPC{Name: "Fixer", Status: "Active", Security: "GM", Connection: 4}
	require.NoError(t, store.CreateNPC(npc))

	return &fixture{app: app, store: store, pc: pc, npc: npc}
}

func tokenFor(t *testing.T, store *database.MemoryStore, email string, roles ...string) string {
	t.Helper()
	user := &models.User{Email: email, Password: "irrelevant", Active: true}
	require.NoError(t, store.CreateUser(user, roles))
	token, err := auth.GenerateJWT(user.ID, user.Email, roles)
	require.NoError(t, err)
	return token
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func (f *fixture) workingContact() fiber.Map {
	return fiber.Map{
		"character": f.pc.ID,
		"contact":   f.npc.ID,
		"security":  "GM",
		"loyalty":   3,
		"chips":     0,
	}
}

func TestCreateContact(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	require.Equal(t, 201, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "URI")
}

func TestCreateContactRequiresGM(t *testing.T) {
	f := newFixture(t)
	player := tokenFor(t, f.store, "player@example.com", "Player")

	body := f.workingContact()
	body["security"] = "Player"
	resp := request(t, f.app, "POST", "/api/contacts", player, body)
	require.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "You must have at least GM level access to create contacts", decodeMap(t, resp)["message"])
}

func TestCreateContactAboveOwnClearance(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	body := f.workingContact()
	body["security"] = "Admin"
	resp := request(t, f.app, "POST", "/api/contacts", gm, body)
	require.Equal(t, 403, resp.StatusCode)
	assert.Equal(t, "You must have at least Admin level access to create a contact with security Admin", decodeMap(t, resp)["message"])
}

func TestCreateContactBadSecurityLevel(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	body := f.workingContact()
	body["security"] = "Overlord"
	resp := request(t, f.app, "POST", "/api/contacts", gm, body)
	require.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, security.LevelMessage, decodeMap(t, resp)["message"])
}

func TestCreateContactUnknownPC(t *testing.T) {
	f := newFixture(t)
	admin := tokenFor(t, f.store, "admin@example.com", "Admin")

	body := f.workingContact()
	body["character"] = "0"
	resp := request(t, f.app, "POST", "/api/contacts", admin, body)
	require.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["message"], " PC")
}

func TestCreateContactUnknownNPC(t *testing.T) {
	f := newFixture(t)
	admin := tokenFor(t, f.store, "admin@example.com", "Admin")

	body := f.workingContact()
	body["contact"] = "0"
	resp := request(t, f.app, "POST", "/api/contacts", admin, body)
	require.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["message"], " NPC")
}

func TestCreateContactMissingFields(t *testing.T) {
	f := newFixture(t)
	admin := tokenFor(t, f.store, "admin@example.com", "Admin")

	resp := request(t, f.app, "POST", "/api/contacts", admin, fiber.Map{})
	require.Equal(t, 400, resp.StatusCode)

	errs, ok := decodeMap(t, resp)["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "character")
	assert.Contains(t, errs, "contact")
	assert.Contains(t, errs, "security")
	assert.Contains(t, errs, "loyalty")
	assert.Contains(t, errs, "chips")
}

func TestCreateContactDefaultsConnection(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	require.Equal(t, 201, resp.StatusCode)

	details, err := f.store.ListContactsForPC(f.pc.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 1, details[0].Connection)
}

func TestUpdateContact(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	uri := decodeMap(t, resp)["URI"].(string)

	resp = request(t, f.app, "PUT", uri, gm, fiber.Map{"chips": -3})
	require.Equal(t, 200, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Contains(t, body, "URI")
	assert.Equal(t, []interface{}{"chips"}, body["changed"])
}

func TestUpdateContactEmptyBody(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	uri := decodeMap(t, resp)["URI"].(string)

	resp = request(t, f.app, "PUT", uri, gm, fiber.Map{})
	require.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, decodeMap(t, resp)["changed"])
}

func TestPlayersCannotEditContacts(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")
	player := tokenFor(t, f.store, "player@example.com", "Player")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	uri := decodeMap(t, resp)["URI"].(string)

	resp = request(t, f.app, "PUT", uri, player, fiber.Map{"chips": 3})
	require.Equal(t, 403, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp), "message")
}

func TestUpdateContactCannotEscalateSecurity(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	uri := decodeMap(t, resp)["URI"].(string)

	resp = request(t, f.app, "PUT", uri, gm, fiber.Map{"security": "Admin"})
	assert.Equal(t, 403, resp.StatusCode)
}

func TestDeleteContact(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "POST", "/api/contacts", gm, f.workingContact())
	uri := decodeMap(t, resp)["URI"].(string)

	resp = request(t, f.app, "DELETE", uri, gm, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Success", decodeMap(t, resp)["message"])
}

func TestContactNotFound(t *testing.T) {
	f := newFixture(t)
	gm := tokenFor(t, f.store, "gm@example.com", "GM")

	resp := request(t, f.app, "PUT", "/api/contact/0", gm, fiber.Map{})
	assert.Equal(t, 404, resp.StatusCode)

	resp = request(t, f.app, "DELETE", "/api/contact/0", gm, nil)
	assert.Equal(t, 404, resp.StatusCode)
}
