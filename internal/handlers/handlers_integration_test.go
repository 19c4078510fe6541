package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"notesapi/internal/handlers"
	"notesapi/internal/middleware"
	"notesapi/internal/models"
	"notesapi/internal/repositories"
	"notesapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// envelope mirrors the wire response shape.
type envelope struct {
	StatusCode int                    `json:"statusCode"`
	Status     string                 `json:"status"`
	Data       map[string]interface{} `json:"data"`
	Error      *struct {
		Code    int    `json:"code"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e envelope) records() map[string]interface{} {
	records, _ := e.Data["records"].(map[string]interface{})
	return records
}

// setupApp builds a Fiber app for testing against a dedicated in-memory
// SQLite database.
func setupApp(t *testing.T, tokenExpiry time.Duration) (*fiber.App, *services.AuthService) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Note{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	noteRepo := repositories.NewGORMNoteRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret, tokenExpiry)
	noteService := services.NewNoteService(noteRepo, nil) // nil RabbitMQ client

	authHandler := handlers.NewAuthHandler(authService)
	noteHandler := handlers.NewNoteHandler(noteService)

	app := fiber.New()
	api := app.Group("/api")
	authRequired := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(api, authRequired)
	noteHandler.RegisterRoutes(api, authRequired)

	return app, authService
}

// doRequest sends a JSON request through the app, optionally with an
// auth-token header, and decodes the envelope.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("auth-token", token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	err = json.NewDecoder(resp.Body).Decode(&env)
	assert.NoError(t, err)
	return resp.StatusCode, env
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func registerUser(t *testing.T, app *fiber.App, name, email, password string) string {
	t.Helper()
	status, env := doRequest(t, app, http.MethodPost, "/api/auth/createuser", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	assert.Equal(t, http.StatusOK, status)
	token, _ := env.records()["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestAuthEndpoints(t *testing.T) {
	app, authService := setupApp(t, time.Hour)

	// Register
	token := registerUser(t, app, "Alice", "alice@x.com", "secret1")

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims["email"])

	// Duplicate email fails with the generic 400, regardless of the other
	// fields.
	status, env := doRequest(t, app, http.MethodPost, "/api/auth/createuser", "", map[string]string{
		"name":     "Another Alice",
		"email":    "alice@x.com",
		"password": "different",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "failure", env.Status)
	assert.Equal(t, "Email is already in use", env.Error.Message)

	// Tokens carry issued-at with second resolution, so a login in the same
	// second would mint an identical string.
	time.Sleep(1100 * time.Millisecond)

	// Login returns a fresh token for the same subject.
	status, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, status)
	loginToken, _ := env.records()["token"].(string)
	assert.NotEmpty(t, loginToken)
	assert.NotEqual(t, token, loginToken)

	loginClaims, err := authService.ValidateToken(loginToken)
	assert.NoError(t, err)
	assert.Equal(t, claims["id"], loginClaims["id"])

	// Wrong password and unknown email produce the identical failure.
	status, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Incorrect email or password", env.Error.Message)

	status, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Incorrect email or password", env.Error.Message)

	// getuser returns the user without the password hash.
	status, env = doRequest(t, app, http.MethodPost, "/api/auth/getuser", loginToken, nil)
	assert.Equal(t, http.StatusOK, status)
	user, _ := env.records()["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "alice@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")
}

func TestAuthValidation(t *testing.T) {
	app, _ := setupApp(t, time.Hour)

	// Short password
	status, env := doRequest(t, app, http.MethodPost, "/api/auth/createuser", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ValidationError", env.Error.Name)

	// Bad email on login
	status, env = doRequest(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ValidationError", env.Error.Name)

	// One-character name
	status, env = doRequest(t, app, http.MethodPost, "/api/auth/createuser", "", map[string]string{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ValidationError", env.Error.Name)
}

func TestAuthGate(t *testing.T) {
	app, _ := setupApp(t, time.Hour)

	// Missing token
	status, env := doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AuthenticationError", env.Error.Name)
	assert.Equal(t, "Authentication token is missing. Please log in.", env.Error.Message)

	// Garbage token
	status, env = doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token. Please log in again.", env.Error.Message)
}

func TestExpiredTokenRejected(t *testing.T) {
	app, _ := setupApp(t, -time.Second)

	token := registerUser(t, app, "Alice", "alice-expired@x.com", "secret1")

	// The token was already expired when issued.
	status, env := doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token. Please log in again.", env.Error.Message)
}

func TestNoteLifecycle(t *testing.T) {
	app, _ := setupApp(t, time.Hour)

	aliceToken := registerUser(t, app, "Alice", "alice-notes@x.com", "secret1")
	bobToken := registerUser(t, app, "Bob", "bob-notes@x.com", "secret2")

	// Fresh user has no notes.
	status, env := doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No notes found", env.records()["msg"])

	// Add a note without a tag; it defaults to General.
	status, env = doRequest(t, app, http.MethodPost, "/api/notes/addnote", aliceToken, map[string]string{
		"title":       "T",
		"description": "D",
	})
	assert.Equal(t, http.StatusOK, status)
	note, _ := env.records()["notes"].(map[string]interface{})
	assert.Equal(t, "General", note["tag"])
	noteID, _ := note["id"].(string)
	assert.NotEmpty(t, noteID)

	// Missing title fails validation.
	status, env = doRequest(t, app, http.MethodPost, "/api/notes/addnote", aliceToken, map[string]string{
		"description": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "ValidationError", env.Error.Name)

	// Fetch contains the note.
	status, env = doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	notes, _ := env.records()["notes"].([]interface{})
	assert.Len(t, notes, 1)

	// Bob cannot see Alice's notes.
	status, env = doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", bobToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No notes found", env.records()["msg"])

	// Bob cannot update Alice's note; the failure is the authentication
	// envelope, not a distinct forbidden error.
	status, env = doRequest(t, app, http.MethodPut, "/api/notes/updatenote/"+noteID, bobToken, map[string]string{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AuthenticationError", env.Error.Name)
	assert.Equal(t, "Authentication error. Please log in again.", env.Error.Message)

	// Bob cannot delete it either.
	status, env = doRequest(t, app, http.MethodDelete, "/api/notes/deletenote/"+noteID, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AuthenticationError", env.Error.Name)

	// Alice updates only the title; the rest is unchanged.
	status, env = doRequest(t, app, http.MethodPut, "/api/notes/updatenote/"+noteID, aliceToken, map[string]string{
		"title": "T2",
	})
	assert.Equal(t, http.StatusOK, status)
	updated, _ := env.records()["note"].(map[string]interface{})
	assert.Equal(t, "T2", updated["title"])
	assert.Equal(t, "D", updated["description"])
	assert.Equal(t, "General", updated["tag"])

	// Unknown note id is a 404, checked before ownership.
	status, env = doRequest(t, app, http.MethodPut, "/api/notes/updatenote/no-such-id", aliceToken, map[string]string{
		"title": "x",
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", env.Error.Message)

	// Alice deletes her note.
	status, env = doRequest(t, app, http.MethodDelete, "/api/notes/deletenote/"+noteID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Note has been deleted successfully", env.records()["msg"])

	// It is gone.
	status, env = doRequest(t, app, http.MethodGet, "/api/notes/fetchallnotes", aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No notes found", env.records()["msg"])

	status, env = doRequest(t, app, http.MethodDelete, "/api/notes/deletenote/"+noteID, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found", env.Error.Message)
}
