package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"listforge/internal/config"
	"listforge/internal/database"
	"listforge/internal/generation"
	"listforge/internal/middleware"
	"listforge/internal/repository"
	"listforge/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// mockGenerator is a mock of the generation.Generator interface
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateList(ctx context.Context, prompt string) (*generation.ListDraft, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.ListDraft), args.Error(1)
}

// setupServer wires a full Server onto an in-memory sqlite database and
// registers the real route table, with rate limiting disabled via APP_ENV.
func setupServer(t *testing.T) (*Server, *fiber.App, *mockGenerator) {
	t.Helper()
	os.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		Env:       "test",
		Port:      "0",
		JWTSecret: "test-secret-key-for-handler-tests-only",
	}
	middleware.InitMiddleware(cfg)

	// Real Redis semantics for token revocation via miniredis
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	middleware.UseRevocationStore(rdb)
	t.Cleanup(func() {
		middleware.UseRevocationStore(nil)
		_ = rdb.Close()
	})

	gen := new(mockGenerator)
	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       rdb,
		userRepo:    userRepo,
		listRepo:    listRepo,
		generator:   gen,
		listService: service.NewListService(listRepo),
		userService: service.NewUserService(userRepo),
	}

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, gen
}

// doJSON performs a JSON request against the test app and decodes the body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

// newJSONListRequest fetches a path that returns a JSON array of objects.
func newJSONListRequest(t *testing.T, app *fiber.App, path, token string) []map[string]any {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	return items
}

// signupUser registers a fresh user through the API and returns its token.
func signupUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "SecurePass12!@",
	})
	require.Equal(t, http.StatusCreated, status, "signup body: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
