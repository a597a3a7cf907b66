package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/furniture-store/internal/api/http/handlers"
	"github.com/spec-kit/furniture-store/internal/auth"
	"github.com/spec-kit/furniture-store/internal/cache"
	"github.com/spec-kit/furniture-store/internal/cache/cachetest"
	"github.com/spec-kit/furniture-store/internal/config"
	"github.com/spec-kit/furniture-store/internal/events"
	"github.com/spec-kit/furniture-store/internal/observability"
	"github.com/spec-kit/furniture-store/internal/repository/memory"
	"github.com/spec-kit/furniture-store/internal/uploads"
)

const adminSecret = "router-test-admin"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	files, err := uploads.NewStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		App:     config.AppConfig{Name: "furniture-store", Version: "test"},
		Auth:    config.AuthConfig{JWTSecret: "router-test-secret", TokenTTLSeconds: 3600, AdminSecret: adminSecret},
		Uploads: config.UploadsConfig{MaxBodySize: 4 << 20},
	}
	return NewServer(ServerDeps{
		Config:     cfg,
		Metrics:    observability.NewMetrics(),
		Repos:      memory.NewStore().Set(),
		Cache:      cachetest.NewMemory(),
		Uploads:    files,
		Dispatcher: events.NewInMemoryDispatcher(),
		Hasher:     auth.NewHasher(bcrypt.MinCost),
		Clock:      abtime.NewManualAtTime(time.Now()),
	})
}

type response struct {
	status int
	body   map[string]any
	raw    []byte
}

func (r response) data() map[string]any {
	d, _ := r.body["data"].(map[string]any)
	return d
}

func (r response) errorCode() string {
	e, _ := r.body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func send(t *testing.T, app *fiber.App, req *nethttp.Request) response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := response{status: resp.StatusCode, raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		if err := json.Unmarshal(raw, &out.body); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return out
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any, headers ...string) response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return send(t, app, req)
}

func registerUser(t *testing.T, app *fiber.App, email, login string) (string, int64) {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]any{
		"full_name": "Test " + login, "login": login, "email": email, "password": "pw1",
	})
	if resp.status != nethttp.StatusOK {
		t.Fatalf("register %s: %d %s", email, resp.status, resp.raw)
	}
	token := resp.body["access_token"].(string)
	login2 := doJSON(t, app, fiber.MethodGet, "/users?skip=0&limit=100", "", nil)
	for _, u := range login2.body["data"].([]any) {
		user := u.(map[string]any)
		if user["email"] == email {
			return token, int64(user["id"].(float64))
		}
	}
	t.Fatalf("registered user %s not listed", email)
	return "", 0
}

func elevate(t *testing.T, app *fiber.App, userID int64, level int) response {
	t.Helper()
	return doJSON(t, app, fiber.MethodPost, "/auth/elevate", "",
		map[string]any{"user_id": userID, "level": level}, auth.AdminSecretHeader, adminSecret)
}

var orderBody = map[string]any{
	"full_name":        "Alice Doe",
	"email":            "a@x.com",
	"delivery_address": "Main st 1",
	"city":             "Moscow",
	"street":           "Main",
	"house":            "1",
	"payment_method":   "card",
	"recipient":        "Alice",
}

func TestStaleTokenIsCorrectedAfterElevation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]any{
		"full_name": "A", "login": "a", "email": "a@x.com", "password": "pw1", "access_level": 10,
	})
	if resp.status != nethttp.StatusOK {
		t.Fatalf("register: %d %s", resp.status, resp.raw)
	}
	if resp.body["level"].(float64) != 1 || resp.body["token_type"] != "bearer" {
		t.Fatalf("register body = %v", resp.body)
	}
	if _, ok := resp.body["user_id"]; ok {
		t.Error("register response carries user_id")
	}
	original := resp.body["access_token"].(string)

	created := doJSON(t, app, fiber.MethodPost, "/orders", original, orderBody)
	if created.status != nethttp.StatusCreated {
		t.Fatalf("create order: %d %s", created.status, created.raw)
	}
	orderPath := "/orders/" + strconv.FormatInt(int64(created.data()["id"].(float64)), 10)
	userID := int64(created.data()["user_id"].(float64))

	update := map[string]any{"status": "shipped"}
	if got := doJSON(t, app, fiber.MethodPut, orderPath, original, update); got.status != nethttp.StatusForbidden {
		t.Fatalf("update before elevation: %d %s", got.status, got.raw)
	}

	elevated := elevate(t, app, userID, auth.LevelModerator)
	if elevated.status != nethttp.StatusOK {
		t.Fatalf("elevate: %d %s", elevated.status, elevated.raw)
	}
	if elevated.body["level"].(float64) != 2 || int64(elevated.body["user_id"].(float64)) != userID {
		t.Errorf("elevate body = %v", elevated.body)
	}

	got := doJSON(t, app, fiber.MethodPut, orderPath, original, update)
	if got.status != nethttp.StatusOK {
		t.Fatalf("update with original token after elevation: %d %s", got.status, got.raw)
	}
	if got.data()["status"] != "shipped" {
		t.Errorf("order status = %v", got.data()["status"])
	}
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, userID := registerUser(t, app, "a@x.com", "alice")

	tests := []struct {
		name   string
		resp   func() response
		status int
		code   string
	}{
		{"duplicate email", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/register", "", map[string]any{
				"full_name": "B", "login": "b", "email": "a@x.com", "password": "pw"})
		}, nethttp.StatusBadRequest, "CONFLICT"},
		{"wrong password", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{"login": "a@x.com", "password": "bad"})
		}, nethttp.StatusBadRequest, "INVALID_ARGUMENT"},
		{"unknown login", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{"login": "ghost", "password": "pw1"})
		}, nethttp.StatusBadRequest, "INVALID_ARGUMENT"},
		{"login by name", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{"login": "alice", "password": "pw1"})
		}, nethttp.StatusOK, ""},
		{"elevate without secret", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/elevate", "", map[string]any{"user_id": userID, "level": 2})
		}, nethttp.StatusUnauthorized, "UNAUTHORIZED"},
		{"elevate wrong secret", func() response {
			return doJSON(t, app, fiber.MethodPost, "/auth/elevate", "", map[string]any{"user_id": userID, "level": 2},
				auth.AdminSecretHeader, "nope")
		}, nethttp.StatusUnauthorized, "UNAUTHORIZED"},
		{"elevate level 0", func() response { return elevate(t, app, userID, 0) }, nethttp.StatusBadRequest, "INVALID_ARGUMENT"},
		{"elevate level 11", func() response { return elevate(t, app, userID, 11) }, nethttp.StatusBadRequest, "INVALID_ARGUMENT"},
		{"elevate missing user", func() response { return elevate(t, app, 999, 2) }, nethttp.StatusNotFound, "NOT_FOUND"},
		{"elevate level 10", func() response { return elevate(t, app, userID, 10) }, nethttp.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := tc.resp()
			if resp.status != tc.status || resp.errorCode() != tc.code {
				t.Errorf("got %d %q, want %d %q (%s)", resp.status, resp.errorCode(), tc.status, tc.code, resp.raw)
			}
		})
	}
}

func TestElevateChecksSecretBeforeBody(t *testing.T) {
	app := newTestApp(t)
	for _, secret := range []string{"", "nope"} {
		req := httptest.NewRequest(fiber.MethodPost, "/auth/elevate", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		if secret != "" {
			req.Header.Set(auth.AdminSecretHeader, secret)
		}
		resp := send(t, app, req)
		if resp.status != nethttp.StatusUnauthorized || resp.errorCode() != "UNAUTHORIZED" {
			t.Errorf("secret %q with malformed body: %d %s", secret, resp.status, resp.raw)
		}
	}

	req := httptest.NewRequest(fiber.MethodPost, "/auth/elevate", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.AdminSecretHeader, adminSecret)
	if resp := send(t, app, req); resp.status != nethttp.StatusBadRequest {
		t.Errorf("valid secret with malformed body: %d %s", resp.status, resp.raw)
	}
}

func TestReadinessHidesDependencyErrors(t *testing.T) {
	files, err := uploads.NewStorage(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	app := NewServer(ServerDeps{
		Config: &config.Config{
			App:  config.AppConfig{Name: "furniture-store"},
			Auth: config.AuthConfig{JWTSecret: "router-test-secret", TokenTTLSeconds: 3600, AdminSecret: adminSecret},
		},
		Repos:      memory.NewStore().Set(),
		Cache:      cache.Noop{},
		Uploads:    files,
		Dispatcher: events.NewInMemoryDispatcher(),
		Hasher:     auth.NewHasher(bcrypt.MinCost),
		Probes: map[string]handlers.Pinger{
			"postgres": failingPinger{errors.New("dial tcp 10.0.0.7:5432: connection refused")},
		},
	})

	resp := doJSON(t, app, fiber.MethodGet, "/health/ready", "", nil)
	if resp.status != nethttp.StatusServiceUnavailable {
		t.Fatalf("ready: %d %s", resp.status, resp.raw)
	}
	if strings.Contains(string(resp.raw), "10.0.0.7") {
		t.Errorf("readiness body leaks ping error: %s", resp.raw)
	}
	details, _ := resp.body["error"].(map[string]any)["details"].(map[string]any)
	if details["postgres"] != "unavailable" {
		t.Errorf("postgres status = %v, want unavailable", details["postgres"])
	}
}

type failingPinger struct{ err error }

func (p failingPinger) Ping(context.Context) error { return p.err }

func TestElevateDefaultsToAdmin(t *testing.T) {
	app := newTestApp(t)
	_, userID := registerUser(t, app, "a@x.com", "alice")
	resp := doJSON(t, app, fiber.MethodPost, "/auth/elevate", "", map[string]any{"user_id": userID},
		auth.AdminSecretHeader, adminSecret)
	if resp.status != nethttp.StatusOK || resp.body["level"].(float64) != auth.LevelAdmin {
		t.Errorf("elevate without level: %d %s", resp.status, resp.raw)
	}
}

func TestGatedRoutes(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "a@x.com", "alice")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"no token", fiber.MethodPost, "/orders", "", nethttp.StatusUnauthorized},
		{"garbage token", fiber.MethodPost, "/orders", "garbage", nethttp.StatusUnauthorized},
		{"customer deletes user", fiber.MethodDelete, "/users/1", token, nethttp.StatusForbidden},
		{"customer creates shop", fiber.MethodPost, "/shops", token, nethttp.StatusForbidden},
		{"customer answers support", fiber.MethodPut, "/support/requests/1", token, nethttp.StatusForbidden},
		{"public catalog", fiber.MethodGet, "/modules", "", nethttp.StatusOK},
		{"public order list", fiber.MethodGet, "/orders", "", nethttp.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, tc.method, tc.path, tc.token, map[string]any{})
			if resp.status != tc.status {
				t.Errorf("status = %d, want %d (%s)", resp.status, tc.status, resp.raw)
			}
		})
	}
}

func TestCartOwnership(t *testing.T) {
	app := newTestApp(t)
	aliceToken, aliceID := registerUser(t, app, "a@x.com", "alice")
	bobToken, _ := registerUser(t, app, "b@x.com", "bob")
	path := "/users/" + strconv.FormatInt(aliceID, 10) + "/cart"

	if resp := doJSON(t, app, fiber.MethodPut, path, bobToken, map[string]any{"status": "x"}); resp.status != nethttp.StatusForbidden {
		t.Errorf("foreign cart update: %d", resp.status)
	}
	resp := doJSON(t, app, fiber.MethodPut, path, aliceToken, map[string]any{"module_ids": []int64{}})
	if resp.status != nethttp.StatusOK {
		t.Fatalf("own cart update: %d %s", resp.status, resp.raw)
	}
	if resp.data()["total_amount"].(float64) != 0 {
		t.Errorf("empty cart total = %v", resp.data()["total_amount"])
	}
}

func TestModuleUploadAndServe(t *testing.T) {
	app := newTestApp(t)
	_, userID := registerUser(t, app, "admin@x.com", "admin")
	adminToken := elevate(t, app, userID, auth.LevelAdmin).body["access_token"].(string)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Shelf")
	_ = mw.WriteField("article", "SH-1")
	_ = mw.WriteField("price", "120.5")
	_ = mw.WriteField("color_ids", "[]")
	part, err := mw.CreateFormFile("photos", "../../etc/shelf.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write([]byte("png-bytes"))
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/modules", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	created := send(t, app, req)
	if created.status != nethttp.StatusCreated {
		t.Fatalf("create module: %d %s", created.status, created.raw)
	}
	photos := created.data()["photos"].([]any)
	if len(photos) != 1 {
		t.Fatalf("photos = %v", photos)
	}
	url := photos[0].(string)

	served := send(t, app, httptest.NewRequest(fiber.MethodGet, url, nil))
	if served.status != nethttp.StatusOK || string(served.raw) != "png-bytes" {
		t.Errorf("GET %s = %d %q", url, served.status, served.raw)
	}

	id := strconv.FormatInt(int64(created.data()["id"].(float64)), 10)
	got := doJSON(t, app, fiber.MethodGet, "/modules/"+id, "", nil)
	if got.status != nethttp.StatusOK || got.data()["price"].(float64) != 120.5 {
		t.Errorf("GET module: %d %s", got.status, got.raw)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	if resp := doJSON(t, app, fiber.MethodGet, "/health/live", "", nil); resp.status != nethttp.StatusOK || resp.body["status"] != "alive" {
		t.Errorf("live: %d %s", resp.status, resp.raw)
	}
	if resp := doJSON(t, app, fiber.MethodGet, "/health/ready", "", nil); resp.status != nethttp.StatusOK {
		t.Errorf("ready without probes: %d %s", resp.status, resp.raw)
	}
	resp := doJSON(t, app, fiber.MethodGet, "/health/metrics", "", nil)
	if resp.status != nethttp.StatusOK {
		t.Fatalf("metrics: %d", resp.status)
	}
	requests, _ := resp.data()["requests"].(map[string]any)
	if len(requests) == 0 {
		t.Error("metrics snapshot has no requests")
	}
}
