package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fintrack/fintrack/internal/config"
	"github.com/fintrack/fintrack/internal/credential"
	"github.com/fintrack/fintrack/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		AppName:           "fintrack-test",
		AppEnv:            "development",
		SecretKey:         "test-secret",
		TokenIssuer:       "FinTrack",
		TokenAudience:     "FinTrack",
		AccessTTL:         30 * time.Minute,
		RefreshTTL:        7 * 24 * time.Hour,
		PasswordMinLength: 8,
		// Low cost so hashing does not dominate the test run.
		HashParams: credential.Params{
			Time:        1,
			MemoryKiB:   8 * 1024,
			Parallelism: 1,
			SaltLength:  16,
			KeyLength:   32,
		},
	}

	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRegisterLoginAndProfile(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "Anna@Example.com",
		"username": "anna",
		"password": "correct horse battery",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (body %v)", resp.StatusCode, body)
	}
	if body["email"] != "anna@example.com" {
		t.Fatalf("email not normalized: %v", body["email"])
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"identifier": "anna",
		"password":   "correct horse battery",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	access, _ := body["access_token"].(string)
	refresh, _ := body["refresh_token"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("missing tokens in login response: %v", body)
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/v1/users/me", access, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("profile status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if body["username"] != "anna" {
		t.Fatalf("profile username = %v, want anna", body["username"])
	}

	// A refresh token must not open a session.
	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/me", refresh, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("profile with refresh token status = %d, want 401", resp.StatusCode)
	}

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refresh status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	if tok, _ := body["access_token"].(string); tok == "" {
		t.Fatalf("refresh returned no access token: %v", body)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/v1/users/me", "/api/v1/categories", "/api/v1/expenses", "/api/v1/incomes", "/api/v1/goals"} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, resp.StatusCode)
		}
	}
}

func TestCategoryAndExpenseFlow(t *testing.T) {
	app := newTestApp(t)

	_, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    "ben@example.com",
		"username": "ben",
		"password": "hunter2hunter2",
	})
	_, login := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"identifier": "ben@example.com",
		"password":   "hunter2hunter2",
	})
	access, _ := login["access_token"].(string)
	if access == "" {
		t.Fatalf("login failed: %v", login)
	}

	resp, cat := doJSON(t, app, http.MethodPost, "/api/v1/categories", access, map[string]any{
		"name":         "Groceries",
		"budget_limit": 50000,
		"kind":         "EXPENSE",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category status = %d (body %v)", resp.StatusCode, cat)
	}
	catID, _ := cat["id"].(string)

	resp, exp := doJSON(t, app, http.MethodPost, "/api/v1/expenses", access, map[string]any{
		"category_id":    catID,
		"name":           "weekly shop",
		"amount_cents":   7340,
		"payment_method": "DEBIT_CARD",
		"is_essential":   true,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense status = %d (body %v)", resp.StatusCode, exp)
	}

	// Unknown category is rejected.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/expenses", access, map[string]any{
		"category_id":    "00000000-0000-0000-0000-000000000001",
		"name":           "mystery",
		"amount_cents":   100,
		"payment_method": "CASH",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expense with unknown category status = %d, want 400", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/expenses", access, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list expenses status = %d", resp.StatusCode)
	}
}
