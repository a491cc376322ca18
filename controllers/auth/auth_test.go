package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"transport-office/logger"
)

func newAuthTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	mock.MatchExpectationsInOrder(false)

	controller := NewAuthController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Post("/api/signup", controller.Signup)
	app.Post("/api/login", controller.Login)
	app.Post("/api/logout", controller.Logout)

	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]string) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestSignupFirstAccountBecomesSuperAdmin(t *testing.T) {
	app, mock := newAuthTestApp(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/api/signup", map[string]string{
		"username": "boss",
		"password": "secret123",
		"role":     "OPERATOR",
	})

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data missing: %v", body)
	}
	if data["role"] != "SUPER_ADMIN" {
		t.Fatalf("first account role = %v, want SUPER_ADMIN", data["role"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignupSuperAdminCannotBeRequestedLater(t *testing.T) {
	app, mock := newAuthTestApp(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	resp := postJSON(t, app, "/api/signup", map[string]string{
		"username": "sneaky",
		"password": "secret123",
		"role":     "SUPER_ADMIN",
	})

	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignupValidationFailure(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/signup", map[string]string{
		"username": "ab",
		"password": "123",
	})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected per-field errors, got %v", body)
	}
	if _, ok := errs["username"]; !ok {
		t.Fatalf("missing username issue: %v", errs)
	}
	if _, ok := errs["password"]; !ok {
		t.Fatalf("missing password issue: %v", errs)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	app, mock := newAuthTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := postJSON(t, app, "/api/login", map[string]string{
		"username": "ghost",
		"password": "whatever123",
	})

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["message"] != "Invalid username or password" {
		t.Fatalf("message = %v, want the generic credential error", body["message"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, mock := newAuthTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "password_hash", "role"}).
			AddRow(1, "u-1", "clerk", string(hash), "OPERATOR"))

	resp := postJSON(t, app, "/api/login", map[string]string{
		"username": "clerk",
		"password": "wrongpass",
	})

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	app, mock := newAuthTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "password_hash", "role"}).
			AddRow(1, "u-1", "clerk", string(hash), "OPERATOR"))

	resp := postJSON(t, app, "/api/login", map[string]string{
		"username": "clerk",
		"password": "rightpass",
	})

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "tro_session" {
			session = cookie
		}
	}
	if session == nil {
		t.Fatalf("tro_session cookie not set")
	}
	if session.Value == "" {
		t.Fatalf("session cookie is empty")
	}
	if !session.HttpOnly {
		t.Fatalf("session cookie is not HttpOnly")
	}
	if session.MaxAge != 0 {
		t.Fatalf("session cookie MaxAge = %d, want 0 (session-scoped)", session.MaxAge)
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp := postJSON(t, app, "/api/logout", map[string]string{})

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "tro_session" {
			session = cookie
		}
	}
	if session == nil {
		t.Fatalf("tro_session cookie not cleared")
	}
	if session.Value != "" {
		t.Fatalf("cleared cookie still has value %q", session.Value)
	}
	// A negative MaxAge is serialized as an expiry in the past.
	if session.Expires.IsZero() || !session.Expires.Before(time.Now()) {
		t.Fatalf("cleared cookie does not expire in the past: %v", session.Expires)
	}
}
