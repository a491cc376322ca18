package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"transport-office/logger"
)

// newUserTestApp wires the controller behind a stub that plants the decoded
// token claims the way the auth middleware does, so the own-role guard sees
// the caller's uuid.
func newUserTestApp(t *testing.T, actorUUID string) (*fiber.App, sqlmock.Sqlmock) {
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

	controller := NewUserController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", map[string]interface{}{
			"uuid":     actorUUID,
			"username": "head.office",
			"role":     "SUPER_ADMIN",
		})
		return c.Next()
	})
	app.Get("/api/users", controller.ListUsers)
	app.Patch("/api/users/:id/role", controller.UpdateRole)

	return app, mock
}

func patchJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	return resp
}

func TestListUsers(t *testing.T) {
	app, mock := newUserTestApp(t, "uuid-actor")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "role"}).
			AddRow(2, "uuid-2", "gate.clerk", "OPERATOR").
			AddRow(1, "uuid-1", "head.office", "SUPER_ADMIN"))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	users, ok := body["data"].([]interface{})
	if !ok || len(users) != 2 {
		t.Fatalf("data = %v, want 2 users", body["data"])
	}
	first, _ := users[0].(map[string]interface{})
	if _, leaked := first["password_hash"]; leaked {
		t.Fatal("password hash must never be serialized")
	}
}

func TestUpdateRole(t *testing.T) {
	app, mock := newUserTestApp(t, "uuid-actor")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "role"}).
			AddRow(7, "uuid-7", "gate.clerk", "OPERATOR"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp := patchJSON(t, app, "/api/users/7/role", map[string]string{"role": "ADMIN"})

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "User role updated successfully" {
		t.Fatalf("message = %v", body["message"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data["role"] != "ADMIN" {
		t.Fatalf("role = %v, want ADMIN", data["role"])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateRoleOwnAccount(t *testing.T) {
	app, mock := newUserTestApp(t, "uuid-actor")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "role"}).
			AddRow(1, "uuid-actor", "head.office", "SUPER_ADMIN"))

	resp := patchJSON(t, app, "/api/users/1/role", map[string]string{"role": "OPERATOR"})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Cannot change your own role" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestUpdateRoleLastSuperAdmin(t *testing.T) {
	app, mock := newUserTestApp(t, "uuid-actor")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uuid", "username", "role"}).
			AddRow(3, "uuid-3", "founder", "SUPER_ADMIN"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	resp := patchJSON(t, app, "/api/users/3/role", map[string]string{"role": "ADMIN"})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Cannot demote the only SUPER_ADMIN" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestUpdateRoleUnknownRole(t *testing.T) {
	app, _ := newUserTestApp(t, "uuid-actor")

	resp := patchJSON(t, app, "/api/users/5/role", map[string]string{"role": "MANAGER"})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("errors missing from response: %v", body)
	}
	if _, found := errs["role"]; !found {
		t.Fatalf("errors = %v, want role issue", errs)
	}
}

func TestUpdateRoleNotFound(t *testing.T) {
	app, mock := newUserTestApp(t, "uuid-actor")

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := patchJSON(t, app, "/api/users/99/role", map[string]string{"role": "ADMIN"})

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
