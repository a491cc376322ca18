package masterdata

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

func newMasterDataTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
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

	controller := NewMasterDataController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Post("/api/master/agencies", controller.CreateAgency)
	app.Post("/api/master/parties", controller.CreateParty)
	app.Get("/api/master/agencies", controller.ListAgencies)

	return app, mock
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
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

func TestCreateAgency(t *testing.T) {
	app, mock := newMasterDataTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "agencies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "agencies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	resp := postJSON(t, app, "/api/master/agencies", map[string]string{"name": "Al Madina Goods"})

	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateAgencyDuplicate(t *testing.T) {
	app, mock := newMasterDataTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "agencies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Al Madina Goods"))

	resp := postJSON(t, app, "/api/master/agencies", map[string]string{"name": "Al Madina Goods"})

	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Agency already exists" {
		t.Fatalf("message = %v, want duplicate error", body["message"])
	}
}

func TestCreateAgencyValidation(t *testing.T) {
	app, _ := newMasterDataTestApp(t)

	resp := postJSON(t, app, "/api/master/agencies", map[string]string{"name": " "})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected per-field errors, got %v", body)
	}
	if _, ok := errs["name"]; !ok {
		t.Fatalf("missing name issue: %v", errs)
	}
}

func TestCreatePartyUnknownCity(t *testing.T) {
	app, mock := newMasterDataTestApp(t)

	mock.ExpectQuery(`SELECT \* FROM "cities"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp := postJSON(t, app, "/api/master/parties", map[string]interface{}{
		"name":    "Haji Traders",
		"phone":   "0300-1234567",
		"city_id": 44,
	})

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected per-field errors, got %v", body)
	}
	if _, ok := errs["city_id"]; !ok {
		t.Fatalf("missing city_id issue: %v", errs)
	}
}
