package approval

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	deliveryModel "transport-office/models/delivery"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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
	return db, mock
}

func TestApplyFirstApprove(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deliveries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "delivery_approval_events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "deliveries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shipment_id", "approval_status", "approved_by"}).
			AddRow(7, 3, "APPROVED_BY_ADMIN", "admin1"))
	mock.ExpectQuery(`SELECT \* FROM "shipments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "bility_no"}).AddRow(3, "TRO-1001"))

	updated, err := NewApplier(db).Apply(7, deliveryModel.ApprovalStatusPending, deliveryModel.ActionApprove, "admin1")
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if updated.ApprovalStatus != deliveryModel.ApprovalStatusByAdmin {
		t.Fatalf("approval status = %s, want APPROVED_BY_ADMIN", updated.ApprovalStatus)
	}
	if updated.Shipment.BilityNo != "TRO-1001" {
		t.Fatalf("shipment not preloaded, got bility %q", updated.Shipment.BilityNo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyConcurrentTransitionReportsActualStatus(t *testing.T) {
	db, mock := newMockDB(t)

	// The swap misses because another approver already moved the delivery.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deliveries"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "deliveries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "approval_status"}).AddRow(7, "APPROVED"))
	mock.ExpectRollback()

	_, err := NewApplier(db).Apply(7, deliveryModel.ApprovalStatusByAdmin, deliveryModel.ActionApprove, "boss")

	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("error = %v, want *StateError", err)
	}
	if stateErr.Current != deliveryModel.ApprovalStatusApproved {
		t.Fatalf("StateError.Current = %s, want APPROVED", stateErr.Current)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyMissingDelivery(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "deliveries"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "deliveries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "approval_status"}))
	mock.ExpectRollback()

	_, err := NewApplier(db).Apply(99, deliveryModel.ApprovalStatusPending, deliveryModel.ActionReject, "admin1")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("error = %v, want gorm.ErrRecordNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyTerminalStatusTouchesNothing(t *testing.T) {
	db, mock := newMockDB(t)

	// No expectations: a terminal status is refused before any SQL runs.
	_, err := NewApplier(db).Apply(7, deliveryModel.ApprovalStatusRejected, deliveryModel.ActionApprove, "admin1")

	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("error = %v, want *StateError", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database traffic: %v", err)
	}
}
