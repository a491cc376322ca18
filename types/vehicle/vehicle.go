package vehicle

import "strings"

// VehicleCreateRequest is the payload for registering a vehicle.
type VehicleCreateRequest struct {
	VehicleNumber string `json:"vehicle_number" validate:"required"`
	OwnerName     string `json:"owner_name"`
}

func (r *VehicleCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.VehicleNumber = strings.ToUpper(strings.TrimSpace(r.VehicleNumber))
	if r.VehicleNumber == "" {
		issues["vehicle_number"] = "vehicle_number is required"
	}

	r.OwnerName = strings.TrimSpace(r.OwnerName)

	return issues
}

// TransactionCreateRequest posts a single immutable ledger entry against a
// vehicle. Exactly one of credit_amount and debit_amount must be positive.
type TransactionCreateRequest struct {
	TransactionDate string  `json:"transaction_date" validate:"required"`
	CreditAmount    float64 `json:"credit_amount"`
	DebitAmount     float64 `json:"debit_amount"`
	Description     string  `json:"description"`
}

func (r *TransactionCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if strings.TrimSpace(r.TransactionDate) == "" {
		issues["transaction_date"] = "transaction_date is required"
	}

	if r.CreditAmount < 0 {
		issues["credit_amount"] = "credit_amount cannot be negative"
	}
	if r.DebitAmount < 0 {
		issues["debit_amount"] = "debit_amount cannot be negative"
	}
	if r.CreditAmount == 0 && r.DebitAmount == 0 {
		issues["amount"] = "either credit_amount or debit_amount must be positive"
	}
	if r.CreditAmount > 0 && r.DebitAmount > 0 {
		issues["amount"] = "only one of credit_amount and debit_amount may be set"
	}

	r.Description = strings.TrimSpace(r.Description)

	return issues
}

// TripCreateRequest records a fare-bearing trip for a vehicle.
type TripCreateRequest struct {
	TripDate   string  `json:"trip_date" validate:"required"`
	ShipmentID uint    `json:"shipment_id"`
	FareAmount float64 `json:"fare_amount" validate:"required,gt=0"`
}

func (r *TripCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if strings.TrimSpace(r.TripDate) == "" {
		issues["trip_date"] = "trip_date is required"
	}
	if r.FareAmount <= 0 {
		issues["fare_amount"] = "fare_amount must be positive"
	}

	return issues
}

// TripSettleRequest marks a trip fare as paid.
type TripSettleRequest struct {
	ReceivedAmount float64 `json:"received_amount" validate:"required,gt=0"`
}

func (r *TripSettleRequest) Validate() map[string]string {
	issues := make(map[string]string)

	if r.ReceivedAmount <= 0 {
		issues["received_amount"] = "received_amount must be positive"
	}

	return issues
}
