package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	vehicleModel "transport-office/models/vehicle"
	"transport-office/utils"
)

// Fare payment status of a vehicle, derived from its most recent trip only.
const (
	FarePaid    = "PAID"
	FareUnpaid  = "UNPAID"
	FareNoTrips = "N/A"
)

// Row is one ledger line: a transaction plus the running balance after it.
// Balances stay decimal end to end; they reach JSON as bare numbers.
type Row struct {
	TransactionID   uint            `json:"transactionId"`
	TransactionDate string          `json:"transactionDate"`
	Description     string          `json:"description"`
	Credit          decimal.Decimal `json:"credit"`
	Debit           decimal.Decimal `json:"debit"`
	Balance         decimal.Decimal `json:"balance"`
}

// Summary condenses a vehicle's financial position.
type Summary struct {
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	FarePaymentStatus string          `json:"farePaymentStatus"`
	TripToSettleID    *uint           `json:"tripToSettleId"`
}

// Build walks the transactions in the order given and attaches a running
// balance to each: balance += credit - debit. It returns the rows and the
// final balance at full precision.
func Build(transactions []vehicleModel.VehicleTransaction) ([]Row, decimal.Decimal) {
	rows := make([]Row, 0, len(transactions))
	balance := decimal.Zero

	for _, txn := range transactions {
		balance = balance.Add(txn.CreditAmount).Sub(txn.DebitAmount)
		rows = append(rows, Row{
			TransactionID:   txn.ID,
			TransactionDate: utils.FormatDate(txn.TransactionDate),
			Description:     txn.Description,
			Credit:          txn.CreditAmount,
			Debit:           txn.DebitAmount,
			Balance:         balance,
		})
	}

	return rows, balance
}

// Summarize rounds the final balance to two places and derives the fare
// payment status from the most recent trip. latestTrip is nil when the
// vehicle has no trips at all.
func Summarize(finalBalance decimal.Decimal, latestTrip *vehicleModel.TripLog) Summary {
	summary := Summary{
		CurrentBalance:    finalBalance.Round(2),
		FarePaymentStatus: FareNoTrips,
	}

	if latestTrip == nil {
		return summary
	}

	if latestTrip.FareIsPaid {
		summary.FarePaymentStatus = FarePaid
		return summary
	}

	summary.FarePaymentStatus = FareUnpaid
	tripID := latestTrip.ID
	summary.TripToSettleID = &tripID
	return summary
}

// Statement is the full financial view of one vehicle.
type Statement struct {
	Vehicle vehicleModel.Vehicle `json:"vehicle"`
	Ledger  []Row                `json:"ledger"`
	Summary Summary              `json:"summary"`
}

// Service loads vehicle financials from the database.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new ledger Service instance
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ForVehicle assembles the statement for one vehicle: its transactions in
// chronological order with running balances, and the summary derived from
// the latest trip. Returns gorm.ErrRecordNotFound when the vehicle does not
// exist.
func (s *Service) ForVehicle(vehicleID uint) (*Statement, error) {
	var vehicle vehicleModel.Vehicle
	if err := s.DB.First(&vehicle, vehicleID).Error; err != nil {
		return nil, err
	}

	var transactions []vehicleModel.VehicleTransaction
	if err := s.DB.Where("vehicle_id = ?", vehicleID).
		Order("transaction_date asc, id asc").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	rows, finalBalance := Build(transactions)

	var trips []vehicleModel.TripLog
	if err := s.DB.Where("vehicle_id = ?", vehicleID).
		Order("trip_date desc, id desc").
		Limit(1).
		Find(&trips).Error; err != nil {
		return nil, err
	}

	var latest *vehicleModel.TripLog
	if len(trips) > 0 {
		latest = &trips[0]
	}

	return &Statement{
		Vehicle: vehicle,
		Ledger:  rows,
		Summary: Summarize(finalBalance, latest),
	}, nil
}
