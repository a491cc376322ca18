package vehicle

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"transport-office/logger"
	vehicleModel "transport-office/models/vehicle"
	"transport-office/types"
	vehicleTypes "transport-office/types/vehicle"
	"transport-office/utils"
)

// CreateTransaction appends one immutable ledger entry to a vehicle.
func (vc *VehicleController) CreateTransaction(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	var req vehicleTypes.TransactionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return vc.sendValidationErrors(c, issues)
	}

	transactionDate, err := utils.ParseDate(req.TransactionDate)
	if err != nil {
		return vc.sendValidationErrors(c, map[string]string{"transaction_date": err.Error()})
	}

	var vehicle vehicleModel.Vehicle
	if err := vc.DB.First(&vehicle, vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch vehicle", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	txn := vehicleModel.VehicleTransaction{
		VehicleID:       vehicle.ID,
		TransactionDate: transactionDate,
		CreditAmount:    decimal.NewFromFloat(req.CreditAmount),
		DebitAmount:     decimal.NewFromFloat(req.DebitAmount),
		Description:     req.Description,
		CreatedBy:       utils.ClaimsUsername(c),
	}
	if err := vc.DB.Create(&txn).Error; err != nil {
		logger.Error("Failed to create vehicle transaction", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create transaction",
			Data:    nil,
		})
	}

	logger.Success("Vehicle transaction recorded for " + vehicle.VehicleNumber)
	return vc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Transaction recorded successfully",
		Data:    txn,
	})
}

// ListTransactions returns a vehicle's ledger entries in chronological order.
func (vc *VehicleController) ListTransactions(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	var vehicle vehicleModel.Vehicle
	if err := vc.DB.First(&vehicle, vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch vehicle", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var transactions []vehicleModel.VehicleTransaction
	if err := vc.DB.Where("vehicle_id = ?", vehicleID).
		Order("transaction_date asc, id asc").
		Find(&transactions).Error; err != nil {
		logger.Error("Failed to fetch transactions", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch transactions",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Transactions fetched successfully",
		Data:    transactions,
	})
}
