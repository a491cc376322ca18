package vehicle

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"transport-office/logger"
	"transport-office/services/docs"
	"transport-office/services/ledger"
	"transport-office/types"
)

// Financials returns the vehicle's ledger with running balances plus the
// summary: current balance, fare payment status of the latest trip, and the
// trip still waiting for settlement if any.
func (vc *VehicleController) Financials(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	statement, err := ledger.NewService(vc.DB).ForVehicle(vehicleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to build vehicle financials", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build financials",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Financials fetched successfully",
		Data:    statement,
	})
}

// FinancialsStatement renders the same ledger as a downloadable PDF.
func (vc *VehicleController) FinancialsStatement(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	pdfBytes, filename, err := docs.NewDocsService(vc.DB).GenerateStatementPDF(vehicleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to generate statement PDF", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate statement",
			Data:    nil,
		})
	}

	vc.logAPIRequest(c)
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}
