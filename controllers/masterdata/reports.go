package masterdata

import (
	"github.com/gofiber/fiber/v2"

	"transport-office/logger"
	"transport-office/services/reportfilter"
	"transport-office/types"
)

// PartyReport returns per-party shipment activity, optionally scoped to one
// city.
func (mc *MasterDataController) PartyReport(c *fiber.Ctx) error {
	rows, err := reportfilter.NewService(mc.DB).Parties(c.Query("cityId"))
	if err != nil {
		logger.Error("Failed to build party report", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build party report",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Party report generated successfully",
		Data:    rows,
	})
}

// CityReport returns per-city traffic volumes and freight totals for a date
// range.
func (mc *MasterDataController) CityReport(c *fiber.Ctx) error {
	rows, err := reportfilter.NewService(mc.DB).Cities(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		logger.Error("Failed to build city report", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build city report",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "City report generated successfully",
		Data:    rows,
	})
}
