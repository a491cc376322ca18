package shipment

import (
	"github.com/gofiber/fiber/v2"

	"transport-office/logger"
	"transport-office/services/reportfilter"
	"transport-office/types"
)

// Report returns the shipment register filtered by date range, route,
// vehicle, agency and free-text search.
func (sc *ShipmentController) Report(c *fiber.Ctx) error {
	query := reportfilter.ShipmentQuery{
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		FromCityID: c.Query("fromCityId"),
		ToCityID:   c.Query("toCityId"),
		VehicleID:  c.Query("vehicleId"),
		AgencyID:   c.Query("agencyId"),
		Search:     c.Query("q"),
	}

	rows, err := reportfilter.NewService(sc.DB).Shipments(query)
	if err != nil {
		logger.Error("Failed to build shipment report", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build shipment report",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment report generated successfully",
		Data:    rows,
	})
}
