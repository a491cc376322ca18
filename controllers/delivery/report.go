package delivery

import (
	"github.com/gofiber/fiber/v2"

	"transport-office/logger"
	"transport-office/services/reportfilter"
	"transport-office/types"
)

// Report returns the delivery register filtered by date range and status.
func (dc *DeliveryController) Report(c *fiber.Ctx) error {
	query := reportfilter.DeliveryQuery{
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
		ApprovalStatus: c.Query("approvalStatus"),
		DeliveryStatus: c.Query("deliveryStatus"),
	}

	rows, err := reportfilter.NewService(dc.DB).Deliveries(query)
	if err != nil {
		logger.Error("Failed to build delivery report", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build delivery report",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery report generated successfully",
		Data:    rows,
	})
}
