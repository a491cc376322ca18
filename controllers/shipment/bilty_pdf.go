package shipment

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"transport-office/logger"
	"transport-office/services/docs"
	"transport-office/types"
)

// BiltyPDF renders the consignment note as a downloadable PDF.
func (sc *ShipmentController) BiltyPDF(c *fiber.Ctx) error {
	shipmentID := parsePathID(c, "id")
	if shipmentID == 0 {
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment id",
			Data:    nil,
		})
	}

	pdfBytes, filename, err := docs.NewDocsService(sc.DB).GenerateBiltyPDF(shipmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return sc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to generate bilty PDF", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate bilty PDF",
			Data:    nil,
		})
	}

	sc.logAPIRequest(c)
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
