package return_shipment

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"transport-office/logger"
	deliveryModel "transport-office/models/delivery"
	shipmentModel "transport-office/models/shipment"
	"transport-office/types"
	deliveryTypes "transport-office/types/delivery"
	"transport-office/utils"
)

// ReturnShipmentController handles consignments that came back to the office.
type ReturnShipmentController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewReturnShipmentController creates a new return shipment controller
func NewReturnShipmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReturnShipmentController {
	return &ReturnShipmentController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (rc *ReturnShipmentController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	rc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (rc *ReturnShipmentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	rc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (rc *ReturnShipmentController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	rc.logAPIRequest(c)
	return result
}

// parsePathID reads a positive integer path parameter; 0 means invalid.
func parsePathID(c *fiber.Ctx, name string) uint {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || raw == 0 {
		return 0
	}
	return uint(raw)
}

// CreateReturnShipment registers a returned consignment in status PENDING.
func (rc *ReturnShipmentController) CreateReturnShipment(c *fiber.Ctx) error {
	var req deliveryTypes.ReturnShipmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return rc.sendValidationErrors(c, issues)
	}

	returnDate, err := utils.ParseDate(req.ReturnDate)
	if err != nil {
		return rc.sendValidationErrors(c, map[string]string{"return_date": err.Error()})
	}

	var shipment shipmentModel.Shipment
	if err := rc.DB.First(&shipment, req.ShipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return rc.sendValidationErrors(c, map[string]string{"shipment_id": "shipment does not exist"})
		}
		logger.Error("Failed to check shipment", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	returned := deliveryModel.ReturnShipment{
		ShipmentID: shipment.ID,
		ReturnDate: returnDate,
		Reason:     req.Reason,
		Status:     deliveryModel.ReturnStatusPending,
		CreatedBy:  utils.ClaimsUsername(c),
	}

	if err := rc.DB.Create(&returned).Error; err != nil {
		logger.Error("Failed to create return shipment", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create return shipment",
			Data:    nil,
		})
	}

	var created deliveryModel.ReturnShipment
	if err := rc.DB.Preload("Shipment").First(&created, returned.ID).Error; err != nil {
		logger.Error("Failed to reload return shipment", err)
		created = returned
	}

	logger.Success("Return registered for bility " + shipment.BilityNo)
	return rc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Return shipment created successfully",
		Data:    created,
	})
}

// ListReturnShipments returns all returns, newest first.
func (rc *ReturnShipmentController) ListReturnShipments(c *fiber.Ctx) error {
	var returns []deliveryModel.ReturnShipment
	if err := rc.DB.
		Preload("Shipment").
		Order("return_date desc, id desc").
		Find(&returns).Error; err != nil {
		logger.Error("Failed to fetch return shipments", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch return shipments",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Return shipments fetched successfully",
		Data:    returns,
	})
}

// UpdateStatus advances a return one step: PENDING to RECEIVED, RECEIVED to
// CLOSED. Skipping a step or moving backwards is rejected.
func (rc *ReturnShipmentController) UpdateStatus(c *fiber.Ctx) error {
	returnID := parsePathID(c, "id")
	if returnID == 0 {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid return shipment id",
			Data:    nil,
		})
	}

	var req deliveryTypes.ReturnStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return rc.sendValidationErrors(c, issues)
	}

	var returned deliveryModel.ReturnShipment
	if err := rc.DB.First(&returned, returnID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return rc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Return shipment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch return shipment", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	newStatus := deliveryModel.ReturnStatus(req.Status)
	allowed := (returned.Status == deliveryModel.ReturnStatusPending && newStatus == deliveryModel.ReturnStatusReceived) ||
		(returned.Status == deliveryModel.ReturnStatusReceived && newStatus == deliveryModel.ReturnStatusClosed)
	if !allowed {
		return rc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: fmt.Sprintf("cannot move a return in status %s to %s", returned.Status, newStatus),
			Data:    nil,
		})
	}

	if err := rc.DB.Model(&returned).Update("status", newStatus).Error; err != nil {
		logger.Error("Failed to update return status", err)
		return rc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update return status",
			Data:    nil,
		})
	}

	returned.Status = newStatus
	logger.Success(fmt.Sprintf("Return %d moved to %s", returned.ID, newStatus))
	return rc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Return status updated successfully",
		Data:    returned,
	})
}
