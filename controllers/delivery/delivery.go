package delivery

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"transport-office/logger"
	deliveryModel "transport-office/models/delivery"
	shipmentModel "transport-office/models/shipment"
	"transport-office/types"
	deliveryTypes "transport-office/types/delivery"
	"transport-office/utils"
)

// DeliveryController handles delivery runs and their approval workflow.
type DeliveryController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewDeliveryController creates a new delivery controller
func NewDeliveryController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DeliveryController {
	return &DeliveryController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (dc *DeliveryController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	dc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (dc *DeliveryController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	dc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (dc *DeliveryController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	dc.logAPIRequest(c)
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

// CreateDelivery opens a delivery run for a shipment. It starts in
// IN_TRANSIT with approval PENDING.
func (dc *DeliveryController) CreateDelivery(c *fiber.Ctx) error {
	var req deliveryTypes.DeliveryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return dc.sendValidationErrors(c, issues)
	}

	deliveryDate, err := utils.ParseDate(req.DeliveryDate)
	if err != nil {
		return dc.sendValidationErrors(c, map[string]string{"delivery_date": err.Error()})
	}

	var shipment shipmentModel.Shipment
	if err := dc.DB.First(&shipment, req.ShipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dc.sendValidationErrors(c, map[string]string{"shipment_id": "shipment does not exist"})
		}
		logger.Error("Failed to check shipment", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	delivery := deliveryModel.Delivery{
		ShipmentID:     shipment.ID,
		DeliveryDate:   deliveryDate,
		DeliveryStatus: deliveryModel.DeliveryStatusInTransit,
		ApprovalStatus: deliveryModel.ApprovalStatusPending,
		TotalExpenses:  decimal.NewFromFloat(req.TotalExpenses),
		Remarks:        req.Remarks,
		CreatedBy:      utils.ClaimsUsername(c),
	}

	if err := dc.DB.Create(&delivery).Error; err != nil {
		logger.Error("Failed to create delivery", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create delivery",
			Data:    nil,
		})
	}

	var created deliveryModel.Delivery
	if err := dc.DB.Preload("Shipment").First(&created, delivery.ID).Error; err != nil {
		logger.Error("Failed to reload delivery", err)
		created = delivery
	}

	logger.Success("Delivery created for bility " + shipment.BilityNo)
	return dc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Delivery created successfully",
		Data:    created,
	})
}

// ListDeliveries returns deliveries, newest run first.
func (dc *DeliveryController) ListDeliveries(c *fiber.Ctx) error {
	var deliveries []deliveryModel.Delivery
	if err := dc.DB.
		Preload("Shipment").
		Preload("Shipment.ReceiverParty").
		Order("delivery_date desc, id desc").
		Find(&deliveries).Error; err != nil {
		logger.Error("Failed to fetch deliveries", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch deliveries",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Deliveries fetched successfully",
		Data:    deliveries,
	})
}

// GetDelivery returns one delivery with its shipment and approval trail.
func (dc *DeliveryController) GetDelivery(c *fiber.Ctx) error {
	deliveryID := parsePathID(c, "id")
	if deliveryID == 0 {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid delivery id",
			Data:    nil,
		})
	}

	var delivery deliveryModel.Delivery
	if err := dc.DB.
		Preload("Shipment").
		Preload("Shipment.ReceiverParty").
		First(&delivery, deliveryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Delivery not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch delivery", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	var events []deliveryModel.ApprovalEvent
	if err := dc.DB.
		Where("delivery_id = ?", deliveryID).
		Order("created_at asc").
		Find(&events).Error; err != nil {
		logger.Error("Failed to fetch approval events", err)
		events = nil
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery fetched successfully",
		Data: map[string]interface{}{
			"delivery": delivery,
			"history":  events,
		},
	})
}

// UpdateStatus moves the physical delivery status of a run.
func (dc *DeliveryController) UpdateStatus(c *fiber.Ctx) error {
	deliveryID := parsePathID(c, "id")
	if deliveryID == 0 {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid delivery id",
			Data:    nil,
		})
	}

	var req deliveryTypes.DeliveryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return dc.sendValidationErrors(c, issues)
	}

	var delivery deliveryModel.Delivery
	if err := dc.DB.First(&delivery, deliveryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Delivery not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch delivery", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	newStatus := deliveryModel.DeliveryStatus(req.DeliveryStatus)
	if err := dc.DB.Model(&delivery).Update("delivery_status", newStatus).Error; err != nil {
		logger.Error("Failed to update delivery status", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update delivery status",
			Data:    nil,
		})
	}

	delivery.DeliveryStatus = newStatus
	logger.Success(fmt.Sprintf("Delivery %d marked %s", delivery.ID, newStatus))
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Delivery status updated successfully",
		Data:    delivery,
	})
}
