package labour

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"transport-office/logger"
	shipmentModel "transport-office/models/shipment"
	"transport-office/types"
	labourTypes "transport-office/types/labour"
	"transport-office/utils"
)

// LabourController handles labour bookings and due reminders.
type LabourController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewLabourController creates a new labour controller
func NewLabourController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *LabourController {
	return &LabourController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (lc *LabourController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	lc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (lc *LabourController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	lc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (lc *LabourController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	lc.logAPIRequest(c)
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

// CreateAssignment books a labourer against a shipment.
func (lc *LabourController) CreateAssignment(c *fiber.Ctx) error {
	var req labourTypes.AssignmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return lc.sendValidationErrors(c, issues)
	}

	assignmentDate, err := utils.ParseDate(req.AssignmentDate)
	if err != nil {
		return lc.sendValidationErrors(c, map[string]string{"assignment_date": err.Error()})
	}

	var reminderAt *time.Time
	if req.ReminderAt != "" {
		parsed, err := utils.ParseDateTime(req.ReminderAt)
		if err != nil {
			return lc.sendValidationErrors(c, map[string]string{"reminder_at": err.Error()})
		}
		reminderAt = &parsed
	}

	var shipment shipmentModel.Shipment
	if err := lc.DB.First(&shipment, req.ShipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return lc.sendValidationErrors(c, map[string]string{"shipment_id": "shipment does not exist"})
		}
		logger.Error("Failed to check shipment", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	assignment := shipmentModel.LabourAssignment{
		LabourName:     req.LabourName,
		ShipmentID:     shipment.ID,
		Task:           req.Task,
		AssignmentDate: assignmentDate,
		Wage:           decimal.NewFromFloat(req.Wage),
		ReminderAt:     reminderAt,
	}

	if err := lc.DB.Create(&assignment).Error; err != nil {
		logger.Error("Failed to create labour assignment", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create labour assignment",
			Data:    nil,
		})
	}

	var created shipmentModel.LabourAssignment
	if err := lc.DB.Preload("Shipment").First(&created, assignment.ID).Error; err != nil {
		logger.Error("Failed to reload labour assignment", err)
		created = assignment
	}

	logger.Success(fmt.Sprintf("Labour %s booked for %s on bility %s", req.LabourName, req.Task, shipment.BilityNo))
	return lc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Labour assignment created successfully",
		Data:    created,
	})
}

// ListAssignments returns all labour bookings, newest first.
func (lc *LabourController) ListAssignments(c *fiber.Ctx) error {
	var assignments []shipmentModel.LabourAssignment
	if err := lc.DB.
		Preload("Shipment").
		Order("assignment_date desc, id desc").
		Find(&assignments).Error; err != nil {
		logger.Error("Failed to fetch labour assignments", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch labour assignments",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Labour assignments fetched successfully",
		Data:    assignments,
	})
}

// Reminders lists assignments whose reminder time has passed and that are
// still not completed, most overdue first.
func (lc *LabourController) Reminders(c *fiber.Ctx) error {
	var due []shipmentModel.LabourAssignment
	if err := lc.DB.
		Preload("Shipment").
		Where("reminder_at IS NOT NULL AND reminder_at <= ? AND completed = ?", time.Now(), false).
		Order("reminder_at asc").
		Find(&due).Error; err != nil {
		logger.Error("Failed to fetch due reminders", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch due reminders",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Due reminders fetched successfully",
		Data:    due,
	})
}

// CompleteAssignment marks a booking as done, which drops it from the
// reminder listing.
func (lc *LabourController) CompleteAssignment(c *fiber.Ctx) error {
	assignmentID := parsePathID(c, "id")
	if assignmentID == 0 {
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid assignment id",
			Data:    nil,
		})
	}

	var assignment shipmentModel.LabourAssignment
	if err := lc.DB.First(&assignment, assignmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return lc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Labour assignment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch labour assignment", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	if assignment.Completed {
		return lc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Labour assignment already completed",
			Data:    nil,
		})
	}

	if err := lc.DB.Model(&assignment).Update("completed", true).Error; err != nil {
		logger.Error("Failed to complete labour assignment", err)
		return lc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to complete labour assignment",
			Data:    nil,
		})
	}

	assignment.Completed = true
	logger.Success(fmt.Sprintf("Labour assignment %d completed", assignment.ID))
	return lc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Labour assignment completed successfully",
		Data:    assignment,
	})
}
