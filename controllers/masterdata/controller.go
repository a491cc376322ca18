package masterdata

import (
	"transport-office/logger"
	"transport-office/types"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// MasterDataController handles agency, city, party and item catalog records.
type MasterDataController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewMasterDataController creates a new master data controller
func NewMasterDataController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *MasterDataController {
	return &MasterDataController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (mc *MasterDataController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	mc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (mc *MasterDataController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	mc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (mc *MasterDataController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	mc.logAPIRequest(c)
	return result
}
