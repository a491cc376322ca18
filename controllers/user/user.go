package user

import (
	"strconv"

	"transport-office/constants"
	"transport-office/logger"
	userModel "transport-office/models/user"
	"transport-office/types"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController handles staff account administration.
type UserController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewUserController creates a new user controller
func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (uc *UserController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	uc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (uc *UserController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	uc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (uc *UserController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	uc.logAPIRequest(c)
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

// ListUsers returns all staff accounts, newest first.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	var users []userModel.User
	if err := uc.DB.Order("created_at desc, id desc").Find(&users).Error; err != nil {
		logger.Error("Failed to fetch users", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch users",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Users fetched successfully",
		Data:    users,
	})
}

// UpdateRole changes a staff account's role. Accounts cannot change their own
// role, and the office always keeps at least one SUPER_ADMIN.
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	userID := parsePathID(c, "id")
	if userID == 0 {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid user id",
			Data:    nil,
		})
	}

	var req types.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return uc.sendValidationErrors(c, issues)
	}

	var target userModel.User
	if err := uc.DB.First(&target, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return uc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch user", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	if target.Uuid == utils.ClaimsUUID(c) {
		return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Cannot change your own role",
			Data:    nil,
		})
	}

	if target.Role == constants.RoleSuperAdmin && req.Role != constants.RoleSuperAdmin {
		var superAdmins int64
		if err := uc.DB.Model(&userModel.User{}).
			Where("role = ?", constants.RoleSuperAdmin).
			Count(&superAdmins).Error; err != nil {
			logger.Error("Failed to count super admins", err)
			return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
				Data:    nil,
			})
		}
		if superAdmins <= 1 {
			return uc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Cannot demote the only SUPER_ADMIN",
				Data:    nil,
			})
		}
	}

	if err := uc.DB.Model(&target).Update("role", req.Role).Error; err != nil {
		logger.Error("Failed to update user role", err)
		return uc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update role",
			Data:    nil,
		})
	}
	target.Role = req.Role

	logger.Success("Role updated for " + target.Username + ": " + req.Role)
	return uc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "User role updated successfully",
		Data:    target,
	})
}
