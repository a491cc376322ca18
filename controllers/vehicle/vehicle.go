package vehicle

import (
	"strconv"

	"transport-office/logger"
	vehicleModel "transport-office/models/vehicle"
	"transport-office/types"
	vehicleTypes "transport-office/types/vehicle"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleController handles the fleet: vehicles, their ledger transactions,
// trips and financial views.
type VehicleController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewVehicleController creates a new vehicle controller
func NewVehicleController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *VehicleController {
	return &VehicleController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (vc *VehicleController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	vc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (vc *VehicleController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	vc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (vc *VehicleController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	vc.logAPIRequest(c)
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

// CreateVehicle registers a vehicle. Numbers are unique and upper-cased.
func (vc *VehicleController) CreateVehicle(c *fiber.Ctx) error {
	var req vehicleTypes.VehicleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return vc.sendValidationErrors(c, issues)
	}

	var existing vehicleModel.Vehicle
	if err := vc.DB.Where("vehicle_number = ?", req.VehicleNumber).First(&existing).Error; err == nil {
		return vc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Vehicle already exists",
			Data:    nil,
		})
	}

	vehicle := vehicleModel.Vehicle{
		VehicleNumber: req.VehicleNumber,
		OwnerName:     req.OwnerName,
	}
	if err := vc.DB.Create(&vehicle).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return vc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Vehicle already exists",
				Data:    nil,
			})
		}
		logger.Error("Failed to create vehicle", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create vehicle",
			Data:    nil,
		})
	}

	logger.Success("Vehicle created successfully: " + vehicle.VehicleNumber)
	return vc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Vehicle created successfully",
		Data:    vehicle,
	})
}

// ListVehicles returns all vehicles ordered by number.
func (vc *VehicleController) ListVehicles(c *fiber.Ctx) error {
	var vehicles []vehicleModel.Vehicle
	if err := vc.DB.Order("vehicle_number asc").Find(&vehicles).Error; err != nil {
		logger.Error("Failed to fetch vehicles", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch vehicles",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vehicles fetched successfully",
		Data:    vehicles,
	})
}

// GetVehicle returns one vehicle by id.
func (vc *VehicleController) GetVehicle(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	var vehicle vehicleModel.Vehicle
	if err := vc.DB.First(&vehicle, vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch vehicle", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vehicle fetched successfully",
		Data:    vehicle,
	})
}
