package masterdata

import (
	"transport-office/logger"
	cityModel "transport-office/models/city"
	"transport-office/types"
	masterdataTypes "transport-office/types/masterdata"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCity registers a city. Names are unique.
func (mc *MasterDataController) CreateCity(c *fiber.Ctx) error {
	var req masterdataTypes.CityCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return mc.sendValidationErrors(c, issues)
	}

	var existing cityModel.City
	if err := mc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "City already exists",
			Data:    nil,
		})
	}

	city := cityModel.City{Name: req.Name}
	if err := mc.DB.Create(&city).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "City already exists",
				Data:    nil,
			})
		}
		logger.Error("Failed to create city", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create city",
			Data:    nil,
		})
	}

	logger.Success("City created successfully: " + city.Name)
	return mc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "City created successfully",
		Data:    city,
	})
}

// ListCities returns all cities ordered by name.
func (mc *MasterDataController) ListCities(c *fiber.Ctx) error {
	var cities []cityModel.City
	if err := mc.DB.Order("name asc").Find(&cities).Error; err != nil {
		logger.Error("Failed to fetch cities", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch cities",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Cities fetched successfully",
		Data:    cities,
	})
}
