package masterdata

import (
	"transport-office/logger"
	agencyModel "transport-office/models/agency"
	"transport-office/types"
	masterdataTypes "transport-office/types/masterdata"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateAgency registers a booking agency. Names are unique.
func (mc *MasterDataController) CreateAgency(c *fiber.Ctx) error {
	var req masterdataTypes.AgencyCreateRequest
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

	var existing agencyModel.Agency
	if err := mc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Agency already exists",
			Data:    nil,
		})
	}

	agency := agencyModel.Agency{Name: req.Name}
	if err := mc.DB.Create(&agency).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Agency already exists",
				Data:    nil,
			})
		}
		logger.Error("Failed to create agency", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create agency",
			Data:    nil,
		})
	}

	logger.Success("Agency created successfully: " + agency.Name)
	return mc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Agency created successfully",
		Data:    agency,
	})
}

// ListAgencies returns all agencies ordered by name.
func (mc *MasterDataController) ListAgencies(c *fiber.Ctx) error {
	var agencies []agencyModel.Agency
	if err := mc.DB.Order("name asc").Find(&agencies).Error; err != nil {
		logger.Error("Failed to fetch agencies", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch agencies",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Agencies fetched successfully",
		Data:    agencies,
	})
}
