package masterdata

import (
	"strconv"

	"transport-office/logger"
	cityModel "transport-office/models/city"
	partyModel "transport-office/models/party"
	"transport-office/types"
	masterdataTypes "transport-office/types/masterdata"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateParty registers a sender/receiver party against a city.
func (mc *MasterDataController) CreateParty(c *fiber.Ctx) error {
	var req masterdataTypes.PartyCreateRequest
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

	var city cityModel.City
	if err := mc.DB.First(&city, req.CityID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return mc.sendValidationErrors(c, map[string]string{"city_id": "city does not exist"})
		}
		logger.Error("Failed to check city", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	party := partyModel.Party{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		CityID:  req.CityID,
	}
	if err := mc.DB.Create(&party).Error; err != nil {
		logger.Error("Failed to create party", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create party",
			Data:    nil,
		})
	}

	if err := mc.DB.Preload("City").First(&party, party.ID).Error; err != nil {
		logger.Error("Failed to reload party", err)
	}

	logger.Success("Party created successfully: " + party.Name)
	return mc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Party created successfully",
		Data:    party,
	})
}

// ListParties returns parties, optionally narrowed to a city via ?city_id=.
func (mc *MasterDataController) ListParties(c *fiber.Ctx) error {
	db := mc.DB.Preload("City")

	if raw := c.Query("city_id"); raw != "" {
		if cityID, err := strconv.ParseUint(raw, 10, 64); err == nil && cityID > 0 {
			db = db.Where("city_id = ?", cityID)
		}
	}

	var parties []partyModel.Party
	if err := db.Order("name asc").Find(&parties).Error; err != nil {
		logger.Error("Failed to fetch parties", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch parties",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parties fetched successfully",
		Data:    parties,
	})
}

// GetParty returns one party by id.
func (mc *MasterDataController) GetParty(c *fiber.Ctx) error {
	partyID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || partyID == 0 {
		return mc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid party id",
			Data:    nil,
		})
	}

	var party partyModel.Party
	if err := mc.DB.Preload("City").First(&party, partyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return mc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Party not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch party", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Party fetched successfully",
		Data:    party,
	})
}
