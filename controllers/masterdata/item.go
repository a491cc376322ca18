package masterdata

import (
	"transport-office/logger"
	itemModel "transport-office/models/item"
	"transport-office/types"
	masterdataTypes "transport-office/types/masterdata"
	"transport-office/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateItem registers a goods catalog entry. Names are unique.
func (mc *MasterDataController) CreateItem(c *fiber.Ctx) error {
	var req masterdataTypes.ItemCreateRequest
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

	var existing itemModel.ItemCatalog
	if err := mc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Item already exists",
			Data:    nil,
		})
	}

	item := itemModel.ItemCatalog{Name: req.Name}
	if err := mc.DB.Create(&item).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return mc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Item already exists",
				Data:    nil,
			})
		}
		logger.Error("Failed to create item", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create item",
			Data:    nil,
		})
	}

	logger.Success("Item created successfully: " + item.Name)
	return mc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Item created successfully",
		Data:    item,
	})
}

// ListItems returns the goods catalog ordered by name.
func (mc *MasterDataController) ListItems(c *fiber.Ctx) error {
	var items []itemModel.ItemCatalog
	if err := mc.DB.Order("name asc").Find(&items).Error; err != nil {
		logger.Error("Failed to fetch items", err)
		return mc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch items",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Items fetched successfully",
		Data:    items,
	})
}
