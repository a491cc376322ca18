package shipment

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"transport-office/logger"
	agencyModel "transport-office/models/agency"
	cityModel "transport-office/models/city"
	partyModel "transport-office/models/party"
	shipmentModel "transport-office/models/shipment"
	vehicleModel "transport-office/models/vehicle"
	"transport-office/types"
	shipmentTypes "transport-office/types/shipment"
	"transport-office/utils"
)

// ShipmentController handles consignment registration and reads.
type ShipmentController struct {
	DB             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ShipmentController {
	return &ShipmentController{
		DB:             db,
		loggerInstance: asyncLogger,
	}
}

// Helper function to log API requests and responses
func (sc *ShipmentController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	sc.loggerInstance.Log(logEntry)
}

// Helper function to send response and log in one call
func (sc *ShipmentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	sc.logAPIRequest(c)
	return result
}

// Helper function to send a validation failure with per-field issues
func (sc *ShipmentController) sendValidationErrors(c *fiber.Ctx, issues map[string]string) error {
	result := c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: "Validation failed",
		Status:  fiber.StatusBadRequest,
		Errors:  issues,
	})
	sc.logAPIRequest(c)
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

// checkReferences verifies every foreign key on the request and collects the
// missing ones as per-field issues.
func (sc *ShipmentController) checkReferences(req *shipmentTypes.ShipmentCreateRequest) (map[string]string, error) {
	issues := make(map[string]string)

	var sender partyModel.Party
	if err := sc.DB.First(&sender, req.SenderPartyID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		issues["sender_party_id"] = "sender party does not exist"
	}

	if req.ReceiverPartyID != 0 {
		var receiver partyModel.Party
		if err := sc.DB.First(&receiver, req.ReceiverPartyID).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
			issues["receiver_party_id"] = "receiver party does not exist"
		}
	}

	var fromCity cityModel.City
	if err := sc.DB.First(&fromCity, req.FromCityID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		issues["from_city_id"] = "from city does not exist"
	}

	var toCity cityModel.City
	if err := sc.DB.First(&toCity, req.ToCityID).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		issues["to_city_id"] = "to city does not exist"
	}

	if req.AgencyID != 0 {
		var agency agencyModel.Agency
		if err := sc.DB.First(&agency, req.AgencyID).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
			issues["agency_id"] = "agency does not exist"
		}
	}

	if req.VehicleID != 0 {
		var vehicle vehicleModel.Vehicle
		if err := sc.DB.First(&vehicle, req.VehicleID).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
			issues["vehicle_id"] = "vehicle does not exist"
		}
	}

	return issues, nil
}

// CreateShipment registers a consignment note with its goods lines inside a
// single transaction. The bility number is unique across the office.
func (sc *ShipmentController) CreateShipment(c *fiber.Ctx) error {
	var req shipmentTypes.ShipmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return sc.sendValidationErrors(c, issues)
	}

	bilityDate, err := utils.ParseDate(req.BilityDate)
	if err != nil {
		return sc.sendValidationErrors(c, map[string]string{"bility_date": err.Error()})
	}

	refIssues, err := sc.checkReferences(&req)
	if err != nil {
		logger.Error("Failed to check shipment references", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}
	if len(refIssues) > 0 {
		return sc.sendValidationErrors(c, refIssues)
	}

	var existing shipmentModel.Shipment
	if err := sc.DB.Where("bility_no = ?", req.BilityNo).First(&existing).Error; err == nil {
		return sc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Bility number already registered",
			Data:    nil,
		})
	}

	shipment := shipmentModel.Shipment{
		BilityNo:       req.BilityNo,
		BilityDate:     bilityDate,
		SenderPartyID:  req.SenderPartyID,
		WalkInReceiver: req.WalkInReceiver,
		FromCityID:     req.FromCityID,
		ToCityID:       req.ToCityID,
		FreightCharge:  decimal.NewFromFloat(req.FreightCharge),
		LabourCharge:   decimal.NewFromFloat(req.LabourCharge),
		OtherCharge:    decimal.NewFromFloat(req.OtherCharge),
		Remarks:        req.Remarks,
		CreatedBy:      utils.ClaimsUsername(c),
	}
	if req.ReceiverPartyID != 0 {
		receiverID := req.ReceiverPartyID
		shipment.ReceiverPartyID = &receiverID
	}
	if req.AgencyID != 0 {
		agencyID := req.AgencyID
		shipment.AgencyID = &agencyID
	}
	if req.VehicleID != 0 {
		vehicleID := req.VehicleID
		shipment.VehicleID = &vehicleID
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shipment).Error; err != nil {
			return err
		}

		for _, g := range req.GoodsDetails {
			amount := decimal.NewFromFloat(g.Amount)
			if amount.IsZero() {
				// Line amount defaults to rate times quantity
				amount = decimal.NewFromFloat(g.Rate).Mul(decimal.NewFromInt(int64(g.Quantity)))
			}
			detail := shipmentModel.GoodsDetail{
				ShipmentID: shipment.ID,
				ItemName:   g.ItemName,
				Quantity:   g.Quantity,
				Weight:     decimal.NewFromFloat(g.Weight),
				Rate:       decimal.NewFromFloat(g.Rate),
				Amount:     amount,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return sc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Bility number already registered",
				Data:    nil,
			})
		}
		logger.Error("Failed to create shipment", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create shipment",
			Data:    nil,
		})
	}

	var created shipmentModel.Shipment
	if err := sc.DB.
		Preload("SenderParty").
		Preload("ReceiverParty").
		Preload("FromCity").
		Preload("ToCity").
		Preload("Agency").
		Preload("Vehicle").
		Preload("GoodsDetails").
		First(&created, shipment.ID).Error; err != nil {
		logger.Error("Failed to reload shipment", err)
		created = shipment
	}

	logger.Success("Shipment registered successfully. Bility: " + created.BilityNo)
	return sc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Shipment registered successfully",
		Data:    created,
	})
}

// ListShipments returns shipments, newest bility date first.
func (sc *ShipmentController) ListShipments(c *fiber.Ctx) error {
	var shipments []shipmentModel.Shipment
	if err := sc.DB.
		Preload("SenderParty").
		Preload("ReceiverParty").
		Preload("FromCity").
		Preload("ToCity").
		Preload("Vehicle").
		Order("bility_date desc, id desc").
		Find(&shipments).Error; err != nil {
		logger.Error("Failed to fetch shipments", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipments",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments fetched successfully",
		Data:    shipments,
	})
}

// GetShipment returns one shipment with its goods lines.
func (sc *ShipmentController) GetShipment(c *fiber.Ctx) error {
	shipmentID := parsePathID(c, "id")
	if shipmentID == 0 {
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment id",
			Data:    nil,
		})
	}

	var shipment shipmentModel.Shipment
	if err := sc.DB.
		Preload("SenderParty").
		Preload("ReceiverParty").
		Preload("FromCity").
		Preload("ToCity").
		Preload("Agency").
		Preload("Vehicle").
		Preload("GoodsDetails").
		First(&shipment, shipmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return sc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch shipment", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment fetched successfully",
		Data:    shipment,
	})
}
