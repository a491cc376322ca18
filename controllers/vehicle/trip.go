package vehicle

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"transport-office/logger"
	shipmentModel "transport-office/models/shipment"
	vehicleModel "transport-office/models/vehicle"
	"transport-office/types"
	vehicleTypes "transport-office/types/vehicle"
	"transport-office/utils"
)

// CreateTrip records a fare-bearing trip for a vehicle. The fare starts
// unpaid; settlement happens later through SettleTrip.
func (vc *VehicleController) CreateTrip(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	var req vehicleTypes.TripCreateRequest
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

	tripDate, err := utils.ParseDate(req.TripDate)
	if err != nil {
		return vc.sendValidationErrors(c, map[string]string{"trip_date": err.Error()})
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

	trip := vehicleModel.TripLog{
		VehicleID:  vehicle.ID,
		TripDate:   tripDate,
		FareAmount: decimal.NewFromFloat(req.FareAmount),
	}

	if req.ShipmentID != 0 {
		var shipment shipmentModel.Shipment
		if err := vc.DB.First(&shipment, req.ShipmentID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return vc.sendValidationErrors(c, map[string]string{"shipment_id": "shipment does not exist"})
			}
			logger.Error("Failed to check shipment", err)
			return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Database error",
				Data:    nil,
			})
		}
		trip.ShipmentID = &shipment.ID
	}

	if err := vc.DB.Create(&trip).Error; err != nil {
		logger.Error("Failed to create trip log", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create trip",
			Data:    nil,
		})
	}

	logger.Success("Trip recorded for " + vehicle.VehicleNumber)
	return vc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Trip recorded successfully",
		Data:    trip,
	})
}

// ListTrips returns a vehicle's trips, most recent first.
func (vc *VehicleController) ListTrips(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	var trips []vehicleModel.TripLog
	if err := vc.DB.Where("vehicle_id = ?", vehicleID).
		Order("trip_date desc, id desc").
		Find(&trips).Error; err != nil {
		logger.Error("Failed to fetch trips", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch trips",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Trips fetched successfully",
		Data:    trips,
	})
}

// SettleTrip marks a trip fare as paid and records the received amount.
// A trip can only be settled once.
func (vc *VehicleController) SettleTrip(c *fiber.Ctx) error {
	vehicleID := parsePathID(c, "id")
	if vehicleID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
			Data:    nil,
		})
	}

	tripID := parsePathID(c, "tripId")
	if tripID == 0 {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid trip id",
			Data:    nil,
		})
	}

	var req vehicleTypes.TripSettleRequest
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

	var trip vehicleModel.TripLog
	if err := vc.DB.Where("id = ? AND vehicle_id = ?", tripID, vehicleID).First(&trip).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return vc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Trip not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch trip", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	if trip.FareIsPaid {
		return vc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Trip fare already settled",
			Data:    nil,
		})
	}

	updates := map[string]interface{}{
		"fare_is_paid":    true,
		"received_amount": decimal.NewFromFloat(req.ReceivedAmount),
	}
	if err := vc.DB.Model(&trip).Updates(updates).Error; err != nil {
		logger.Error("Failed to settle trip", err)
		return vc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to settle trip",
			Data:    nil,
		})
	}

	if err := vc.DB.First(&trip, tripID).Error; err != nil {
		logger.Error("Failed to reload trip", err)
	}

	logger.Success("Trip fare settled")
	return vc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Trip fare settled successfully",
		Data:    trip,
	})
}
