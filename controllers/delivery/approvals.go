package delivery

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"transport-office/constants"
	"transport-office/logger"
	"transport-office/middleware"
	deliveryModel "transport-office/models/delivery"
	"transport-office/services/approval"
	"transport-office/types"
	deliveryTypes "transport-office/types/delivery"
	"transport-office/utils"
)

// PendingApprovals lists deliveries still in the approval pipeline, oldest
// delivery date first.
func (dc *DeliveryController) PendingApprovals(c *fiber.Ctx) error {
	deliveries, err := approval.NewApplier(dc.DB).PendingQueue()
	if err != nil {
		logger.Error("Failed to fetch pending approvals", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch pending approvals",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending approvals fetched successfully",
		Data:    deliveries,
	})
}

// FinalApprovals lists deliveries waiting for the second-tier sign-off:
// approved by an admin and already delivered, oldest approval first.
func (dc *DeliveryController) FinalApprovals(c *fiber.Ctx) error {
	deliveries, err := approval.NewApplier(dc.DB).FinalQueue()
	if err != nil {
		logger.Error("Failed to fetch final approvals", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch final approvals",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Final approvals fetched successfully",
		Data:    deliveries,
	})
}

// ApprovalAction applies APPROVE or REJECT to one delivery. The second
// APPROVE stage requires the final-approval permission; the status write is
// guarded against concurrent approvers.
func (dc *DeliveryController) ApprovalAction(c *fiber.Ctx) error {
	var req deliveryTypes.ApprovalActionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if issues := req.Validate(); len(issues) > 0 {
		return dc.sendValidationErrors(c, issues)
	}

	var delivery deliveryModel.Delivery
	if err := dc.DB.First(&delivery, req.DeliveryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Delivery not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch delivery", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	action := deliveryModel.ApprovalAction(req.Action)

	// The second APPROVE is the final sign-off and is held to a higher bar.
	requiredPermission := constants.PermDeliveryApprove
	if action == deliveryModel.ActionApprove && delivery.ApprovalStatus == deliveryModel.ApprovalStatusByAdmin {
		requiredPermission = constants.PermDeliveryApproveFinal
	}
	if !middleware.CheckPermissionInController(c, requiredPermission) {
		return dc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: "Insufficient permissions",
			Data:    nil,
		})
	}

	updated, err := approval.NewApplier(dc.DB).Apply(delivery.ID, delivery.ApprovalStatus, action, utils.ClaimsUsername(c))
	if err != nil {
		var stateErr *approval.StateError
		switch {
		case err == gorm.ErrRecordNotFound:
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Delivery not found",
				Data:    nil,
			})
		case errors.As(err, &stateErr):
			return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: stateErr.Error(),
				Data:    map[string]interface{}{"approval_status": stateErr.Current},
			})
		case errors.Is(err, approval.ErrUnknownAction):
			return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Data:    nil,
			})
		default:
			logger.Error("Failed to apply approval action", err)
			return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to apply approval action",
				Data:    nil,
			})
		}
	}

	var message string
	switch updated.ApprovalStatus {
	case deliveryModel.ApprovalStatusByAdmin:
		message = "Delivery approved by admin"
	case deliveryModel.ApprovalStatusApproved:
		message = "Delivery approved (final)"
	case deliveryModel.ApprovalStatusRejected:
		message = "Delivery rejected"
	default:
		message = "Approval action applied"
	}

	logger.Success(fmt.Sprintf("Delivery %d moved to %s by %s", updated.ID, updated.ApprovalStatus, utils.ClaimsUsername(c)))
	return dc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    updated,
	})
}

// ApprovalHistory returns the audit trail for one delivery.
func (dc *DeliveryController) ApprovalHistory(c *fiber.Ctx) error {
	deliveryID := parsePathID(c, "id")
	if deliveryID == 0 {
		return dc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid delivery id",
			Data:    nil,
		})
	}

	var delivery deliveryModel.Delivery
	if err := dc.DB.First(&delivery, deliveryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Delivery not found",
				Data:    nil,
			})
		}
		logger.Error("Failed to fetch delivery", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
			Data:    nil,
		})
	}

	events, err := approval.NewApplier(dc.DB).History(deliveryID)
	if err != nil {
		logger.Error("Failed to fetch approval history", err)
		return dc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch approval history",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Approval history fetched successfully",
		Data:    events,
	})
}
