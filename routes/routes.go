package routes

import (
	"transport-office/constants"
	"transport-office/controllers/auth"
	"transport-office/controllers/delivery"
	"transport-office/controllers/labour"
	"transport-office/controllers/masterdata"
	"transport-office/controllers/return_shipment"
	"transport-office/controllers/shipment"
	"transport-office/controllers/user"
	"transport-office/controllers/vehicle"
	"transport-office/logger"
	"transport-office/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	masterDataController := masterdata.NewMasterDataController(db, asyncLogger)
	shipmentController := shipment.NewShipmentController(db, asyncLogger)
	deliveryController := delivery.NewDeliveryController(db, asyncLogger)
	returnController := return_shipment.NewReturnShipmentController(db, asyncLogger)
	vehicleController := vehicle.NewVehicleController(db, asyncLogger)
	labourController := labour.NewLabourController(db, asyncLogger)
	userController := user.NewUserController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "transport-office",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/signup", authController.Signup)
	api.Post("/login", authController.Login)
	api.Post("/logout", authController.Logout)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/profile", authController.Profile)

	/*=============================================================================
	| User Administration Routes
	===============================================================================*/
	userGroup := api.Group("/users").Use(middleware.RequirePermissions(
		constants.PermUserManage,
	))

	userGroup.Get("/", userController.ListUsers)
	userGroup.Patch("/:id/role", userController.UpdateRole)

	/*=============================================================================
	| Master Data Routes
	===============================================================================*/
	masterGroup := api.Group("/master").Use(middleware.RequireAuthentication())

	masterGroup.Post("/agencies", middleware.RequirePermissions(
		constants.PermMasterDataManage,
	), masterDataController.CreateAgency)
	masterGroup.Get("/agencies", masterDataController.ListAgencies)

	masterGroup.Post("/cities", middleware.RequirePermissions(
		constants.PermMasterDataManage,
	), masterDataController.CreateCity)
	masterGroup.Get("/cities", masterDataController.ListCities)

	masterGroup.Post("/parties", middleware.RequirePermissions(
		constants.PermMasterDataManage,
	), masterDataController.CreateParty)
	masterGroup.Get("/parties", masterDataController.ListParties)
	masterGroup.Get("/parties/report", masterDataController.PartyReport)
	masterGroup.Get("/parties/:id", masterDataController.GetParty)

	masterGroup.Post("/items", middleware.RequirePermissions(
		constants.PermMasterDataManage,
	), masterDataController.CreateItem)
	masterGroup.Get("/items", masterDataController.ListItems)

	masterGroup.Get("/cities/report", masterDataController.CityReport)

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments").Use(middleware.RequireAuthentication())

	shipmentGroup.Post("/", middleware.RequirePermissions(
		constants.PermShipmentCreate,
	), shipmentController.CreateShipment)

	shipmentGroup.Post("/parse-slip", middleware.RequirePermissions(
		constants.PermShipmentParseSlip,
	), shipmentController.ParseSlip)

	shipmentGroup.Get("/", shipmentController.ListShipments)
	shipmentGroup.Get("/report", shipmentController.Report)
	shipmentGroup.Get("/:id", shipmentController.GetShipment)
	shipmentGroup.Get("/:id/bilty-pdf", shipmentController.BiltyPDF)

	/*=============================================================================
	| Delivery Routes
	===============================================================================*/
	deliveryGroup := api.Group("/deliveries").Use(middleware.RequireAuthentication())

	deliveryGroup.Post("/", middleware.RequirePermissions(
		constants.PermDeliveryCreate,
	), deliveryController.CreateDelivery)

	deliveryGroup.Get("/", deliveryController.ListDeliveries)
	deliveryGroup.Get("/report", deliveryController.Report)

	deliveryGroup.Get("/pending-approvals", middleware.RequirePermissions(
		constants.ApprovalPermissions...,
	), deliveryController.PendingApprovals)

	deliveryGroup.Patch("/pending-approvals", middleware.RequirePermissions(
		constants.ApprovalPermissions...,
	), deliveryController.ApprovalAction)

	deliveryGroup.Get("/final-approvals", middleware.RequirePermissions(
		constants.PermDeliveryApproveFinal,
	), deliveryController.FinalApprovals)

	deliveryGroup.Get("/:id", deliveryController.GetDelivery)
	deliveryGroup.Get("/:id/history", deliveryController.ApprovalHistory)

	deliveryGroup.Patch("/:id/status", middleware.RequirePermissions(
		constants.PermDeliveryUpdate,
	), deliveryController.UpdateStatus)

	/*=============================================================================
	| Return Shipment Routes
	===============================================================================*/
	returnGroup := api.Group("/return-shipments").Use(middleware.RequireAuthentication())

	returnGroup.Post("/", middleware.RequirePermissions(
		constants.PermReturnManage,
	), returnController.CreateReturnShipment)

	returnGroup.Get("/", returnController.ListReturnShipments)

	returnGroup.Patch("/:id/status", middleware.RequirePermissions(
		constants.PermReturnManage,
	), returnController.UpdateStatus)

	/*=============================================================================
	| Vehicle Routes
	===============================================================================*/
	vehicleGroup := api.Group("/vehicles").Use(middleware.RequireAuthentication())

	vehicleGroup.Post("/", middleware.RequirePermissions(
		constants.PermMasterDataManage,
	), vehicleController.CreateVehicle)

	vehicleGroup.Get("/", vehicleController.ListVehicles)
	vehicleGroup.Get("/:id", vehicleController.GetVehicle)

	vehicleGroup.Post("/:id/transactions", middleware.RequirePermissions(
		constants.PermVehicleTransact,
	), vehicleController.CreateTransaction)
	vehicleGroup.Get("/:id/transactions", vehicleController.ListTransactions)

	vehicleGroup.Post("/:id/trips", middleware.RequirePermissions(
		constants.PermVehicleTransact,
	), vehicleController.CreateTrip)
	vehicleGroup.Get("/:id/trips", vehicleController.ListTrips)

	vehicleGroup.Patch("/:id/trips/:tripId/settle", middleware.RequirePermissions(
		constants.PermVehicleTransact,
	), vehicleController.SettleTrip)

	vehicleGroup.Get("/:id/financials", vehicleController.Financials)
	vehicleGroup.Get("/:id/financials/statement", vehicleController.FinancialsStatement)

	/*=============================================================================
	| Labour Routes
	===============================================================================*/
	labourGroup := api.Group("/labour-assignments").Use(middleware.RequirePermissions(
		constants.PermLabourManage,
	))

	labourGroup.Post("/", labourController.CreateAssignment)
	labourGroup.Get("/", labourController.ListAssignments)
	labourGroup.Get("/reminders", labourController.Reminders)
	labourGroup.Patch("/:id/complete", labourController.CompleteAssignment)
}
