package database

import (
	"fmt"
	"os"
	"time"

	"transport-office/logger"
	agencyModel "transport-office/models/agency"
	cityModel "transport-office/models/city"
	deliveryModel "transport-office/models/delivery"
	itemModel "transport-office/models/item"
	logModel "transport-office/models/log"
	partyModel "transport-office/models/party"
	shipmentModel "transport-office/models/shipment"
	slipIntakeModel "transport-office/models/slip_intake"
	userModel "transport-office/models/user"
	vehicleModel "transport-office/models/vehicle"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the single process-wide connection pool, runs the
// staged auto migration and creates constraints, indexes and seed data.
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	// Money columns are decimal inside the process; they serialize as bare
	// JSON numbers at the boundary.
	decimal.MarshalJSONWithoutQuotes = true

	// Get database configuration from environment variables
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	// Set default sslmode if not provided
	if sslmode == "" {
		sslmode = "disable"
	}

	// Build PostgreSQL DSN string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	// One pool for the whole process.
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Error("Failed to access the connection pool", err)
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	// Handle foreign key constraints after migrations
	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	// Create indexes for better performance
	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency stages.
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&userModel.User{},
		&cityModel.City{},
		&agencyModel.Agency{},
		&itemModel.ItemCatalog{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&partyModel.Party{},
		&vehicleModel.Vehicle{},
		&vehicleModel.VehicleTransaction{},
		&vehicleModel.TripLog{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Shipments and everything hanging off them
	stage3Models := []interface{}{
		&shipmentModel.Shipment{},
		&shipmentModel.GoodsDetail{},
		&shipmentModel.LabourAssignment{},
		&deliveryModel.Delivery{},
		&deliveryModel.ApprovalEvent{},
		&deliveryModel.ReturnShipment{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		&slipIntakeModel.SlipIntakeRequest{},
		// Logging
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Approval queues scan on status plus ordering columns
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_deliveries_approval_date ON deliveries(approval_status, delivery_date)").Error; err != nil {
		return fmt.Errorf("failed to create delivery approval/date index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_deliveries_approval_physical ON deliveries(approval_status, delivery_status)").Error; err != nil {
		return fmt.Errorf("failed to create delivery approval/physical index: %w", err)
	}

	// Ledger reads transactions in date order per vehicle
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_vehicle_transactions_ledger ON vehicle_transactions(vehicle_id, transaction_date, id)").Error; err != nil {
		return fmt.Errorf("failed to create vehicle transaction ledger index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_trip_logs_latest ON trip_logs(vehicle_id, trip_date DESC, id DESC)").Error; err != nil {
		return fmt.Errorf("failed to create trip log latest index: %w", err)
	}

	// Report ranges
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipments_bility_date ON shipments(bility_date)").Error; err != nil {
		return fmt.Errorf("failed to create shipment bility_date index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_labour_assignments_reminder ON labour_assignments(completed, reminder_at)").Error; err != nil {
		return fmt.Errorf("failed to create labour reminder index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	// Define constraints with their names for checking existence
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_parties_city",
			sql: `ALTER TABLE parties ADD CONSTRAINT fk_parties_city
				  FOREIGN KEY (city_id) REFERENCES cities(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_sender_party",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_sender_party
				  FOREIGN KEY (sender_party_id) REFERENCES parties(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_receiver_party",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_receiver_party
				  FOREIGN KEY (receiver_party_id) REFERENCES parties(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_shipments_from_city",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_from_city
				  FOREIGN KEY (from_city_id) REFERENCES cities(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_to_city",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_to_city
				  FOREIGN KEY (to_city_id) REFERENCES cities(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_agency",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_agency
				  FOREIGN KEY (agency_id) REFERENCES agencies(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_shipments_vehicle",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_goods_details_shipment",
			sql: `ALTER TABLE goods_details ADD CONSTRAINT fk_goods_details_shipment
				  FOREIGN KEY (shipment_id) REFERENCES shipments(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_labour_assignments_shipment",
			sql: `ALTER TABLE labour_assignments ADD CONSTRAINT fk_labour_assignments_shipment
				  FOREIGN KEY (shipment_id) REFERENCES shipments(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_vehicle_transactions_vehicle",
			sql: `ALTER TABLE vehicle_transactions ADD CONSTRAINT fk_vehicle_transactions_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_trip_logs_vehicle",
			sql: `ALTER TABLE trip_logs ADD CONSTRAINT fk_trip_logs_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_deliveries_shipment",
			sql: `ALTER TABLE deliveries ADD CONSTRAINT fk_deliveries_shipment
				  FOREIGN KEY (shipment_id) REFERENCES shipments(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_delivery_approval_events_delivery",
			sql: `ALTER TABLE delivery_approval_events ADD CONSTRAINT fk_delivery_approval_events_delivery
				  FOREIGN KEY (delivery_id) REFERENCES deliveries(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_return_shipments_shipment",
			sql: `ALTER TABLE return_shipments ADD CONSTRAINT fk_return_shipments_shipment
				  FOREIGN KEY (shipment_id) REFERENCES shipments(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
