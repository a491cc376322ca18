package reportfilter

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	cityModel "transport-office/models/city"
	deliveryModel "transport-office/models/delivery"
	partyModel "transport-office/models/party"
	shipmentModel "transport-office/models/shipment"
	"transport-office/utils"
)

// Service runs the queries behind the /report endpoints. All reports are
// pure reads: filter in SQL, aggregate in memory, normalize for transport.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new report Service instance
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// ShipmentQuery carries the raw query parameters of the shipment report.
type ShipmentQuery struct {
	StartDate  string
	EndDate    string
	FromCityID string
	ToCityID   string
	VehicleID  string
	AgencyID   string
	Search     string
}

// ShipmentRow is one normalized shipment listing row. Monetary fields are
// plain numbers and dates fixed-format text.
type ShipmentRow struct {
	ID            uint    `json:"id"`
	BilityNo      string  `json:"bilityNo"`
	BilityDate    string  `json:"bilityDate"`
	SenderName    string  `json:"senderName"`
	ReceiverName  string  `json:"receiverName"`
	FromCity      string  `json:"fromCity"`
	ToCity        string  `json:"toCity"`
	VehicleNumber string  `json:"vehicleNumber"`
	FreightCharge float64 `json:"freightCharge"`
	LabourCharge  float64 `json:"labourCharge"`
	OtherCharge   float64 `json:"otherCharge"`
	TotalCharge   float64 `json:"totalCharge"`
	PaymentStatus string  `json:"paymentStatus"`
	CreatedAt     string  `json:"createdAt"`
}

// Shipments lists shipments matching the query, newest bility date first.
func (s *Service) Shipments(q ShipmentQuery) ([]ShipmentRow, error) {
	db := s.DB.Model(&shipmentModel.Shipment{}).
		Preload("SenderParty").
		Preload("ReceiverParty").
		Preload("FromCity").
		Preload("ToCity").
		Preload("Vehicle")

	start, end := DateRange(q.StartDate, q.EndDate)
	if start != nil {
		db = db.Where("shipments.bility_date >= ?", *start)
	}
	if end != nil {
		db = db.Where("shipments.bility_date <= ?", *end)
	}
	if id, ok := PositiveID(q.FromCityID); ok {
		db = db.Where("shipments.from_city_id = ?", id)
	}
	if id, ok := PositiveID(q.ToCityID); ok {
		db = db.Where("shipments.to_city_id = ?", id)
	}
	if id, ok := PositiveID(q.VehicleID); ok {
		db = db.Where("shipments.vehicle_id = ?", id)
	}
	if id, ok := PositiveID(q.AgencyID); ok {
		db = db.Where("shipments.agency_id = ?", id)
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		db = db.
			Joins("LEFT JOIN parties receivers ON receivers.id = shipments.receiver_party_id").
			Where("LOWER(shipments.bility_no) LIKE ? OR LOWER(shipments.walk_in_receiver) LIKE ? OR LOWER(receivers.name) LIKE ?",
				pattern, pattern, pattern)
	}

	var shipments []shipmentModel.Shipment
	if err := db.Order("shipments.bility_date desc, shipments.id desc").Find(&shipments).Error; err != nil {
		return nil, err
	}

	rows := make([]ShipmentRow, 0, len(shipments))
	for i := range shipments {
		sh := &shipments[i]
		vehicleNumber := ""
		if sh.Vehicle != nil {
			vehicleNumber = sh.Vehicle.VehicleNumber
		}
		rows = append(rows, ShipmentRow{
			ID:            sh.ID,
			BilityNo:      sh.BilityNo,
			BilityDate:    utils.FormatDate(sh.BilityDate),
			SenderName:    sh.SenderParty.Name,
			ReceiverName:  sh.ReceiverName(),
			FromCity:      sh.FromCity.Name,
			ToCity:        sh.ToCity.Name,
			VehicleNumber: vehicleNumber,
			FreightCharge: sh.FreightCharge.InexactFloat64(),
			LabourCharge:  sh.LabourCharge.InexactFloat64(),
			OtherCharge:   sh.OtherCharge.InexactFloat64(),
			TotalCharge:   sh.TotalCharge().InexactFloat64(),
			PaymentStatus: PaymentStatus(sh.Remarks),
			CreatedAt:     utils.FormatDateTime(sh.CreatedAt),
		})
	}
	return rows, nil
}

// DeliveryQuery carries the raw query parameters of the delivery report.
type DeliveryQuery struct {
	StartDate      string
	EndDate        string
	ApprovalStatus string
	DeliveryStatus string
}

// DeliveryRow is one normalized delivery listing row.
type DeliveryRow struct {
	ID             uint    `json:"id"`
	ShipmentID     uint    `json:"shipmentId"`
	BilityNo       string  `json:"bilityNo"`
	ReceiverName   string  `json:"receiverName"`
	DeliveryDate   string  `json:"deliveryDate"`
	DeliveryStatus string  `json:"deliveryStatus"`
	ApprovalStatus string  `json:"approvalStatus"`
	ApprovedBy     string  `json:"approvedBy"`
	TotalExpenses  float64 `json:"totalExpenses"`
	PaymentStatus  string  `json:"paymentStatus"`
	CreatedAt      string  `json:"createdAt"`
}

// Deliveries lists deliveries matching the query, newest delivery date first.
func (s *Service) Deliveries(q DeliveryQuery) ([]DeliveryRow, error) {
	db := s.DB.Model(&deliveryModel.Delivery{}).
		Preload("Shipment").
		Preload("Shipment.ReceiverParty")

	start, end := DateRange(q.StartDate, q.EndDate)
	if start != nil {
		db = db.Where("delivery_date >= ?", *start)
	}
	if end != nil {
		db = db.Where("delivery_date <= ?", *end)
	}
	if status := strings.ToUpper(strings.TrimSpace(q.ApprovalStatus)); status != "" {
		db = db.Where("approval_status = ?", status)
	}
	if status := strings.ToUpper(strings.TrimSpace(q.DeliveryStatus)); status != "" {
		db = db.Where("delivery_status = ?", status)
	}

	var deliveries []deliveryModel.Delivery
	if err := db.Order("delivery_date desc, id desc").Find(&deliveries).Error; err != nil {
		return nil, err
	}

	rows := make([]DeliveryRow, 0, len(deliveries))
	for i := range deliveries {
		d := &deliveries[i]
		approvedBy := ""
		if d.ApprovedBy != nil {
			approvedBy = *d.ApprovedBy
		}
		rows = append(rows, DeliveryRow{
			ID:             d.ID,
			ShipmentID:     d.ShipmentID,
			BilityNo:       d.Shipment.BilityNo,
			ReceiverName:   d.Shipment.ReceiverName(),
			DeliveryDate:   utils.FormatDate(d.DeliveryDate),
			DeliveryStatus: string(d.DeliveryStatus),
			ApprovalStatus: string(d.ApprovalStatus),
			ApprovedBy:     approvedBy,
			TotalExpenses:  d.TotalExpenses.InexactFloat64(),
			PaymentStatus:  PaymentStatus(d.Remarks),
			CreatedAt:      utils.FormatDateTime(d.CreatedAt),
		})
	}
	return rows, nil
}

// PartyRow is one row of the party activity report.
type PartyRow struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	City          string `json:"city"`
	SentCount     int64  `json:"sentCount"`
	ReceivedCount int64  `json:"receivedCount"`
}

// Parties lists parties with their shipment activity, optionally narrowed to
// one city.
func (s *Service) Parties(cityID string) ([]PartyRow, error) {
	db := s.DB.Model(&partyModel.Party{}).Preload("City")
	if id, ok := PositiveID(cityID); ok {
		db = db.Where("city_id = ?", id)
	}

	var parties []partyModel.Party
	if err := db.Order("name asc").Find(&parties).Error; err != nil {
		return nil, err
	}

	type partyCount struct {
		PartyID uint
		Total   int64
	}

	var sent []partyCount
	if err := s.DB.Model(&shipmentModel.Shipment{}).
		Select("sender_party_id as party_id, count(*) as total").
		Group("sender_party_id").
		Scan(&sent).Error; err != nil {
		return nil, err
	}

	var received []partyCount
	if err := s.DB.Model(&shipmentModel.Shipment{}).
		Select("receiver_party_id as party_id, count(*) as total").
		Where("receiver_party_id IS NOT NULL").
		Group("receiver_party_id").
		Scan(&received).Error; err != nil {
		return nil, err
	}

	sentByParty := make(map[uint]int64, len(sent))
	for _, c := range sent {
		sentByParty[c.PartyID] = c.Total
	}
	receivedByParty := make(map[uint]int64, len(received))
	for _, c := range received {
		receivedByParty[c.PartyID] = c.Total
	}

	rows := make([]PartyRow, 0, len(parties))
	for i := range parties {
		p := &parties[i]
		rows = append(rows, PartyRow{
			ID:            p.ID,
			Name:          p.Name,
			Phone:         p.Phone,
			City:          p.City.Name,
			SentCount:     sentByParty[p.ID],
			ReceivedCount: receivedByParty[p.ID],
		})
	}
	return rows, nil
}

// CityRow is one row of the city traffic report.
type CityRow struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	OutboundCount int64   `json:"outboundCount"`
	InboundCount  int64   `json:"inboundCount"`
	FreightTotal  float64 `json:"freightTotal"`
}

// Cities aggregates shipment traffic per city over an optional date range.
// Aggregation happens in memory over the filtered shipment set.
func (s *Service) Cities(startDate, endDate string) ([]CityRow, error) {
	var cities []cityModel.City
	if err := s.DB.Order("name asc").Find(&cities).Error; err != nil {
		return nil, err
	}

	db := s.DB.Model(&shipmentModel.Shipment{})
	start, end := DateRange(startDate, endDate)
	if start != nil {
		db = db.Where("bility_date >= ?", *start)
	}
	if end != nil {
		db = db.Where("bility_date <= ?", *end)
	}

	var shipments []shipmentModel.Shipment
	if err := db.Find(&shipments).Error; err != nil {
		return nil, err
	}

	outbound := make(map[uint]int64)
	inbound := make(map[uint]int64)
	freight := make(map[uint]decimal.Decimal)
	for i := range shipments {
		sh := &shipments[i]
		outbound[sh.FromCityID]++
		inbound[sh.ToCityID]++
		freight[sh.FromCityID] = freight[sh.FromCityID].Add(sh.FreightCharge)
	}

	rows := make([]CityRow, 0, len(cities))
	for i := range cities {
		city := &cities[i]
		rows = append(rows, CityRow{
			ID:            city.ID,
			Name:          city.Name,
			OutboundCount: outbound[city.ID],
			InboundCount:  inbound[city.ID],
			FreightTotal:  freight[city.ID].InexactFloat64(),
		})
	}
	return rows, nil
}
