package shipment

import (
	"time"

	"github.com/shopspring/decimal"

	agencyModel "transport-office/models/agency"
	cityModel "transport-office/models/city"
	partyModel "transport-office/models/party"
	vehicleModel "transport-office/models/vehicle"
)

// Shipment is one consignment note (bilty). The receiver is either a
// registered party or a walk-in name copied from the paper slip. Remarks may
// carry a PAYMENT:<STATUS> marker that the report views surface.
type Shipment struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BilityNo        string    `gorm:"type:varchar(50);not null;unique" json:"bility_no"`
	BilityDate      time.Time `gorm:"type:date;not null;index" json:"bility_date"`
	SenderPartyID   uint      `gorm:"not null;index" json:"sender_party_id"`
	ReceiverPartyID *uint     `gorm:"index" json:"receiver_party_id,omitempty"`
	WalkInReceiver  string    `gorm:"type:varchar(150)" json:"walk_in_receiver"`
	FromCityID      uint      `gorm:"not null;index" json:"from_city_id"`
	ToCityID        uint      `gorm:"not null;index" json:"to_city_id"`
	AgencyID        *uint     `gorm:"index" json:"agency_id,omitempty"`
	VehicleID       *uint     `gorm:"index" json:"vehicle_id,omitempty"`

	FreightCharge decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"freight_charge"`
	LabourCharge  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"labour_charge"`
	OtherCharge   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"other_charge"`
	Remarks       string          `gorm:"type:text" json:"remarks"`

	SenderParty   partyModel.Party      `gorm:"foreignKey:SenderPartyID" json:"sender_party,omitempty"`
	ReceiverParty *partyModel.Party     `gorm:"foreignKey:ReceiverPartyID" json:"receiver_party,omitempty"`
	FromCity      cityModel.City        `gorm:"foreignKey:FromCityID" json:"from_city,omitempty"`
	ToCity        cityModel.City        `gorm:"foreignKey:ToCityID" json:"to_city,omitempty"`
	Agency        *agencyModel.Agency   `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Vehicle       *vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	GoodsDetails  []GoodsDetail         `gorm:"foreignKey:ShipmentID" json:"goods_details,omitempty"`

	CreatedBy string     `gorm:"type:varchar(100)" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (Shipment) TableName() string {
	return "shipments"
}

// TotalCharge adds up the freight, labour and other charges.
func (s *Shipment) TotalCharge() decimal.Decimal {
	return s.FreightCharge.Add(s.LabourCharge).Add(s.OtherCharge)
}

// ReceiverName prefers the registered party and falls back to the walk-in name.
func (s *Shipment) ReceiverName() string {
	if s.ReceiverParty != nil && s.ReceiverParty.Name != "" {
		return s.ReceiverParty.Name
	}
	return s.WalkInReceiver
}
