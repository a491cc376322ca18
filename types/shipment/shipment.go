package shipment

import "strings"

// GoodsDetailRequest is one line of goods on a consignment note.
type GoodsDetailRequest struct {
	ItemName string  `json:"item_name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Weight   float64 `json:"weight"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// ShipmentCreateRequest is the payload for registering a shipment together
// with its goods lines. The receiver is either a registered party or a
// walk-in name written on the paper bilty.
type ShipmentCreateRequest struct {
	BilityNo        string               `json:"bility_no" validate:"required"`
	BilityDate      string               `json:"bility_date" validate:"required"`
	SenderPartyID   uint                 `json:"sender_party_id" validate:"required"`
	ReceiverPartyID uint                 `json:"receiver_party_id"`
	WalkInReceiver  string               `json:"walk_in_receiver"`
	FromCityID      uint                 `json:"from_city_id" validate:"required"`
	ToCityID        uint                 `json:"to_city_id" validate:"required"`
	AgencyID        uint                 `json:"agency_id"`
	VehicleID       uint                 `json:"vehicle_id"`
	FreightCharge   float64              `json:"freight_charge"`
	LabourCharge    float64              `json:"labour_charge"`
	OtherCharge     float64              `json:"other_charge"`
	Remarks         string               `json:"remarks"`
	GoodsDetails    []GoodsDetailRequest `json:"goods_details"`
}

// Validate returns per-field issues, empty when the request is acceptable.
func (r *ShipmentCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.BilityNo = strings.TrimSpace(r.BilityNo)
	if r.BilityNo == "" {
		issues["bility_no"] = "bility_no is required"
	}
	if strings.TrimSpace(r.BilityDate) == "" {
		issues["bility_date"] = "bility_date is required"
	}
	if r.SenderPartyID == 0 {
		issues["sender_party_id"] = "sender_party_id is required"
	}
	if r.FromCityID == 0 {
		issues["from_city_id"] = "from_city_id is required"
	}
	if r.ToCityID == 0 {
		issues["to_city_id"] = "to_city_id is required"
	}

	r.WalkInReceiver = strings.TrimSpace(r.WalkInReceiver)
	if r.ReceiverPartyID == 0 && r.WalkInReceiver == "" {
		issues["receiver"] = "either receiver_party_id or walk_in_receiver is required"
	}

	if r.FreightCharge < 0 {
		issues["freight_charge"] = "freight_charge cannot be negative"
	}
	if r.LabourCharge < 0 {
		issues["labour_charge"] = "labour_charge cannot be negative"
	}
	if r.OtherCharge < 0 {
		issues["other_charge"] = "other_charge cannot be negative"
	}

	for i := range r.GoodsDetails {
		g := &r.GoodsDetails[i]
		g.ItemName = strings.TrimSpace(g.ItemName)
		if g.ItemName == "" {
			issues["goods_details"] = "every goods line needs an item_name"
			break
		}
		if g.Quantity <= 0 {
			issues["goods_details"] = "every goods line needs a positive quantity"
			break
		}
	}

	return issues
}
