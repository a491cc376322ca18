package shipment

import "testing"

func validRequest() ShipmentCreateRequest {
	return ShipmentCreateRequest{
		BilityNo:       "TRO-1001",
		BilityDate:     "2024-05-10",
		SenderPartyID:  1,
		WalkInReceiver: "Karim & Sons",
		FromCityID:     2,
		ToCityID:       3,
		FreightCharge:  15000,
		GoodsDetails: []GoodsDetailRequest{
			{ItemName: "Cement Bags", Quantity: 100, Rate: 150},
		},
	}
}

func TestShipmentRequestValid(t *testing.T) {
	req := validRequest()
	if issues := req.Validate(); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestShipmentReceiverRequired(t *testing.T) {
	req := validRequest()
	req.ReceiverPartyID = 0
	req.WalkInReceiver = "  "

	issues := req.Validate()
	if _, ok := issues["receiver"]; !ok {
		t.Fatalf("missing receiver issue, got %v", issues)
	}

	// A registered receiver alone satisfies the rule.
	req = validRequest()
	req.WalkInReceiver = ""
	req.ReceiverPartyID = 9
	if issues := req.Validate(); len(issues) != 0 {
		t.Fatalf("unexpected issues with registered receiver: %v", issues)
	}
}

func TestShipmentRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ShipmentCreateRequest)
		wantKey string
	}{
		{"blank bility no", func(r *ShipmentCreateRequest) { r.BilityNo = "  " }, "bility_no"},
		{"missing bility date", func(r *ShipmentCreateRequest) { r.BilityDate = "" }, "bility_date"},
		{"missing sender", func(r *ShipmentCreateRequest) { r.SenderPartyID = 0 }, "sender_party_id"},
		{"missing from city", func(r *ShipmentCreateRequest) { r.FromCityID = 0 }, "from_city_id"},
		{"missing to city", func(r *ShipmentCreateRequest) { r.ToCityID = 0 }, "to_city_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			if _, ok := req.Validate()[tt.wantKey]; !ok {
				t.Fatalf("missing %q issue", tt.wantKey)
			}
		})
	}
}

func TestShipmentChargesNonNegative(t *testing.T) {
	req := validRequest()
	req.FreightCharge = -1
	req.LabourCharge = -2
	req.OtherCharge = -3

	issues := req.Validate()
	for _, key := range []string{"freight_charge", "labour_charge", "other_charge"} {
		if _, ok := issues[key]; !ok {
			t.Fatalf("missing %q issue, got %v", key, issues)
		}
	}
}

func TestShipmentGoodsLinesChecked(t *testing.T) {
	req := validRequest()
	req.GoodsDetails = []GoodsDetailRequest{{ItemName: " ", Quantity: 5}}
	if _, ok := req.Validate()["goods_details"]; !ok {
		t.Fatalf("blank item name accepted")
	}

	req = validRequest()
	req.GoodsDetails = []GoodsDetailRequest{{ItemName: "Cement Bags", Quantity: 0}}
	if _, ok := req.Validate()["goods_details"]; !ok {
		t.Fatalf("zero quantity accepted")
	}

	// No goods lines at all is allowed; the paper slip sometimes has none.
	req = validRequest()
	req.GoodsDetails = nil
	if issues := req.Validate(); len(issues) != 0 {
		t.Fatalf("unexpected issues with no goods lines: %v", issues)
	}
}
