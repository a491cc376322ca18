package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	shipmentModel "transport-office/models/shipment"
	"transport-office/services/ledger"
	"transport-office/utils"
)

// DocsService renders the printable documents of the office: the bilty
// (consignment note) handed to the driver and the vehicle ledger statement.
// The loaders are injectable so the builders can be tested without a
// database.
type DocsService struct {
	DB              *gorm.DB
	ShipmentLoader  func(uint) (*shipmentModel.Shipment, error)
	StatementLoader func(uint) (*ledger.Statement, error)
}

// NewDocsService creates a new DocsService instance
func NewDocsService(db *gorm.DB) *DocsService {
	return &DocsService{DB: db}
}

// GenerateBiltyPDF renders the consignment note for one shipment.
func (s *DocsService) GenerateBiltyPDF(shipmentID uint) ([]byte, string, error) {
	sh, err := s.loadShipment(shipmentID)
	if err != nil {
		return nil, "", err
	}
	return buildBiltyPDF(sh)
}

// GenerateStatementPDF renders the financial statement for one vehicle.
func (s *DocsService) GenerateStatementPDF(vehicleID uint) ([]byte, string, error) {
	st, err := s.loadStatement(vehicleID)
	if err != nil {
		return nil, "", err
	}
	return buildStatementPDF(st)
}

func (s *DocsService) loadShipment(shipmentID uint) (*shipmentModel.Shipment, error) {
	if s.ShipmentLoader != nil {
		return s.ShipmentLoader(shipmentID)
	}

	var sh shipmentModel.Shipment
	err := s.DB.
		Preload("SenderParty").
		Preload("ReceiverParty").
		Preload("FromCity").
		Preload("ToCity").
		Preload("Agency").
		Preload("Vehicle").
		Preload("GoodsDetails").
		First(&sh, shipmentID).Error
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *DocsService) loadStatement(vehicleID uint) (*ledger.Statement, error) {
	if s.StatementLoader != nil {
		return s.StatementLoader(vehicleID)
	}
	return ledger.NewService(s.DB).ForVehicle(vehicleID)
}

func buildBiltyPDF(sh *shipmentModel.Shipment) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bilty", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "GOODS CONSIGNMENT NOTE (BILTY)")
	pdf.Ln(12)

	vehicleNumber := ""
	if sh.Vehicle != nil {
		vehicleNumber = sh.Vehicle.VehicleNumber
	}
	agencyName := ""
	if sh.Agency != nil {
		agencyName = sh.Agency.Name
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Bilty No    : %s", safe(sh.BilityNo, "-")),
		fmt.Sprintf("Bilty Date  : %s", utils.FormatDate(sh.BilityDate)),
		fmt.Sprintf("Sender      : %s", safe(sh.SenderParty.Name, "-")),
		fmt.Sprintf("Receiver    : %s", safe(sh.ReceiverName(), "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(sh.FromCity.Name, "-"), safe(sh.ToCity.Name, "-")),
		fmt.Sprintf("Vehicle     : %s", safe(vehicleNumber, "-")),
		fmt.Sprintf("Agency      : %s", safe(agencyName, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Goods:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Weight", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Rate", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, g := range sh.GoodsDetails {
		pdf.CellFormat(70, 7, safe(g.ItemName, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", g.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, g.Weight.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, g.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, g.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Freight Charge : "+formatRupees(sh.FreightCharge))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Labour Charge  : "+formatRupees(sh.LabourCharge))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Other Charge   : "+formatRupees(sh.OtherCharge))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total          : "+formatRupees(sh.TotalCharge()))
	pdf.Ln(12)

	if remarks := strings.TrimSpace(sh.Remarks); remarks != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Remarks: "+remarks, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BILTY_%s.pdf", safeFilenamePart(sh.BilityNo))
	return buf.Bytes(), filename, nil
}

func buildStatementPDF(st *ledger.Statement) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vehicle Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VEHICLE LEDGER STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Vehicle : %s", safe(st.Vehicle.VehicleNumber, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Owner   : %s", safe(st.Vehicle.OwnerName, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(25, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(65, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Credit", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Debit", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Balance", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range st.Ledger {
		pdf.CellFormat(25, 7, row.TransactionDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 7, safe(row.Description, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, row.Credit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, row.Debit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, row.Balance.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Current Balance     : "+formatRupees(st.Summary.CurrentBalance))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Fare Payment Status : "+st.Summary.FarePaymentStatus)
	pdf.Ln(8)
	if st.Summary.TripToSettleID != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Trip To Settle      : #%d", *st.Summary.TripToSettleID))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("STATEMENT_%s.pdf", safeFilenamePart(st.Vehicle.VehicleNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatRupees(v decimal.Decimal) string {
	fixed := v.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var out []byte
	n := len(intPart)
	for i := 0; i < n; i++ {
		out = append(out, intPart[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, ',')
		}
	}

	result := "Rs " + string(out) + "." + parts[1]
	if neg {
		result = "Rs -" + string(out) + "." + parts[1]
	}
	return result
}
