package slip_intake

import (
	"time"

	"gorm.io/gorm"
)

// SlipIntakeRequest tracks one uploaded bilty photo through OCR parsing.
type SlipIntakeRequest struct {
	ID               uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	RequestID        string `json:"request_id" gorm:"type:varchar(24);uniqueIndex;not null"` // 24 character unique ID
	OriginalFileName string `json:"original_file_name" gorm:"type:varchar(255);not null"`
	SavedFileName    string `json:"saved_file_name" gorm:"type:varchar(255)"`
	FileHash         string `json:"file_hash" gorm:"type:varchar(128);index"` // SHA256 hash
	FilePath         string `json:"file_path" gorm:"type:varchar(500)"`
	FileSize         int64  `json:"file_size" gorm:"not null"`
	MimeType         string `json:"mime_type" gorm:"type:varchar(100);not null"`
	Status           string `json:"status" gorm:"type:varchar(50);not null;default:'processing';index"` // processing, success, failed
	ProcessingTimeMs int64  `json:"processing_time_ms" gorm:"default:0"`

	// Parsed bilty fields
	BilityNo      string  `json:"bility_no" gorm:"type:varchar(50);index;default:''"`
	BilityDate    string  `json:"bility_date" gorm:"type:varchar(20);default:''"`
	SenderName    string  `json:"sender_name" gorm:"type:varchar(150);default:''"`
	ReceiverName  string  `json:"receiver_name" gorm:"type:varchar(150);default:''"`
	FromCity      string  `json:"from_city" gorm:"type:varchar(100);default:''"`
	ToCity        string  `json:"to_city" gorm:"type:varchar(100);default:''"`
	VehicleNumber string  `json:"vehicle_number" gorm:"type:varchar(30);default:''"`
	FreightCharge float64 `json:"freight_charge" gorm:"default:0"`
	GoodsSummary  string  `json:"goods_summary" gorm:"type:text;default:''"`

	// Error information
	ErrorMessage string `json:"error_message" gorm:"type:text;default:''"`

	// Metadata
	IPAddress string `json:"ip_address" gorm:"type:varchar(45);index;default:''"` // Support IPv6
	UserAgent string `json:"user_agent" gorm:"type:text;default:''"`
	CreatedBy string `json:"created_by" gorm:"type:varchar(100);default:''"`

	// Timestamps
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for SlipIntakeRequest
func (sir *SlipIntakeRequest) TableName() string {
	return "slip_intake_requests"
}

// BeforeCreate hook to set default values
func (sir *SlipIntakeRequest) BeforeCreate(tx *gorm.DB) error {
	if sir.Status == "" {
		sir.Status = "processing"
	}
	return nil
}

// IsProcessing checks if the request is still processing
func (sir *SlipIntakeRequest) IsProcessing() bool {
	return sir.Status == "processing"
}

// IsSuccess checks if the request was successful
func (sir *SlipIntakeRequest) IsSuccess() bool {
	return sir.Status == "success"
}

// IsFailed checks if the request failed
func (sir *SlipIntakeRequest) IsFailed() bool {
	return sir.Status == "failed"
}

// MarkAsSuccess marks the request as successful and saves the parsed draft
func (sir *SlipIntakeRequest) MarkAsSuccess(db *gorm.DB, parsedData *SlipIntakeResponse) error {
	sir.Status = "success"
	sir.BilityNo = parsedData.BilityNo
	sir.BilityDate = parsedData.BilityDate
	sir.SenderName = parsedData.SenderName
	sir.ReceiverName = parsedData.ReceiverName
	sir.FromCity = parsedData.FromCity
	sir.ToCity = parsedData.ToCity
	sir.VehicleNumber = parsedData.VehicleNumber
	sir.FreightCharge = parsedData.FreightCharge
	sir.GoodsSummary = parsedData.GoodsSummary
	sir.ProcessingTimeMs = parsedData.ProcessingTimeMs

	return db.Save(sir).Error
}

// MarkAsFailed marks the request as failed with error message
func (sir *SlipIntakeRequest) MarkAsFailed(db *gorm.DB, errorMsg string, processingTime int64) error {
	sir.Status = "failed"
	sir.ErrorMessage = errorMsg
	sir.ProcessingTimeMs = processingTime

	return db.Save(sir).Error
}

// SlipIntakeResponse is the structured shipment draft parsed off the photo.
type SlipIntakeResponse struct {
	RequestID        string  `json:"request_id"`
	BilityNo         string  `json:"bility_no"`
	BilityDate       string  `json:"bility_date"`
	SenderName       string  `json:"sender_name"`
	ReceiverName     string  `json:"receiver_name"`
	FromCity         string  `json:"from_city"`
	ToCity           string  `json:"to_city"`
	VehicleNumber    string  `json:"vehicle_number"`
	FreightCharge    float64 `json:"freight_charge"`
	GoodsSummary     string  `json:"goods_summary"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}
