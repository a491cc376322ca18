package labour

import "strings"

// AssignmentCreateRequest books a labourer for loading or unloading a
// shipment, optionally with a reminder timestamp.
type AssignmentCreateRequest struct {
	LabourName     string  `json:"labour_name" validate:"required"`
	ShipmentID     uint    `json:"shipment_id" validate:"required"`
	Task           string  `json:"task" validate:"required"`
	AssignmentDate string  `json:"assignment_date" validate:"required"`
	Wage           float64 `json:"wage"`
	ReminderAt     string  `json:"reminder_at"`
}

func (r *AssignmentCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.LabourName = strings.TrimSpace(r.LabourName)
	if r.LabourName == "" {
		issues["labour_name"] = "labour_name is required"
	}
	if r.ShipmentID == 0 {
		issues["shipment_id"] = "shipment_id is required"
	}
	if strings.TrimSpace(r.AssignmentDate) == "" {
		issues["assignment_date"] = "assignment_date is required"
	}
	if r.Wage < 0 {
		issues["wage"] = "wage cannot be negative"
	}

	r.Task = strings.ToUpper(strings.TrimSpace(r.Task))
	switch r.Task {
	case "LOADING", "UNLOADING":
	case "":
		issues["task"] = "task is required"
	default:
		issues["task"] = "task must be LOADING or UNLOADING"
	}

	return issues
}
