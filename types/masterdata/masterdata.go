package masterdata

import "strings"

// AgencyCreateRequest is the payload for registering a booking agency.
type AgencyCreateRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

// Validate trims the name and returns per-field issues.
func (r *AgencyCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		issues["name"] = "name is required"
	} else if len(r.Name) < 2 {
		issues["name"] = "name must be at least 2 characters"
	}

	return issues
}

// CityCreateRequest is the payload for registering a city.
type CityCreateRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

func (r *CityCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		issues["name"] = "name is required"
	} else if len(r.Name) < 2 {
		issues["name"] = "name must be at least 2 characters"
	}

	return issues
}

// PartyCreateRequest is the payload for registering a sender or receiver party.
type PartyCreateRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CityID  uint   `json:"city_id" validate:"required"`
}

func (r *PartyCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		issues["name"] = "name is required"
	} else if len(r.Name) < 2 {
		issues["name"] = "name must be at least 2 characters"
	}

	if r.CityID == 0 {
		issues["city_id"] = "city_id is required"
	}

	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)

	return issues
}

// ItemCreateRequest is the payload for registering a catalog item.
type ItemCreateRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

func (r *ItemCreateRequest) Validate() map[string]string {
	issues := make(map[string]string)

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		issues["name"] = "name is required"
	} else if len(r.Name) < 2 {
		issues["name"] = "name must be at least 2 characters"
	}

	return issues
}
