package set_facility_hold

import "github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"

// SetFacilityHoldRequest HTTP request model
type SetFacilityHoldRequest struct {
	Ignored *bool `json:"ignored" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetFacilityHoldRequest) ToServiceRequest(eventID string) *models.SetFacilityHoldRequest {
	return &models.SetFacilityHoldRequest{
		EventID: eventID,
		Ignored: *r.Ignored,
	}
}

// FacilityHoldFlagResponse HTTP response model
type FacilityHoldFlagResponse struct {
	ID      string `json:"id"`
	Ignored bool   `json:"ignored"`
}
