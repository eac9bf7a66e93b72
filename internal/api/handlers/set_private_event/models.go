package set_private_event

import "github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"

// SetPrivateEventRequest HTTP request model
type SetPrivateEventRequest struct {
	Blocked *bool `json:"blocked" validate:"required"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetPrivateEventRequest) ToServiceRequest(eventID string) *models.SetPrivateEventRequest {
	return &models.SetPrivateEventRequest{
		EventID: eventID,
		Blocked: *r.Blocked,
	}
}

// PrivateEventFlagResponse HTTP response model
type PrivateEventFlagResponse struct {
	ID      string `json:"id"`
	Blocked bool   `json:"blocked"`
}
