package import_overrides

import (
	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/internal/service/overrides/models"
)

// ImportOverridesRequest HTTP request model: event id -> флаг
type ImportOverridesRequest map[string]bool

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r ImportOverridesRequest) ToServiceRequest(kind domain.OverrideKind) *models.ImportRequest {
	values := make(map[string]bool, len(r))
	for id, v := range r {
		values[id] = v
	}
	return &models.ImportRequest{Kind: kind, Values: values}
}

// ImportOverridesResponse HTTP response model
type ImportOverridesResponse struct {
	Kind     domain.OverrideKind `json:"kind"`
	Imported int                 `json:"imported"`
}
