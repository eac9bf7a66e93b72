package check_availability

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	checkAvailability "github.com/aceboy1016/ishihara-booking/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Location            string     `json:"location"`
	Time                string     `json:"time"`
	Admitted            bool       `json:"admitted"`
	Reason              string     `json:"reason,omitempty"`
	Degraded            bool       `json:"degraded"`
	SnapshotGeneratedAt *time.Time `json:"snapshotGeneratedAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Location:            string(resp.Location),
		Time:                resp.Time.Format(time.RFC3339),
		Admitted:            resp.Verdict.Admitted,
		Reason:              string(resp.Verdict.Reason),
		Degraded:            resp.Degraded,
		SnapshotGeneratedAt: resp.SnapshotGeneratedAt,
	}
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(locationID, timeStr string) (*checkAvailability.Request, error) {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		Location: domain.LocationID(locationID),
		Time:     t,
	}, nil
}
