package get_availability_grid

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	getAvailabilityGrid "github.com/aceboy1016/ishihara-booking/internal/usecase/get_availability_grid"
)

// AvailabilityGridResponse HTTP response model
type AvailabilityGridResponse struct {
	Location            string     `json:"location"`
	From                string     `json:"from"`
	To                  string     `json:"to"`
	Degraded            bool       `json:"degraded"`
	SnapshotGeneratedAt *time.Time `json:"snapshotGeneratedAt,omitempty"`
	Days                []GridDay  `json:"days"`
}

// GridDay модель одного дня сетки
type GridDay struct {
	Date           string     `json:"date"`
	IsShort        bool       `json:"isShort"`
	AvailableCount int        `json:"availableCount"`
	FullyBooked    bool       `json:"fullyBooked"`
	Slots          []GridSlot `json:"slots"`
}

// GridSlot модель ячейки сетки
type GridSlot struct {
	StartTime string `json:"startTime"`
	Start     string `json:"start"`
	Admitted  bool   `json:"admitted"`
	Reason    string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailabilityGrid.Response) *AvailabilityGridResponse {
	days := make([]GridDay, len(resp.Days))
	for i := range resp.Days {
		day := &resp.Days[i]

		slots := make([]GridSlot, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = GridSlot{
				StartTime: slot.StartTime.String(),
				Start:     slot.Start.Format(time.RFC3339),
				Admitted:  slot.Verdict.Admitted,
				Reason:    string(slot.Verdict.Reason),
			}
		}

		days[i] = GridDay{
			Date:           day.Date.Format(domain.DateFormat),
			IsShort:        day.IsShort,
			AvailableCount: day.AvailableCount(),
			FullyBooked:    day.IsFullyBooked(),
			Slots:          slots,
		}
	}

	return &AvailabilityGridResponse{
		Location:            string(resp.Location),
		From:                resp.From.Format(domain.DateFormat),
		To:                  resp.To.Format(domain.DateFormat),
		Degraded:            resp.Degraded,
		SnapshotGeneratedAt: resp.SnapshotGeneratedAt,
		Days:                days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Пустые from/to оставляют диапазон по умолчанию
func ToUseCaseRequest(locationID, fromStr, toStr string, tz *time.Location) (*getAvailabilityGrid.Request, error) {
	req := &getAvailabilityGrid.Request{Location: domain.LocationID(locationID)}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, tz)
		if err != nil {
			return nil, err
		}
		req.From = from
	}
	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, tz)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}
