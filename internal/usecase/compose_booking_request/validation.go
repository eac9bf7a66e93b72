package compose_booking_request

import (
	"fmt"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, rules domain.BusinessRules) error {
	if len(req.Slots) == 0 {
		return ErrNoSlots
	}

	if len(req.Slots) > MaxSlotsPerRequest {
		return fmt.Errorf("%w: %d > %d", ErrTooManySlots, len(req.Slots), MaxSlotsPerRequest)
	}

	for i, slot := range req.Slots {
		if slot.Start.IsZero() {
			return fmt.Errorf("%w: slot %d: start is required", ErrInvalidInput, i)
		}
		if _, ok := rules.Location(slot.Location); !ok {
			return fmt.Errorf("%w: slot %d: %q", ErrUnknownLocation, i, slot.Location)
		}
	}

	return nil
}

// dedupe убирает повторно выбранные слоты, сохраняя порядок
func dedupe(slots []domain.SelectedSlot) []domain.SelectedSlot {
	seen := make(map[string]struct{}, len(slots))
	out := make([]domain.SelectedSlot, 0, len(slots))
	for _, s := range slots {
		key := string(s.Location) + "|" + s.Start.UTC().Format("20060102T1504")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
