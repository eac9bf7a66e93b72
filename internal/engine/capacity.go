package engine

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// isLocationFull проверяет вместимость зала по его модели.
// Проигнорированные "枠抑え" не занимают место.
func isLocationFull(slotStart, slotEnd time.Time, spec domain.LocationSpec, events []domain.Event, holds *holdResolver) bool {
	overlapping := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if !ev.Overlaps(slotStart, slotEnd) {
			continue
		}
		if holds.ignored(ev) {
			continue
		}
		overlapping = append(overlapping, ev)
	}

	switch spec.Model() {
	case domain.CapacityRooms:
		return allRoomsOccupied(spec.Rooms, overlapping)
	default:
		return len(overlapping) >= spec.MaxConcurrent
	}
}

// allRoomsOccupied в каждой комнате есть хотя бы одна запись.
// Записи без комнаты место не занимают.
func allRoomsOccupied(rooms []domain.RoomSpec, events []domain.Event) bool {
	occupied := make(map[string]struct{}, len(rooms))
	for _, ev := range events {
		if ev.Room != "" {
			occupied[ev.Room] = struct{}{}
		}
	}

	for _, room := range rooms {
		if _, ok := occupied[room.Name]; !ok {
			return false
		}
	}
	return true
}
