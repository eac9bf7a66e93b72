package domain

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

// GridSlot ячейка сетки доступности зала
type GridSlot struct {
	Start     time.Time
	StartTime types.TimeString
	Verdict   Verdict
}

// GridDay слоты одного дня
type GridDay struct {
	Date    time.Time
	IsShort bool // выходной или праздник
	Slots   []GridSlot
}

// AvailableCount количество допустимых слотов за день
func (d *GridDay) AvailableCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.Verdict.Admitted {
			n++
		}
	}
	return n
}

// IsFullyBooked returns true if the day has slots and none of them is available
func (d *GridDay) IsFullyBooked() bool {
	return len(d.Slots) > 0 && d.AvailableCount() == 0
}
