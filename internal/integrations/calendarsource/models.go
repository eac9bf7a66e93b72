package calendarsource

import (
	"time"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// Feed одна ICS-лента: календарь тренера (рабочий/личный) или календарь зала
type Feed struct {
	ID       string
	URL      string
	Kind     domain.SourceKind
	Location domain.LocationID // только для Kind == SourceLocation
}

// vevent разобранный VEVENT до разворачивания повторений
type vevent struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
	// AllDayEnd последний день (включительно) события на весь день
	AllDayEnd time.Time

	RRule      string
	ExDates    []time.Time
	Recurrence *time.Time // RECURRENCE-ID для измененного экземпляра
	Cancelled  bool
}
