package domain

import "time"

// Фиксированные параметры расписания тренера
const (
	// SessionDuration длительность любой тренировки
	SessionDuration = 60 * time.Minute

	// TravelBuffer время на переезд между залами до и после тренировки
	TravelBuffer = 60 * time.Minute

	// SlotStep шаг сетки кандидатов
	SlotStep = 30 * time.Minute

	// DefaultMinLeadTime минимальное время от текущего момента до начала слота
	DefaultMinLeadTime = 3 * time.Hour

	// DefaultHorizonMonths за сколько календарных месяцев открывается запись на дату
	DefaultHorizonMonths = 2
)

// Рабочие часы по умолчанию
const (
	DefaultOpenTime     = "09:00"
	DefaultWeekdayClose = "22:00"
	DefaultHolidayClose = "20:00"
)

// DefaultTimezone часовой пояс залов
const DefaultTimezone = "Asia/Tokyo"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultDayOffKeywords ключевые слова выходного дня в названии событий на весь день
// Используется узкий список: любое событие на весь день больше не считается выходным
var DefaultDayOffKeywords = []string{"休日", "休み", "day-off", "day off", "closed"}

// DefaultUnavailableMarkers маркеры ручной блокировки слота
var DefaultUnavailableMarkers = []string{"予約不可", "not bookable"}

// DefaultFacilityHoldTokens токены названия "枠抑え" события тренера в календаре зала
var DefaultFacilityHoldTokens = []string{"topform", "石原"}
