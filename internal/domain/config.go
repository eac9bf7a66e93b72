package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/aceboy1016/ishihara-booking/pkg/types"
)

var ErrInvalidRules = errors.New("domain: invalid business rules")

// CapacityModel модель вместимости зала
type CapacityModel string

const (
	// CapacityRooms зал занят, когда занята каждая из именованных комнат
	CapacityRooms CapacityModel = "rooms"
	// CapacityCount зал занят, когда число пересекающихся записей достигает лимита
	CapacityCount CapacityModel = "count"
)

// RoomSpec именованная комната зала и подстрока названия события, которая ее указывает
type RoomSpec struct {
	Name   string
	Marker string
}

// LocationSpec описание зала
// Задается ровно одна модель вместимости: Rooms либо MaxConcurrent
type LocationSpec struct {
	ID            LocationID
	DisplayName   string   // "恵比寿"
	TagMarkers    []string // подстроки названия события тренера, привязывающие его к залу
	TagPrefixes   []string // префиксы названия с тем же смыслом ("恵 ")
	Rooms         []RoomSpec
	MaxConcurrent int
}

// Model returns the capacity model of the location
func (l LocationSpec) Model() CapacityModel {
	if len(l.Rooms) > 0 {
		return CapacityRooms
	}
	return CapacityCount
}

// Validate проверяет согласованность описания зала
func (l LocationSpec) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: location id is empty", ErrInvalidRules)
	}
	if len(l.Rooms) > 0 && l.MaxConcurrent > 0 {
		return fmt.Errorf("%w: location %q has both rooms and max_concurrent", ErrInvalidRules, l.ID)
	}
	if len(l.Rooms) == 0 && l.MaxConcurrent <= 0 {
		return fmt.Errorf("%w: location %q has no capacity model", ErrInvalidRules, l.ID)
	}
	names := make(map[string]struct{}, len(l.Rooms))
	for _, room := range l.Rooms {
		if room.Name == "" || room.Marker == "" {
			return fmt.Errorf("%w: location %q has room without name or marker", ErrInvalidRules, l.ID)
		}
		if _, dup := names[room.Name]; dup {
			return fmt.Errorf("%w: location %q has duplicate room %q", ErrInvalidRules, l.ID, room.Name)
		}
		names[room.Name] = struct{}{}
	}
	return nil
}

// BusinessHours рабочие часы
// Последний допустимый старт = Close - SessionDuration
type BusinessHours struct {
	Open         types.TimeString
	WeekdayClose types.TimeString
	HolidayClose types.TimeString // выходные и праздники
}

// BusinessRules правила записи, передаваемые движку как конфигурация
type BusinessRules struct {
	Timezone           *time.Location
	Hours              BusinessHours
	Holidays           HolidayCalendar
	MinLeadTime        time.Duration
	HorizonMonths      int
	DayOffKeywords     []string
	UnavailableMarkers []string
	FacilityHoldTokens []string
	Locations          []LocationSpec
}

// DefaultBusinessRules правила по умолчанию без залов и праздников
func DefaultBusinessRules(tz *time.Location) BusinessRules {
	return BusinessRules{
		Timezone: tz,
		Hours: BusinessHours{
			Open:         DefaultOpenTime,
			WeekdayClose: DefaultWeekdayClose,
			HolidayClose: DefaultHolidayClose,
		},
		MinLeadTime:        DefaultMinLeadTime,
		HorizonMonths:      DefaultHorizonMonths,
		DayOffKeywords:     DefaultDayOffKeywords,
		UnavailableMarkers: DefaultUnavailableMarkers,
		FacilityHoldTokens: DefaultFacilityHoldTokens,
	}
}

// Validate проверяет правила целиком
func (r BusinessRules) Validate() error {
	if r.Timezone == nil {
		return fmt.Errorf("%w: timezone is not set", ErrInvalidRules)
	}
	for name, ts := range map[string]types.TimeString{
		"open":          r.Hours.Open,
		"weekday close": r.Hours.WeekdayClose,
		"holiday close": r.Hours.HolidayClose,
	} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRules, name, err)
		}
	}
	open := r.Hours.Open.Minutes()
	session := int(SessionDuration / time.Minute)
	if r.Hours.WeekdayClose.Minutes()-open < session || r.Hours.HolidayClose.Minutes()-open < session {
		return fmt.Errorf("%w: business hours shorter than one session", ErrInvalidRules)
	}
	if r.MinLeadTime < 0 {
		return fmt.Errorf("%w: negative min lead time", ErrInvalidRules)
	}
	if r.HorizonMonths <= 0 {
		return fmt.Errorf("%w: horizon months must be positive", ErrInvalidRules)
	}
	if len(r.FacilityHoldTokens) == 0 {
		return fmt.Errorf("%w: facility hold pattern is empty", ErrInvalidRules)
	}
	if len(r.Locations) == 0 {
		return fmt.Errorf("%w: no locations", ErrInvalidRules)
	}
	ids := make(map[LocationID]struct{}, len(r.Locations))
	for _, loc := range r.Locations {
		if err := loc.Validate(); err != nil {
			return err
		}
		if _, dup := ids[loc.ID]; dup {
			return fmt.Errorf("%w: duplicate location %q", ErrInvalidRules, loc.ID)
		}
		ids[loc.ID] = struct{}{}
	}
	return nil
}

// Location ищет зал по идентификатору
func (r BusinessRules) Location(id LocationID) (LocationSpec, bool) {
	for _, loc := range r.Locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return LocationSpec{}, false
}

// IsShortDay returns true for weekends and configured public holidays
func (r BusinessRules) IsShortDay(date time.Time) bool {
	local := date.In(r.Timezone)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return r.Holidays.IsHoliday(local)
}

// CloseFor время закрытия на дату
func (r BusinessRules) CloseFor(date time.Time) types.TimeString {
	if r.IsShortDay(date) {
		return r.Hours.HolidayClose
	}
	return r.Hours.WeekdayClose
}
