package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
)

// holidaysFile формат файла праздников: год -> список дат YYYY-MM-DD
//
//	2026:
//	  - 2026-01-01
//	  - 2026-01-12
type holidaysFile map[int][]string

// loadHolidays объединяет даты из файла и из rules.holidays
// Пустой path означает только встроенный список
func loadHolidays(path string, inline []string) (domain.HolidayCalendar, error) {
	dates := append([]string(nil), inline...)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.HolidayCalendar{}, fmt.Errorf("config: read holidays file %s: %w", path, err)
		}

		var byYear holidaysFile
		if err := yaml.Unmarshal(data, &byYear); err != nil {
			return domain.HolidayCalendar{}, fmt.Errorf("%w: holidays file %s: %v", ErrInvalidConfig, path, err)
		}

		for year, list := range byYear {
			prefix := strconv.Itoa(year) + "-"
			for _, d := range list {
				if len(d) < len(prefix) || d[:len(prefix)] != prefix {
					return domain.HolidayCalendar{}, fmt.Errorf("%w: holidays file %s: date %q listed under year %d",
						ErrInvalidConfig, path, d, year)
				}
				dates = append(dates, d)
			}
		}
	}

	cal, err := domain.NewHolidayCalendar(dates)
	if err != nil {
		return domain.HolidayCalendar{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cal, nil
}
