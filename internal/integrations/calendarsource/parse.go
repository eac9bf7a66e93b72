package calendarsource

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const (
	icsDate        = "20060102"
	icsDateTime    = "20060102T150405"
	icsDateTimeUTC = "20060102T150405Z"
)

// parseICS разбирает ленту в список VEVENT.
// Любой некорректный VEVENT делает ленту непригодной: пропуск события мог бы скрыть занятость.
func parseICS(body []byte, tz *time.Location) ([]vevent, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrParse)
	}
	// страница входа или ошибки вместо календаря
	if !bytes.HasPrefix(bytes.ToUpper(trimmed[:min(len(trimmed), 15)]), []byte("BEGIN:VCALENDAR")) {
		return nil, fmt.Errorf("%w: body is not a VCALENDAR", ErrParse)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	events := make([]vevent, 0, len(cal.Events()))
	for _, comp := range cal.Events() {
		ev, err := parseVEvent(comp, tz)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent, tz *time.Location) (vevent, error) {
	var out vevent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || strings.TrimSpace(uidProp.Value) == "" {
		return out, fmt.Errorf("vevent without UID")
	}
	out.UID = strings.TrimSpace(uidProp.Value)

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyStatus); p != nil {
		out.Cancelled = strings.EqualFold(strings.TrimSpace(p.Value), "CANCELLED")
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return out, fmt.Errorf("uid=%s: missing DTSTART", out.UID)
	}
	out.AllDay = isDateValue(startProp.Value, startProp.ICalParameters)

	start, err := parseICSTime(startProp.Value, startProp.ICalParameters, tz)
	if err != nil {
		return out, fmt.Errorf("uid=%s: DTSTART: %v", out.UID, err)
	}
	out.Start = start

	if err := parseEnd(ve, &out, tz); err != nil {
		return out, err
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = strings.TrimSpace(p.Value)
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			ex, err := parseICSTime(part, p.ICalParameters, tz)
			if err != nil {
				return out, fmt.Errorf("uid=%s: EXDATE: %v", out.UID, err)
			}
			out.ExDates = append(out.ExDates, ex)
		}
	}

	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		rid, err := parseICSTime(p.Value, p.ICalParameters, tz)
		if err != nil {
			return out, fmt.Errorf("uid=%s: RECURRENCE-ID: %v", out.UID, err)
		}
		out.Recurrence = &rid
	}

	return out, nil
}

// parseEnd заполняет End (и AllDayEnd) по DTEND либо DURATION
func parseEnd(ve *ical.VEvent, out *vevent, tz *time.Location) error {
	var end time.Time

	switch {
	case ve.GetProperty(ical.ComponentPropertyDtEnd) != nil:
		p := ve.GetProperty(ical.ComponentPropertyDtEnd)
		t, err := parseICSTime(p.Value, p.ICalParameters, tz)
		if err != nil {
			return fmt.Errorf("uid=%s: DTEND: %v", out.UID, err)
		}
		end = t
	case ve.GetProperty("DURATION") != nil:
		d, err := parseICSDuration(ve.GetProperty("DURATION").Value)
		if err != nil {
			return fmt.Errorf("uid=%s: DURATION: %v", out.UID, err)
		}
		end = out.Start.Add(d)
	case out.AllDay:
		end = out.Start.AddDate(0, 0, 1)
	default:
		end = out.Start
	}

	if end.Before(out.Start) {
		return fmt.Errorf("uid=%s: end before start", out.UID)
	}

	if out.AllDay {
		// DTEND события на весь день не включается
		last := end.AddDate(0, 0, -1)
		if last.Before(out.Start) {
			last = out.Start
		}
		out.AllDayEnd = last
		out.End = endOfDay(last)
		return nil
	}

	out.End = end
	return nil
}

func isDateValue(value string, params map[string][]string) bool {
	if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(value, "T")
}

// parseICSTime учитывает форму значения: UTC (Z), TZID или "плавающее" время в tz
func parseICSTime(value string, params map[string][]string, tz *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	if !strings.Contains(value, "T") {
		return time.ParseInLocation(icsDate, value, tz)
	}
	if strings.HasSuffix(value, "Z") {
		return time.Parse(icsDateTimeUTC, value)
	}

	loc := tz
	if tzids, ok := params["TZID"]; ok && len(tzids) > 0 {
		l, err := time.LoadLocation(tzids[0])
		if err != nil {
			return time.Time{}, fmt.Errorf("unknown TZID %q", tzids[0])
		}
		loc = l
	}
	return time.ParseInLocation(icsDateTime, value, loc)
}

// parseICSDuration разбирает длительность RFC 5545 вида P1D, PT1H30M, P1W
func parseICSDuration(value string) (time.Duration, error) {
	v := strings.TrimSpace(value)
	sign := time.Duration(1)
	switch {
	case strings.HasPrefix(v, "-"):
		sign = -1
		v = v[1:]
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	}
	if !strings.HasPrefix(v, "P") || len(v) < 2 {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	v = v[1:]

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range v {
		switch {
		case r == 'T':
			inTime = true
		case r >= '0' && r <= '9':
			num += string(r)
		default:
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q", value)
			}
			num = ""
			switch {
			case r == 'W' && !inTime:
				total += time.Duration(n) * 7 * 24 * time.Hour
			case r == 'D' && !inTime:
				total += time.Duration(n) * 24 * time.Hour
			case r == 'H' && inTime:
				total += time.Duration(n) * time.Hour
			case r == 'M' && inTime:
				total += time.Duration(n) * time.Minute
			case r == 'S' && inTime:
				total += time.Duration(n) * time.Second
			default:
				return 0, fmt.Errorf("invalid duration %q", value)
			}
		}
	}
	if num != "" {
		return 0, fmt.Errorf("invalid duration %q", value)
	}

	return sign * total, nil
}

// endOfDay 23:59:59 того же дня
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
