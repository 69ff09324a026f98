package locations

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const atmSchedule = "Disponible 24/7"

// Saturday hours apply to every branch regardless of its weekday hours.
// The published text advertises 13:00 while open-now stops at 12:30; both
// follow the values the site has always shown.
const (
	saturdayOpen  = 8*60 + 30
	saturdayClose = 12*60 + 30
)

// ScheduleText renders the opening hours line shown on a location card.
func ScheduleText(kind Kind, h *Hours) string {
	if kind == ATM {
		return atmSchedule
	}
	open, closing := "", ""
	if h != nil {
		open, closing = h.OpeningTime, h.ClosingTime
	}
	return fmt.Sprintf("Lunes a viernes %s - %s\nSábado 8:30 - 13:00", open, closing)
}

// IsOpen reports whether a location is open at now, already converted to
// local time. ATMs are always open. Branches open Monday to Friday within
// their hours, Saturday 8:30 to 12:30, and close on Sunday. Hours that
// cannot be parsed count as closed.
func IsOpen(kind Kind, h *Hours, now time.Time) bool {
	if kind == ATM {
		return true
	}
	if h == nil {
		return false
	}
	minute := now.Hour()*60 + now.Minute()

	switch now.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		return minute >= saturdayOpen && minute < saturdayClose
	}
	open, ok := parseClock(h.OpeningTime)
	if !ok {
		return false
	}
	closing, ok := parseClock(h.ClosingTime)
	if !ok {
		return false
	}
	return minute >= open && minute < closing
}

// parseClock reads "8:30 AM", "5 PM", "5:00pm" or "17:00" into minutes
// after midnight.
func parseClock(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	period := ""
	switch {
	case strings.HasSuffix(s, "AM"):
		period, s = "AM", strings.TrimSpace(strings.TrimSuffix(s, "AM"))
	case strings.HasSuffix(s, "PM"):
		period, s = "PM", strings.TrimSpace(strings.TrimSuffix(s, "PM"))
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, false
	}
	minute := 0
	if hasMinutes {
		if minute, err = strconv.Atoi(minutePart); err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}

	switch period {
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour %= 12
		if period == "PM" {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, false
		}
	}
	return hour*60 + minute, true
}
