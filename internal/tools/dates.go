package tools

import (
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// isDateFormat reports whether value matches YYYY-MM-DD.
func isDateFormat(value string) bool {
	return datePattern.MatchString(value)
}

// calculateEndDate resolves an end date from a start date and a duration.
// The start day counts as day one of the vacation, hence the -1 offsets.
// An unrecognized unit falls back to the day arithmetic. Returns "" when
// the start date does not parse.
func calculateEndDate(startDate string, duration int, unit string) string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return ""
	}

	var end time.Time
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "week", "weeks":
		end = start.AddDate(0, 0, duration*7-1)
	case "month", "months":
		end = start.AddDate(0, duration, 0).AddDate(0, 0, -1)
	default:
		// day, days, and anything unrecognized.
		end = start.AddDate(0, 0, duration-1)
	}
	return end.Format(dateLayout)
}

// endBeforeStart reports whether end falls before start. Unparseable
// inputs read as out of range.
func endBeforeStart(startDate, endDate string) bool {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return true
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return true
	}
	return end.Before(start)
}
