package helper

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	MonthLayout = "2006-01"
	DateLayout  = "2006-01-02"
)

// ParseMonth accepts "YYYY-MM" (or a full date) and returns the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{MonthLayout, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func Today() datatypes.Date {
	n := time.Now()
	return datatypes.Date(time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

func TimeOf(d datatypes.Date) time.Time {
	return time.Time(d)
}

func Now() time.Time {
	return time.Now().UTC()
}
