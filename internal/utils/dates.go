package utils

import (
	"fmt"
	"time"
)

// DateLayout is the expiration date format accepted from forms and JSON
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DaysUntil returns the number of calendar days from now's date to the
// expiration date. Time of day is ignored on both sides.
func DaysUntil(expiration string, now time.Time) (int, error) {
	exp, err := time.ParseInLocation(DateLayout, expiration, now.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date format: %w", err)
	}

	days := civilDays(exp) - civilDays(now)
	if days < 0 {
		return 0, fmt.Errorf("expiration date %s is in the past", expiration)
	}
	return int(days), nil
}

// civilDays counts days since the Unix epoch for t's calendar date. Going
// through UTC midnight keeps DST out of it, and Unix seconds don't saturate
// the way time.Duration does for far-off dates.
func civilDays(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// CalculateNextOptionsExpiration returns the next third Friday for options expiration
// This implements the standard monthly expiration rule:
// - Third Friday of current month if it is today or still ahead
// - Third Friday of next month once it has passed
func CalculateNextOptionsExpiration(now time.Time) string {
	thirdFriday := thirdFridayOf(now.Year(), now.Month(), now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if today.After(thirdFriday) {
		next := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
		return thirdFridayOf(next.Year(), next.Month(), now.Location()).Format(DateLayout)
	}

	return thirdFriday.Format(DateLayout)
}

func thirdFridayOf(year int, month time.Month, loc *time.Location) time.Time {
	firstFriday := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}
