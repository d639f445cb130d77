package services

import (
	"fmt"
	"time"
)

// TodayRange returns the daily ordering window for the day containing now:
// [00:00:00, maxHour:00:maxSecond] in now's location. Ordering handlers
// compare against the end of this window; the orders report passes 23/59 to
// cover the whole day.
//
// Out-of-range cutoffs are a programming error, never user input.
func TodayRange(now time.Time, maxHour, maxSecond int) (time.Time, time.Time, error) {
	if maxHour < 0 || maxHour >= 24 {
		return time.Time{}, time.Time{}, fmt.Errorf("max hour has to be between [0,24), got %d", maxHour)
	}
	if maxSecond < 0 || maxSecond >= 60 {
		return time.Time{}, time.Time{}, fmt.Errorf("max second has to be between [0,60), got %d", maxSecond)
	}

	year, month, day := now.Date()
	loc := now.Location()
	todayMin := time.Date(year, month, day, 0, 0, 0, 0, loc)
	todayMax := time.Date(year, month, day, maxHour, 0, maxSecond, 0, loc)

	return todayMin, todayMax, nil
}
