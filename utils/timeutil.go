package utils

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %v", err)
	}
	return parsed, nil
}

// MinutesBetween returns the elapsed minutes between two HH:mm wall-clock times.
// The result is negative when end precedes start.
func MinutesBetween(startTime, endTime string) (int, error) {
	start, err := time.Parse(TimeLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("invalid time format, expected HH:mm: %v", err)
	}
	end, err := time.Parse(TimeLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("invalid time format, expected HH:mm: %v", err)
	}
	return int(end.Sub(start).Minutes()), nil
}

func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// SessionPrice derives the booking price from a tutor's hourly rate and the
// session length, rounded half-up to 2 decimal places.
func SessionPrice(hourlyRate float64, minutes int) float64 {
	return Round2(hourlyRate / 60 * float64(minutes))
}
