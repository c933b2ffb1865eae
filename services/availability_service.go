package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// overridable in tests
var nowFunc = time.Now

const (
	availabilityWindowDays = 3
	maxStartOffsetDays     = 4
)

type AvailableSlot struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ResolveAvailableSlots reconciles a tutor's weekly template, date exceptions
// and already-booked concrete slots into the bookable windows for a fixed
// 3-day window starting at startDate (today when empty). Read-only; concrete
// slot rows are only written at booking time.
func ResolveAvailableSlots(tutorProfileID uuid.UUID, startDate string) ([]AvailableSlot, error) {
	now := nowFunc()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	start := today
	if startDate != "" {
		parsed, err := utils.ParseDate(startDate)
		if err != nil {
			return nil, utils.NewAppError(err.Error(), 400, "VALIDATION_ERROR")
		}
		start = parsed
	}

	if start.Before(today) {
		return nil, utils.NewAppError("Start date cannot be in the past", 400, "INVALID_DATE")
	}
	if start.After(today.AddDate(0, 0, maxStartOffsetDays)) {
		return nil, utils.NewAppError("Start date cannot be more than 4 days ahead", 400, "DATE_OUT_OF_RANGE")
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "id = ?", tutorProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Tutor not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	windowDates := make([]string, availabilityWindowDays)
	windowDays := make([]string, availabilityWindowDays)
	for i := 0; i < availabilityWindowDays; i++ {
		day := start.AddDate(0, 0, i)
		windowDates[i] = day.Format(utils.DateLayout)
		windowDays[i] = day.Weekday().String()
	}

	// The three source relations are fetched once for the whole window, in
	// parallel, instead of per-day.
	var (
		templates   []models.WeeklyAvailability
		exceptions  []models.AvailabilityException
		bookedSlots []models.AvailabilitySlot
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		return database.DB.
			Where("tutor_profile_id = ? AND is_active = ?", tutorProfileID, true).
			Find(&templates).Error
	})
	g.Go(func() error {
		return database.DB.
			Where("tutor_profile_id = ? AND date IN ?", tutorProfileID, windowDates).
			Find(&exceptions).Error
	})
	g.Go(func() error {
		return database.DB.
			Where("tutor_profile_id = ? AND date IN ? AND is_booked = ?", tutorProfileID, windowDates, true).
			Find(&bookedSlots).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	offDates := make(map[string]bool, len(exceptions))
	for _, e := range exceptions {
		offDates[e.Date] = true
	}
	booked := make(map[string]bool, len(bookedSlots))
	for _, s := range bookedSlots {
		booked[s.Date+" "+s.StartTime+"-"+s.EndTime] = true
	}
	byDay := make(map[string][]models.WeeklyAvailability)
	for _, t := range templates {
		byDay[t.DayOfWeek] = append(byDay[t.DayOfWeek], t)
	}

	todayDate := today.Format(utils.DateLayout)
	currentClock := now.Format(utils.TimeLayout)

	available := []AvailableSlot{}
	for i, date := range windowDates {
		if offDates[date] {
			continue
		}
		for _, entry := range byDay[windowDays[i]] {
			// a window that already started today is no longer offerable
			if date == todayDate && entry.StartTime <= currentClock {
				continue
			}
			if booked[date+" "+entry.StartTime+"-"+entry.EndTime] {
				continue
			}
			available = append(available, AvailableSlot{
				Date:      date,
				DayOfWeek: windowDays[i],
				StartTime: entry.StartTime,
				EndTime:   entry.EndTime,
			})
		}
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].Date != available[j].Date {
			return available[i].Date < available[j].Date
		}
		return available[i].StartTime < available[j].StartTime
	})

	return available, nil
}
