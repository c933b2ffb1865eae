package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday morning, so the 3-day window covers Monday through Wednesday.
var mondayMorning = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

func TestResolveAvailableSlots_WindowCoversThreeDays(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Monday", "14:00", "15:00")
	addWeekly(t, profile.ID, "Tuesday", "09:00", "10:00")
	addWeekly(t, profile.ID, "Wednesday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Thursday", "10:00", "11:00")

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, AvailableSlot{Date: "2026-03-02", DayOfWeek: "Monday", StartTime: "10:00", EndTime: "11:00"}, slots[0])
	assert.Equal(t, AvailableSlot{Date: "2026-03-02", DayOfWeek: "Monday", StartTime: "14:00", EndTime: "15:00"}, slots[1])
	assert.Equal(t, AvailableSlot{Date: "2026-03-03", DayOfWeek: "Tuesday", StartTime: "09:00", EndTime: "10:00"}, slots[2])
	assert.Equal(t, AvailableSlot{Date: "2026-03-04", DayOfWeek: "Wednesday", StartTime: "10:00", EndTime: "11:00"}, slots[3])
}

func TestResolveAvailableSlots_SkipsWindowsAlreadyStartedToday(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC))

	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Monday", "12:00", "13:00")
	addWeekly(t, profile.ID, "Monday", "14:00", "15:00")

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "14:00", slots[0].StartTime)
}

func TestResolveAvailableSlots_ExceptionBlocksWholeDate(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Tuesday", "09:00", "10:00")
	addWeekly(t, profile.ID, "Tuesday", "11:00", "12:00")
	addException(t, profile.ID, "2026-03-03")

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "2026-03-02", slots[0].Date)
}

func TestResolveAvailableSlots_BookedSlotsAreExcluded(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Monday", "14:00", "15:00")

	require.NoError(t, database.DB.Create(&models.AvailabilitySlot{
		TutorProfileID: profile.ID,
		Date:           "2026-03-02",
		StartTime:      "10:00",
		EndTime:        "11:00",
		IsBooked:       true,
	}).Error)

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)

	require.Len(t, slots, 1)
	assert.Equal(t, "14:00", slots[0].StartTime)
}

func TestResolveAvailableSlots_ReleasedSlotBecomesAvailableAgain(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	require.NoError(t, database.DB.Create(&models.AvailabilitySlot{
		TutorProfileID: profile.ID,
		Date:           "2026-03-02",
		StartTime:      "10:00",
		EndTime:        "11:00",
		IsBooked:       false,
	}).Error)

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestResolveAvailableSlots_StartDateBounds(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)

	tests := []struct {
		name      string
		startDate string
		wantCode  string
	}{
		{"past date", "2026-03-01", "INVALID_DATE"},
		{"five days ahead", "2026-03-07", "DATE_OUT_OF_RANGE"},
		{"garbage", "not-a-date", "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveAvailableSlots(profile.ID, tt.startDate)
			requireAppCode(t, err, tt.wantCode)
		})
	}

	// four days ahead is the last allowed start
	_, err := ResolveAvailableSlots(profile.ID, "2026-03-06")
	require.NoError(t, err)
}

func TestResolveAvailableSlots_UnknownTutor(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, err := ResolveAvailableSlots(uuid.New(), "")
	appErr := requireAppCode(t, err, "NOT_FOUND")
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestResolveAvailableSlots_InactiveTemplatesIgnored(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	_, profile := createTutor(t, "tutor@example.com", 500)
	entry := addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	require.NoError(t, database.DB.Model(&entry).Update("is_active", false).Error)

	slots, err := ResolveAvailableSlots(profile.ID, "")
	require.NoError(t, err)
	assert.Empty(t, slots)
}
