package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_ClaimsSlotAndDerivesPrice(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 500.0, booking.Price)

	var slot models.AvailabilitySlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.AvailabilitySlotID).Error)
	assert.True(t, slot.IsBooked)
	assert.Equal(t, "2026-03-02", slot.Date)
}

func TestCreateBooking_HalfHourPrice(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 600)
	addWeekly(t, profile.ID, "Monday", "10:00", "10:30")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 300.0, booking.Price)
}

func TestCreateBooking_RejectsWindowNotInTemplate(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	// sub-ranges of a declared window are not bookable
	_, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:15", "11:00")
	requireAppCode(t, err, "INVALID_SLOT")

	// wrong weekday
	_, err = CreateBooking(student.ID, profile.ID, "2026-03-03", "10:00", "11:00")
	requireAppCode(t, err, "INVALID_SLOT")
}

func TestCreateBooking_RejectsExceptionDate(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addException(t, profile.ID, "2026-03-02")

	_, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	requireAppCode(t, err, "TUTOR_OFF_DAY")
}

func TestCreateBooking_UnknownTutor(t *testing.T) {
	setupTestDB(t)

	student := createStudent(t, "student@example.com")
	_, err := CreateBooking(student.ID, uuid.New(), "2026-03-02", "10:00", "11:00")
	requireAppCode(t, err, "NOT_FOUND")
}

func TestCreateBooking_SlotTakenIsConflict(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	alice := createStudent(t, "alice@example.com")
	bob := createStudent(t, "bob@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	_, err := CreateBooking(alice.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)

	_, err = CreateBooking(bob.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	appErr := requireAppCode(t, err, "SLOT_TAKEN")
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestCreateBooking_ConcurrentRequestsOnlyOneWins(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	alice := createStudent(t, "alice@example.com")
	bob := createStudent(t, "bob@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, studentID := range []uuid.UUID{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, studentID uuid.UUID) {
			defer wg.Done()
			_, errs[i] = CreateBooking(studentID, profile.ID, "2026-03-02", "10:00", "11:00")
		}(i, studentID)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		if appErr, ok := utils.AsAppError(err); ok && appErr.Code == "SLOT_TAKEN" {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	var slotCount int64
	require.NoError(t, database.DB.Model(&models.AvailabilitySlot{}).Count(&slotCount).Error)
	assert.Equal(t, int64(1), slotCount)
}

func TestCancelBooking_ReleasesSlot(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)

	cancelled, err := CancelBooking(student.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	var slot models.AvailabilitySlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.AvailabilitySlotID).Error)
	assert.False(t, slot.IsBooked)

	// the window is bookable again, reusing the released slot row
	other := createStudent(t, "other@example.com")
	rebooked, err := CreateBooking(other.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, booking.AvailabilitySlotID, rebooked.AvailabilitySlotID)
}

func TestCancelBooking_Guards(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	stranger := createStudent(t, "stranger@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)

	_, err = CancelBooking(stranger.ID, booking.ID)
	requireAppCode(t, err, "FORBIDDEN")

	_, err = CancelBooking(student.ID, uuid.New())
	requireAppCode(t, err, "NOT_FOUND")

	_, err = CancelBooking(student.ID, booking.ID)
	require.NoError(t, err)
	_, err = CancelBooking(student.ID, booking.ID)
	requireAppCode(t, err, "ALREADY_CANCELLED")
}

func TestCancelBooking_RejectsConfirmedAndPaid(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")
	addWeekly(t, profile.ID, "Monday", "14:00", "15:00")

	paid, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)
	_, err = SubmitPayment(student.ID, paid.ID, models.MethodBkash, "TXN-CANCEL-01")
	require.NoError(t, err)

	_, err = CancelBooking(student.ID, paid.ID)
	requireAppCode(t, err, "PAYMENT_EXISTS")

	confirmed, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "14:00", "15:00")
	require.NoError(t, err)
	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("id = ?", confirmed.ID).
		Update("status", models.BookingConfirmed).Error)

	_, err = CancelBooking(student.ID, confirmed.ID)
	requireAppCode(t, err, "ALREADY_CONFIRMED")
}

func TestCancelBooking_RejectsCompleted(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)
	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingCompleted).Error)

	_, err = CancelBooking(student.ID, booking.ID)
	requireAppCode(t, err, "ALREADY_COMPLETED")

	// the session's slot stays claimed
	var slot models.AvailabilitySlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.AvailabilitySlotID).Error)
	assert.True(t, slot.IsBooked)
}

func TestMarkSessionCompleted(t *testing.T) {
	setupTestDB(t)
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	tutorUser, profile := createTutor(t, "tutor@example.com", 500)
	otherTutor, _ := createTutor(t, "other-tutor@example.com", 400)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)

	// pending sessions cannot be completed
	_, err = MarkSessionCompleted(tutorUser.ID, booking.ID)
	requireAppCode(t, err, "INVALID_STATUS")

	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingConfirmed).Error)

	_, err = MarkSessionCompleted(otherTutor.ID, booking.ID)
	requireAppCode(t, err, "FORBIDDEN")

	completed, err := MarkSessionCompleted(tutorUser.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)
}
