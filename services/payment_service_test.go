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

func setupPendingBooking(t *testing.T) (models.User, models.Booking) {
	t.Helper()
	freezeTime(t, mondayMorning)

	student := createStudent(t, "student@example.com")
	_, profile := createTutor(t, "tutor@example.com", 500)
	addWeekly(t, profile.ID, "Monday", "10:00", "11:00")

	booking, err := CreateBooking(student.ID, profile.ID, "2026-03-02", "10:00", "11:00")
	require.NoError(t, err)
	return student, *booking
}

func TestSubmitPayment_RecordsPendingPayment(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-001")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, booking.Price, payment.Amount)
	assert.Equal(t, models.MethodBkash, payment.PaymentMethod)
	assert.Nil(t, payment.VerifiedAt)
}

func TestSubmitPayment_Guards(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)
	stranger := createStudent(t, "stranger@example.com")

	_, err := SubmitPayment(stranger.ID, booking.ID, models.MethodNagad, "TXN-002")
	requireAppCode(t, err, "FORBIDDEN")

	_, err = SubmitPayment(student.ID, uuid.New(), models.MethodNagad, "TXN-003")
	requireAppCode(t, err, "NOT_FOUND")
}

func TestSubmitPayment_DuplicateTransactionID(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	_, profile2 := createTutor(t, "tutor2@example.com", 400)
	addWeekly(t, profile2.ID, "Tuesday", "09:00", "10:00")
	booking2, err := CreateBooking(student.ID, profile2.ID, "2026-03-03", "09:00", "10:00")
	require.NoError(t, err)

	_, err = SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-SHARED")
	require.NoError(t, err)

	_, err = SubmitPayment(student.ID, booking2.ID, models.MethodRocket, "TXN-SHARED")
	requireAppCode(t, err, "DUPLICATE_TRANSACTION")
}

func TestSubmitPayment_RejectsNonPendingBooking(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingCancelled).Error)
	_, err := SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-004")
	requireAppCode(t, err, "FORBIDDEN")

	require.NoError(t, database.DB.Model(&models.Booking{}).
		Where("id = ?", booking.ID).
		Update("status", models.BookingConfirmed).Error)
	_, err = SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-005")
	requireAppCode(t, err, "FORBIDDEN")
}

func TestVerifyPayment_SuccessConfirmsBooking(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-010")
	require.NoError(t, err)

	verified, err := VerifyPaymentTransaction(payment.ID, models.PaymentSuccess)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentSuccess, verified.Status)
	require.NotNil(t, verified.VerifiedAt)
	assert.Equal(t, mondayMorning, *verified.VerifiedAt)

	var fresh models.Booking
	require.NoError(t, database.DB.First(&fresh, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingConfirmed, fresh.Status)
}

func TestVerifyPayment_FailureCancelsBookingAndReleasesSlot(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodNagad, "TXN-011")
	require.NoError(t, err)

	verified, err := VerifyPaymentTransaction(payment.ID, models.PaymentFailed)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, verified.Status)

	var fresh models.Booking
	require.NoError(t, database.DB.First(&fresh, "id = ?", booking.ID).Error)
	assert.Equal(t, models.BookingCancelled, fresh.Status)

	var slot models.AvailabilitySlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.AvailabilitySlotID).Error)
	assert.False(t, slot.IsBooked)
}

func TestVerifyPayment_ReceiptPipelineOnlyRunsOnSuccess(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	generated := make(chan uuid.UUID, 2)
	prev := generateReceipt
	generateReceipt = func(p models.Payment) { generated <- p.ID }
	t.Cleanup(func() { generateReceipt = prev })

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-020")
	require.NoError(t, err)

	_, err = VerifyPaymentTransaction(payment.ID, models.PaymentSuccess)
	require.NoError(t, err)

	select {
	case id := <-generated:
		assert.Equal(t, payment.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt generation was not triggered")
	}
}

func TestVerifyPayment_FailureSkipsReceiptPipeline(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	generated := make(chan uuid.UUID, 2)
	prev := generateReceipt
	generateReceipt = func(p models.Payment) { generated <- p.ID }
	t.Cleanup(func() { generateReceipt = prev })

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodNagad, "TXN-021")
	require.NoError(t, err)

	_, err = VerifyPaymentTransaction(payment.ID, models.PaymentFailed)
	require.NoError(t, err)

	select {
	case <-generated:
		t.Fatal("receipt generation must not run for a failed payment")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestVerifyPayment_AlreadyProcessed(t *testing.T) {
	setupTestDB(t)
	student, booking := setupPendingBooking(t)

	payment, err := SubmitPayment(student.ID, booking.ID, models.MethodBkash, "TXN-012")
	require.NoError(t, err)

	_, err = VerifyPaymentTransaction(payment.ID, models.PaymentSuccess)
	require.NoError(t, err)

	_, err = VerifyPaymentTransaction(payment.ID, models.PaymentFailed)
	requireAppCode(t, err, "ALREADY_PROCESSED")

	_, err = VerifyPaymentTransaction(uuid.New(), models.PaymentSuccess)
	requireAppCode(t, err, "NOT_FOUND")
}

func TestPaymentAccounts(t *testing.T) {
	setupTestDB(t)

	_, err := GetActivePaymentAccount()
	requireAppCode(t, err, "NOT_FOUND")

	account, err := CreatePaymentAccount(models.MethodBkash, "01700000000")
	require.NoError(t, err)
	assert.True(t, account.IsActive)

	_, err = CreatePaymentAccount(models.MethodBkash, "01700000000")
	requireAppCode(t, err, "DUPLICATE_ACCOUNT")

	active, err := GetActivePaymentAccount()
	require.NoError(t, err)
	assert.Equal(t, account.ID, active.ID)
}
