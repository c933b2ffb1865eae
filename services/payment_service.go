package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/notifications"
	"github.com/skillbridge/backend/utils"
	"gorm.io/gorm"
)

// overridable in tests
var generateReceipt = GenerateBookingReceipt

// SubmitPayment records a student's claimed wallet transaction against their
// pending booking. Transaction IDs are globally unique across the platform.
func SubmitPayment(studentID, bookingID uuid.UUID, method, transactionID string) (*models.Payment, error) {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Booking not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	if booking.StudentID != studentID {
		return nil, utils.NewAppError("Unauthorized booking access", 403, "FORBIDDEN")
	}
	if booking.Status == models.BookingCancelled {
		return nil, utils.NewAppError("Sorry, you can't pay because this booking was cancelled by you.", 403, "FORBIDDEN")
	}
	if booking.Status != models.BookingPending {
		return nil, utils.NewAppError("Sorry, this booking is already paid", 403, "FORBIDDEN")
	}

	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Payment
		err := tx.Where("transaction_id = ?", transactionID).First(&existing).Error
		if err == nil {
			return utils.NewAppError("This Transaction ID has already been used", 400, "DUPLICATE_TRANSACTION")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		payment = models.Payment{
			BookingID:     bookingID,
			StudentID:     studentID,
			PaymentMethod: method,
			TransactionID: transactionID,
			Amount:        booking.Price,
			Status:        models.PaymentPending,
		}
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewAppError("This Transaction ID has already been used", 400, "DUPLICATE_TRANSACTION")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// VerifyPaymentTransaction is the administrative decision on a submitted
// payment. SUCCESS confirms the booking; FAILED cancels it and releases the
// slot so the window becomes bookable again. Notification emails and the
// receipt upload run after the transaction commits and never fail it.
func VerifyPaymentTransaction(paymentID uuid.UUID, decision string) (*models.Payment, error) {
	var payment models.Payment
	if err := database.DB.
		Preload("Booking").
		Preload("Student").
		First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Payment record not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	if payment.Status != models.PaymentPending {
		return nil, utils.NewAppError("This payment has already been processed", 400, "ALREADY_PROCESSED")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := nowFunc()
		payment.Status = decision
		payment.VerifiedAt = &now
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if decision == models.PaymentSuccess {
			return tx.Model(&models.Booking{}).
				Where("id = ?", payment.BookingID).
				Update("status", models.BookingConfirmed).Error
		}

		if err := tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookingID).
			Update("status", models.BookingCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", payment.Booking.AvailabilitySlotID).
			Update("is_booked", false).Error
	})
	if err != nil {
		return nil, err
	}

	go notifyVerificationResult(payment, decision)
	if decision == models.PaymentSuccess {
		go generateReceipt(payment)
	}

	return &payment, nil
}

func notifyVerificationResult(payment models.Payment, decision string) {
	if decision == models.PaymentSuccess {
		notifications.SendEmail(payment.Student.Name, payment.Student.Email,
			"Your Booking is Confirmed!",
			fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your payment of %.2f has been verified and your session is confirmed.</p>", payment.Amount))

		var profile models.TutorProfile
		if err := database.DB.Preload("User").First(&profile, "id = ?", payment.Booking.TutorProfileID).Error; err == nil {
			notifications.SendEmail(profile.User.Name, profile.User.Email,
				"You Have a New Booking!",
				"<h1>New Booking</h1><p>A student's payment has been verified. Please prepare for the session.</p>")
		}
		return
	}

	notifications.SendEmail(payment.Student.Name, payment.Student.Email,
		"Payment Verification Failed",
		"<h1>Payment Failed</h1><p>We could not verify your payment. The booking has been cancelled; please book again with a valid transaction.</p>")
}

func GetActivePaymentAccount() (*models.PlatformPaymentAccount, error) {
	var account models.PlatformPaymentAccount
	err := database.DB.Where("is_active = ?", true).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("No active payment account configured", 404, "NOT_FOUND")
		}
		return nil, err
	}
	return &account, nil
}

func CreatePaymentAccount(method, accountNumber string) (*models.PlatformPaymentAccount, error) {
	var existing models.PlatformPaymentAccount
	err := database.DB.Where("method = ? AND account_number = ?", method, accountNumber).First(&existing).Error
	if err == nil {
		return nil, utils.NewAppError("This payment account already exists", 400, "DUPLICATE_ACCOUNT")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	account := models.PlatformPaymentAccount{
		Method:        method,
		AccountNumber: accountNumber,
	}
	if err := database.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
