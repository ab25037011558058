package notifications

import (
	"fmt"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

const timeLayout = "Monday, January 2, 2006 at 3:04 PM MST"

// RenderTemplate produces the fixed subject and body for a notification
// type. Unknown types are an error so silent template drift gets caught.
func RenderTemplate(notificationType entities.NotificationType, details entities.NotificationDetails) (subject, body string, err error) {
	clientName := details.ClientName
	if clientName == "" {
		clientName = "Valued Client"
	}
	serviceName := details.ServiceName
	if serviceName == "" {
		serviceName = "your selected service"
	}
	locationName := details.LocationName
	if locationName == "" {
		locationName = "our location"
	}
	startTime := "the scheduled time"
	if !details.StartTime.IsZero() {
		startTime = details.StartTime.Format(timeLayout)
	}

	switch notificationType {
	case entities.NotificationBookingConfirmed:
		subject = fmt.Sprintf("Booking Confirmed: Your Appointment for %s", serviceName)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"This confirms your booking for %s at %s on %s.\n\n"+
				"We look forward to seeing you!\n\n"+
				"Booking ID: %s",
			clientName, serviceName, locationName, startTime, details.BookingID,
		)

	case entities.NotificationBookingCancelled:
		subject = fmt.Sprintf("Booking Cancellation Notice: %s", serviceName)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"This confirms the cancellation of your booking for %s at %s scheduled for %s.\n\n"+
				"If you did not request this cancellation, or if you have any questions, please contact us.\n\n"+
				"Booking ID: %s",
			clientName, serviceName, locationName, startTime, details.BookingID,
		)

	case entities.NotificationBookingRejected:
		reason := details.Reason
		if reason == "" {
			reason = "Unfortunately, we are unable to confirm your requested appointment at this time."
		}
		subject = fmt.Sprintf("Regarding Your Booking Request for %s", serviceName)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"Regarding your provisional booking request for %s at %s for %s.\n\n"+
				"%s\n\n"+
				"Please contact us if you would like to discuss alternative options.\n\n"+
				"Booking ID: %s",
			clientName, serviceName, locationName, startTime, reason, details.BookingID,
		)

	case entities.NotificationProvisionalCreated:
		subject = fmt.Sprintf("Provisional Booking Received: %s", serviceName)
		body = fmt.Sprintf(
			"Dear %s,\n\n"+
				"We have received your provisional booking request for %s at %s for %s.\n"+
				"Our team will review the details and confirm your appointment shortly.\n\n"+
				"Booking ID: %s",
			clientName, serviceName, locationName, startTime, details.BookingID,
		)

	default:
		return "", "", fmt.Errorf("unknown notification type: %s", notificationType)
	}

	return subject, body, nil
}
