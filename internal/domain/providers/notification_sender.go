package providers

import (
	"context"

	"github.com/velora-studio/booking-backend/internal/domain/entities"
)

// NotificationSender defines the notification channel port. Each
// notification type maps to a fixed subject/body template on the sending
// side.
type NotificationSender interface {
	// Send delivers one notification to a recipient contact channel.
	Send(ctx context.Context, recipient string, notificationType entities.NotificationType, details entities.NotificationDetails) error
}
