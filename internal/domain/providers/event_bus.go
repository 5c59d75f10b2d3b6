package providers

import (
	"context"

	"github.com/lifeline-connect/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// booking events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelBookings is the channel carrying all booking events
const EventChannelBookings = "bookings"

// GetFacilityBookingChannel returns the channel name for a facility's bookings
func GetFacilityBookingChannel(facilityID string) string {
	return EventChannelBookings + ":" + facilityID
}
