package enums

import "fmt"

// BookingChannel records which surface created a booking.
type BookingChannel string

const (
	BookingChannelWeb   BookingChannel = "web"
	BookingChannelAdmin BookingChannel = "admin"
)

var validBookingChannels = []BookingChannel{
	BookingChannelWeb,
	BookingChannelAdmin,
}

// String implements fmt.Stringer.
func (b BookingChannel) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BookingChannel.
func (b BookingChannel) IsValid() bool {
	for _, candidate := range validBookingChannels {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBookingChannel converts raw input into a BookingChannel.
func ParseBookingChannel(value string) (BookingChannel, error) {
	for _, candidate := range validBookingChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid booking channel %q", value)
}
