package model

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
	BookingNoShow    = "no_show"
)

// Booking is an existing reservation. Bookings are immutable inputs to the
// availability engine; creation and cancellation happen elsewhere.
type Booking struct {
	ID            string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventOptionID string `json:"event_option_id" bson:"event_option_id" validate:"required,mongodb"`
	Date          string `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot      string `json:"time_slot" bson:"time_slot" validate:"required,datetime=15:04"`
	Status        string `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed no_show"`
	PersonID      string `json:"person_id,omitempty" bson:"person_id,omitempty" validate:"omitempty,mongodb"`
}

// Countable reports whether the booking consumes slot capacity.
// Cancelled, completed and no-show bookings are inert for availability.
func (b *Booking) Countable() bool {
	return b.Status == BookingConfirmed || b.Status == BookingPending
}

// Person is the minimal contact view joined onto dashboard bookings.
type Person struct {
	ID        string `json:"id,omitempty" bson:"_id,omitempty"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
}

// BookingWithPerson is the dashboard projection of a booking.
type BookingWithPerson struct {
	ID            string  `json:"id"`
	EventOptionID string  `json:"event_option_id"`
	Date          string  `json:"date"`
	TimeSlot      string  `json:"time_slot"`
	Status        string  `json:"status"`
	Person        *Person `json:"person,omitempty"`
}
