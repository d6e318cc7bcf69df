package model

// Event is a bookable resource: a person or organization offering
// fixed-duration meetings under a public URL slug.
type Event struct {
	ID                   string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username             string `json:"username" bson:"username" validate:"required,min=1,max=50"`
	URLSlug              string `json:"url_slug" bson:"url_slug" validate:"required,min=1,max=100"`
	Title                string `json:"title" bson:"title" validate:"required,min=1,max=200"`
	UserID               string `json:"user_id,omitempty" bson:"user_id,omitempty" validate:"omitempty,mongodb"`
	OrganizationID       string `json:"organization_id,omitempty" bson:"organization_id,omitempty" validate:"omitempty,mongodb"`
	MeetingType          string `json:"meeting_type,omitempty" bson:"meeting_type,omitempty" validate:"omitempty,oneof=google_meet zoom phone in_person"`
	RequiresConfirmation bool   `json:"requires_confirmation" bson:"requires_confirmation"`
}

// EventOption is a selectable duration variant of an event. Capacity is the
// maximum simultaneous countable bookings a single slot start-time may hold.
// Exactly one option per event must be marked default.
type EventOption struct {
	ID              string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventID         string `json:"event_id" bson:"event_id" validate:"required,mongodb"`
	DurationMinutes int    `json:"duration_minutes" bson:"duration_minutes" validate:"required,min=5,max=480"`
	Capacity        int    `json:"capacity" bson:"capacity" validate:"required,min=1,max=200"`
	IsDefault       bool   `json:"is_default" bson:"is_default"`
}
