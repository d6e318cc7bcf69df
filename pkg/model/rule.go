package model

// Weekday names match the lowercase form stored alongside recurring rules.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// AvailabilityRule is one authored open-hours window. Exactly one of
// DayOfWeek (recurring) or SpecificDate (pinned to a calendar date) is set.
// The owning scope is event-specific when EventID is set, otherwise global
// to the user or organization. Start and end times are local wall-clock
// HH:MM strings expressed in Timezone; they become instants only at the
// rendering boundary.
type AvailabilityRule struct {
	ID             string  `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventID        string  `json:"event_id,omitempty" bson:"event_id,omitempty" validate:"omitempty,mongodb"`
	UserID         string  `json:"user_id,omitempty" bson:"user_id,omitempty" validate:"omitempty,mongodb"`
	OrganizationID string  `json:"organization_id,omitempty" bson:"organization_id,omitempty" validate:"omitempty,mongodb"`
	DayOfWeek      Weekday `json:"day_of_week,omitempty" bson:"day_of_week,omitempty" validate:"omitempty,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	SpecificDate   string  `json:"specific_date,omitempty" bson:"specific_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime      string  `json:"start_time" bson:"start_time" validate:"required,datetime=15:04"`
	EndTime        string  `json:"end_time" bson:"end_time" validate:"required,datetime=15:04"`
	Timezone       string  `json:"timezone" bson:"timezone" validate:"required,timezone"`
	IsActive       bool    `json:"is_active" bson:"is_active"`
}

// Recurring reports whether the rule repeats weekly rather than being
// pinned to one calendar date.
func (r *AvailabilityRule) Recurring() bool {
	return r.SpecificDate == ""
}

// Window is the rule's open-hours text, used as a slot-cache key component.
func (r *AvailabilityRule) Window() string {
	return r.StartTime + "-" + r.EndTime
}
