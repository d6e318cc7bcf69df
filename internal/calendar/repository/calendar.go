package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	calendarerrors "github.com/samuelpalacioss/cue/internal/calendar/errors"
	"github.com/samuelpalacioss/cue/pkg/config"
	"github.com/samuelpalacioss/cue/pkg/model"
)

const (
	EventsCollection   = "Events"
	OptionsCollection  = "EventOptions"
	BookingsCollection = "Bookings"
	PersonsCollection  = "Persons"
)

// CalendarRepository serves the dashboard bookings views. The person join
// is done in Go with a second keyed find rather than an aggregation
// pipeline; bookings without a person record come back with Person nil.
type CalendarRepository interface {
	FindEventBySlug(ctx context.Context, username, slug string) (*model.Event, error)
	FindEventOptions(ctx context.Context, eventID string) ([]*model.EventOption, error)
	FindBookingsWithPersons(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error)
}

type mongoCalendarRepository struct {
	cfg      *config.Config
	events   *mongo.Collection
	opts     *mongo.Collection
	bookings *mongo.Collection
	persons  *mongo.Collection
}

func NewMongoCalendarRepository(cfg *config.Config) CalendarRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCalendarRepository{
		cfg:      cfg,
		events:   db.Collection(EventsCollection),
		opts:     db.Collection(OptionsCollection),
		bookings: db.Collection(BookingsCollection),
		persons:  db.Collection(PersonsCollection),
	}
}

func (r *mongoCalendarRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCalendarRepository) FindEventBySlug(ctx context.Context, username, slug string) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"username": username, "url_slug": slug}

	var event model.Event
	err := r.events.FindOne(ctx, filter).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, calendarerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return &event, nil
}

func (r *mongoCalendarRepository) FindEventOptions(ctx context.Context, eventID string) ([]*model.EventOption, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "duration_minutes", Value: 1}})

	cursor, err := r.opts.Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find event options: %w", err)
	}
	defer cursor.Close(ctx)

	var eventOptions []*model.EventOption
	if err = cursor.All(ctx, &eventOptions); err != nil {
		return nil, fmt.Errorf("failed to decode event options: %w", err)
	}

	return eventOptions, nil
}

func (r *mongoCalendarRepository) FindBookingsWithPersons(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"event_option_id": eventOptionID,
		"date":            bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}})

	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	persons, err := r.findPersons(ctx, bookings)
	if err != nil {
		return nil, err
	}

	joined := make([]*model.BookingWithPerson, len(bookings))
	for i, booking := range bookings {
		joined[i] = &model.BookingWithPerson{
			ID:            booking.ID,
			EventOptionID: booking.EventOptionID,
			Date:          booking.Date,
			TimeSlot:      booking.TimeSlot,
			Status:        booking.Status,
			Person:        persons[booking.PersonID],
		}
	}

	return joined, nil
}

func (r *mongoCalendarRepository) findPersons(ctx context.Context, bookings []*model.Booking) (map[string]*model.Person, error) {
	ids := make([]string, 0, len(bookings))
	seen := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		if booking.PersonID == "" || seen[booking.PersonID] {
			continue
		}
		seen[booking.PersonID] = true
		ids = append(ids, booking.PersonID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.persons.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find persons: %w", err)
	}
	defer cursor.Close(ctx)

	var persons []*model.Person
	if err = cursor.All(ctx, &persons); err != nil {
		return nil, fmt.Errorf("failed to decode persons: %w", err)
	}

	byID := make(map[string]*model.Person, len(persons))
	for _, person := range persons {
		byID[person.ID] = person
	}
	return byID, nil
}
