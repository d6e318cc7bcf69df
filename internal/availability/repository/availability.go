package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	availabilityerrors "github.com/samuelpalacioss/cue/internal/availability/errors"
	"github.com/samuelpalacioss/cue/pkg/config"
	"github.com/samuelpalacioss/cue/pkg/model"
)

const (
	EventsCollection   = "Events"
	OptionsCollection  = "EventOptions"
	RulesCollection    = "AvailabilityRules"
	BookingsCollection = "Bookings"
)

// AvailabilityRepository is the read-only storage surface the engine
// consumes. Rules come back unfiltered by date; bookings come back with
// every status, the engine filters countable ones itself.
type AvailabilityRepository interface {
	FindEventBySlug(ctx context.Context, username, slug string) (*model.Event, error)
	FindEventOptions(ctx context.Context, eventID string) ([]*model.EventOption, error)
	FindRulesForEvent(ctx context.Context, eventID, userID, organizationID string) ([]*model.AvailabilityRule, error)
	FindBookingsInRange(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.Booking, error)
}

type mongoAvailabilityRepository struct {
	cfg      *config.Config
	db       *mongo.Database
	events   *mongo.Collection
	opts     *mongo.Collection
	rules    *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoAvailabilityRepository(cfg *config.Config) AvailabilityRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAvailabilityRepository{
		cfg:      cfg,
		db:       db,
		events:   db.Collection(EventsCollection),
		opts:     db.Collection(OptionsCollection),
		rules:    db.Collection(RulesCollection),
		bookings: db.Collection(BookingsCollection),
	}
}

func (r *mongoAvailabilityRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAvailabilityRepository) FindEventBySlug(ctx context.Context, username, slug string) (*model.Event, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"username": username, "url_slug": slug}

	var event model.Event
	err := r.events.FindOne(ctx, filter).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, availabilityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return &event, nil
}

func (r *mongoAvailabilityRepository) FindEventOptions(ctx context.Context, eventID string) ([]*model.EventOption, error) {
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

// FindRulesForEvent returns every active rule visible to the event:
// event-specific rules plus user- and organization-global rules (those with
// no event binding).
func (r *mongoAvailabilityRepository) FindRulesForEvent(ctx context.Context, eventID, userID, organizationID string) ([]*model.AvailabilityRule, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	scopes := []bson.M{{"event_id": eventID}}
	if userID != "" {
		scopes = append(scopes, bson.M{"user_id": userID, "event_id": nil})
	}
	if organizationID != "" {
		scopes = append(scopes, bson.M{"organization_id": organizationID, "event_id": nil})
	}

	filter := bson.M{
		"is_active": true,
		"$or":       scopes,
	}

	cursor, err := r.rules.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []*model.AvailabilityRule
	if err = cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode availability rules: %w", err)
	}

	return rules, nil
}

func (r *mongoAvailabilityRepository) FindBookingsInRange(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"event_option_id": eventOptionID,
		"date":            bson.M{"$gte": startDate, "$lte": endDate},
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time_slot", Value: 1},
	})

	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}
