package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarerrors "github.com/samuelpalacioss/cue/internal/calendar/errors"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	"github.com/samuelpalacioss/cue/pkg/logger"
	"github.com/samuelpalacioss/cue/pkg/model"
)

type mockCalendarRepository struct {
	findEventBySlugFunc         func(ctx context.Context, username, slug string) (*model.Event, error)
	findEventOptionsFunc        func(ctx context.Context, eventID string) ([]*model.EventOption, error)
	findBookingsWithPersonsFunc func(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error)
}

func (m *mockCalendarRepository) FindEventBySlug(ctx context.Context, username, slug string) (*model.Event, error) {
	if m.findEventBySlugFunc != nil {
		return m.findEventBySlugFunc(ctx, username, slug)
	}
	return &model.Event{ID: "ev1", Username: username, URLSlug: slug, UserID: "user1"}, nil
}

func (m *mockCalendarRepository) FindEventOptions(ctx context.Context, eventID string) ([]*model.EventOption, error) {
	if m.findEventOptionsFunc != nil {
		return m.findEventOptionsFunc(ctx, eventID)
	}
	return []*model.EventOption{
		{ID: "opt-30", EventID: eventID, DurationMinutes: 30, Capacity: 1, IsDefault: true},
	}, nil
}

func (m *mockCalendarRepository) FindBookingsWithPersons(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
	if m.findBookingsWithPersonsFunc != nil {
		return m.findBookingsWithPersonsFunc(ctx, eventOptionID, startDate, endDate)
	}
	return nil, nil
}

func newTestService(repo *mockCalendarRepository) CalendarService {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "calendar-test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		MaxRangeDays: 31,
	}
	return NewCalendarService(repo, cfg)
}

func TestBookingsInRange_GroupsByDate(t *testing.T) {
	repo := &mockCalendarRepository{
		findBookingsWithPersonsFunc: func(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
			return []*model.BookingWithPerson{
				{ID: "b1", Date: "2026-01-05", TimeSlot: "09:00", Status: model.BookingConfirmed, Person: &model.Person{FirstName: "Ada"}},
				{ID: "b2", Date: "2026-01-05", TimeSlot: "10:00", Status: model.BookingPending},
				{ID: "b3", Date: "2026-01-07", TimeSlot: "14:00", Status: model.BookingConfirmed},
			}, nil
		},
	}
	svc := newTestService(repo)

	view, err := svc.BookingsInRange(context.Background(), BookingsQuery{
		Username: "alice", Slug: "intro-call", StartDate: "2026-01-05", EndDate: "2026-01-11",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-01-05", "2026-01-07"}, view.Dates)
	assert.Len(t, view.BookingsByDate["2026-01-05"], 2)
	assert.Len(t, view.BookingsByDate["2026-01-07"], 1)
	assert.Equal(t, "opt-30", view.EventOptionID)
	assert.Equal(t, "Ada", view.BookingsByDate["2026-01-05"][0].Person.FirstName)
}

func TestBookingsInRange_InvertedRange(t *testing.T) {
	svc := newTestService(&mockCalendarRepository{})

	_, err := svc.BookingsInRange(context.Background(), BookingsQuery{
		Username: "alice", Slug: "intro-call", StartDate: "2026-01-11", EndDate: "2026-01-05",
	})
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidRange, appErr.Code)
}

func TestBookingsInRange_RangeTooLarge(t *testing.T) {
	svc := newTestService(&mockCalendarRepository{})

	_, err := svc.BookingsInRange(context.Background(), BookingsQuery{
		Username: "alice", Slug: "intro-call", StartDate: "2026-01-01", EndDate: "2026-02-15",
	})
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeInvalidRange, appErr.Code)
}

func TestBookingsInRange_UnknownEvent(t *testing.T) {
	repo := &mockCalendarRepository{
		findEventBySlugFunc: func(ctx context.Context, username, slug string) (*model.Event, error) {
			return nil, calendarerrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.BookingsInRange(context.Background(), BookingsQuery{
		Username: "ghost", Slug: "intro-call", StartDate: "2026-01-05", EndDate: "2026-01-11",
	})
	appErr := apperrors.AsAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestWeekBookings_ResolvesWeekWindow(t *testing.T) {
	var gotStart, gotEnd string
	repo := &mockCalendarRepository{
		findBookingsWithPersonsFunc: func(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
			gotStart, gotEnd = startDate, endDate
			return nil, nil
		},
	}
	svc := newTestService(repo)

	// 2026-01-07 is a Wednesday.
	view, err := svc.WeekBookings(context.Background(), WeekQuery{
		Username: "alice", Slug: "intro-call", Date: "2026-01-07",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-05", gotStart)
	assert.Equal(t, "2026-01-11", gotEnd)
	assert.Equal(t, "2026-01-05", view.StartDate)
	assert.Equal(t, "2026-01-11", view.EndDate)
	assert.Empty(t, view.Dates)
}

func TestWeekBookings_SundayStart(t *testing.T) {
	var gotStart string
	repo := &mockCalendarRepository{
		findBookingsWithPersonsFunc: func(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
			gotStart = startDate
			return nil, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.WeekBookings(context.Background(), WeekQuery{
		Username: "alice", Slug: "intro-call", Date: "2026-01-07", SundayStart: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-04", gotStart)
}

func TestBookingsInRange_RequestedOptionUsed(t *testing.T) {
	var gotOptionID string
	repo := &mockCalendarRepository{
		findEventOptionsFunc: func(ctx context.Context, eventID string) ([]*model.EventOption, error) {
			return []*model.EventOption{
				{ID: "opt-30", EventID: eventID, DurationMinutes: 30, Capacity: 1, IsDefault: true},
				{ID: "opt-60", EventID: eventID, DurationMinutes: 60, Capacity: 1},
			}, nil
		},
		findBookingsWithPersonsFunc: func(ctx context.Context, eventOptionID, startDate, endDate string) ([]*model.BookingWithPerson, error) {
			gotOptionID = eventOptionID
			return nil, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.BookingsInRange(context.Background(), BookingsQuery{
		Username: "alice", Slug: "intro-call",
		StartDate: "2026-01-05", EndDate: "2026-01-11",
		EventOptionID: "opt-60",
	})
	require.NoError(t, err)
	assert.Equal(t, "opt-60", gotOptionID)
}
