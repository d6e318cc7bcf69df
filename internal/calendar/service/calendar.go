package service

import (
	"context"
	"errors"
	"sort"

	calendarerrors "github.com/samuelpalacioss/cue/internal/calendar/errors"
	"github.com/samuelpalacioss/cue/internal/calendar/repository"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	"github.com/samuelpalacioss/cue/pkg/logger"
	"github.com/samuelpalacioss/cue/pkg/model"
	"github.com/samuelpalacioss/cue/pkg/timeutil"
)

type BookingsQuery struct {
	Username      string
	Slug          string
	StartDate     string
	EndDate       string
	EventOptionID string
}

type WeekQuery struct {
	Username      string
	Slug          string
	Date          string
	EventOptionID string
	SundayStart   bool
}

// BookingsView groups dashboard bookings by date. Dates carries the keys
// of BookingsByDate in ascending order; dates without bookings are absent.
type BookingsView struct {
	EventID        string                                `json:"event_id"`
	EventOptionID  string                                `json:"event_option_id"`
	StartDate      string                                `json:"start_date"`
	EndDate        string                                `json:"end_date"`
	Dates          []string                              `json:"dates"`
	BookingsByDate map[string][]*model.BookingWithPerson `json:"bookings_by_date"`
}

type CalendarService interface {
	BookingsInRange(ctx context.Context, q BookingsQuery) (*BookingsView, error)
	WeekBookings(ctx context.Context, q WeekQuery) (*BookingsView, error)
}

type calendarService struct {
	repo repository.CalendarRepository
	cfg  *config.Config
	log  *logger.Logger
}

func NewCalendarService(repo repository.CalendarRepository, cfg *config.Config) CalendarService {
	return &calendarService{
		repo: repo,
		cfg:  cfg,
		log:  cfg.Log,
	}
}

func (s *calendarService) BookingsInRange(ctx context.Context, q BookingsQuery) (*BookingsView, error) {
	span, err := timeutil.DaysBetween(q.StartDate, q.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput("Dates must be in YYYY-MM-DD format")
	}
	if span < 0 {
		return nil, apperrors.InvalidRange("Start date must be before or equal to end date")
	}
	if span > s.cfg.MaxRangeDays {
		return nil, apperrors.InvalidRange("Date range cannot exceed 31 days")
	}

	event, err := s.repo.FindEventBySlug(ctx, q.Username, q.Slug)
	if err != nil {
		if errors.Is(err, calendarerrors.ErrNotFound) {
			return nil, apperrors.NotFound("Event")
		}
		return nil, apperrors.Internal("Failed to load event", err)
	}

	options, err := s.repo.FindEventOptions(ctx, event.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load event options", err)
	}
	option, err := pickOption(options, q.EventOptionID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindBookingsWithPersons(ctx, option.ID, q.StartDate, q.EndDate)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	byDate := make(map[string][]*model.BookingWithPerson)
	for _, booking := range bookings {
		byDate[booking.Date] = append(byDate[booking.Date], booking)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	s.log.Debug("Dashboard bookings resolved",
		"event_id", event.ID,
		"event_option_id", option.ID,
		"start_date", q.StartDate,
		"end_date", q.EndDate,
		"bookings", len(bookings),
	)

	return &BookingsView{
		EventID:        event.ID,
		EventOptionID:  option.ID,
		StartDate:      q.StartDate,
		EndDate:        q.EndDate,
		Dates:          dates,
		BookingsByDate: byDate,
	}, nil
}

func (s *calendarService) WeekBookings(ctx context.Context, q WeekQuery) (*BookingsView, error) {
	weekStart, err := timeutil.WeekStart(q.Date, q.SundayStart)
	if err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	weekEnd, err := timeutil.WeekEnd(weekStart)
	if err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	return s.BookingsInRange(ctx, BookingsQuery{
		Username:      q.Username,
		Slug:          q.Slug,
		StartDate:     weekStart,
		EndDate:       weekEnd,
		EventOptionID: q.EventOptionID,
	})
}

// pickOption mirrors the availability engine's duration-option selection:
// explicit request first, then the marked default; an event with options
// but no default is a configuration error.
func pickOption(options []*model.EventOption, requestedID string) (*model.EventOption, error) {
	if len(options) == 0 {
		return nil, apperrors.NotFound("Event options")
	}
	if requestedID != "" {
		for _, opt := range options {
			if opt.ID == requestedID {
				return opt, nil
			}
		}
	}
	for _, opt := range options {
		if opt.IsDefault {
			return opt, nil
		}
	}
	return nil, apperrors.Configuration("Event has no default option configured")
}
