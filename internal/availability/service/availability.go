package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	availabilityerrors "github.com/samuelpalacioss/cue/internal/availability/errors"
	"github.com/samuelpalacioss/cue/internal/availability/repository"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	"github.com/samuelpalacioss/cue/pkg/model"
	"github.com/samuelpalacioss/cue/pkg/timeutil"
)

type MonthQuery struct {
	Username      string
	Slug          string
	Year          int
	Month         int
	EventOptionID string
}

type DateQuery struct {
	Username      string
	Slug          string
	Date          string
	EventOptionID string
}

type RangeQuery struct {
	Username      string
	Slug          string
	StartDate     string
	EndDate       string
	EventOptionID string
}

// MonthAvailability reports, per date with open capacity, how many slots
// remain. Dates with zero available slots are absent from the map, never
// present with value 0.
type MonthAvailability struct {
	AvailableDates    []string       `json:"available_dates"`
	AvailabilityCount map[string]int `json:"availability_count"`
}

type OptionView struct {
	ID              string `json:"id"`
	DurationMinutes int    `json:"duration_minutes"`
	Capacity        int    `json:"capacity"`
	IsDefault       bool   `json:"is_default"`
}

type EventData struct {
	ID                   string       `json:"id"`
	Username             string       `json:"username"`
	Slug                 string       `json:"slug"`
	Title                string       `json:"title"`
	MeetingType          string       `json:"meeting_type,omitempty"`
	RequiresConfirmation bool         `json:"requires_confirmation"`
	DefaultOptionID      string       `json:"default_option_id"`
	EventOptions         []OptionView `json:"event_options"`
}

type AvailabilityService interface {
	EventData(ctx context.Context, username, slug string) (*EventData, error)
	MonthAvailability(ctx context.Context, q MonthQuery) (*MonthAvailability, error)
	DateSlots(ctx context.Context, q DateQuery) ([]model.TimeSlot, error)
	RangeSlots(ctx context.Context, q RangeQuery) (map[string][]model.TimeSlot, error)
}

type availabilityService struct {
	repo     repository.AvailabilityRepository
	reporter AnomalyReporter
	cfg      *config.Config
	today    func() string
}

func NewAvailabilityService(
	repo repository.AvailabilityRepository,
	reporter AnomalyReporter,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:     repo,
		reporter: reporter,
		cfg:      cfg,
		today:    timeutil.Today,
	}
}

func (s *availabilityService) EventData(ctx context.Context, username, slug string) (*EventData, error) {
	event, options, err := s.loadEvent(ctx, username, slug)
	if err != nil {
		return nil, err
	}

	defaultOption, _, err := resolveOption(options, "")
	if err != nil {
		return nil, err
	}

	views := make([]OptionView, len(options))
	for i, opt := range options {
		views[i] = OptionView{
			ID:              opt.ID,
			DurationMinutes: opt.DurationMinutes,
			Capacity:        opt.Capacity,
			IsDefault:       opt.IsDefault,
		}
	}

	return &EventData{
		ID:                   event.ID,
		Username:             event.Username,
		Slug:                 event.URLSlug,
		Title:                event.Title,
		MeetingType:          event.MeetingType,
		RequiresConfirmation: event.RequiresConfirmation,
		DefaultOptionID:      defaultOption.ID,
		EventOptions:         views,
	}, nil
}

func (s *availabilityService) MonthAvailability(ctx context.Context, q MonthQuery) (*MonthAvailability, error) {
	if q.Month < 1 || q.Month > 12 {
		return nil, apperrors.InvalidInput("Month must be between 1 and 12")
	}

	event, options, err := s.loadEvent(ctx, q.Username, q.Slug)
	if err != nil {
		return nil, err
	}

	option, resolution, err := resolveOption(options, q.EventOptionID)
	if err != nil {
		return nil, err
	}

	firstDay, lastDay := timeutil.MonthBounds(q.Year, q.Month)
	rules, bookings, err := s.fetchRulesAndBookings(ctx, event, option.ID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}

	bookingIndex := buildBookingIndex(bookings)
	cache := newSlotCache()
	today := s.today()

	availabilityCount := make(map[string]int)
	for date := firstDay; date <= lastDay; {
		next, advErr := timeutil.AddDays(date, 1)
		if advErr != nil {
			return nil, apperrors.Internal("Failed to advance calendar date", advErr)
		}

		if date >= today {
			available, dayErr := s.countAvailableSlots(ctx, event.ID, date, rules, option, cache, bookingIndex)
			if dayErr != nil {
				return nil, dayErr
			}
			if available > 0 {
				availabilityCount[date] = available
			}
		}
		date = next
	}

	availableDates := make([]string, 0, len(availabilityCount))
	for date := range availabilityCount {
		availableDates = append(availableDates, date)
	}
	sort.Strings(availableDates)

	s.cfg.Log.Debug("Month availability computed",
		"event_id", event.ID,
		"year", q.Year,
		"month", q.Month,
		"option_resolution", resolution.String(),
		"open_dates", len(availableDates),
	)

	return &MonthAvailability{
		AvailableDates:    availableDates,
		AvailabilityCount: availabilityCount,
	}, nil
}

func (s *availabilityService) DateSlots(ctx context.Context, q DateQuery) ([]model.TimeSlot, error) {
	if _, err := timeutil.ParseDate(q.Date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	// Past dates never produce slots, regardless of the requested zone.
	if q.Date < s.today() {
		return []model.TimeSlot{}, nil
	}

	event, options, err := s.loadEvent(ctx, q.Username, q.Slug)
	if err != nil {
		return nil, err
	}

	option, _, err := resolveOption(options, q.EventOptionID)
	if err != nil {
		return nil, err
	}

	rules, bookings, err := s.fetchRulesAndBookings(ctx, event, option.ID, q.Date, q.Date)
	if err != nil {
		return nil, err
	}

	bookingIndex := buildBookingIndex(bookings)
	slots, err := s.buildDaySlots(ctx, event.ID, q.Date, rules, option, newSlotCache(), bookingIndex)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []model.TimeSlot{}
	}
	return slots, nil
}

func (s *availabilityService) RangeSlots(ctx context.Context, q RangeQuery) (map[string][]model.TimeSlot, error) {
	if _, err := timeutil.ParseDate(q.StartDate); err != nil {
		return nil, apperrors.InvalidInput("Start date must be in YYYY-MM-DD format")
	}
	if _, err := timeutil.ParseDate(q.EndDate); err != nil {
		return nil, apperrors.InvalidInput("End date must be in YYYY-MM-DD format")
	}

	span, err := timeutil.DaysBetween(q.StartDate, q.EndDate)
	if err != nil {
		return nil, apperrors.InvalidInput("Invalid date range")
	}
	if span < 0 {
		return nil, apperrors.InvalidRange("Start date must be before or equal to end date")
	}
	if span > s.cfg.MaxRangeDays {
		return nil, apperrors.InvalidRange("Date range cannot exceed 31 days")
	}

	event, options, err := s.loadEvent(ctx, q.Username, q.Slug)
	if err != nil {
		return nil, err
	}

	option, _, err := resolveOption(options, q.EventOptionID)
	if err != nil {
		return nil, err
	}

	rules, bookings, err := s.fetchRulesAndBookings(ctx, event, option.ID, q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	bookingIndex := buildBookingIndex(bookings)
	cache := newSlotCache()
	today := s.today()

	result := make(map[string][]model.TimeSlot)
	for date := q.StartDate; date <= q.EndDate; {
		next, advErr := timeutil.AddDays(date, 1)
		if advErr != nil {
			return nil, apperrors.Internal("Failed to advance calendar date", advErr)
		}

		if date >= today {
			slots, dayErr := s.buildDaySlots(ctx, event.ID, date, rules, option, cache, bookingIndex)
			if dayErr != nil {
				return nil, dayErr
			}
			if len(slots) > 0 {
				result[date] = slots
			}
		}
		date = next
	}

	return result, nil
}

// loadEvent resolves the event identity and its option catalog. A missing
// event or an empty catalog is a terminal not-found; resolution never
// guesses a fallback.
func (s *availabilityService) loadEvent(ctx context.Context, username, slug string) (*model.Event, []*model.EventOption, error) {
	if username == "" || slug == "" {
		return nil, nil, apperrors.InvalidInput("Username and slug must be provided")
	}

	event, err := s.repo.FindEventBySlug(ctx, username, slug)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrNotFound) {
			return nil, nil, apperrors.NotFound("Event")
		}
		s.cfg.Log.Error("Failed to find event",
			"username", username,
			"slug", slug,
			"error", err,
		)
		return nil, nil, apperrors.Internal("Failed to retrieve event", err)
	}

	options, err := s.repo.FindEventOptions(ctx, event.ID)
	if err != nil {
		s.cfg.Log.Error("Failed to find event options",
			"event_id", event.ID,
			"error", err,
		)
		return nil, nil, apperrors.Internal("Failed to retrieve event options", err)
	}

	return event, options, nil
}

// fetchRulesAndBookings issues the two batch reads for a query. They are
// independent, so they run concurrently under a shared timeout; either
// failure aborts the query, since partial availability data is unsafe to
// serve as ground truth for booking decisions.
func (s *availabilityService) fetchRulesAndBookings(
	ctx context.Context,
	event *model.Event,
	optionID string,
	startDate, endDate string,
) ([]*model.AvailabilityRule, []*model.Booking, error) {
	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var rules []*model.AvailabilityRule
	var bookings []*model.Booking
	var errRules, errBookings error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		rules, errRules = s.repo.FindRulesForEvent(sharedCtx, event.ID, event.UserID, event.OrganizationID)
	}()

	go func() {
		defer wg.Done()
		bookings, errBookings = s.repo.FindBookingsInRange(sharedCtx, optionID, startDate, endDate)
	}()

	wg.Wait()
	if errRules != nil {
		s.cfg.Log.Error("Failed to fetch availability rules",
			"event_id", event.ID,
			"error", errRules,
		)
		return nil, nil, apperrors.Internal("Failed to retrieve availability rules", errRules)
	}
	if errBookings != nil {
		s.cfg.Log.Error("Failed to fetch bookings",
			"event_id", event.ID,
			"start_date", startDate,
			"end_date", endDate,
			"error", errBookings,
		)
		return nil, nil, apperrors.Internal("Failed to retrieve bookings", errBookings)
	}

	return rules, bookings, nil
}

// buildBookingIndex groups countable bookings by (date, slot start) in one
// pass, so per-slot capacity checks stay O(1) over the whole range.
func buildBookingIndex(bookings []*model.Booking) map[string]map[string]int {
	index := make(map[string]map[string]int)
	for _, booking := range bookings {
		if !booking.Countable() {
			continue
		}
		slots, ok := index[booking.Date]
		if !ok {
			slots = make(map[string]int)
			index[booking.Date] = slots
		}
		slots[booking.TimeSlot]++
	}
	return index
}

// dedupeSlots collapses slots sharing a start time so overlapping rules do
// not multiply apparent capacity. The first window wins; discarding a
// window with a different end is reported as a likely rule misconfiguration.
func (s *availabilityService) dedupeSlots(ctx context.Context, eventID, date string, slots []model.CandidateSlot) []model.CandidateSlot {
	kept := make(map[string]model.CandidateSlot, len(slots))
	starts := make([]string, 0, len(slots))

	for _, slot := range slots {
		existing, ok := kept[slot.Start]
		if !ok {
			kept[slot.Start] = slot
			starts = append(starts, slot.Start)
			continue
		}
		if existing.End != slot.End {
			s.reporter.ReportRuleOverlap(ctx, RuleOverlapAnomaly{
				EventID:      eventID,
				Date:         date,
				SlotStart:    slot.Start,
				KeptEnd:      existing.End,
				DiscardedEnd: slot.End,
			})
		}
	}

	// Lexicographic order on zero-padded HH:MM is chronological order.
	sort.Strings(starts)

	unique := make([]model.CandidateSlot, len(starts))
	for i, start := range starts {
		unique[i] = kept[start]
	}
	return unique
}

// countAvailableSlots runs the shared per-date pipeline and returns only
// the count of open slots, for the month view.
func (s *availabilityService) countAvailableSlots(
	ctx context.Context,
	eventID, date string,
	rules []*model.AvailabilityRule,
	option *model.EventOption,
	cache *slotCache,
	bookingIndex map[string]map[string]int,
) (int, error) {
	unique, _, err := s.resolveDaySlots(ctx, eventID, date, rules, option, cache)
	if err != nil || len(unique) == 0 {
		return 0, err
	}

	bookingsPerSlot := bookingIndex[date]
	available := 0
	for _, slot := range unique {
		if bookingsPerSlot[slot.Start] < option.Capacity {
			available++
		}
	}
	return available, nil
}

// buildDaySlots runs the shared per-date pipeline and returns the full slot
// list with per-slot availability, for the date and range views. Fully
// booked slots are returned flagged unavailable, not hidden.
func (s *availabilityService) buildDaySlots(
	ctx context.Context,
	eventID, date string,
	rules []*model.AvailabilityRule,
	option *model.EventOption,
	cache *slotCache,
	bookingIndex map[string]map[string]int,
) ([]model.TimeSlot, error) {
	unique, sourceTimezone, err := s.resolveDaySlots(ctx, eventID, date, rules, option, cache)
	if err != nil || len(unique) == 0 {
		return nil, err
	}

	bookingsPerSlot := bookingIndex[date]
	timeSlots := make([]model.TimeSlot, len(unique))
	for i, slot := range unique {
		timeSlots[i] = model.TimeSlot{
			StartTime:      slot.Start,
			EndTime:        slot.End,
			Available:      bookingsPerSlot[slot.Start] < option.Capacity,
			SourceTimezone: sourceTimezone,
		}
	}
	return timeSlots, nil
}

// resolveDaySlots applies rule resolution, slot generation and dedup for
// one date. An empty result means the resource is closed that day; the
// date is simply excluded from results.
func (s *availabilityService) resolveDaySlots(
	ctx context.Context,
	eventID, date string,
	rules []*model.AvailabilityRule,
	option *model.EventOption,
	cache *slotCache,
) ([]model.CandidateSlot, string, error) {
	dayRules, err := resolveRulesForDate(rules, date)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to resolve rules for date", err)
	}
	if len(dayRules) == 0 {
		return nil, "", nil
	}

	slots, err := cache.slotsFor(dayRules, option.DurationMinutes)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to generate time slots", err)
	}

	sourceTimezone := dayRules[0].Timezone
	if sourceTimezone == "" {
		sourceTimezone = s.cfg.DefaultTimezone
	}

	return s.dedupeSlots(ctx, eventID, date, slots), sourceTimezone, nil
}
