package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/samuelpalacioss/cue/internal/availability/service"
	"github.com/samuelpalacioss/cue/internal/availability/validator"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	"github.com/samuelpalacioss/cue/pkg/logger"
	"github.com/samuelpalacioss/cue/pkg/model"
)

type mockAvailabilityService struct {
	eventDataFunc         func(ctx context.Context, username, slug string) (*service.EventData, error)
	monthAvailabilityFunc func(ctx context.Context, q service.MonthQuery) (*service.MonthAvailability, error)
	dateSlotsFunc         func(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error)
	rangeSlotsFunc        func(ctx context.Context, q service.RangeQuery) (map[string][]model.TimeSlot, error)
}

func (m *mockAvailabilityService) EventData(ctx context.Context, username, slug string) (*service.EventData, error) {
	if m.eventDataFunc != nil {
		return m.eventDataFunc(ctx, username, slug)
	}
	return &service.EventData{}, nil
}

func (m *mockAvailabilityService) MonthAvailability(ctx context.Context, q service.MonthQuery) (*service.MonthAvailability, error) {
	if m.monthAvailabilityFunc != nil {
		return m.monthAvailabilityFunc(ctx, q)
	}
	return &service.MonthAvailability{}, nil
}

func (m *mockAvailabilityService) DateSlots(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error) {
	if m.dateSlotsFunc != nil {
		return m.dateSlotsFunc(ctx, q)
	}
	return []model.TimeSlot{}, nil
}

func (m *mockAvailabilityService) RangeSlots(ctx context.Context, q service.RangeQuery) (map[string][]model.TimeSlot, error) {
	if m.rangeSlotsFunc != nil {
		return m.rangeSlotsFunc(ctx, q)
	}
	return map[string][]model.TimeSlot{}, nil
}

func newTestHandler(svc service.AvailabilityService) *AvailabilityHandler {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "handler-test",
	})
	cfg := &config.Config{
		Log:               log,
		DefaultTimezone:   "UTC",
		DefaultTimeFormat: "24h",
	}
	return NewAvailabilityHandler(svc, validator.NewQueryValidator(log), cfg)
}

func serveDateSlots(h *AvailabilityHandler, target string) *httptest.ResponseRecorder {
	router := httprouter.New()
	h.RegisterRoutes(router)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestDateSlots_RendersDisplayTimes(t *testing.T) {
	svc := &mockAvailabilityService{
		dateSlotsFunc: func(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error) {
			return []model.TimeSlot{
				{StartTime: "09:00", EndTime: "09:30", Available: true, SourceTimezone: "America/New_York"},
			}, nil
		},
	}
	h := newTestHandler(svc)

	recorder := serveDateSlots(h, "/api/v1/events/alice/intro-call/slots?date=2026-01-05&timezone=Europe/London&timeFormat=24h")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Data DateSlotsResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(body.Data.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(body.Data.Slots))
	}

	slot := body.Data.Slots[0]
	if slot.StartTime != "09:00" {
		t.Errorf("expected source start 09:00, got %s", slot.StartTime)
	}
	// 09:00 EST is 14:00 in London.
	if slot.DisplayStart != "14:00" {
		t.Errorf("expected display start 14:00, got %s", slot.DisplayStart)
	}
	if slot.TimezoneWarning {
		t.Error("expected no timezone warning")
	}
}

func TestDateSlots_TwelveHourFormat(t *testing.T) {
	svc := &mockAvailabilityService{
		dateSlotsFunc: func(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error) {
			return []model.TimeSlot{
				{StartTime: "13:30", EndTime: "14:00", Available: true, SourceTimezone: "UTC"},
			}, nil
		},
	}
	h := newTestHandler(svc)

	recorder := serveDateSlots(h, "/api/v1/events/alice/intro-call/slots?date=2026-01-05&timeFormat=12h")

	var body struct {
		Data DateSlotsResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Slots[0].DisplayStart != "1:30 PM" {
		t.Errorf("expected 1:30 PM, got %s", body.Data.Slots[0].DisplayStart)
	}
}

func TestDateSlots_BrokenSourceZoneDegradesWithWarning(t *testing.T) {
	svc := &mockAvailabilityService{
		dateSlotsFunc: func(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error) {
			return []model.TimeSlot{
				{StartTime: "09:00", EndTime: "09:30", Available: true, SourceTimezone: "Broken/Zone"},
			}, nil
		},
	}
	h := newTestHandler(svc)

	recorder := serveDateSlots(h, "/api/v1/events/alice/intro-call/slots?date=2026-01-05&timezone=Europe/London")

	if recorder.Code != http.StatusOK {
		t.Fatalf("conversion failure must not fail the request, got %d", recorder.Code)
	}

	var body struct {
		Data DateSlotsResponse `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	slot := body.Data.Slots[0]
	if !slot.TimezoneWarning {
		t.Error("expected timezone warning")
	}
	if slot.DisplayStart != "09:00" {
		t.Errorf("expected fallback to source time, got %s", slot.DisplayStart)
	}
}

func TestDateSlots_MissingDateRejected(t *testing.T) {
	h := newTestHandler(&mockAvailabilityService{})

	recorder := serveDateSlots(h, "/api/v1/events/alice/intro-call/slots")

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", recorder.Code)
	}
}

func TestDateSlots_ServiceErrorsMapped(t *testing.T) {
	svc := &mockAvailabilityService{
		dateSlotsFunc: func(ctx context.Context, q service.DateQuery) ([]model.TimeSlot, error) {
			return nil, apperrors.NotFound("Event")
		},
	}
	h := newTestHandler(svc)

	recorder := serveDateSlots(h, "/api/v1/events/ghost/intro-call/slots?date=2026-01-05")

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestEventData_NormalizesHandles(t *testing.T) {
	var gotUsername, gotSlug string
	svc := &mockAvailabilityService{
		eventDataFunc: func(ctx context.Context, username, slug string) (*service.EventData, error) {
			gotUsername, gotSlug = username, slug
			return &service.EventData{ID: "ev1"}, nil
		},
	}
	h := newTestHandler(svc)

	recorder := serveDateSlots(h, "/api/v1/events/Alice/Intro-Call")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if gotUsername != "alice" || gotSlug != "intro-call" {
		t.Errorf("expected normalized handles, got %q %q", gotUsername, gotSlug)
	}
}
