package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/samuelpalacioss/cue/internal/availability/service"
	"github.com/samuelpalacioss/cue/internal/availability/validator"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	httputil "github.com/samuelpalacioss/cue/pkg/http"
	"github.com/samuelpalacioss/cue/pkg/logger"
	"github.com/samuelpalacioss/cue/pkg/model"
	"github.com/samuelpalacioss/cue/pkg/sanitizer"
	"github.com/samuelpalacioss/cue/pkg/timeutil"
)

// SlotView is the wire form of a time slot: the engine's source wall-clock
// times plus display times rendered in the requester's zone and format.
// When the requested zone cannot be resolved, display times fall back to
// the source zone and TimezoneWarning is set; the query never fails on a
// bad display zone.
type SlotView struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Available       bool   `json:"available"`
	SourceTimezone  string `json:"source_timezone"`
	DisplayStart    string `json:"display_start"`
	DisplayEnd      string `json:"display_end"`
	TimezoneWarning bool   `json:"timezone_warning,omitempty"`
}

type DateSlotsResponse struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

type RangeSlotsResponse struct {
	SlotsByDate map[string][]SlotView `json:"slots_by_date"`
}

type AvailabilityHandler struct {
	service   service.AvailabilityService
	validator *validator.QueryValidator
	cfg       *config.Config
	log       *logger.Logger
}

func NewAvailabilityHandler(
	svc service.AvailabilityService,
	qv *validator.QueryValidator,
	cfg *config.Config,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		service:   svc,
		validator: qv,
		cfg:       cfg,
		log:       cfg.Log,
	}
}

func (h *AvailabilityHandler) EventData(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	req := validator.EventDataRequest{
		Username: sanitizer.NormalizeHandle(ps.ByName("username")),
		Slug:     sanitizer.NormalizeHandle(ps.ByName("slug")),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "EventData", apperrors.Validation("Invalid route parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	event, err := h.service.EventData(r.Context(), req.Username, req.Slug)
	if err != nil {
		h.writeError(w, "EventData", err)
		return
	}

	if err := httputil.WriteSuccess(w, event); err != nil {
		h.log.Error("failed to write success response", "handler", "EventData", "error", err)
	}
}

func (h *AvailabilityHandler) MonthAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		h.writeError(w, "MonthAvailability", apperrors.InvalidInput(fmt.Sprintf("invalid year parameter: %s", query.Get("year"))))
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		h.writeError(w, "MonthAvailability", apperrors.InvalidInput(fmt.Sprintf("invalid month parameter: %s", query.Get("month"))))
		return
	}

	req := validator.MonthAvailabilityRequest{
		Username:      sanitizer.NormalizeHandle(ps.ByName("username")),
		Slug:          sanitizer.NormalizeHandle(ps.ByName("slug")),
		Year:          year,
		Month:         month,
		EventOptionID: query.Get("eventOptionId"),
		Timezone:      query.Get("timezone"),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "MonthAvailability", apperrors.Validation("Invalid query parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	result, err := h.service.MonthAvailability(r.Context(), service.MonthQuery{
		Username:      req.Username,
		Slug:          req.Slug,
		Year:          req.Year,
		Month:         req.Month,
		EventOptionID: req.EventOptionID,
	})
	if err != nil {
		h.writeError(w, "MonthAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "MonthAvailability", "error", err)
	}
}

func (h *AvailabilityHandler) DateSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	req := validator.DateSlotsRequest{
		Username:      sanitizer.NormalizeHandle(ps.ByName("username")),
		Slug:          sanitizer.NormalizeHandle(ps.ByName("slug")),
		Date:          query.Get("date"),
		EventOptionID: query.Get("eventOptionId"),
		Timezone:      query.Get("timezone"),
		TimeFormat:    query.Get("timeFormat"),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "DateSlots", apperrors.Validation("Invalid query parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	slots, err := h.service.DateSlots(r.Context(), service.DateQuery{
		Username:      req.Username,
		Slug:          req.Slug,
		Date:          req.Date,
		EventOptionID: req.EventOptionID,
	})
	if err != nil {
		h.writeError(w, "DateSlots", err)
		return
	}

	response := DateSlotsResponse{
		Date:  req.Date,
		Slots: h.renderSlots(req.Date, slots, req.Timezone, req.TimeFormat),
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", "DateSlots", "error", err)
	}
}

func (h *AvailabilityHandler) RangeSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	req := validator.RangeSlotsRequest{
		Username:      sanitizer.NormalizeHandle(ps.ByName("username")),
		Slug:          sanitizer.NormalizeHandle(ps.ByName("slug")),
		StartDate:     query.Get("startDate"),
		EndDate:       query.Get("endDate"),
		EventOptionID: query.Get("eventOptionId"),
		Timezone:      query.Get("timezone"),
		TimeFormat:    query.Get("timeFormat"),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "RangeSlots", apperrors.Validation("Invalid query parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	slotsByDate, err := h.service.RangeSlots(r.Context(), service.RangeQuery{
		Username:      req.Username,
		Slug:          req.Slug,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EventOptionID: req.EventOptionID,
	})
	if err != nil {
		h.writeError(w, "RangeSlots", err)
		return
	}

	response := RangeSlotsResponse{SlotsByDate: make(map[string][]SlotView, len(slotsByDate))}
	for date, slots := range slotsByDate {
		response.SlotsByDate[date] = h.renderSlots(date, slots, req.Timezone, req.TimeFormat)
	}
	if err := httputil.WriteSuccess(w, response); err != nil {
		h.log.Error("failed to write success response", "handler", "RangeSlots", "error", err)
	}
}

// renderSlots converts each slot's source wall-clock times into the
// requested display zone and format. Conversion failures degrade to the
// source-zone time with a warning flag instead of aborting.
func (h *AvailabilityHandler) renderSlots(date string, slots []model.TimeSlot, targetZone, format string) []SlotView {
	if targetZone == "" {
		targetZone = h.cfg.DefaultTimezone
	}
	if format == "" {
		format = h.cfg.DefaultTimeFormat
	}

	views := make([]SlotView, len(slots))
	for i, slot := range slots {
		view := SlotView{
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Available:      slot.Available,
			SourceTimezone: slot.SourceTimezone,
		}

		start, errStart := timeutil.ConvertWallClock(date, slot.StartTime, slot.SourceTimezone, targetZone)
		end, errEnd := timeutil.ConvertWallClock(date, slot.EndTime, slot.SourceTimezone, targetZone)
		if errStart != nil || errEnd != nil {
			h.log.Warn("Timezone conversion failed, rendering source-zone times",
				"date", date,
				"source_timezone", slot.SourceTimezone,
				"target_timezone", targetZone,
			)
			start, end = slot.StartTime, slot.EndTime
			view.TimezoneWarning = true
		}

		view.DisplayStart = h.formatClock(start, format)
		view.DisplayEnd = h.formatClock(end, format)
		views[i] = view
	}
	return views
}

func (h *AvailabilityHandler) formatClock(clock, format string) string {
	formatted, err := timeutil.FormatClock(clock, format)
	if err != nil {
		return clock
	}
	return formatted
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/events/:username/:slug", h.EventData)
	router.GET("/api/v1/events/:username/:slug/availability", h.MonthAvailability)
	router.GET("/api/v1/events/:username/:slug/slots", h.DateSlots)
	router.GET("/api/v1/events/:username/:slug/slots/range", h.RangeSlots)
}
