package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/samuelpalacioss/cue/internal/calendar/service"
	"github.com/samuelpalacioss/cue/internal/calendar/validator"
	"github.com/samuelpalacioss/cue/pkg/config"
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	httputil "github.com/samuelpalacioss/cue/pkg/http"
	"github.com/samuelpalacioss/cue/pkg/logger"
	"github.com/samuelpalacioss/cue/pkg/sanitizer"
)

type CalendarHandler struct {
	service   service.CalendarService
	validator *validator.QueryValidator
	log       *logger.Logger
}

func NewCalendarHandler(svc service.CalendarService, qv *validator.QueryValidator, cfg *config.Config) *CalendarHandler {
	return &CalendarHandler{
		service:   svc,
		validator: qv,
		log:       cfg.Log,
	}
}

func (h *CalendarHandler) Bookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	req := validator.BookingsRequest{
		Username:      sanitizer.NormalizeHandle(query.Get("username")),
		Slug:          sanitizer.NormalizeHandle(ps.ByName("slug")),
		StartDate:     query.Get("startDate"),
		EndDate:       query.Get("endDate"),
		EventOptionID: query.Get("eventOptionId"),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "Bookings", apperrors.Validation("Invalid query parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	view, err := h.service.BookingsInRange(r.Context(), service.BookingsQuery{
		Username:      req.Username,
		Slug:          req.Slug,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		EventOptionID: req.EventOptionID,
	})
	if err != nil {
		h.writeError(w, "Bookings", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Bookings", "error", err)
	}
}

func (h *CalendarHandler) WeekBookings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	req := validator.WeekBookingsRequest{
		Username:      sanitizer.NormalizeHandle(query.Get("username")),
		Slug:          sanitizer.NormalizeHandle(ps.ByName("slug")),
		Date:          query.Get("date"),
		EventOptionID: query.Get("eventOptionId"),
		WeekStart:     query.Get("weekStart"),
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "WeekBookings", apperrors.Validation("Invalid query parameters", map[string]any{
			"error": err.Error(),
		}))
		return
	}

	view, err := h.service.WeekBookings(r.Context(), service.WeekQuery{
		Username:      req.Username,
		Slug:          req.Slug,
		Date:          req.Date,
		EventOptionID: req.EventOptionID,
		SundayStart:   req.WeekStart == "sunday",
	})
	if err != nil {
		h.writeError(w, "WeekBookings", err)
		return
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "WeekBookings", "error", err)
	}
}

func (h *CalendarHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dashboard/events/:slug/bookings", h.Bookings)
	router.GET("/api/v1/dashboard/events/:slug/bookings/week", h.WeekBookings)
}
