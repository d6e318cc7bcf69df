package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/samuelpalacioss/cue/pkg/logger"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// EventDataRequest covers the event metadata lookup.
type EventDataRequest struct {
	Username string `validate:"required,min=1,max=50"`
	Slug     string `validate:"required,min=1,max=100"`
}

// MonthAvailabilityRequest covers the month-view query parameters.
type MonthAvailabilityRequest struct {
	Username      string `validate:"required,min=1,max=50"`
	Slug          string `validate:"required,min=1,max=100"`
	Year          int    `validate:"required,min=2000,max=2100"`
	Month         int    `validate:"required,min=1,max=12"`
	EventOptionID string `validate:"omitempty,mongodb"`
	Timezone      string `validate:"omitempty,timezone"`
}

// DateSlotsRequest covers the single-date slot query parameters.
type DateSlotsRequest struct {
	Username      string `validate:"required,min=1,max=50"`
	Slug          string `validate:"required,min=1,max=100"`
	Date          string `validate:"required,datetime=2006-01-02"`
	EventOptionID string `validate:"omitempty,mongodb"`
	Timezone      string `validate:"omitempty,timezone"`
	TimeFormat    string `validate:"omitempty,oneof=12h 24h"`
}

// RangeSlotsRequest covers the date-range slot query parameters. Range
// semantics (inversion, 31-day ceiling) are enforced by the service; this
// only checks shape.
type RangeSlotsRequest struct {
	Username      string `validate:"required,min=1,max=50"`
	Slug          string `validate:"required,min=1,max=100"`
	StartDate     string `validate:"required,datetime=2006-01-02"`
	EndDate       string `validate:"required,datetime=2006-01-02"`
	EventOptionID string `validate:"omitempty,mongodb"`
	Timezone      string `validate:"omitempty,timezone"`
	TimeFormat    string `validate:"omitempty,oneof=12h 24h"`
}

type QueryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewQueryValidator(log *logger.Logger) *QueryValidator {
	return &QueryValidator{
		validate: validator.New(),
		logger:   log,
	}
}

func (v *QueryValidator) Validate(req any) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *QueryValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "datetime":
			if err.Param() == "15:04" {
				message = fmt.Sprintf("%s must be in HH:MM 24-hour format", err.Field())
			} else {
				message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
			}
		case "timezone":
			message = fmt.Sprintf("%s must be a valid IANA time zone identifier", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object ID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
