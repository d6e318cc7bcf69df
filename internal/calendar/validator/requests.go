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

// BookingsRequest covers the dashboard date-range bookings query.
type BookingsRequest struct {
	Username      string `validate:"required,min=1,max=50"`
	Slug          string `validate:"required,min=1,max=100"`
	StartDate     string `validate:"required,datetime=2006-01-02"`
	EndDate       string `validate:"required,datetime=2006-01-02"`
	EventOptionID string `validate:"omitempty,mongodb"`
}

// WeekBookingsRequest covers the dashboard week view query.
type WeekBookingsRequest struct {
	Username      string `validate:"required,min=1,max=50"`
	Slug          string `validate:"required,min=1,max=100"`
	Date          string `validate:"required,datetime=2006-01-02"`
	EventOptionID string `validate:"omitempty,mongodb"`
	WeekStart     string `validate:"omitempty,oneof=sunday monday"`
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
			message = fmt.Sprintf("%s must be in YYYY-MM-DD format", err.Field())
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
