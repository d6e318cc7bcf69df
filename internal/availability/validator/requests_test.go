package validator

import (
	"errors"
	"testing"

	"github.com/samuelpalacioss/cue/pkg/logger"
)

func newTestValidator() *QueryValidator {
	log := logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Service: "validator-test",
	})
	return NewQueryValidator(log)
}

func TestValidateDateSlotsRequest(t *testing.T) {
	qv := newTestValidator()

	tests := []struct {
		name    string
		req     DateSlotsRequest
		wantErr bool
	}{
		{
			name: "valid minimal request",
			req: DateSlotsRequest{
				Username: "alice",
				Slug:     "intro-call",
				Date:     "2026-01-05",
			},
		},
		{
			name: "valid full request",
			req: DateSlotsRequest{
				Username:      "alice",
				Slug:          "intro-call",
				Date:          "2026-01-05",
				EventOptionID: "507f1f77bcf86cd799439011",
				Timezone:      "America/New_York",
				TimeFormat:    "12h",
			},
		},
		{
			name: "missing date",
			req: DateSlotsRequest{
				Username: "alice",
				Slug:     "intro-call",
			},
			wantErr: true,
		},
		{
			name: "malformed date",
			req: DateSlotsRequest{
				Username: "alice",
				Slug:     "intro-call",
				Date:     "05/01/2026",
			},
			wantErr: true,
		},
		{
			name: "bad timezone",
			req: DateSlotsRequest{
				Username: "alice",
				Slug:     "intro-call",
				Date:     "2026-01-05",
				Timezone: "Mars/Olympus",
			},
			wantErr: true,
		},
		{
			name: "bad time format",
			req: DateSlotsRequest{
				Username:   "alice",
				Slug:       "intro-call",
				Date:       "2026-01-05",
				TimeFormat: "48h",
			},
			wantErr: true,
		},
		{
			name: "bad option ID",
			req: DateSlotsRequest{
				Username:      "alice",
				Slug:          "intro-call",
				Date:          "2026-01-05",
				EventOptionID: "not-an-object-id",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := qv.Validate(tt.req)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateMonthAvailabilityRequest(t *testing.T) {
	qv := newTestValidator()

	valid := MonthAvailabilityRequest{
		Username: "alice",
		Slug:     "intro-call",
		Year:     2026,
		Month:    1,
	}
	if err := qv.Validate(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badMonth := valid
	badMonth.Month = 13
	if err := qv.Validate(badMonth); err == nil {
		t.Error("expected error for month 13")
	}

	badYear := valid
	badYear.Year = 1999
	if err := qv.Validate(badYear); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestValidationErrorsAreTranslated(t *testing.T) {
	qv := newTestValidator()

	err := qv.Validate(RangeSlotsRequest{
		Username:  "alice",
		Slug:      "intro-call",
		StartDate: "2026-01-05",
	})
	if err == nil {
		t.Fatal("expected validation error for missing end date")
	}

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(verrs))
	}
	if verrs[0].Field != "EndDate" {
		t.Errorf("expected EndDate, got %s", verrs[0].Field)
	}
}
