package service

import (
	"testing"

	"github.com/samuelpalacioss/cue/pkg/model"
)

// 2026-01-05 is a Monday.
const mondayDate = "2026-01-05"

func recurringRule(eventID, userID, orgID string, day model.Weekday, start, end string) *model.AvailabilityRule {
	return &model.AvailabilityRule{
		EventID:        eventID,
		UserID:         userID,
		OrganizationID: orgID,
		DayOfWeek:      day,
		StartTime:      start,
		EndTime:        end,
		Timezone:       "UTC",
		IsActive:       true,
	}
}

func dateRule(eventID, userID, orgID, date, start, end string) *model.AvailabilityRule {
	return &model.AvailabilityRule{
		EventID:        eventID,
		UserID:         userID,
		OrganizationID: orgID,
		SpecificDate:   date,
		StartTime:      start,
		EndTime:        end,
		Timezone:       "UTC",
		IsActive:       true,
	}
}

func TestResolveRulesForDate_SpecificReplacesRecurring(t *testing.T) {
	rules := []*model.AvailabilityRule{
		recurringRule("ev1", "", "", model.Monday, "09:00", "17:00"),
		dateRule("ev1", "", "", mondayDate, "10:00", "12:00"),
	}

	resolved, err := resolveRulesForDate(rules, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(resolved))
	}
	if resolved[0].StartTime != "10:00" {
		t.Errorf("expected the date-specific rule to win, got window starting %s", resolved[0].StartTime)
	}
}

func TestResolveRulesForDate_SpecificOnlyReplacesOwnScope(t *testing.T) {
	rules := []*model.AvailabilityRule{
		recurringRule("ev1", "", "", model.Monday, "09:00", "12:00"),
		dateRule("", "user1", "", mondayDate, "14:00", "16:00"),
	}

	resolved, err := resolveRulesForDate(rules, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The user-scope override must not suppress the event-scope recurring rule.
	if len(resolved) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(resolved))
	}
}

func TestResolveRulesForDate_UnionAcrossScopes(t *testing.T) {
	rules := []*model.AvailabilityRule{
		recurringRule("ev1", "", "", model.Monday, "09:00", "12:00"),
		recurringRule("", "user1", "", model.Monday, "13:00", "15:00"),
		recurringRule("", "", "org1", model.Monday, "16:00", "18:00"),
	}

	resolved, err := resolveRulesForDate(rules, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 3 {
		t.Fatalf("expected all three scopes unioned, got %d rules", len(resolved))
	}
}

func TestResolveRulesForDate_WrongWeekdayExcluded(t *testing.T) {
	rules := []*model.AvailabilityRule{
		recurringRule("ev1", "", "", model.Tuesday, "09:00", "17:00"),
	}

	resolved, err := resolveRulesForDate(rules, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 0 {
		t.Errorf("expected no rules for a Tuesday rule on a Monday, got %d", len(resolved))
	}
}

func TestResolveRulesForDate_SpecificDateOtherDayIgnored(t *testing.T) {
	rules := []*model.AvailabilityRule{
		dateRule("ev1", "", "", "2026-01-06", "09:00", "17:00"),
		recurringRule("ev1", "", "", model.Monday, "10:00", "12:00"),
	}

	resolved, err := resolveRulesForDate(rules, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved) != 1 || resolved[0].StartTime != "10:00" {
		t.Errorf("expected only the recurring rule, got %d rules", len(resolved))
	}
}

func TestResolveRulesForDate_EmptyIsValid(t *testing.T) {
	resolved, err := resolveRulesForDate(nil, mondayDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolved) != 0 {
		t.Errorf("expected empty resolution, got %d rules", len(resolved))
	}
}

func TestResolveRulesForDate_BadDate(t *testing.T) {
	if _, err := resolveRulesForDate(nil, "01-05-2026"); err == nil {
		t.Error("expected error for malformed date")
	}
}
