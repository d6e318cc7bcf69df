package service

import (
	"github.com/samuelpalacioss/cue/pkg/model"
	"github.com/samuelpalacioss/cue/pkg/timeutil"
)

// ruleScope orders rule ownership from most to least specific. Each scope
// resolves independently (date-specific beats recurring within the scope)
// and the scope results are unioned.
type ruleScope int

const (
	scopeEvent ruleScope = iota
	scopeUser
	scopeOrganization
	scopeCount
)

func scopeOf(rule *model.AvailabilityRule) ruleScope {
	switch {
	case rule.EventID != "":
		return scopeEvent
	case rule.UserID != "":
		return scopeUser
	default:
		return scopeOrganization
	}
}

// resolveRulesForDate selects the rules applicable to one calendar day.
// Within each scope, rules pinned to the exact date fully replace recurring
// weekday rules; there is no merging. An empty result means the resource is
// closed that day, which is valid input, not an error.
func resolveRulesForDate(rules []*model.AvailabilityRule, date string) ([]*model.AvailabilityRule, error) {
	weekday, err := timeutil.Weekday(date)
	if err != nil {
		return nil, err
	}

	var specific, recurring [scopeCount][]*model.AvailabilityRule
	for _, rule := range rules {
		scope := scopeOf(rule)
		switch {
		case rule.SpecificDate == date:
			specific[scope] = append(specific[scope], rule)
		case rule.Recurring() && string(rule.DayOfWeek) == weekday:
			recurring[scope] = append(recurring[scope], rule)
		}
	}

	var resolved []*model.AvailabilityRule
	for scope := scopeEvent; scope < scopeCount; scope++ {
		if len(specific[scope]) > 0 {
			resolved = append(resolved, specific[scope]...)
			continue
		}
		resolved = append(resolved, recurring[scope]...)
	}

	return resolved, nil
}
