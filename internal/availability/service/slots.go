package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/samuelpalacioss/cue/pkg/model"
	"github.com/samuelpalacioss/cue/pkg/timeutil"
)

// generateTimeSlots expands one open-hours window into fixed-length,
// non-overlapping candidate slots. A window shorter than one duration unit
// yields zero slots; no partial slot is ever emitted. Times stay wall-clock
// strings, so generation is timezone-agnostic.
func generateTimeSlots(startTime, endTime string, durationMinutes int) ([]model.CandidateSlot, error) {
	startMinutes, err := timeutil.ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	endMinutes, err := timeutil.ParseClock(endTime)
	if err != nil {
		return nil, err
	}

	var slots []model.CandidateSlot
	for current := startMinutes; current+durationMinutes <= endMinutes; current += durationMinutes {
		slots = append(slots, model.CandidateSlot{
			Start: timeutil.FormatMinutes(current),
			End:   timeutil.FormatMinutes(current + durationMinutes),
		})
	}

	return slots, nil
}

// slotCache memoizes slot generation by open-hours shape within one
// top-level query. Days sharing identical windows are common across a
// month, so re-walking the same window 28-31 times is wasted work. The
// cache is allocated per call and never shared across invocations.
type slotCache struct {
	entries map[string][]model.CandidateSlot
}

func newSlotCache() *slotCache {
	return &slotCache{entries: make(map[string][]model.CandidateSlot)}
}

func cacheKey(rules []*model.AvailabilityRule, durationMinutes int) string {
	windows := make([]string, len(rules))
	for i, rule := range rules {
		windows[i] = rule.Window()
	}
	sort.Strings(windows)
	return strings.Join(windows, "|") + "|" + strconv.Itoa(durationMinutes)
}

func (c *slotCache) slotsFor(rules []*model.AvailabilityRule, durationMinutes int) ([]model.CandidateSlot, error) {
	key := cacheKey(rules, durationMinutes)
	if cached, ok := c.entries[key]; ok {
		return cached, nil
	}

	var slots []model.CandidateSlot
	for _, rule := range rules {
		generated, err := generateTimeSlots(rule.StartTime, rule.EndTime, durationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, generated...)
	}

	c.entries[key] = slots
	return slots, nil
}
