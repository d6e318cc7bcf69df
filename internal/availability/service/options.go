package service

import (
	apperrors "github.com/samuelpalacioss/cue/pkg/errors"
	"github.com/samuelpalacioss/cue/pkg/model"
)

// OptionResolution tags how the duration option was selected, so callers
// acknowledge whether the requested option or the configured default was
// used. There is no silent "first option" fallback.
type OptionResolution int

const (
	OptionFound OptionResolution = iota
	OptionDefaulted
)

func (r OptionResolution) String() string {
	if r == OptionDefaulted {
		return "defaulted"
	}
	return "found"
}

// resolveOption picks the event option for a query. A missing or unknown
// requested ID falls back to the marked default; an event with options but
// no default, or a default with non-positive capacity, is a configuration
// error that aborts the whole query.
func resolveOption(options []*model.EventOption, requestedID string) (*model.EventOption, OptionResolution, error) {
	if len(options) == 0 {
		return nil, OptionFound, apperrors.NotFound("Event options")
	}

	if requestedID != "" {
		for _, opt := range options {
			if opt.ID == requestedID {
				if opt.Capacity <= 0 {
					return nil, OptionFound, apperrors.Configuration("Event option has non-positive capacity")
				}
				return opt, OptionFound, nil
			}
		}
	}

	for _, opt := range options {
		if opt.IsDefault {
			if opt.Capacity <= 0 {
				return nil, OptionDefaulted, apperrors.Configuration("Default event option has non-positive capacity")
			}
			return opt, OptionDefaulted, nil
		}
	}

	return nil, OptionDefaulted, apperrors.Configuration("Event has no default option configured")
}
