package chart

import "errors"

// ErrInvalidLocation is returned for coordinates outside their ranges.
var ErrInvalidLocation = errors.New("invalid location")

// ErrNeedsLocation is returned when true solar time is requested without
// an observer longitude.
var ErrNeedsLocation = errors.New("true solar time requires a location")
