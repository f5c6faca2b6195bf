package ninestar

import "errors"

// ErrNoAnchor is returned when a solstice or its jiazi anchor day cannot
// be established.
var ErrNoAnchor = errors.New("no solstice anchor")

// ErrInvalidStar is returned for a star number outside [1,9] or a month
// ordinal outside [1,12].
var ErrInvalidStar = errors.New("invalid star")

// ErrUnknownGender is returned by ParseGender for unrecognized input.
var ErrUnknownGender = errors.New("unknown gender")
