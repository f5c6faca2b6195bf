package astro

import "errors"

// ErrUnknownBody is returned when a body name or identifier is not in the
// supported set.
var ErrUnknownBody = errors.New("unknown body")

// ErrNotConverged is returned when an iterative search exhausts its
// iteration budget before meeting tolerance.
var ErrNotConverged = errors.New("iteration did not converge")

// ErrUnknownAyanamsa is returned for an unrecognized ayanamsa mode name.
var ErrUnknownAyanamsa = errors.New("unknown ayanamsa")
