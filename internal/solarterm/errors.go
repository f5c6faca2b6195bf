package solarterm

import "errors"

// ErrUnknownTerm is returned when a term name or index is not one of the 24.
var ErrUnknownTerm = errors.New("unknown solar term")

// ErrNotConverged is returned when the linear-correction solver exhausts
// its iteration budget without meeting tolerance.
var ErrNotConverged = errors.New("solar longitude did not converge")

// ErrNoBracket is returned when the bisection window does not straddle the
// target longitude.
var ErrNoBracket = errors.New("target longitude not bracketed")
