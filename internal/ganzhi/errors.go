package ganzhi

import "errors"

var (
	// ErrInvalidStem indicates a stem index outside [0,10).
	ErrInvalidStem = errors.New("invalid stem")
	// ErrInvalidBranch indicates a branch index outside [0,12).
	ErrInvalidBranch = errors.New("invalid branch")
	// ErrInvalidPillar indicates a stem/branch pair of mismatched parity or
	// unparseable pillar text.
	ErrInvalidPillar = errors.New("invalid pillar")
	// ErrInvalidIndex indicates a sexagenary index outside [0,60).
	ErrInvalidIndex = errors.New("invalid sexagenary index")
)
