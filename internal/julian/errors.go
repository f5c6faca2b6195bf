package julian

import "errors"

// ErrInvalidCivil indicates a civil date/time field outside its calendar range.
var ErrInvalidCivil = errors.New("invalid civil date/time")
