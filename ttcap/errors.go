package ttcap

import "errors"

// Returned when a capability is unknown or its value has the wrong
// type ("illegal font cap").
var ErrBadFontPath = errors.New("ttcap: illegal font cap")

// Returned when a capability value violates a constraint, like a
// non-positive scale factor.
var ErrBadFontName = errors.New("ttcap: invalid capability value")
