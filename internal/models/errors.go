package models

import "errors"

// ErrHoldingNotFound is returned when a holding id does not exist in the
// stored list.
var ErrHoldingNotFound = errors.New("holding not found")
