package locus

import "errors"

// ErrNoVariable indicates an equation that never mentions the variable and so
// describes no locus.
var ErrNoVariable = errors.New("equation has no variable")
