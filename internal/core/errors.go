package core

import "errors"

// ErrEmptyInput is returned when an analysis request carries no text.
var ErrEmptyInput = errors.New("empty analysis input")
