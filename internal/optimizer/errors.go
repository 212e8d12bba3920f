// internal/optimizer/errors.go
package optimizer

import "errors"

// ErrInvalidInput marks requests rejected before any allocation work:
// unknown category keys, unknown card names, negative spend.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoCardsAvailable is returned when the card selection is empty.
var ErrNoCardsAvailable = errors.New("no cards available")
