package entities

import "errors"

var (
	// ErrConfiguration marks invalid simulation input: catalog or customer rows,
	// simulation parameters, customer regularity.
	ErrConfiguration = errors.New("configuration error")

	// ErrPrecondition marks a call made out of order, e.g. pricing an order the
	// warehouse never processed.
	ErrPrecondition = errors.New("precondition violated")

	// ErrUnknownMedicine is returned when an order references a medicine the
	// warehouse does not stock.
	ErrUnknownMedicine = errors.New("unknown medicine")
)
