package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when a write references a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage is returned when the ledger store cannot be read or written.
	ErrStorage = errors.New("storage unavailable")
	// ErrInvalidDecimal is returned when a numeric field is not a decimal number.
	ErrInvalidDecimal = fmt.Errorf("%w: not a decimal number", ErrValidation)

	// Fund errors
	ErrFundNotFound    = fmt.Errorf("%w: fund", ErrNotFound)
	ErrInvalidStatus   = fmt.Errorf("%w: unknown fund status", ErrValidation)
	ErrInvalidFeeValue = fmt.Errorf("%w: entrance fee must be between 0 and 100", ErrValidation)

	// Investment errors
	ErrInvalidInvestmentType = fmt.Errorf("%w: type must be deposit or redeem", ErrValidation)
	ErrDuplicateTxHash       = errors.New("transaction hash already recorded")
)
