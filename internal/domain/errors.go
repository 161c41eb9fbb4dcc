package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("caller lacks branch or department scope for this operation")
	ErrNotFound     = errors.New("record not found")
	// ErrDuplicateEntry is returned when a ledger posting with the same entry
	// key already exists; callers treat it as already-posted.
	ErrDuplicateEntry = errors.New("ledger entry already posted")
)

// ValidationError rejects malformed input before any write. Field names the
// offending input so the presentation layer can point at it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports that an inventory item is already promised to another
// booking for an overlapping date range.
type ConflictError struct {
	InventoryItemID int32
	ItemLabel       string
	BlockingBooking int32
}

func (e *ConflictError) Error() string {
	label := e.ItemLabel
	if label == "" {
		label = fmt.Sprintf("item %d", e.InventoryItemID)
	}
	return fmt.Sprintf("%s is already booked for this period (booking %d)", label, e.BlockingBooking)
}

// IntegrityError wraps a storage-layer failure (unique-constraint violation,
// racing reservation rejected by the backstop). Retryable by the caller; the
// core does not retry automatically.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: storage integrity failure: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
