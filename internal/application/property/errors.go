package property

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrPropertyNotFound is returned when no listing matches the id.
	ErrPropertyNotFound = errors.New("Property not found or unauthorized")

	// ErrNotOwner is returned when the listing exists but belongs to another
	// user. Handlers must translate it to the exact same response as
	// ErrPropertyNotFound so callers cannot probe which listings exist.
	ErrNotOwner = errors.New("Property not found or unauthorized")

	// ErrDuplicateProperty is returned when the caller-supplied property id
	// already exists. The unique constraint is the only duplicate guard.
	ErrDuplicateProperty = errors.New("Property ID already exists")
)

// Transaction step names used in StepError messages.
const (
	StepLocation     = "location"
	StepListing      = "property listing"
	StepCrops        = "crops"
	StepPrimaryImage = "primary image"
	StepOtherImages  = "other images"
	StepEvent        = "property event"
)

// StepError names the write step that failed inside the listing transaction.
// Any StepError means the whole transaction rolled back.
type StepError struct {
	Step string
	Op   string // "insert", "update" or "replace"
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("Failed to %s %s", e.Op, e.Step)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// isDuplicateErr reports whether err is a unique-constraint violation.
// TranslateError covers the common dialects; the string checks are a
// fallback for drivers that do not implement the translator.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
