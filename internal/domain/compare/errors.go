package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/horsepower/internal/domain/model"
)

// Sentinel kinds for comparison errors.
var (
	ErrEmptyGroup        = errors.New("no data found for the specified group")
	ErrUnknownGroupBy    = errors.New("unknown group-by field")
	ErrIncompleteSubject = errors.New("subject inputs incomplete")
)

// IncompleteError carries the inputs a rejected subject is missing.
type IncompleteError struct {
	Validation model.Validation
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIncompleteSubject, strings.Join(e.Validation.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncompleteSubject }

// CheckSubject returns an *IncompleteError when s is missing any input.
func CheckSubject(s model.Subject) error {
	v := model.Validate(s)
	if v.Complete() {
		return nil
	}
	return &IncompleteError{Validation: v}
}
