package validators

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MKhiriev/go-auth-portal/models"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
	ErrInvalidForm     = errors.New("invalid form")
)

// FieldsError reports every failed rule of a form, keyed by field name.
// errors.Is(err, ErrInvalidForm) holds for any *FieldsError.
type FieldsError struct {
	Fields models.FieldErrors
}

func (e *FieldsError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return fmt.Sprintf("%s: %s", ErrInvalidForm, strings.Join(names, ", "))
}

func (e *FieldsError) Is(target error) bool {
	return target == ErrInvalidForm
}

// fieldsErrorOrNil keeps callers from returning a typed nil.
func fieldsErrorOrNil(fields models.FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &FieldsError{Fields: fields}
}

// Messages shared by several validators.
const (
	msgRequired = "This field is required."
)
