package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/alextanhongpin/address/analysis"
)

type FieldError struct {
	Field string
	Error error
}

func Field(field string, err error) FieldError {
	return FieldError{Field: field, Error: err}
}

// Errors maps a field name to its failure message.
type Errors map[string]string

// Error lists the failures sorted by field.
func (ve Errors) Error() string {
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	errs := make([]string, len(fields))
	for i, field := range fields {
		errs[i] = fmt.Sprintf("%s: %s", field, ve[field])
	}

	return strings.Join(errs, "\n")
}

// NewErrors collects the failed fields, or returns nil when none failed.
func NewErrors(fes ...FieldError) error {
	ve := make(Errors)
	for _, fe := range fes {
		if fe.Error == nil {
			continue
		}
		ve[fe.Field] = fe.Error.Error()
	}

	if len(ve) == 0 {
		return nil
	}

	return ve
}

// Codes returns the analysis code of each field that failed a domain or email
// rule. Fields that failed a custom rule are left out.
func Codes(fes ...FieldError) map[string]analysis.Code {
	codes := make(map[string]analysis.Code)
	for _, fe := range fes {
		var res *analysis.Result
		if errors.As(fe.Error, &res) {
			codes[fe.Field] = res.Code
		}
	}

	return codes
}
