package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alextanhongpin/address/domain"
	"github.com/alextanhongpin/address/email"
	"github.com/alextanhongpin/address/options"
	playground "github.com/go-playground/validator/v10"
)

const (
	DomainTag  = "domain"
	AddressTag = "address"
)

var _ Validator[any] = (*StructValidator)(nil)

// StructValidator checks struct fields with go-playground/validator tags.
// Fields tagged domain or address run through the analyzers with the options
// given to Struct; the built-in tags (required, omitempty, ...) keep working.
// Field names follow the json tag when present.
type StructValidator struct {
	validate *playground.Validate
	opts     *options.Options
}

func Struct(opts ...options.Option) *StructValidator {
	sv := &StructValidator{
		validate: playground.New(),
		opts:     options.New(opts...),
	}
	sv.validate.RegisterTagNameFunc(jsonName)
	sv.register(DomainTag, func(s string) bool {
		return domain.AnalyzeOptions(s, sv.opts) == nil
	})
	sv.register(AddressTag, func(s string) bool {
		return email.AnalyzeOptions(s, sv.opts) == nil
	})

	return sv
}

func (sv *StructValidator) register(tag string, valid func(string) bool) {
	err := sv.validate.RegisterValidation(tag, func(fl playground.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}

		return valid(field.String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate returns Errors keyed by field, nil when v is valid, or the usage
// error from go-playground/validator when v is not a struct.
func (sv *StructValidator) Validate(v any) error {
	fes, err := sv.Fields(v)
	if err != nil {
		return err
	}

	return NewErrors(fes...)
}

// Fields returns one FieldError per failed field. Failures of the domain and
// address tags carry the *analysis.Result, so Codes can read them.
func (sv *StructValidator) Fields(v any) ([]FieldError, error) {
	err := sv.validate.Struct(v)
	if err == nil {
		return nil, nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	fes := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fes[i] = Field(fe.Field(), sv.cause(fe))
	}

	return fes, nil
}

func (sv *StructValidator) cause(fe playground.FieldError) error {
	s, ok := fe.Value().(string)
	if !ok {
		return fe
	}

	switch fe.Tag() {
	case DomainTag:
		if res := domain.AnalyzeOptions(s, sv.opts); res != nil {
			return res
		}
	case AddressTag:
		if res := email.AnalyzeOptions(s, sv.opts); res != nil {
			return res
		}
	}

	return fe
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}
