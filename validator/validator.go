// Package validator builds reusable string validators for form fields that
// hold a domain name or an email address.
//
// A validator is assembled either with the builder methods or from a compact
// expression:
//
//	validator.StringExpr("optional,email,unicode=false,allow_tlds=com org")
//
// Failures from the domain and email rules are *analysis.Result values, so the
// caller can branch on the stable code.
package validator

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/alextanhongpin/address/domain"
	"github.com/alextanhongpin/address/email"
	"github.com/alextanhongpin/address/options"
	"github.com/alextanhongpin/address/tlds"
)

var ErrEmpty = errors.New("must not be empty")

type Validator[T any] interface {
	Validate(T) error
}

var _ Validator[string] = (*StringValidator)(nil)

type ParserFunc[T any] func(params string) func(T) error

type FuncMap[T any] map[string]ParserFunc[T]

// StringExpr parses a comma separated expression into a StringValidator.
// Keys from the FuncMaps take precedence over the built-in ones. An unknown
// key or a malformed value panics.
func StringExpr(expr string, fms ...FuncMap[string]) *StringValidator {
	sv := String()
	for _, fm := range fms {
		sv = sv.FuncMap(fm)
	}

	return sv.Parse(expr)
}

// rule receives the options resolved once per Validate call.
type rule func(s string, o *options.Options) error

type StringValidator struct {
	optional bool
	fns      []rule
	fm       FuncMap[string]
	opts     []options.Option
}

func String() *StringValidator {
	return &StringValidator{
		fm: make(FuncMap[string]),
	}
}

// Parse appends the rules in exprs. Option keys apply to every domain and
// email rule of the validator regardless of their position.
func (sv *StringValidator) Parse(exprs string) *StringValidator {
	for _, expr := range strings.Split(exprs, ",") {
		k, v, _ := strings.Cut(expr, "=")

		// Custom FuncMap takes precedence.
		if fn, ok := sv.fm[k]; ok {
			sv = sv.Func(fn(v))

			continue
		}

		switch k {
		case "optional":
			sv = sv.Optional()
		case "domain":
			sv = sv.Domain()
		case "email":
			sv = sv.Email()
		case "ends_with":
			sv = sv.EndsWith(v)
		case "unicode":
			sv = sv.With(options.WithAllowUnicode(toBool(v)))
		case "min_segments":
			sv = sv.With(options.WithMinDomainSegments(toInt(v)))
		case "max_segments":
			sv = sv.With(options.WithMaxDomainSegments(toInt(v)))
		case "fqdn":
			sv = sv.With(options.WithAllowFullyQualified(true))
		case "underscore":
			sv = sv.With(options.WithAllowUnderscore(true))
		case "ignore_length":
			sv = sv.With(options.WithIgnoreLength(true))
		case "allow_tlds":
			sv = sv.With(options.WithTLDs(tlds.Allow(strings.Fields(v)...)))
		case "deny_tlds":
			sv = sv.With(options.WithTLDs(tlds.Deny(strings.Fields(v)...)))
		case "tlds":
			if toBool(v) {
				sv = sv.With(options.WithTLDs(tlds.Default()))
			} else {
				sv = sv.With(options.WithTLDs(tlds.Disabled()))
			}
		default:
			panic(fmt.Sprintf("unknown expression %q", expr))
		}
	}

	return sv
}

// With sets analyzer options shared by the Domain and Email rules.
func (sv *StringValidator) With(opts ...options.Option) *StringValidator {
	sv.opts = append(sv.opts, opts...)

	return sv
}

// Options returns the analyzer options the rules run with.
func (sv *StringValidator) Options() *options.Options {
	return options.New(sv.opts...)
}

func (sv *StringValidator) Domain(opts ...options.Option) *StringValidator {
	sv.fns = append(sv.fns, func(s string, o *options.Options) error {
		if res := domain.AnalyzeOptions(s, o.Apply(opts...)); res != nil {
			return res
		}
		return nil
	})

	return sv
}

func (sv *StringValidator) Email(opts ...options.Option) *StringValidator {
	sv.fns = append(sv.fns, func(s string, o *options.Options) error {
		if res := email.AnalyzeOptions(s, o.Apply(opts...)); res != nil {
			return res
		}
		return nil
	})

	return sv
}

func (sv *StringValidator) EndsWith(suffix string) *StringValidator {
	sv.fns = append(sv.fns, func(s string, _ *options.Options) error {
		if !strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix)) {
			return fmt.Errorf("must end with %q", suffix)
		}
		return nil
	})

	return sv
}

func (sv *StringValidator) Optional() *StringValidator {
	sv.optional = true

	return sv
}

func (sv *StringValidator) Func(fn func(string) error) *StringValidator {
	return sv.Funcs(fn)
}

func (sv *StringValidator) Funcs(fns ...func(string) error) *StringValidator {
	for _, fn := range fns {
		fn := fn
		sv.fns = append(sv.fns, func(s string, _ *options.Options) error {
			return fn(s)
		})
	}

	return sv
}

func (sv *StringValidator) FuncMap(fm FuncMap[string]) *StringValidator {
	for k, fn := range fm {
		sv.fm[k] = fn
	}

	return sv
}

// Clone returns a copy that can be extended without affecting sv.
func (sv *StringValidator) Clone() *StringValidator {
	c := &StringValidator{
		optional: sv.optional,
		fns:      slices.Clone(sv.fns),
		fm:       make(FuncMap[string], len(sv.fm)),
		opts:     slices.Clone(sv.opts),
	}
	for k, fn := range sv.fm {
		c.fm[k] = fn
	}

	return c
}

// Validate runs the rules in order and returns the first failure. An empty
// string passes an optional validator. Otherwise it is handed to the rules,
// which report it with their own code, or fails with ErrEmpty when there are
// none.
func (sv *StringValidator) Validate(s string) error {
	if s == "" {
		if sv.optional {
			return nil
		}

		if len(sv.fns) == 0 {
			return ErrEmpty
		}
	}

	o := sv.Options()
	for _, fn := range sv.fns {
		if err := fn(s, o); err != nil {
			return err
		}
	}

	return nil
}

func toInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}

	return n
}

func toBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		panic(err)
	}

	return b
}
