// Package analysis holds the error vocabulary shared by the domain and email
// analyzers.
//
// A failed analysis is reported as a *Result value, never as a panic. The
// codes are stable across versions, so callers should branch on Code rather
// than on the message text.
package analysis

import (
	_ "embed"
	"fmt"
	"maps"

	"github.com/BurntSushi/toml"
)

// Code is the symbolic key of a catalog message.
type Code string

// Email address failures.
const (
	AddressNonEmptyString Code = "BE_NON_EMPTY_STRING"
	AddressUnicode        Code = "FORBIDDEN_UNICODE"
	AddressManyAt         Code = "AT_CHAR_NEG"
	AddressOneAt          Code = "AT_CHAR_ONE"
	AddressTooLong        Code = "ADDRESS_TOO_LONG"
	LocalNotEmpty         Code = "LOCAL_NOT_EMPTY"
	LocalTooLong          Code = "LOCAL_TOO_LONG"
	LocalEmptySegment     Code = "LOCAL_NOT_EMPTY_DOT"
	LocalInvalidChars     Code = "LOCAL_INVALID_CHARS"
)

// Domain failures.
const (
	DomainNonEmptyString Code = "DOMAIN_NON_EMPTY_STRING"
	DomainTooLong        Code = "DOMAIN_TOO_LONG"
	DomainUnicode        Code = "DOMAIN_INVALID_UNICODE_CHARS"
	DomainInvalidChars   Code = "DOMAIN_INVALID_CHARS"
	DomainInvalidTLD     Code = "DOMAIN_INVALID_TLDS_CHARS"
	DomainSegment        Code = "DOMAIN_SEGMENT"
	DomainForbiddenTLD   Code = "DOMAIN_FORBIDDEN_TLDS"
	DomainEmptySegment   Code = "DOMAIN_EMPTY_SEGMENT"
	DomainLongSegment    Code = "DOMAIN_DOTS_SEGMENT"
)

// Usage faults. These are never returned as a *Result.
const (
	AddressNotString Code = "BE_STRING"
	DomainNotString  Code = "DOMAIN_BE_STRING"
	TLDsBoolObj      Code = "TLDS_BOOL_OBJ"
	TLDsDenySet      Code = "TLDS_DENY_SET"
	TLDsAllow        Code = "TLDS_ALLOW"
	TLDsAllowSet     Code = "TLDS_ALLOW_SET"
)

var (
	//go:embed errors.toml
	catalogBytes []byte
	catalog      = mustLoad(catalogBytes)
)

func mustLoad(b []byte) map[Code]string {
	var m map[string]string
	if err := toml.Unmarshal(b, &m); err != nil {
		panic(fmt.Errorf("analysis: load catalog: %w", err))
	}

	res := make(map[Code]string, len(m))
	for k, v := range m {
		res[Code(k)] = v
	}

	for _, code := range []Code{
		AddressNonEmptyString, AddressUnicode, AddressManyAt, AddressOneAt,
		AddressTooLong, LocalNotEmpty, LocalTooLong, LocalEmptySegment,
		LocalInvalidChars,
		DomainNonEmptyString, DomainTooLong, DomainUnicode, DomainInvalidChars,
		DomainInvalidTLD, DomainSegment, DomainForbiddenTLD, DomainEmptySegment,
		DomainLongSegment,
		AddressNotString, DomainNotString, TLDsBoolObj, TLDsDenySet, TLDsAllow,
		TLDsAllowSet,
	} {
		if _, ok := res[code]; !ok {
			panic(fmt.Sprintf("analysis: missing catalog entry %q", code))
		}
	}

	return res
}

// Result describes why a domain or an address was rejected.
type Result struct {
	Message string `json:"error" yaml:"error"`
	Code    Code   `json:"code" yaml:"code"`
}

// New returns the Result for the given code.
// It panics if the code is not in the catalog.
func New(code Code) *Result {
	msg, ok := catalog[code]
	if !ok {
		panic(fmt.Sprintf("analysis: unknown code %q", code))
	}

	return &Result{Message: msg, Code: code}
}

// Error implements the error interface so that a Result can be returned
// directly by validators.
func (r *Result) Error() string {
	return r.Message
}

// Message returns the catalog message for code.
func Message(code Code) (string, bool) {
	msg, ok := catalog[code]
	return msg, ok
}

// Messages returns a copy of the full catalog.
func Messages() map[Code]string {
	return maps.Clone(catalog)
}
