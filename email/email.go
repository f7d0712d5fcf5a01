// Package email validates email addresses against the RFC 5321 dot-atom
// syntax, extended with the RFC 6531 UTF8-non-ascii characters.
//
// Quoted strings, comments, folding whitespace and address literals are not
// supported. The domain part is checked by package domain with the same
// options.
package email

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alextanhongpin/address/analysis"
	"github.com/alextanhongpin/address/domain"
	"github.com/alextanhongpin/address/internal"
	"github.com/alextanhongpin/address/options"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength is the longest address accepted in UTF-16 code units,
	// RFC 5321 section 4.5.3.1.3.
	MaxLength = 254

	// MaxLocalLength is the longest local part accepted in UTF-8 bytes,
	// RFC 5321 section 4.5.3.1.1.
	MaxLocalLength = 64
)

// Shared by calls without options. Never mutated.
var defaults = options.New()

// RFC 5321 atext. The underscore is covered by \w.
var atextRx = regexp.MustCompile("^[\\w!#$%&'*+\\-/=?^`{|}~]+$")

// Analyze validates email with the given options applied over the defaults.
// It returns nil when the address is valid.
func Analyze(email string, opts ...options.Option) *analysis.Result {
	o := defaults
	if len(opts) > 0 {
		o = options.New(opts...)
	}

	return AnalyzeOptions(email, o)
}

// IsValid reports whether email is a valid address.
func IsValid(email string, opts ...options.Option) bool {
	return Analyze(email, opts...) == nil
}

// AnalyzeValue is Analyze for untyped input. A value that is not a string is
// a usage fault and is returned as an error wrapping
// analysis.ErrAddressNotString.
func AnalyzeValue(v any, opts ...options.Option) (*analysis.Result, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", analysis.ErrAddressNotString, v)
	}

	return Analyze(s, opts...), nil
}

// AnalyzeOptions validates email with o. A nil o means the defaults.
// Build o with options.New: the zero Options disallows Unicode and has no
// TLD filter.
func AnalyzeOptions(email string, o *options.Options) *analysis.Result {
	if o == nil {
		o = defaults
	}

	if email == "" {
		return analysis.New(analysis.AddressNonEmptyString)
	}

	ascii := internal.IsASCII(email)
	if !ascii {
		if !o.AllowUnicode {
			return analysis.New(analysis.AddressUnicode)
		}

		email = norm.NFC.String(email)
	}

	switch n := strings.Count(email, "@"); {
	case n == 0:
		return analysis.New(analysis.AddressOneAt)
	case n > 1:
		return analysis.New(analysis.AddressManyAt)
	}

	local, dom, _ := strings.Cut(email, "@")
	if local == "" {
		return analysis.New(analysis.LocalNotEmpty)
	}

	if !o.IgnoreLength {
		if internal.UTF16Len(email) > MaxLength {
			return analysis.New(analysis.AddressTooLong)
		}

		if len(local) > MaxLocalLength {
			return analysis.New(analysis.LocalTooLong)
		}
	}

	if res := analyzeLocal(local, ascii); res != nil {
		return res
	}

	return domain.AnalyzeOptions(dom, o)
}

func analyzeLocal(local string, ascii bool) *analysis.Result {
	for _, segment := range strings.Split(local, ".") {
		if segment == "" {
			return analysis.New(analysis.LocalEmptySegment)
		}

		if ascii {
			if !atextRx.MatchString(segment) {
				return analysis.New(analysis.LocalInvalidChars)
			}

			continue
		}

		for i := 0; i < len(segment); {
			_, size := utf8.DecodeRuneInString(segment[i:])
			char := segment[i : i+size]
			i += size

			if atextRx.MatchString(char) || isUTF8NonASCII(char) {
				continue
			}

			return analysis.New(analysis.LocalInvalidChars)
		}
	}

	return nil
}

// isUTF8NonASCII matches the encoded bytes of a single character against
// RFC 6531 UTF8-non-ascii:
//
//	UTF8-2 = %xC2-DF UTF8-tail
//	UTF8-3 = %xE0 %xA0-BF UTF8-tail / %xE1-EC 2( UTF8-tail ) /
//	         %xED %x80-9F UTF8-tail / %xEE-EF 2( UTF8-tail )
//	UTF8-4 = %xF0 %x90-BF 2( UTF8-tail ) / %xF1-F3 3( UTF8-tail ) /
//	         %xF4 %x80-8F 2( UTF8-tail )
func isUTF8NonASCII(b string) bool {
	tail := func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] < 0x80 || s[i] > 0xBF {
				return false
			}
		}
		return true
	}
	in := func(c, lo, hi byte) bool {
		return c >= lo && c <= hi
	}

	switch len(b) {
	case 2:
		return in(b[0], 0xC2, 0xDF) && tail(b[1:])
	case 3:
		switch {
		case b[0] == 0xE0:
			return in(b[1], 0xA0, 0xBF) && tail(b[2:])
		case in(b[0], 0xE1, 0xEC), in(b[0], 0xEE, 0xEF):
			return tail(b[1:])
		case b[0] == 0xED:
			return in(b[1], 0x80, 0x9F) && tail(b[2:])
		}
	case 4:
		switch {
		case b[0] == 0xF0:
			return in(b[1], 0x90, 0xBF) && tail(b[2:])
		case in(b[0], 0xF1, 0xF3):
			return tail(b[1:])
		case b[0] == 0xF4:
			return in(b[1], 0x80, 0x8F) && tail(b[2:])
		}
	}

	return false
}

// Split returns the local and domain parts of an address. ok is false unless
// the address holds exactly one @.
func Split(address string) (local, domain string, ok bool) {
	if strings.Count(address, "@") != 1 {
		return "", "", false
	}

	local, domain, _ = strings.Cut(address, "@")
	return local, domain, true
}

// Normalize trims surrounding whitespace, applies NFC and lowercases the
// domain part. The local part keeps its case.
func Normalize(address string) string {
	address = norm.NFC.String(strings.TrimSpace(address))

	local, dom, ok := Split(address)
	if !ok {
		return address
	}

	return local + "@" + strings.ToLower(dom)
}
