// Package domain validates domain names against the RFC 1035 label syntax.
//
// Internationalized names are normalized to NFC and converted to their
// punycode form before the label checks run, so a Unicode TLD is accepted
// when its xn-- form is permitted by the TLD filter.
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alextanhongpin/address/analysis"
	"github.com/alextanhongpin/address/internal"
	"github.com/alextanhongpin/address/options"
	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength is the longest domain accepted, in UTF-16 code units.
	MaxLength = 256

	// MaxSegmentLength is the longest label accepted, RFC 1035 section 2.3.4.
	MaxSegmentLength = 63
)

// https://tools.ietf.org/html/rfc1035 section 2.3.1
var (
	segmentRx = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
	tldRx     = regexp.MustCompile(`^[a-zA-Z](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
)

// Shared by calls without options. Never mutated.
var defaults = options.New()

// UTS #46 processing as done by browsers for URL hosts: nontransitional,
// no STD3 restrictions and no DNS length limits, since the label checks
// below report those with their own codes.
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
	idna.CheckJoiners(true),
	idna.BidiRule(),
	idna.VerifyDNSLength(false),
)

// Analyze validates domain with the given options applied over the defaults.
// It returns nil when the domain is valid.
func Analyze(domain string, opts ...options.Option) *analysis.Result {
	o := defaults
	if len(opts) > 0 {
		o = options.New(opts...)
	}

	return AnalyzeOptions(domain, o)
}

// IsValid reports whether domain is valid.
func IsValid(domain string, opts ...options.Option) bool {
	return Analyze(domain, opts...) == nil
}

// AnalyzeValue is Analyze for untyped input, e.g. decoded JSON. A value that
// is not a string is a usage fault and is returned as an error wrapping
// analysis.ErrDomainNotString.
func AnalyzeValue(v any, opts ...options.Option) (*analysis.Result, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", analysis.ErrDomainNotString, v)
	}

	return Analyze(s, opts...), nil
}

// AnalyzeOptions validates domain with o. A nil o means the defaults.
// Build o with options.New: the zero Options disallows Unicode and has no
// TLD filter.
func AnalyzeOptions(domain string, o *options.Options) *analysis.Result {
	if o == nil {
		o = defaults
	}

	if domain == "" {
		return analysis.New(analysis.DomainNonEmptyString)
	}

	if internal.UTF16Len(domain) > MaxLength {
		return analysis.New(analysis.DomainTooLong)
	}

	if !internal.IsASCII(domain) {
		if !o.AllowUnicode {
			return analysis.New(analysis.DomainUnicode)
		}

		domain = norm.NFC.String(domain)

		// Checked before idna, which maps invalid bytes to U+FFFD.
		if !utf8.ValidString(domain) {
			return analysis.New(analysis.DomainInvalidChars)
		}
	}

	if internal.HasControl(domain) {
		return analysis.New(analysis.DomainInvalidChars)
	}

	domain = punycode(domain)

	if o.AllowFullyQualified {
		domain = strings.TrimSuffix(domain, ".")
	}

	segments := strings.Split(domain, ".")
	if len(segments) < o.MinSegments() {
		return analysis.New(analysis.DomainSegment)
	}

	if o.MaxDomainSegments > 0 && len(segments) > o.MaxDomainSegments {
		return analysis.New(analysis.DomainSegment)
	}

	if !o.TLDs.Permits(segments[len(segments)-1]) {
		return analysis.New(analysis.DomainForbiddenTLD)
	}

	last := len(segments) - 1
	for i, segment := range segments {
		if segment == "" {
			return analysis.New(analysis.DomainEmptySegment)
		}

		if internal.UTF16Len(segment) > MaxSegmentLength {
			return analysis.New(analysis.DomainLongSegment)
		}

		if i < last {
			if !validSegment(segment, o.AllowUnderscore) {
				return analysis.New(analysis.DomainInvalidChars)
			}
		} else if !tldRx.MatchString(segment) {
			return analysis.New(analysis.DomainInvalidTLD)
		}
	}

	return nil
}

func validSegment(segment string, allowUnderscore bool) bool {
	if allowUnderscore {
		segment = strings.TrimPrefix(segment, "_")
	}

	return segmentRx.MatchString(segment)
}

// ToASCII returns the form of domain the label checks run against: NFC
// normalized, then converted to punycode. ASCII input is returned as is, and
// so is input that is not valid UTF-8 or cannot be converted.
func ToASCII(domain string) string {
	if internal.IsASCII(domain) || !utf8.ValidString(domain) {
		return domain
	}

	return punycode(norm.NFC.String(domain))
}

func punycode(domain string) string {
	if internal.IsASCII(domain) {
		return domain
	}

	s, err := profile.ToASCII(domain)
	if err != nil {
		return domain
	}

	return s
}
