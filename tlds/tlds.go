// Package tlds holds the top-level-domain filter applied to the last label of
// a domain name.
//
// A Filter is either an allow list, a deny list or disabled; never both
// lists at once. The built-in allow list is the IANA root zone list embedded
// at build time and parsed once at package init.
package tlds

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alextanhongpin/address/sets"
)

var (
	//go:embed tlds-alpha-by-domain.txt
	list []byte

	labelRx    = regexp.MustCompile(`^[a-z0-9-]+$`)
	defaultSet = mustParse(list)
)

func mustParse(b []byte) *sets.Set[string] {
	s, err := Parse(bytes.NewReader(b))
	if err != nil {
		panic(err)
	}

	return s
}

// Parse reads a TLD list in the IANA tlds-alpha-by-domain.txt format: one
// label per line, lines starting with # are comments. Labels are lowercased.
func Parse(r io.Reader) (*sets.Set[string], error) {
	var (
		s       = sets.New[string]()
		version string
		n       int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		n++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if v, ok := strings.CutPrefix(line, "# Version "); ok && version == "" {
				version, _, _ = strings.Cut(v, ",")
			}
			continue
		}

		label := strings.ToLower(line)
		if !labelRx.MatchString(label) {
			return nil, fmt.Errorf("tlds: line %d: invalid label %q", n, line)
		}

		s.Add(label)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("tlds: read list: %w", err)
	}

	slog.Debug("tlds: parsed list",
		slog.String("version", version),
		slog.Int("count", s.Len()),
	)

	return s, nil
}

// Kind tells how a Filter treats its labels.
type Kind int

const (
	KindDisabled Kind = iota
	KindAllow
	KindDeny
)

func (k Kind) String() string {
	switch k {
	case KindAllow:
		return "allow"
	case KindDeny:
		return "deny"
	default:
		return "disabled"
	}
}

// Filter restricts which TLDs a domain may end with.
// The zero value is a disabled filter.
type Filter struct {
	kind Kind
	set  *sets.Set[string]
}

// Default returns the allow filter backed by the built-in IANA list.
// The list is shared and never mutated.
func Default() Filter {
	return Filter{kind: KindAllow, set: defaultSet}
}

// DefaultExcept returns an allow filter with the built-in list minus labels.
func DefaultExcept(labels ...string) Filter {
	return Filter{kind: KindAllow, set: defaultSet.Difference(lower(labels))}
}

// Allow returns a filter that only permits the given labels.
// An empty allow list forbids every TLD.
func Allow(labels ...string) Filter {
	return Filter{kind: KindAllow, set: lower(labels)}
}

// AllowSet is like Allow, but takes a set. The set is copied.
func AllowSet(s *sets.Set[string]) Filter {
	return Filter{kind: KindAllow, set: s.Map(strings.ToLower)}
}

// Deny returns a filter that forbids the given labels.
func Deny(labels ...string) Filter {
	return Filter{kind: KindDeny, set: lower(labels)}
}

// DenySet is like Deny, but takes a set. The set is copied.
func DenySet(s *sets.Set[string]) Filter {
	return Filter{kind: KindDeny, set: s.Map(strings.ToLower)}
}

// Disabled returns a filter that permits every TLD.
func Disabled() Filter {
	return Filter{}
}

func lower(labels []string) *sets.Set[string] {
	s := sets.New[string]()
	for _, l := range labels {
		s.Add(strings.ToLower(l))
	}

	return s
}

func (f Filter) Kind() Kind {
	return f.kind
}

// Permits reports whether tld passes the filter. The comparison is case
// insensitive.
func (f Filter) Permits(tld string) bool {
	switch f.kind {
	case KindAllow:
		return f.set.Has(strings.ToLower(tld))
	case KindDeny:
		return !f.set.Has(strings.ToLower(tld))
	default:
		return true
	}
}

// Has reports whether the label is listed, regardless of the kind.
func (f Filter) Has(label string) bool {
	return f.set.Has(strings.ToLower(label))
}

// Len returns the number of listed labels.
func (f Filter) Len() int {
	return f.set.Len()
}

// Labels returns the listed labels, sorted.
func (f Filter) Labels() []string {
	return f.set.All()
}

func (f Filter) String() string {
	if f.kind == KindDisabled {
		return f.kind.String()
	}

	return fmt.Sprintf("%s(%d)", f.kind, f.set.Len())
}
