// Package options configures the domain and email analyzers.
//
// Options can be built in code with functional options, or parsed from an
// untyped configuration (YAML, JSON or a Go map) with Parse and Load. Parsing
// validates the shape of the TLD configuration once, so the analyzers only
// ever see a typed tlds.Filter.
package options

import "github.com/alextanhongpin/address/tlds"

// DefaultMinDomainSegments is the number of labels a domain needs when no
// minimum is configured, e.g. example.com.
const DefaultMinDomainSegments = 2

var defaults = Options{
	AllowUnicode:      true,
	MinDomainSegments: DefaultMinDomainSegments,
	TLDs:              tlds.Default(),
}

// Options holds the settings shared by the domain and the email analyzer.
// IgnoreLength only applies to email addresses.
type Options struct {
	AllowUnicode        bool
	AllowFullyQualified bool
	AllowUnderscore     bool
	IgnoreLength        bool

	// MinDomainSegments values below 1 fall back to the default.
	MinDomainSegments int

	// MaxDomainSegments of 0 means no limit.
	MaxDomainSegments int

	TLDs tlds.Filter
}

// Default returns a copy of the default options.
func Default() Options {
	return defaults
}

// New returns the default options with opts applied.
func New(opts ...Option) *Options {
	o := defaults
	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

// Apply returns a copy of o with opts applied.
func (o Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

// MinSegments returns the effective minimum number of labels.
func (o Options) MinSegments() int {
	if o.MinDomainSegments < 1 {
		return DefaultMinDomainSegments
	}

	return o.MinDomainSegments
}

type Option func(*Options)

func WithAllowUnicode(allow bool) Option {
	return func(o *Options) {
		o.AllowUnicode = allow
	}
}

func WithAllowFullyQualified(allow bool) Option {
	return func(o *Options) {
		o.AllowFullyQualified = allow
	}
}

func WithAllowUnderscore(allow bool) Option {
	return func(o *Options) {
		o.AllowUnderscore = allow
	}
}

func WithIgnoreLength(ignore bool) Option {
	return func(o *Options) {
		o.IgnoreLength = ignore
	}
}

func WithMinDomainSegments(n int) Option {
	return func(o *Options) {
		o.MinDomainSegments = n
	}
}

func WithMaxDomainSegments(n int) Option {
	return func(o *Options) {
		o.MaxDomainSegments = n
	}
}

func WithTLDs(f tlds.Filter) Option {
	return func(o *Options) {
		o.TLDs = f
	}
}
