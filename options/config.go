package options

import (
	"fmt"

	"github.com/alextanhongpin/address/analysis"
	"github.com/alextanhongpin/address/sets"
	"github.com/alextanhongpin/address/tlds"
	"gopkg.in/yaml.v3"
)

// Config is the untyped form of Options, as decoded from YAML or JSON.
// Unset fields keep their defaults.
//
// TLDs accepts:
//
//	nil, true             the built-in allow list
//	false                 no TLD filtering
//	{allow: true}         the built-in allow list
//	{allow: <set>}        only the listed TLDs
//	{deny: <set>}         every TLD except the listed ones
//
// A set is a *sets.Set[string], a map[string]struct{}, or a map whose values
// are all null or true, e.g. {com: true} or a YAML set (? com). Lists are
// rejected, since duplicated or ordered entries hint at a mistake.
type Config struct {
	AllowUnicode        *bool `json:"allowUnicode,omitempty" yaml:"allowUnicode,omitempty"`
	AllowFullyQualified *bool `json:"allowFullyQualified,omitempty" yaml:"allowFullyQualified,omitempty"`
	AllowUnderscore     *bool `json:"allowUnderscore,omitempty" yaml:"allowUnderscore,omitempty"`
	IgnoreLength        *bool `json:"ignoreLength,omitempty" yaml:"ignoreLength,omitempty"`
	MinDomainSegments   *uint `json:"minDomainSegments,omitempty" yaml:"minDomainSegments,omitempty"`
	MaxDomainSegments   *uint `json:"maxDomainSegments,omitempty" yaml:"maxDomainSegments,omitempty"`
	TLDs                any   `json:"tlds,omitempty" yaml:"tlds,omitempty"`
}

// TLDConfig is a typed alternative to a map for Config.TLDs.
type TLDConfig struct {
	Allow any `json:"allow,omitempty" yaml:"allow,omitempty"`
	Deny  any `json:"deny,omitempty" yaml:"deny,omitempty"`
}

// Load decodes a YAML or JSON document into Options.
func Load(b []byte) (*Options, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("options: decode: %w", err)
	}

	return Parse(cfg)
}

// MustParse is like Parse but panics on malformed configuration.
func MustParse(cfg Config) *Options {
	o, err := Parse(cfg)
	if err != nil {
		panic(err)
	}

	return o
}

// Parse validates cfg and returns the normalized Options.
// Errors are usage faults wrapping the analysis.ErrTLDs* sentinels.
func Parse(cfg Config) (*Options, error) {
	o := defaults

	if cfg.AllowUnicode != nil {
		o.AllowUnicode = *cfg.AllowUnicode
	}
	if cfg.AllowFullyQualified != nil {
		o.AllowFullyQualified = *cfg.AllowFullyQualified
	}
	if cfg.AllowUnderscore != nil {
		o.AllowUnderscore = *cfg.AllowUnderscore
	}
	if cfg.IgnoreLength != nil {
		o.IgnoreLength = *cfg.IgnoreLength
	}
	if cfg.MinDomainSegments != nil {
		o.MinDomainSegments = int(*cfg.MinDomainSegments)
	}
	if cfg.MaxDomainSegments != nil {
		o.MaxDomainSegments = int(*cfg.MaxDomainSegments)
	}

	f, err := ParseTLDs(cfg.TLDs)
	if err != nil {
		return nil, err
	}
	o.TLDs = f

	return &o, nil
}

// ParseTLDs validates the shape of a raw TLD configuration.
func ParseTLDs(v any) (tlds.Filter, error) {
	switch t := v.(type) {
	case nil:
		return tlds.Default(), nil
	case bool:
		if t {
			return tlds.Default(), nil
		}
		return tlds.Disabled(), nil
	case tlds.Filter:
		return t, nil
	case *tlds.Filter:
		if t == nil {
			return tlds.Default(), nil
		}
		return *t, nil
	case TLDConfig:
		return parseLists(t.Allow, t.Deny)
	case *TLDConfig:
		if t == nil {
			return tlds.Default(), nil
		}
		return parseLists(t.Allow, t.Deny)
	case map[string]any:
		return parseLists(t["allow"], t["deny"])
	case []any, []string:
		// A bare list is read as a misplaced allow set.
		return tlds.Filter{}, fmt.Errorf("%w: got %T", analysis.ErrTLDsAllowSet, v)
	default:
		return tlds.Filter{}, fmt.Errorf("%w: got %T", analysis.ErrTLDsBoolObj, v)
	}
}

func parseLists(allow, deny any) (tlds.Filter, error) {
	if isSet(deny) {
		s, ok := toSet(deny)
		if !ok {
			return tlds.Filter{}, fmt.Errorf("%w: got %T", analysis.ErrTLDsDenySet, deny)
		}

		if isSet(allow) {
			return tlds.Filter{}, analysis.ErrTLDsAllow
		}

		return tlds.DenySet(s), nil
	}

	if allow == true {
		return tlds.Default(), nil
	}

	s, ok := toSet(allow)
	if !ok {
		return tlds.Filter{}, fmt.Errorf("%w: got %T", analysis.ErrTLDsAllowSet, allow)
	}

	return tlds.AllowSet(s), nil
}

// isSet reports whether a list option was given at all. Only nil and false
// count as absent.
func isSet(v any) bool {
	return v != nil && v != false
}

func toSet(v any) (*sets.Set[string], bool) {
	switch t := v.(type) {
	case *sets.Set[string]:
		return t, t != nil
	case sets.Set[string]:
		return &t, true
	case map[string]struct{}:
		return sets.FromMap(t), true
	case map[string]bool:
		for _, ok := range t {
			if !ok {
				return nil, false
			}
		}
		return sets.FromMap(t), true
	case map[string]any:
		for _, e := range t {
			if e != nil && e != true {
				return nil, false
			}
		}
		return sets.FromMap(t), true
	default:
		return nil, false
	}
}
