package options_test

import (
	"errors"
	"testing"

	"github.com/alextanhongpin/address/analysis"
	"github.com/alextanhongpin/address/options"
	"github.com/alextanhongpin/address/sets"
	"github.com/alextanhongpin/address/tlds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		assert := assert.New(t)

		o := options.New()
		assert.True(o.AllowUnicode)
		assert.False(o.AllowFullyQualified)
		assert.False(o.AllowUnderscore)
		assert.False(o.IgnoreLength)
		assert.Equal(2, o.MinSegments())
		assert.Equal(0, o.MaxDomainSegments)
		assert.Equal(tlds.KindAllow, o.TLDs.Kind())
		assert.Equal(tlds.Default().Len(), o.TLDs.Len())
	})

	t.Run("with options", func(t *testing.T) {
		assert := assert.New(t)

		o := options.New(
			options.WithAllowUnicode(false),
			options.WithAllowFullyQualified(true),
			options.WithAllowUnderscore(true),
			options.WithIgnoreLength(true),
			options.WithMinDomainSegments(1),
			options.WithMaxDomainSegments(3),
			options.WithTLDs(tlds.Disabled()),
		)
		assert.False(o.AllowUnicode)
		assert.True(o.AllowFullyQualified)
		assert.True(o.AllowUnderscore)
		assert.True(o.IgnoreLength)
		assert.Equal(1, o.MinSegments())
		assert.Equal(3, o.MaxDomainSegments)
		assert.Equal(tlds.KindDisabled, o.TLDs.Kind())
	})

	t.Run("does not leak into defaults", func(t *testing.T) {
		options.New(options.WithAllowUnicode(false))
		assert.True(t, options.Default().AllowUnicode)
	})

	t.Run("apply copies", func(t *testing.T) {
		base := options.New(options.WithMinDomainSegments(3))
		o := base.Apply(options.WithMaxDomainSegments(4))
		assert.Equal(t, 3, o.MinSegments())
		assert.Equal(t, 4, o.MaxDomainSegments)
		assert.Equal(t, 0, base.MaxDomainSegments)
	})

	t.Run("non positive minimum falls back", func(t *testing.T) {
		assert.Equal(t, 2, options.New(options.WithMinDomainSegments(0)).MinSegments())
		assert.Equal(t, 2, options.New(options.WithMinDomainSegments(-1)).MinSegments())
	})
}

func TestParseTLDs(t *testing.T) {
	type result struct {
		kind   tlds.Kind
		labels []string
	}

	test := func(name string, raw any, want result) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			f, err := options.ParseTLDs(raw)
			require.NoError(t, err)
			assert.Equal(t, want.kind, f.Kind())
			if want.labels != nil {
				assert.Equal(t, want.labels, f.Labels())
			}
		})
	}

	defaultLabels := tlds.Default().Labels()
	test("nil", nil, result{tlds.KindAllow, defaultLabels})
	test("true", true, result{tlds.KindAllow, defaultLabels})
	test("false", false, result{tlds.KindDisabled, []string{}})
	test("filter", tlds.Deny("com"), result{tlds.KindDeny, []string{"com"}})
	test("allow true", map[string]any{"allow": true}, result{tlds.KindAllow, defaultLabels})
	test("allow set", map[string]any{"allow": sets.New("test")}, result{tlds.KindAllow, []string{"test"}})
	test("allow empty set", map[string]any{"allow": sets.New[string]()}, result{tlds.KindAllow, []string{}})
	test("deny set", map[string]any{"deny": sets.New("test")}, result{tlds.KindDeny, []string{"test"}})
	test("deny with allow false", map[string]any{"deny": sets.New("test"), "allow": false}, result{tlds.KindDeny, []string{"test"}})
	test("deny struct map", map[string]any{"deny": map[string]struct{}{"test": {}}}, result{tlds.KindDeny, []string{"test"}})
	test("allow bool map", map[string]any{"allow": map[string]bool{"COM": true}}, result{tlds.KindAllow, []string{"com"}})
	test("allow yaml set", map[string]any{"allow": map[string]any{"com": nil, "org": true}}, result{tlds.KindAllow, []string{"com", "org"}})
	test("typed config", options.TLDConfig{Deny: sets.New("local")}, result{tlds.KindDeny, []string{"local"}})
	test("typed config pointer", &options.TLDConfig{Allow: true}, result{tlds.KindAllow, defaultLabels})
}

func TestParseTLDsInvalid(t *testing.T) {
	test := func(name string, raw any, want error, msg string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			_, err := options.ParseTLDs(raw)
			assert.ErrorIs(t, err, want)
			assert.True(t, analysis.IsUsage(err))
			assert.EqualError(t, err, msg)
		})
	}

	test("number", 1, analysis.ErrTLDsBoolObj, "Invalid options: tlds must be a boolean or an object: got int")
	test("string", "com", analysis.ErrTLDsBoolObj, "Invalid options: tlds must be a boolean or an object: got string")
	test("allow list", map[string]any{"allow": []any{"test"}}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got []interface {}")
	test("bare list", []any{"com"}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got []interface {}")
	test("bare string list", []string{"com"}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got []string")
	test("allow missing", map[string]any{}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got <nil>")
	test("allow false", map[string]any{"allow": false}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got bool")
	test("allow map with values", map[string]any{"allow": map[string]any{"com": "yes"}}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got map[string]interface {}")
	test("allow bool map with false", map[string]any{"allow": map[string]bool{"com": false}}, analysis.ErrTLDsAllowSet, "Invalid options: tlds.allow must be a set or true: got map[string]bool")
	test("deny list", map[string]any{"deny": []string{"test"}}, analysis.ErrTLDsDenySet, "Invalid options: tlds.deny must be a set: got []string")
	test("deny true", map[string]any{"deny": true}, analysis.ErrTLDsDenySet, "Invalid options: tlds.deny must be a set: got bool")
	test("both", map[string]any{"allow": sets.New[string](), "deny": sets.New[string]()}, analysis.ErrTLDsAllow, "Invalid options: cannot specify both tlds.allow and tlds.deny lists")
	test("both with allow true", options.TLDConfig{Allow: true, Deny: sets.New("com")}, analysis.ErrTLDsAllow, "Invalid options: cannot specify both tlds.allow and tlds.deny lists")
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	yes, one, four := true, uint(1), uint(4)
	o, err := options.Parse(options.Config{
		AllowUnicode:        new(bool),
		AllowFullyQualified: &yes,
		AllowUnderscore:     &yes,
		IgnoreLength:        &yes,
		MinDomainSegments:   &one,
		MaxDomainSegments:   &four,
		TLDs:                false,
	})
	require.NoError(t, err)
	assert.False(o.AllowUnicode)
	assert.True(o.AllowFullyQualified)
	assert.True(o.AllowUnderscore)
	assert.True(o.IgnoreLength)
	assert.Equal(1, o.MinSegments())
	assert.Equal(4, o.MaxDomainSegments)
	assert.Equal(tlds.KindDisabled, o.TLDs.Kind())

	o, err = options.Parse(options.Config{})
	require.NoError(t, err)
	assert.Equal(options.New(), o)
}

func TestMustParse(t *testing.T) {
	assert.Panics(t, func() {
		options.MustParse(options.Config{TLDs: 1})
	})
	assert.NotPanics(t, func() {
		options.MustParse(options.Config{TLDs: true})
	})
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		assert := assert.New(t)

		o, err := options.Load([]byte(`
allowUnicode: false
minDomainSegments: 1
tlds:
  deny:
    ? test
    ? LOCAL
`))
		require.NoError(t, err)
		assert.False(o.AllowUnicode)
		assert.Equal(1, o.MinSegments())
		assert.Equal(tlds.KindDeny, o.TLDs.Kind())
		assert.Equal([]string{"local", "test"}, o.TLDs.Labels())
	})

	t.Run("json", func(t *testing.T) {
		assert := assert.New(t)

		o, err := options.Load([]byte(`{"allowFullyQualified": true, "tlds": {"allow": {"com": true}}}`))
		require.NoError(t, err)
		assert.True(o.AllowFullyQualified)
		assert.Equal([]string{"com"}, o.TLDs.Labels())
	})

	t.Run("disabled", func(t *testing.T) {
		o, err := options.Load([]byte(`tlds: false`))
		require.NoError(t, err)
		assert.Equal(t, tlds.KindDisabled, o.TLDs.Kind())
	})

	t.Run("allow list is rejected", func(t *testing.T) {
		_, err := options.Load([]byte(`tlds: {allow: [com]}`))
		assert.True(t, errors.Is(err, analysis.ErrTLDsAllowSet))
	})

	t.Run("bare list is rejected", func(t *testing.T) {
		_, err := options.Load([]byte(`tlds: [com]`))
		assert.ErrorIs(t, err, analysis.ErrTLDsAllowSet)
		assert.NotErrorIs(t, err, analysis.ErrTLDsBoolObj)
	})

	t.Run("negative segments", func(t *testing.T) {
		_, err := options.Load([]byte(`minDomainSegments: -1`))
		assert.Error(t, err)
		assert.False(t, analysis.IsUsage(err))
	})

	t.Run("bad tlds scalar", func(t *testing.T) {
		_, err := options.Load([]byte(`tlds: 1`))
		assert.ErrorIs(t, err, analysis.ErrTLDsBoolObj)
	})
}
