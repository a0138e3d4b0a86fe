package gen

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/decl"
	"github.com/kominak/ObservableUserDefault/internal/plan"
)

var settingsContext = OwnerContext{
	TypeName:       "Settings",
	Receiver:       "s",
	StoreField:     "store",
	RegistrarField: "registrar",
}

func property(name, baseType, def string, strategy plan.Strategy, optional bool) plan.ResolvedProperty {
	getter, setter := common.AccessorNames(name)

	return plan.ResolvedProperty{
		Owner:          "Settings",
		Name:           name,
		GetterName:     getter,
		SetterName:     setter,
		StoreKey:       name,
		ObservationKey: name,
		Classification: plan.Classification{
			BaseType:     baseType,
			DefaultValue: def,
			Strategy:     strategy,
			Optional:     optional,
		},
	}
}

func classifyPlain(t *testing.T, typeName, def string) plan.Classification {
	t.Helper()

	c, err := plan.Classify(decl.Binding{
		Pattern:     decl.IdentifierPattern{Name: "value1"},
		Type:        decl.PlainType{Name: typeName},
		Initializer: &decl.Expr{Text: def},
	})
	require.NoError(t, err)

	return c
}

func TestSynthesize_DirectWithDefault(t *testing.T) {
	pair, err := Synthesize(property("count", "int", "0", plan.StrategyDirectWithDefault, false), settingsContext)
	require.NoError(t, err)

	assert.Equal(t, heredoc.Doc(`
		// Count returns the persisted count value, or its default when the store holds none.
		func (s *Settings) Count() int {
			s.registrar.Access(s, "count")
			if raw, ok := s.store.Get("count"); ok {
				if value, ok := raw.(int); ok {
					return value
				}
			}

			return 0
		}`), pair.Getter)

	assert.Equal(t, heredoc.Doc(`
		// SetCount persists count.
		func (s *Settings) SetCount(value int) {
			s.registrar.WithMutation(s, "count", func() {
				s.store.Set("count", value)
			})
		}`), pair.Setter)
}

func TestSynthesize_DirectOptional(t *testing.T) {
	pair, err := Synthesize(property("nickname", "string", "nil", plan.StrategyDirectOptional, true), settingsContext)
	require.NoError(t, err)

	assert.Contains(t, pair.Getter, "func (s *Settings) Nickname() *string {")
	assert.Contains(t, pair.Getter, "if value, ok := raw.(string); ok {")
	assert.Contains(t, pair.Getter, "return &value")
	assert.Contains(t, pair.Getter, "return nil")

	assert.Equal(t, heredoc.Doc(`
		// SetNickname persists nickname; nil removes the stored value.
		func (s *Settings) SetNickname(value *string) {
			s.registrar.WithMutation(s, "nickname", func() {
				if value == nil {
					s.store.Delete("nickname")
					return
				}

				s.store.Set("nickname", *value)
			})
		}`), pair.Setter)
}

func TestSynthesize_EncodedWithDefault(t *testing.T) {
	pair, err := Synthesize(property("theme", "Theme", "ThemeLight", plan.StrategyEncodedWithDefault, false), settingsContext)
	require.NoError(t, err)

	assert.Contains(t, pair.Getter, "func (s *Settings) Theme() Theme {")
	assert.Contains(t, pair.Getter, "if value, ok := kvstore.Decode[Theme](raw); ok {")
	assert.Contains(t, pair.Getter, "return ThemeLight")
	assert.NotContains(t, pair.Getter, "raw.(Theme)")

	assert.Equal(t, heredoc.Doc(`
		// SetTheme encodes and persists theme.
		// Values that cannot be encoded are dropped.
		func (s *Settings) SetTheme(value Theme) {
			s.registrar.WithMutation(s, "theme", func() {
				if raw, ok := kvstore.Encode(value); ok {
					s.store.Set("theme", raw)
				}
			})
		}`), pair.Setter)
}

func TestSynthesize_EncodedOptional(t *testing.T) {
	pair, err := Synthesize(property("window", "Window", "nil", plan.StrategyEncodedWithDefault, true), settingsContext)
	require.NoError(t, err)

	assert.Contains(t, pair.Getter, "func (s *Settings) Window() *Window {")
	assert.Contains(t, pair.Getter, "kvstore.Decode[Window](raw)")
	assert.Contains(t, pair.Getter, "return &value")
	assert.Contains(t, pair.Setter, "func (s *Settings) SetWindow(value *Window) {")
	assert.Contains(t, pair.Setter, `s.store.Delete("window")`)
	assert.Contains(t, pair.Setter, "kvstore.Encode(*value)")
}

func TestSynthesize_OwnerContextAndKeys(t *testing.T) {
	p := property("count", "int", "0", plan.StrategyDirectWithDefault, false)
	p.StoreKey = "app.count"

	ctx := OwnerContext{TypeName: "Prefs", Receiver: "cfg", StoreField: "defaults", RegistrarField: "obs"}

	pair, err := Synthesize(p, ctx)
	require.NoError(t, err)

	assert.Contains(t, pair.Getter, "func (cfg *Prefs) Count() int {")
	assert.Contains(t, pair.Getter, `cfg.obs.Access(cfg, "count")`)
	assert.Contains(t, pair.Getter, `cfg.defaults.Get("app.count")`)
	assert.Contains(t, pair.Setter, `cfg.obs.WithMutation(cfg, "count", func() {`)
	assert.Contains(t, pair.Setter, `cfg.defaults.Set("app.count", value)`)
}

func TestSynthesize_QuotesKeys(t *testing.T) {
	p := property("count", "int", "0", plan.StrategyDirectWithDefault, false)
	p.StoreKey = `a"b`

	pair, err := Synthesize(p, settingsContext)
	require.NoError(t, err)
	assert.Contains(t, pair.Getter, `s.store.Get("a\"b")`)
}

func TestSynthesize_Deterministic(t *testing.T) {
	p := property("theme", "Theme", "ThemeLight", plan.StrategyEncodedWithDefault, false)

	first, err := Synthesize(p, settingsContext)
	require.NoError(t, err)

	for range 5 {
		again, err := Synthesize(p, settingsContext)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestSynthesize_ShapeFollowsStrategy(t *testing.T) {
	for _, base := range []string{"String", "Int", "int64", "time.Duration", "[]string", "map[string]int"} {
		t.Run(base, func(t *testing.T) {
			c := classifyPlain(t, base, "x")
			require.Equal(t, plan.StrategyEncodedWithDefault, c.Strategy)

			p := property("value1", base, "x", c.Strategy, false)

			pair, err := Synthesize(p, settingsContext)
			require.NoError(t, err)
			assert.Contains(t, pair.Getter, "kvstore.Decode["+base+"](raw)")
		})
	}

	for _, base := range plan.DirectTypes() {
		t.Run(base, func(t *testing.T) {
			c := classifyPlain(t, base, "x")
			require.Equal(t, plan.StrategyDirectWithDefault, c.Strategy)

			pair, err := Synthesize(property("value1", base, "x", c.Strategy, false), settingsContext)
			require.NoError(t, err)
			assert.Contains(t, pair.Getter, "raw.("+base+")")
			assert.NotContains(t, pair.Getter, "kvstore")
		})
	}
}

func TestSynthesize_InvalidInput(t *testing.T) {
	valid := property("count", "int", "0", plan.StrategyDirectWithDefault, false)

	tests := []struct {
		name   string
		modify func(*plan.ResolvedProperty, *OwnerContext)
	}{
		{"zero strategy", func(p *plan.ResolvedProperty, _ *OwnerContext) { p.Classification.Strategy = 0 }},
		{"direct optional without pointer", func(p *plan.ResolvedProperty, _ *OwnerContext) {
			p.Classification.Strategy = plan.StrategyDirectOptional
		}},
		{"empty base type", func(p *plan.ResolvedProperty, _ *OwnerContext) { p.Classification.BaseType = " " }},
		{"empty default", func(p *plan.ResolvedProperty, _ *OwnerContext) { p.Classification.DefaultValue = "" }},
		{"bad getter", func(p *plan.ResolvedProperty, _ *OwnerContext) { p.GetterName = "1x" }},
		{"blank receiver", func(_ *plan.ResolvedProperty, o *OwnerContext) { o.Receiver = "_" }},
		{"reserved receiver", func(_ *plan.ResolvedProperty, o *OwnerContext) { o.Receiver = "value" }},
		{"empty store field", func(_ *plan.ResolvedProperty, o *OwnerContext) { o.StoreField = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, o := valid, settingsContext
			tt.modify(&p, &o)

			_, err := Synthesize(p, o)
			require.Error(t, err)
		})
	}
}
