package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kominak/ObservableUserDefault/internal/decl"
)

func TestDirectTypes(t *testing.T) {
	assert.Equal(t, []string{"string", "int", "bool", "time.Time", "[]byte", "float64"}, DirectTypes())

	// DirectTypes returns a copy.
	types := DirectTypes()
	types[0] = "mutated"
	assert.True(t, IsDirect("string"))
}

func TestIsDirect(t *testing.T) {
	direct := []string{"string", "int", "bool", "time.Time", "[]byte", "float64", "  int  ", "\tstring\n"}
	for _, name := range direct {
		assert.True(t, IsDirect(name), "%q should use direct storage", name)
	}

	nearMisses := []string{
		"String", "Int", "Bool", "NSDate", "Data", "NSNumber",
		"int64", "int32", "uint", "float32", "byte", "[]string", "[] byte",
		"time.Duration", "Time", "*string", "map[string]int", "Theme", "",
	}
	for _, name := range nearMisses {
		assert.False(t, IsDirect(name), "%q should use encoded storage", name)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		binding decl.Binding
		want    Classification
		wantErr error
	}{
		{
			name:    "var count int = 0",
			binding: ident("count", decl.PlainType{Name: "int"}, "0"),
			want:    Classification{BaseType: "int", DefaultValue: "0", Strategy: StrategyDirectWithDefault},
		},
		{
			name:    "var nickname *string",
			binding: ident("nickname", decl.OptionalType{Wrapped: "string"}, ""),
			want:    Classification{BaseType: "string", DefaultValue: "nil", Strategy: StrategyDirectOptional, Optional: true},
		},
		{
			name:    "var theme Theme = ThemeLight",
			binding: ident("theme", decl.PlainType{Name: "Theme"}, "ThemeLight"),
			want:    Classification{BaseType: "Theme", DefaultValue: "ThemeLight", Strategy: StrategyEncodedWithDefault},
		},
		{
			name:    "var profile *Profile",
			binding: ident("profile", decl.OptionalType{Wrapped: "Profile"}, ""),
			want:    Classification{BaseType: "Profile", DefaultValue: "nil", Strategy: StrategyEncodedWithDefault, Optional: true},
		},
		{
			name:    "var seen time.Time = time.Time{}",
			binding: ident("seen", decl.PlainType{Name: "time.Time"}, "time.Time{}"),
			want:    Classification{BaseType: "time.Time", DefaultValue: "time.Time{}", Strategy: StrategyDirectWithDefault},
		},
		{
			name:    "var blob []byte = nil",
			binding: ident("blob", decl.PlainType{Name: "[]byte"}, "nil"),
			want:    Classification{BaseType: "[]byte", DefaultValue: "nil", Strategy: StrategyDirectWithDefault},
		},
		{
			name:    "var tags []string = []string{\"a\"}",
			binding: ident("tags", decl.PlainType{Name: "[]string"}, `[]string{"a"}`),
			want:    Classification{BaseType: "[]string", DefaultValue: `[]string{"a"}`, Strategy: StrategyEncodedWithDefault},
		},
		{
			name:    "trimmed type text",
			binding: ident("ratio", decl.PlainType{Name: " float64 "}, "0.5"),
			want:    Classification{BaseType: "float64", DefaultValue: "0.5", Strategy: StrategyDirectWithDefault},
		},
		{
			name:    "non-pointer without initializer",
			binding: ident("count", decl.PlainType{Name: "int"}, ""),
			wantErr: ErrNonOptionalTypeMustHaveDefaultValue,
		},
		{
			name:    "encoded without initializer",
			binding: ident("theme", decl.PlainType{Name: "Theme"}, ""),
			wantErr: ErrNonOptionalTypeMustHaveDefaultValue,
		},
		{
			name:    "pointer with initializer",
			binding: ident("nickname", decl.OptionalType{Wrapped: "string"}, `ptr("x")`),
			wantErr: ErrOptionalTypeShouldHaveNoDefaultValue,
		},
		{
			name:    "pointer with nil initializer",
			binding: ident("profile", decl.OptionalType{Wrapped: "Profile"}, "nil"),
			wantErr: ErrOptionalTypeShouldHaveNoDefaultValue,
		},
		{
			name:    "no type",
			binding: ident("ratio", nil, "1.5"),
			wantErr: ErrUnableToExtractRequiredValuesFromArgument,
		},
		{
			name:    "empty type text",
			binding: ident("ratio", decl.PlainType{Name: "  "}, "1.5"),
			wantErr: ErrUnableToExtractRequiredValuesFromArgument,
		},
		{
			name:    "empty pointee",
			binding: ident("ratio", decl.OptionalType{}, ""),
			wantErr: ErrUnableToExtractRequiredValuesFromArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.binding)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassify_StrategyMatchesAllowList(t *testing.T) {
	names := append(DirectTypes(), "String", "string ", "Int", "int64", "Theme", "[]int", "NSNumber")

	for _, name := range names {
		plain, err := Classify(ident("v", decl.PlainType{Name: name}, "x"))
		require.NoError(t, err)

		optional, err := Classify(ident("v", decl.OptionalType{Wrapped: name}, ""))
		require.NoError(t, err)

		if IsDirect(name) {
			assert.Equal(t, StrategyDirectWithDefault, plain.Strategy, name)
			assert.Equal(t, StrategyDirectOptional, optional.Strategy, name)
		} else {
			assert.Equal(t, StrategyEncodedWithDefault, plain.Strategy, name)
			assert.Equal(t, StrategyEncodedWithDefault, optional.Strategy, name)
		}

		assert.True(t, optional.Optional)
		assert.Equal(t, NilDefault, optional.DefaultValue)
		assert.False(t, plain.Optional)
		assert.Equal(t, "x", plain.DefaultValue)
	}
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "StrategyDirectOptional", StrategyDirectOptional.String())
	assert.Equal(t, "StrategyDirectWithDefault", StrategyDirectWithDefault.String())
	assert.Equal(t, "StrategyEncodedWithDefault", StrategyEncodedWithDefault.String())
	assert.Equal(t, "Strategy(0)", Strategy(0).String())
	assert.Equal(t, "Strategy(9)", Strategy(9).String())

	assert.True(t, StrategyDirectOptional.IsDirect())
	assert.True(t, StrategyDirectWithDefault.IsDirect())
	assert.False(t, StrategyEncodedWithDefault.IsDirect())
}
