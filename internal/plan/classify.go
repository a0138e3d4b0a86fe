package plan

import (
	"slices"
	"strings"

	"github.com/kominak/ObservableUserDefault/internal/decl"
)

// NilDefault is the default value expression of pointer properties.
const NilDefault = "nil"

// directTypes are the type names stored as-is and read back with a plain type
// assertion. Order is significant for DirectTypes.
var directTypes = []string{
	"string",
	"int",
	"bool",
	"time.Time",
	"[]byte",
	"float64",
}

// DirectTypes returns a copy of the direct-storage allow-list.
func DirectTypes() []string {
	return slices.Clone(directTypes)
}

// IsDirect reports whether the trimmed type text is on the direct-storage allow-list.
// The comparison is exact and case-sensitive.
func IsDirect(typeName string) bool {
	return slices.Contains(directTypes, strings.TrimSpace(typeName))
}

// Classification is the storage decision for one binding.
type Classification struct {
	// BaseType is the declared type with any pointer wrapper removed.
	BaseType string
	// DefaultValue is the Go expression returned when the store has no usable value.
	DefaultValue string
	Strategy     Strategy
	// Optional is true for pointer-typed properties.
	Optional bool
}

// Classify picks the storage strategy and default value for a validated binding.
func Classify(b decl.Binding) (Classification, error) {
	switch t := b.Type.(type) {
	case decl.OptionalType:
		if b.Initializer != nil {
			return Classification{}, ErrOptionalTypeShouldHaveNoDefaultValue
		}

		base := strings.TrimSpace(t.Wrapped)
		if base == "" {
			return Classification{}, ErrUnableToExtractRequiredValuesFromArgument
		}

		c := Classification{
			BaseType:     base,
			DefaultValue: NilDefault,
			Strategy:     StrategyEncodedWithDefault,
			Optional:     true,
		}
		if IsDirect(base) {
			c.Strategy = StrategyDirectOptional
		}

		return c, nil

	case decl.PlainType:
		if b.Initializer == nil {
			return Classification{}, ErrNonOptionalTypeMustHaveDefaultValue
		}

		base := strings.TrimSpace(t.Name)
		if base == "" {
			return Classification{}, ErrUnableToExtractRequiredValuesFromArgument
		}

		c := Classification{
			BaseType:     base,
			DefaultValue: b.Initializer.Text,
			Strategy:     StrategyEncodedWithDefault,
		}
		if IsDirect(base) {
			c.Strategy = StrategyDirectWithDefault
		}

		return c, nil

	default:
		return Classification{}, ErrUnableToExtractRequiredValuesFromArgument
	}
}
