package plan

// DeclarationError reports a declaration whose shape cannot be persisted.
type DeclarationError int

const (
	ErrNotVariableProperty DeclarationError = iota + 1
	ErrPropertyMustContainOnlyOneBinding
	ErrPropertyMustHaveNoAccessorBlock
	ErrPropertyMustUseSimplePatternSyntax
	ErrPropertyMustHaveNoInitializer
)

func (e DeclarationError) Error() string {
	switch e {
	case ErrNotVariableProperty:
		return "persisted property must be declared with var"
	case ErrPropertyMustContainOnlyOneBinding:
		return "persisted property declaration must contain exactly one binding"
	case ErrPropertyMustHaveNoAccessorBlock:
		return "persisted property owner must not already declare its getter or setter"
	case ErrPropertyMustUseSimplePatternSyntax:
		return "persisted property must be named by a plain identifier"
	case ErrPropertyMustHaveNoInitializer:
		return "persisted property must have no initializer"
	default:
		return "invalid declaration"
	}
}

// Code returns the stable diagnostic code for e.
func (e DeclarationError) Code() string {
	switch e {
	case ErrNotVariableProperty:
		return "not_variable_property"
	case ErrPropertyMustContainOnlyOneBinding:
		return "property_must_contain_only_one_binding"
	case ErrPropertyMustHaveNoAccessorBlock:
		return "property_must_have_no_accessor_block"
	case ErrPropertyMustUseSimplePatternSyntax:
		return "property_must_use_simple_pattern_syntax"
	case ErrPropertyMustHaveNoInitializer:
		return "property_must_have_no_initializer"
	default:
		return "invalid_declaration"
	}
}

// ArgumentError reports a directive argument or a binding type that cannot be
// classified.
type ArgumentError int

const (
	ErrMacroShouldOnlyContainOneArgument ArgumentError = iota + 1
	ErrNonOptionalTypeMustHaveDefaultValue
	ErrOptionalTypeShouldHaveNoDefaultValue
	ErrUnableToExtractRequiredValuesFromArgument
)

func (e ArgumentError) Error() string {
	switch e {
	case ErrMacroShouldOnlyContainOneArgument:
		return "directive must name exactly one owner type"
	case ErrNonOptionalTypeMustHaveDefaultValue:
		return "non-pointer persisted property must have an initializer used as its default value"
	case ErrOptionalTypeShouldHaveNoDefaultValue:
		return "pointer persisted property must not have an initializer; its default is nil"
	case ErrUnableToExtractRequiredValuesFromArgument:
		return "unable to determine the persisted property type; declare it explicitly"
	default:
		return "invalid argument"
	}
}

// Code returns the stable diagnostic code for e.
func (e ArgumentError) Code() string {
	switch e {
	case ErrMacroShouldOnlyContainOneArgument:
		return "macro_should_only_contain_one_argument"
	case ErrNonOptionalTypeMustHaveDefaultValue:
		return "non_optional_type_must_have_default_value"
	case ErrOptionalTypeShouldHaveNoDefaultValue:
		return "optional_type_should_have_no_default_value"
	case ErrUnableToExtractRequiredValuesFromArgument:
		return "unable_to_extract_required_values_from_argument"
	default:
		return "invalid_argument"
	}
}
