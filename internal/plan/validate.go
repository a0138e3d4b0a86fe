package plan

import (
	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/decl"
)

// Validate checks the declaration shape and returns its single binding.
// Checks run in a fixed order and stop at the first failure.
func Validate(d *decl.PropertyDeclaration) (decl.Binding, error) {
	if d.Keyword != decl.KeywordVar {
		return decl.Binding{}, ErrNotVariableProperty
	}

	if d.BindingCount() != 1 {
		return decl.Binding{}, ErrPropertyMustContainOnlyOneBinding
	}

	if d.HasAccessorBlock {
		return decl.Binding{}, ErrPropertyMustHaveNoAccessorBlock
	}

	b := d.Bindings[0]

	switch b.Pattern.(type) {
	case decl.IdentifierPattern:
		return b, nil
	case decl.OtherPattern:
		return decl.Binding{}, ErrPropertyMustUseSimplePatternSyntax
	default:
		return decl.Binding{}, ErrPropertyMustUseSimplePatternSyntax
	}
}

// CheckDirective checks that the directive names exactly one owner.
func CheckDirective(d *decl.PropertyDeclaration) error {
	if !common.IsSingle(d.Directive.Args) {
		return ErrMacroShouldOnlyContainOneArgument
	}

	return nil
}
