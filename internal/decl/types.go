package decl

import (
	"go/token"
	"strings"

	"github.com/kominak/ObservableUserDefault/internal/common"
)

// Keyword is the declaration keyword that introduced the annotated node.
type Keyword int

const (
	KeywordOther Keyword = iota // type, func, import
	KeywordVar
	KeywordConst
)

// String returns the Go keyword.
func (k Keyword) String() string {
	switch k {
	case KeywordVar:
		return "var"
	case KeywordConst:
		return "const"
	case KeywordOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// PropertyDeclaration is one annotated declaration as seen by the generator.
type PropertyDeclaration struct {
	Keyword  Keyword
	Bindings []Binding
	// HasAccessorBlock is true when the owner already declares the getter or
	// setter this declaration would produce.
	HasAccessorBlock bool
	Directive        Directive
	// Owner is the type the accessors are generated on.
	Owner    string
	Position token.Position
	// Imports lists the file imports referenced by the binding type and initializer.
	Imports []Import
}

// BindingCount returns the number of name/type pairs in the declaration.
func (d *PropertyDeclaration) BindingCount() int {
	return len(d.Bindings)
}

// Name returns the first binding's identifier, or the pattern text when the
// pattern is not a plain identifier.
func (d *PropertyDeclaration) Name() string {
	b, ok := common.First(d.Bindings)
	if !ok || b.Pattern == nil {
		return ""
	}

	return b.Pattern.String()
}

// Binding is a single name/type/initializer triple.
type Binding struct {
	Pattern     Pattern
	Type        TypeAnnotation
	Initializer *Expr
}

// Expr is an expression in source form.
type Expr struct {
	Text string
}

// Directive is the parsed generator directive, e.g. //kvgen:persist Settings.
type Directive struct {
	Name string
	Args []string
}

// Import is a file import referenced by a declaration.
type Import struct {
	// Name is the local package name the declaring file refers to.
	Name  string
	Alias string // empty when the import has no explicit name
	Path  string
}

// Pattern is the left-hand side of a binding.
type Pattern interface {
	String() string
	pattern()
}

// IdentifierPattern is a plain, non-blank identifier.
type IdentifierPattern struct {
	Name string
}

func (p IdentifierPattern) String() string { return p.Name }
func (IdentifierPattern) pattern()         {}

// OtherPattern is any pattern that cannot key the store on its own.
type OtherPattern struct {
	Text string
}

func (p OtherPattern) String() string { return p.Text }
func (OtherPattern) pattern()         {}

// TypeAnnotation is the declared type of a binding.
type TypeAnnotation interface {
	String() string
	typeAnnotation()
}

// OptionalType is a pointer type; Wrapped is the pointee type text.
type OptionalType struct {
	Wrapped string
}

func (t OptionalType) String() string { return "*" + strings.TrimSpace(t.Wrapped) }
func (OptionalType) typeAnnotation()  {}

// PlainType is any non-pointer type.
type PlainType struct {
	Name string
}

func (t PlainType) String() string { return strings.TrimSpace(t.Name) }
func (PlainType) typeAnnotation()  {}
