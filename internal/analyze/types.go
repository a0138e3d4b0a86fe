package analyze

import (
	"go/token"
	"sort"

	"github.com/kominak/ObservableUserDefault/internal/decl"
)

// Directive is the comment directive marking a persisted property.
const Directive = "kvgen:persist"

// Package holds the declarations extracted from one Go package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory holding the package sources
	// Declarations are in file name order, then source order.
	Declarations []decl.PropertyDeclaration
	// Owners maps every named type declared in a non-generated file.
	Owners map[string]*Owner
}

// NewPackage creates an empty Package.
func NewPackage(path, name, dir string) *Package {
	return &Package{
		Path:   path,
		Name:   name,
		Dir:    dir,
		Owners: make(map[string]*Owner),
	}
}

// Owner returns the named type, or nil if it is not declared in the package.
func (p *Package) Owner(name string) *Owner {
	return p.Owners[name]
}

// TypeNames returns the sorted names of all declared types.
func (p *Package) TypeNames() []string {
	names := make([]string, 0, len(p.Owners))
	for name := range p.Owners {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Owner describes a named type that accessors may be generated on.
type Owner struct {
	Name string
	// Struct is true when the type's underlying type is a struct literal.
	Struct bool
	// Fields maps field names to their type text (struct owners only).
	Fields map[string]string
	// Methods is the set of method names declared on the type or its pointer.
	Methods  map[string]bool
	Position token.Position
}

func newOwner(name string) *Owner {
	return &Owner{
		Name:    name,
		Fields:  make(map[string]string),
		Methods: make(map[string]bool),
	}
}

// Declares reports whether the owner already has a field or method called name.
func (o *Owner) Declares(name string) bool {
	if o == nil {
		return false
	}

	if o.Methods[name] {
		return true
	}

	_, ok := o.Fields[name]

	return ok
}
