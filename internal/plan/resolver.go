package plan

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kominak/ObservableUserDefault/internal/analyze"
	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/config"
	"github.com/kominak/ObservableUserDefault/internal/decl"
	"github.com/kominak/ObservableUserDefault/internal/diagnostic"
	"github.com/kominak/ObservableUserDefault/internal/match"
)

// maxSuggestions caps "did you mean" lists.
const maxSuggestions = 3

// Resolver performs the resolution pipeline for one package.
type Resolver struct {
	pkg    *analyze.Package
	config *config.Config
	logger *zap.Logger
}

// NewResolver creates a new Resolver. A nil config uses config.Default();
// a nil logger disables logging.
func NewResolver(pkg *analyze.Package, cfg *config.Config, logger *zap.Logger) *Resolver {
	if cfg == nil {
		cfg = config.Default()
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		pkg:    pkg,
		config: cfg,
		logger: logger,
	}
}

// Resolve runs the full resolution pipeline and returns a ResolvedPlan.
// Rejected declarations are reported in the plan diagnostics and left out of
// the plan; the returned error is only set for unusable input.
func (r *Resolver) Resolve() (*ResolvedPlan, error) {
	if r.pkg == nil {
		return nil, errors.New("package is nil")
	}

	p := &ResolvedPlan{
		PackagePath: r.pkg.Path,
		PackageName: r.pkg.Name,
		Dir:         r.pkg.Dir,
	}

	owners := make(map[string]*ResolvedOwner)
	accessors := make(map[string]map[string]string) // owner -> method name -> property
	imports := make(map[string]*importTable)

	for i := range r.pkg.Declarations {
		d := &r.pkg.Declarations[i]

		prop, err := r.resolveDeclaration(d)
		if err != nil {
			p.Diagnostics.Add(declarationDiagnostic(d, err))
			r.logger.Debug("rejected declaration",
				zap.String("owner", d.Owner),
				zap.String("name", d.Name()),
				zap.Error(err))

			continue
		}

		if !r.checkOwner(d, &p.Diagnostics) {
			continue
		}

		table, ok := imports[prop.Owner]
		if !ok {
			table = newImportTable()
			imports[prop.Owner] = table
		}

		if imp, other, clash := table.nameConflict(prop.Imports); clash {
			p.Diagnostics.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityError,
				Code:     "import_name_conflict",
				Message: fmt.Sprintf("package name %s refers to %q here and to %q in another property of the owner",
					imp.Name, imp.Path, other),
				Owner:    prop.Owner,
				Property: prop.Name,
				Position: positionString(d),
			})

			continue
		}

		if clash := claimAccessors(accessors, prop); clash != "" {
			p.Diagnostics.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityError,
				Code:     "accessor_name_conflict",
				Message: fmt.Sprintf("accessors %s/%s collide with those of property %q",
					prop.GetterName, prop.SetterName, clash),
				Owner:    prop.Owner,
				Property: prop.Name,
				Position: positionString(d),
			})

			continue
		}

		for _, m := range table.claim(prop.Imports) {
			p.Diagnostics.Add(diagnostic.Diagnostic{
				Severity: diagnostic.SeverityWarning,
				Code:     "import_alias_mismatch",
				Message: fmt.Sprintf("package %q is imported as %s here and as %s elsewhere; both imports are generated",
					m.imp.Path, m.imp.Name, m.other),
				Owner:    prop.Owner,
				Property: prop.Name,
				Position: positionString(d),
			})
		}

		owner, ok := owners[prop.Owner]
		if !ok {
			owner = &ResolvedOwner{Name: prop.Owner, Settings: r.config.ForOwner(prop.Owner)}
			owners[prop.Owner] = owner
			r.checkOwnerFields(owner, &p.Diagnostics)
		}

		prop.StoreKey = owner.Settings.KeyPrefix + prop.Name
		owner.Properties = append(owner.Properties, *prop)

		r.logger.Debug("classified property",
			zap.String("owner", prop.Owner),
			zap.String("name", prop.Name),
			zap.String("base_type", prop.Classification.BaseType),
			zap.Stringer("strategy", prop.Classification.Strategy),
			zap.String("default", prop.Classification.DefaultValue))
	}

	for _, o := range owners {
		p.Owners = append(p.Owners, *o)
	}

	sort.Slice(p.Owners, func(i, j int) bool {
		return p.Owners[i].Name < p.Owners[j].Name
	})

	return p, nil
}

// resolveDeclaration validates, checks the directive and classifies one declaration.
func (r *Resolver) resolveDeclaration(d *decl.PropertyDeclaration) (*ResolvedProperty, error) {
	b, err := Validate(d)
	if err != nil {
		return nil, err
	}

	if err := CheckDirective(d); err != nil {
		return nil, err
	}

	c, err := Classify(b)
	if err != nil {
		return nil, err
	}

	name := b.Pattern.String()
	getter, setter := common.AccessorNames(name)

	return &ResolvedProperty{
		Owner:          d.Owner,
		Name:           name,
		GetterName:     getter,
		SetterName:     setter,
		StoreKey:       name,
		ObservationKey: name,
		Classification: c,
		Imports:        d.Imports,
		Position:       d.Position,
	}, nil
}

// checkOwner reports an error when the owner type is not declared in the package.
func (r *Resolver) checkOwner(d *decl.PropertyDeclaration, diags *diagnostic.Diagnostics) bool {
	if r.pkg.Owner(d.Owner) != nil {
		return true
	}

	diags.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityError,
		Code:        "owner_not_found",
		Message:     fmt.Sprintf("owner type %q is not declared in package %s", d.Owner, r.pkg.Name),
		Owner:       d.Owner,
		Property:    d.Name(),
		Position:    positionString(d),
		Suggestions: match.Suggest(d.Owner, r.pkg.TypeNames(), maxSuggestions),
	})

	return false
}

// checkOwnerFields warns when a struct owner lacks the configured store or
// registrar field; the generated code would not compile without them.
func (r *Resolver) checkOwnerFields(owner *ResolvedOwner, diags *diagnostic.Diagnostics) {
	info := r.pkg.Owner(owner.Name)
	if info == nil {
		return
	}

	pos := ""
	if info.Position.IsValid() {
		pos = info.Position.String()
	}

	if !info.Struct {
		diags.AddWarning("owner_not_struct",
			fmt.Sprintf("owner type is not a struct; it needs %s and %s fields",
				owner.Settings.StoreField, owner.Settings.RegistrarField),
			owner.Name, "")

		return
	}

	for _, field := range []string{owner.Settings.StoreField, owner.Settings.RegistrarField} {
		if _, ok := info.Fields[field]; ok {
			continue
		}

		names := make([]string, 0, len(info.Fields))
		for name := range info.Fields {
			names = append(names, name)
		}

		sort.Strings(names)

		diags.Add(diagnostic.Diagnostic{
			Severity:    diagnostic.SeverityWarning,
			Code:        "owner_missing_field",
			Message:     fmt.Sprintf("owner struct has no field %q", field),
			Owner:       owner.Name,
			Position:    pos,
			Suggestions: match.Suggest(field, names, maxSuggestions),
		})
	}
}

// claimAccessors records the property's accessor names for its owner and
// returns the name of an earlier property already using one of them.
func claimAccessors(accessors map[string]map[string]string, prop *ResolvedProperty) string {
	names, ok := accessors[prop.Owner]
	if !ok {
		names = make(map[string]string)
		accessors[prop.Owner] = names
	}

	for _, m := range []string{prop.GetterName, prop.SetterName} {
		if other, taken := names[m]; taken {
			return other
		}
	}

	names[prop.GetterName] = prop.Name
	names[prop.SetterName] = prop.Name

	return ""
}

// importTable tracks the package names used by the properties of one owner.
// Generated code keeps each property's type and default text as written, so
// every local name must mean the same package across the owner's file.
type importTable struct {
	paths map[string]string // local name -> import path
	names map[string]string // import path -> first local name
}

type aliasMismatch struct {
	imp   decl.Import
	other string
}

func newImportTable() *importTable {
	return &importTable{
		paths: make(map[string]string),
		names: make(map[string]string),
	}
}

// nameConflict returns the first import whose local name is already bound to
// another path, together with that path.
func (t *importTable) nameConflict(imports []decl.Import) (decl.Import, string, bool) {
	for _, imp := range imports {
		if other, ok := t.paths[imp.Name]; ok && other != imp.Path {
			return imp, other, true
		}
	}

	return decl.Import{}, "", false
}

// claim records the imports and returns those that use a path already
// imported under a different local name.
func (t *importTable) claim(imports []decl.Import) []aliasMismatch {
	var mismatches []aliasMismatch

	for _, imp := range imports {
		if first, ok := t.names[imp.Path]; !ok {
			t.names[imp.Path] = imp.Name
		} else if first != imp.Name {
			if _, known := t.paths[imp.Name]; !known {
				mismatches = append(mismatches, aliasMismatch{imp: imp, other: first})
			}
		}

		t.paths[imp.Name] = imp.Path
	}

	return mismatches
}

// coded is implemented by DeclarationError and ArgumentError.
type coded interface {
	error
	Code() string
}

func declarationDiagnostic(d *decl.PropertyDeclaration, err error) diagnostic.Diagnostic {
	code := "invalid_declaration"

	var c coded
	if errors.As(err, &c) {
		code = c.Code()
	}

	return diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     code,
		Message:  err.Error(),
		Owner:    d.Owner,
		Property: d.Name(),
		Position: positionString(d),
	}
}

func positionString(d *decl.PropertyDeclaration) string {
	if !d.Position.IsValid() {
		return ""
	}

	return d.Position.String()
}
