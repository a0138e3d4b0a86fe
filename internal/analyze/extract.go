package analyze

import (
	"go/ast"
	"go/token"
	"sort"
	"strings"

	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/decl"
)

// extractor turns the directive-carrying declarations of one file into
// decl.PropertyDeclaration values.
type extractor struct {
	fset    *token.FileSet
	file    *ast.File
	pkg     *Package
	imports map[string]decl.Import
}

func (e *extractor) extract() {
	for _, d := range e.file.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			e.extractGenDecl(d)
		case *ast.FuncDecl:
			dir, ok := parseDirective(d.Doc)
			if !ok {
				continue
			}

			e.add(decl.PropertyDeclaration{
				Keyword:   decl.KeywordOther,
				Bindings:  []decl.Binding{{Pattern: decl.IdentifierPattern{Name: d.Name.Name}}},
				Directive: dir,
				Position:  e.fset.Position(d.Name.Pos()),
			})
		}
	}
}

func (e *extractor) extractGenDecl(gd *ast.GenDecl) {
	groupDir, hasGroupDir := parseDirective(gd.Doc)

	for _, spec := range gd.Specs {
		dir, ok := groupDir, hasGroupDir
		if specDir, found := parseDirective(specDoc(spec)); found {
			dir, ok = specDir, true
		}

		if !ok {
			continue
		}

		switch s := spec.(type) {
		case *ast.ValueSpec:
			keyword := decl.KeywordConst
			if gd.Tok == token.VAR {
				keyword = decl.KeywordVar
			}

			e.add(decl.PropertyDeclaration{
				Keyword:   keyword,
				Bindings:  e.bindings(s),
				Directive: dir,
				Position:  e.fset.Position(s.Names[0].Pos()),
				Imports:   e.referencedImports(s),
			})

		case *ast.TypeSpec:
			e.add(decl.PropertyDeclaration{
				Keyword:   decl.KeywordOther,
				Bindings:  []decl.Binding{{Pattern: decl.IdentifierPattern{Name: s.Name.Name}}},
				Directive: dir,
				Position:  e.fset.Position(s.Name.Pos()),
			})

		case *ast.ImportSpec:
			e.add(decl.PropertyDeclaration{
				Keyword:   decl.KeywordOther,
				Bindings:  []decl.Binding{{Pattern: decl.OtherPattern{Text: s.Path.Value}}},
				Directive: dir,
				Position:  e.fset.Position(s.Path.Pos()),
			})
		}
	}
}

// add fills in the owner and the accessor conflict flag, then records d.
func (e *extractor) add(d decl.PropertyDeclaration) {
	if owner, ok := common.First(d.Directive.Args); ok {
		d.Owner = owner
	}

	owner := e.pkg.Owner(d.Owner)
	for _, b := range d.Bindings {
		id, ok := b.Pattern.(decl.IdentifierPattern)
		if !ok {
			continue
		}

		getter, setter := common.AccessorNames(id.Name)
		if owner.Declares(getter) || owner.Declares(setter) {
			d.HasAccessorBlock = true
		}
	}

	e.pkg.Declarations = append(e.pkg.Declarations, d)
}

func (e *extractor) bindings(s *ast.ValueSpec) []decl.Binding {
	var typ decl.TypeAnnotation
	if s.Type != nil {
		typ = e.typeAnnotation(s.Type)
	}

	out := make([]decl.Binding, 0, len(s.Names))

	for i, name := range s.Names {
		b := decl.Binding{Type: typ}

		if name.Name == "_" {
			b.Pattern = decl.OtherPattern{Text: name.Name}
		} else {
			b.Pattern = decl.IdentifierPattern{Name: name.Name}
		}

		switch {
		case len(s.Values) == len(s.Names):
			b.Initializer = &decl.Expr{Text: exprString(e.fset, s.Values[i])}
		case len(s.Values) == 1:
			// var a, b = f()
			b.Initializer = &decl.Expr{Text: exprString(e.fset, s.Values[0])}
		}

		out = append(out, b)
	}

	return out
}

func (e *extractor) typeAnnotation(expr ast.Expr) decl.TypeAnnotation {
	expr = ast.Unparen(expr)
	if star, ok := expr.(*ast.StarExpr); ok {
		return decl.OptionalType{Wrapped: exprString(e.fset, ast.Unparen(star.X))}
	}

	return decl.PlainType{Name: exprString(e.fset, expr)}
}

// referencedImports returns the file imports used by the ValueSpec's type and values.
func (e *extractor) referencedImports(s *ast.ValueSpec) []decl.Import {
	seen := make(map[string]decl.Import)

	visit := func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if x, ok := sel.X.(*ast.Ident); ok {
			if imp, ok := e.imports[x.Name]; ok {
				seen[imp.Name] = imp
			}
		}

		return true
	}

	if s.Type != nil {
		ast.Inspect(s.Type, visit)
	}

	for _, v := range s.Values {
		ast.Inspect(v, visit)
	}

	out := make([]decl.Import, 0, len(seen))
	for _, imp := range seen {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}

		return out[i].Name < out[j].Name
	})

	return out
}

func specDoc(spec ast.Spec) *ast.CommentGroup {
	switch s := spec.(type) {
	case *ast.ValueSpec:
		return s.Doc
	case *ast.TypeSpec:
		return s.Doc
	case *ast.ImportSpec:
		return s.Doc
	default:
		return nil
	}
}

// parseDirective finds the persist directive in a doc comment.
// The directive must start the comment line with no space after the slashes.
func parseDirective(doc *ast.CommentGroup) (decl.Directive, bool) {
	if doc == nil {
		return decl.Directive{}, false
	}

	prefix := "//" + Directive

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, prefix) {
			continue
		}

		rest := strings.TrimPrefix(c.Text, prefix)
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		return decl.Directive{Name: Directive, Args: strings.Fields(rest)}, true
	}

	return decl.Directive{}, false
}
