package analyze

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/decl"
)

// LoadMode specifies what information to load from packages.
// Types are deliberately not requested: the package under generation usually
// calls accessors that do not exist yet.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Loader loads Go packages and extracts persisted property declarations.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new Loader. A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{logger: logger}
}

// LoadPackages loads the packages matching patterns (e.g. "./settings", "./...").
func (l *Loader) LoadPackages(dir string, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	result := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}

		result = append(result, l.ParseFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, dir))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}

// ParseSource parses in-memory sources of a single package. The sources map
// file names to their contents.
func (l *Loader) ParseSource(pkgPath string, sources map[string]string) (*Package, error) {
	fset := token.NewFileSet()

	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}

	sort.Strings(names)

	files := make([]*ast.File, 0, len(names))

	for _, name := range names {
		f, err := parser.ParseFile(fset, name, sources[name], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, f)
	}

	return l.ParseFiles(fset, files, pkgPath, ""), nil
}

// ParseFiles extracts owners and annotated declarations from parsed files of
// one package. Generated files (see ast.IsGenerated) are skipped entirely so
// that previously generated accessors never count as existing ones.
func (l *Loader) ParseFiles(fset *token.FileSet, files []*ast.File, pkgPath, dir string) *Package {
	files = sortedFiles(fset, files)

	name := ""
	if f, ok := common.First(files); ok {
		name = f.Name.Name
	}

	pkg := NewPackage(pkgPath, name, dir)

	var sources []*ast.File

	for _, f := range files {
		if ast.IsGenerated(f) {
			l.logger.Debug("skipping generated file", zap.String("file", fset.Position(f.Pos()).Filename))
			continue
		}

		sources = append(sources, f)
	}

	for _, f := range sources {
		collectTypes(fset, f, pkg)
	}

	for _, f := range sources {
		collectMethods(f, pkg)
	}

	for _, f := range sources {
		e := &extractor{fset: fset, file: f, pkg: pkg, imports: fileImports(f)}
		e.extract()
	}

	for _, d := range pkg.Declarations {
		l.logger.Debug("found persisted declaration",
			zap.String("package", pkg.Path),
			zap.String("owner", d.Owner),
			zap.String("name", d.Name()),
			zap.Stringer("keyword", d.Keyword),
			zap.String("position", d.Position.String()))
	}

	return pkg
}

func sortedFiles(fset *token.FileSet, files []*ast.File) []*ast.File {
	out := append([]*ast.File(nil), files...)
	sort.SliceStable(out, func(i, j int) bool {
		return fset.Position(out[i].Pos()).Filename < fset.Position(out[j].Pos()).Filename
	})

	return out
}

func collectTypes(fset *token.FileSet, f *ast.File, pkg *Package) {
	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)

			owner := newOwner(ts.Name.Name)
			owner.Position = fset.Position(ts.Name.Pos())

			if st, ok := ast.Unparen(ts.Type).(*ast.StructType); ok {
				owner.Struct = true

				for _, field := range st.Fields.List {
					typeText := exprString(fset, field.Type)
					if len(field.Names) == 0 {
						owner.Fields[embeddedName(field.Type)] = typeText
						continue
					}

					for _, n := range field.Names {
						owner.Fields[n.Name] = typeText
					}
				}
			}

			pkg.Owners[owner.Name] = owner
		}
	}
}

func collectMethods(f *ast.File, pkg *Package) {
	for _, d := range f.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Recv == nil || len(fd.Recv.List) == 0 {
			continue
		}

		owner := pkg.Owner(receiverTypeName(fd.Recv.List[0].Type))
		if owner == nil {
			continue
		}

		owner.Methods[fd.Name.Name] = true
	}
}

// receiverTypeName strips pointers and type parameters from a receiver type.
func receiverTypeName(expr ast.Expr) string {
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.ParenExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// embeddedName returns the field name of an embedded field.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

// fileImports maps the local package name of every import to its spec.
// Without type information the package name of an unaliased import is
// guessed from its path: the last element, minus a "go-" prefix and a
// ".vN" suffix, skipping a trailing major version element.
func fileImports(f *ast.File) map[string]decl.Import {
	out := make(map[string]decl.Import)

	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}

			out[spec.Name.Name] = decl.Import{Name: spec.Name.Name, Alias: spec.Name.Name, Path: p}

			continue
		}

		name := guessPackageName(p)
		out[name] = decl.Import{Name: name, Path: p}
	}

	return out
}

func guessPackageName(importPath string) string {
	base := path.Base(importPath)
	if isMajorVersion(base) {
		base = path.Base(path.Dir(importPath))
	}

	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")

	return strings.ReplaceAll(base, "-", "")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	_, err := strconv.Atoi(s[1:])

	return err == nil
}

func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}

	return buf.String()
}
