package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/kominak/ObservableUserDefault/internal/common"
	"github.com/kominak/ObservableUserDefault/internal/config"
	"github.com/kominak/ObservableUserDefault/internal/decl"
	"github.com/kominak/ObservableUserDefault/internal/plan"
)

// Header is the first line of every generated file.
const Header = "// Code generated by kvgen. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the snake_case owner name to form file names.
	FileSuffix string
	// DebugDir receives unformatted sources when formatting fails.
	// Empty disables the sidecar files.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix: config.DefaultFileSuffix,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	fs     afero.Fs
	logger *zap.Logger
}

// NewGenerator creates a new Generator. fs is only used for debug sidecar
// files and may be nil; a nil logger disables logging.
func NewGenerator(cfg GeneratorConfig, fs afero.Fs, logger *zap.Logger) *Generator {
	if cfg.FileSuffix == "" {
		cfg.FileSuffix = config.DefaultFileSuffix
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: cfg, fs: fs, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "settings_kvgen.go").
	Filename string
	// Owner is the type the file declares methods on.
	Owner string
	// Content is the formatted Go source code.
	Content []byte
}

// fileData holds the data of fileTemplate.
type fileData struct {
	Header       string
	PackageName  string
	Owner        string
	// StdImports and OtherImports are printed as separate groups.
	StdImports   []decl.Import
	OtherImports []decl.Import
	Accessors    []AccessorPair
}

var fileTemplate = template.Must(template.New("file").Parse(`{{.Header}}

package {{.PackageName}}

{{if or .StdImports .OtherImports}}
import (
{{range .StdImports}}	{{template "import" .}}
{{end}}{{if and .StdImports .OtherImports}}
{{end}}{{range .OtherImports}}	{{template "import" .}}
{{end}})
{{end}}
{{range .Accessors}}
{{.Getter}}

{{.Setter}}
{{end}}
{{define "import"}}{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"{{end}}`))

// Generate generates one file per owner of p, in owner order.
func (g *Generator) Generate(p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Owners))

	for _, owner := range p.Owners {
		if common.IsEmpty(owner.Properties) {
			continue
		}

		file, err := g.generateOwner(p.PackageName, owner)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", owner.Name, err)
		}

		g.logger.Debug("generated owner",
			zap.String("owner", owner.Name),
			zap.String("file", file.Filename),
			zap.Int("properties", len(owner.Properties)))

		files = append(files, *file)
	}

	return files, nil
}

// Filename returns the generated file name of an owner type.
func (g *Generator) Filename(owner string) string {
	return common.SnakeCase(owner) + g.config.FileSuffix
}

func (g *Generator) generateOwner(pkgName string, owner plan.ResolvedOwner) (*GeneratedFile, error) {
	ctx := NewOwnerContext(owner)

	imports := ownerImports(owner)
	if err := checkImportNames(imports); err != nil {
		return nil, err
	}

	std, other := lo.FilterReject(imports, func(i decl.Import, _ int) bool {
		return isStdImport(i.Path)
	})

	data := &fileData{
		Header:       Header,
		PackageName:  pkgName,
		Owner:        owner.Name,
		StdImports:   std,
		OtherImports: other,
	}

	for _, prop := range owner.Properties {
		pair, err := Synthesize(prop, ctx)
		if err != nil {
			return nil, err
		}

		data.Accessors = append(data.Accessors, pair)
	}

	filename := g.Filename(owner.Name)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.fs != nil && g.config.DebugDir != "" {
			if werr := writeDebugUnformatted(g.fs, g.config.DebugDir, filename, buf.Bytes()); werr != nil {
				g.logger.Warn("writing unformatted sidecar", zap.String("file", filename), zap.Error(werr))
			}
		}

		return &GeneratedFile{
			Filename: filename,
			Owner:    owner.Name,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Owner:    owner.Name,
		Content:  formatted,
	}, nil
}

// ownerImports collects the imports referenced by the owner's properties,
// plus the runtime package when an encoded property needs it.
func ownerImports(owner plan.ResolvedOwner) []decl.Import {
	imports := lo.FlatMap(owner.Properties, func(p plan.ResolvedProperty, _ int) []decl.Import {
		return p.Imports
	})

	encoded := lo.ContainsBy(owner.Properties, func(p plan.ResolvedProperty) bool {
		return p.Classification.Strategy == plan.StrategyEncodedWithDefault
	})
	if encoded {
		imports = append(imports, decl.Import{Name: runtimePackageName, Path: RuntimeImportPath})
	}

	// A path imported under two names in different source files is kept twice.
	imports = lo.UniqBy(imports, func(i decl.Import) string {
		return i.Name + " " + i.Path
	})

	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path != imports[j].Path {
			return imports[i].Path < imports[j].Path
		}

		return imports[i].Alias < imports[j].Alias
	})

	return imports
}

// checkImportNames fails when one local name would refer to two packages.
func checkImportNames(imports []decl.Import) error {
	paths := make(map[string]string, len(imports))

	for _, i := range imports {
		if other, ok := paths[i.Name]; ok && other != i.Path {
			return fmt.Errorf("package name %s refers to both %q and %q", i.Name, other, i.Path)
		}

		paths[i.Name] = i.Path
	}

	return nil
}

// isStdImport reports whether path belongs to the standard library, whose
// first path element never contains a dot.
func isStdImport(path string) bool {
	first, _, _ := strings.Cut(path, "/")

	return !strings.Contains(first, ".")
}
