package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/kominak/ObservableUserDefault/internal/config"
	"github.com/kominak/ObservableUserDefault/internal/plan"
)

// RuntimeImportPath is the import path of the package generated code calls into.
const RuntimeImportPath = "github.com/kominak/ObservableUserDefault/kvstore"

// runtimePackageName is the name generated code uses for RuntimeImportPath.
const runtimePackageName = "kvstore"

// OwnerContext names what generated methods refer to on their owner.
type OwnerContext struct {
	TypeName       string
	Receiver       string
	StoreField     string
	RegistrarField string
}

// NewOwnerContext builds the context of a resolved owner.
func NewOwnerContext(o plan.ResolvedOwner) OwnerContext {
	return OwnerContext{
		TypeName:       o.Name,
		Receiver:       o.Settings.Receiver,
		StoreField:     o.Settings.StoreField,
		RegistrarField: o.Settings.RegistrarField,
	}
}

// AccessorPair holds the Go source of one property's methods.
type AccessorPair struct {
	Getter string
	Setter string
}

// accessorData is the template input for one property.
type accessorData struct {
	OwnerContext

	Property       string
	GetterName     string
	SetterName     string
	StoreKey       string
	ObservationKey string
	BaseType       string
	DefaultValue   string
	Optional       bool
}

// Synthesize renders the getter and setter of p. The output only depends on
// its arguments.
func Synthesize(p plan.ResolvedProperty, o OwnerContext) (AccessorPair, error) {
	if err := checkInput(p, o); err != nil {
		return AccessorPair{}, fmt.Errorf("property %s.%s: %w", o.TypeName, p.Name, err)
	}

	c := p.Classification
	data := accessorData{
		OwnerContext:   o,
		Property:       p.Name,
		GetterName:     p.GetterName,
		SetterName:     p.SetterName,
		StoreKey:       p.StoreKey,
		ObservationKey: p.ObservationKey,
		BaseType:       c.BaseType,
		DefaultValue:   c.DefaultValue,
		Optional:       c.Optional,
	}

	getter, setter := directGetterTemplate, directSetterTemplate
	if c.Strategy == plan.StrategyEncodedWithDefault {
		getter, setter = encodedGetterTemplate, encodedSetterTemplate
	}

	g, err := execute(getter, data)
	if err != nil {
		return AccessorPair{}, err
	}

	s, err := execute(setter, data)
	if err != nil {
		return AccessorPair{}, err
	}

	return AccessorPair{Getter: g, Setter: s}, nil
}

func checkInput(p plan.ResolvedProperty, o OwnerContext) error {
	c := p.Classification

	switch {
	case c.Strategy != plan.StrategyDirectOptional &&
		c.Strategy != plan.StrategyDirectWithDefault &&
		c.Strategy != plan.StrategyEncodedWithDefault:
		return fmt.Errorf("invalid strategy %s", c.Strategy)
	case c.Strategy == plan.StrategyDirectOptional && !c.Optional:
		return errors.New("direct optional strategy on a non-pointer property")
	case strings.TrimSpace(c.BaseType) == "":
		return errors.New("empty base type")
	case strings.TrimSpace(c.DefaultValue) == "":
		return errors.New("empty default value")
	}

	for _, id := range []string{o.TypeName, o.Receiver, o.StoreField, o.RegistrarField, p.GetterName, p.SetterName} {
		if !token.IsIdentifier(id) || id == "_" {
			return fmt.Errorf("%q is not a usable identifier", id)
		}
	}

	if slices.Contains(config.ReservedReceivers, o.Receiver) {
		return fmt.Errorf("receiver %q is reserved", o.Receiver)
	}

	return nil
}

func execute(t *template.Template, data accessorData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", t.Name(), err)
	}

	return strings.TrimSpace(buf.String()), nil
}

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

var directGetterTemplate = template.Must(template.New("direct_getter").Funcs(templateFuncs).Parse(`
// {{.GetterName}} returns the persisted {{.Property}} value, or its default when the store holds none.
func ({{.Receiver}} *{{.TypeName}}) {{.GetterName}}() {{if .Optional}}*{{end}}{{.BaseType}} {
	{{.Receiver}}.{{.RegistrarField}}.Access({{.Receiver}}, {{quote .ObservationKey}})
	if raw, ok := {{.Receiver}}.{{.StoreField}}.Get({{quote .StoreKey}}); ok {
		if value, ok := raw.({{.BaseType}}); ok {
			return {{if .Optional}}&{{end}}value
		}
	}

	return {{.DefaultValue}}
}
`))

var directSetterTemplate = template.Must(template.New("direct_setter").Funcs(templateFuncs).Parse(`
// {{.SetterName}} persists {{.Property}}{{if .Optional}}; nil removes the stored value{{end}}.
func ({{.Receiver}} *{{.TypeName}}) {{.SetterName}}(value {{if .Optional}}*{{end}}{{.BaseType}}) {
	{{.Receiver}}.{{.RegistrarField}}.WithMutation({{.Receiver}}, {{quote .ObservationKey}}, func() {
{{- if .Optional}}
		if value == nil {
			{{.Receiver}}.{{.StoreField}}.Delete({{quote .StoreKey}})
			return
		}

		{{.Receiver}}.{{.StoreField}}.Set({{quote .StoreKey}}, *value)
{{- else}}
		{{.Receiver}}.{{.StoreField}}.Set({{quote .StoreKey}}, value)
{{- end}}
	})
}
`))

var encodedGetterTemplate = template.Must(template.New("encoded_getter").Funcs(templateFuncs).Parse(`
// {{.GetterName}} returns the persisted {{.Property}} value, or its default when the store holds none
// or the stored value cannot be decoded.
func ({{.Receiver}} *{{.TypeName}}) {{.GetterName}}() {{if .Optional}}*{{end}}{{.BaseType}} {
	{{.Receiver}}.{{.RegistrarField}}.Access({{.Receiver}}, {{quote .ObservationKey}})
	if raw, ok := {{.Receiver}}.{{.StoreField}}.Get({{quote .StoreKey}}); ok {
		if value, ok := kvstore.Decode[{{.BaseType}}](raw); ok {
			return {{if .Optional}}&{{end}}value
		}
	}

	return {{.DefaultValue}}
}
`))

var encodedSetterTemplate = template.Must(template.New("encoded_setter").Funcs(templateFuncs).Parse(`
// {{.SetterName}} encodes and persists {{.Property}}{{if .Optional}}; nil removes the stored value{{end}}.
// Values that cannot be encoded are dropped.
func ({{.Receiver}} *{{.TypeName}}) {{.SetterName}}(value {{if .Optional}}*{{end}}{{.BaseType}}) {
	{{.Receiver}}.{{.RegistrarField}}.WithMutation({{.Receiver}}, {{quote .ObservationKey}}, func() {
{{- if .Optional}}
		if value == nil {
			{{.Receiver}}.{{.StoreField}}.Delete({{quote .StoreKey}})
			return
		}

		if raw, ok := kvstore.Encode(*value); ok {
{{- else}}
		if raw, ok := kvstore.Encode(value); ok {
{{- end}}
			{{.Receiver}}.{{.StoreField}}.Set({{quote .StoreKey}}, raw)
		}
	})
}
`))
