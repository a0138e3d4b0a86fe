package plan

import (
	"go/token"

	"github.com/kominak/ObservableUserDefault/internal/config"
	"github.com/kominak/ObservableUserDefault/internal/decl"
	"github.com/kominak/ObservableUserDefault/internal/diagnostic"
)

// ResolvedPlan is the final output of the resolution pipeline for one package.
// It contains everything needed for code generation.
type ResolvedPlan struct {
	PackagePath string
	PackageName string
	// Dir is the package directory; generated files are written there by default.
	Dir string
	// Owners are sorted by name.
	Owners []ResolvedOwner
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// PropertyCount returns the number of resolved properties across all owners.
func (p *ResolvedPlan) PropertyCount() int {
	n := 0
	for _, o := range p.Owners {
		n += len(o.Properties)
	}

	return n
}

// ResolvedOwner groups the properties generated on one owner type.
type ResolvedOwner struct {
	Name     string
	Settings config.OwnerSettings
	// Properties are in source order.
	Properties []ResolvedProperty
}

// ResolvedProperty is one persisted property ready for synthesis.
type ResolvedProperty struct {
	Owner      string
	Name       string
	GetterName string
	SetterName string
	// StoreKey is the key used with kvstore.Store (key prefix + name).
	StoreKey string
	// ObservationKey identifies the property towards the registrar.
	ObservationKey string
	Classification Classification
	Imports        []decl.Import
	Position       token.Position
}
