// Package decl defines the syntax model the generator consumes: one annotated
// property declaration, expressed as a closed set of node variants.
//
// Node variants:
//   - Keyword: var, const, or anything else carrying the directive
//   - Pattern: IdentifierPattern or OtherPattern (e.g. the blank identifier)
//   - TypeAnnotation: OptionalType (*T) or PlainType; nil when absent
//
// The frontend in package analyze builds these values from Go source; the
// plan package only reads them.
package decl
