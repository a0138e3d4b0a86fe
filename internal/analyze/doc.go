// Package analyze provides package loading and declaration extraction.
//
// It uses golang.org/x/tools/go/packages (syntax only, no type checking, so
// packages that call not-yet-generated accessors still load) to find
// declarations annotated with the persist directive:
//
//	//kvgen:persist Settings
//	var count int = 0
//
// Key types:
//   - Package: one loaded package with its annotated declarations
//   - Owner: a named type declared in the package, with its fields and methods
package analyze
