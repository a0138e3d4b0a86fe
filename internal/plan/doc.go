// Package plan turns annotated declarations into a ResolvedPlan consumed by
// code generation.
//
// Resolution pipeline, per declaration, strictly in this order:
//  1. Validate the declaration shape (var keyword, one binding, no existing
//     accessors, identifier pattern)
//  2. Check the directive carries exactly one argument (the owner type)
//  3. Classify the binding type into a storage Strategy with a default value
//     expression
//
// Any failure drops the declaration and records an error diagnostic; no
// partial accessors are ever planned.
package plan
