// Package match provides edit-distance based suggestions for misspelled
// identifiers, used to build "did you mean" diagnostics.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate identifiers close to a name
package match
