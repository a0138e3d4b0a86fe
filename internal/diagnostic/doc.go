// Package diagnostic provides structured errors, warnings and infos for the
// accessor generator.
//
// Key capabilities:
//   - Per-declaration rejection reasons, keyed by a stable code
//   - Source positions so editors can jump to the offending declaration
//   - "Did you mean" suggestions for misspelled owner types
package diagnostic
