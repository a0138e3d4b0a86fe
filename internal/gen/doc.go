// Package gen renders accessor methods for resolved persisted properties.
//
// Generation uses text/template + go/format. Each property becomes a getter
// and a setter on its owner type, in one of two shapes:
//   - Direct: the raw store value is narrowed with a type assertion
//   - Encoded: the raw value goes through kvstore.Decode and kvstore.Encode
//
// Getters report the read to the owner's registrar; setters write inside
// the registrar's WithMutation.
package gen
