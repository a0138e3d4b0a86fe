// Package kvstore is the runtime used by kvgen generated accessors.
//
// Generated getters read raw values from a Store and report the read to a
// Registrar; generated setters write inside Registrar.WithMutation so that
// observers see the change. Values of the six direct kinds (string, int, bool,
// time.Time, []byte, float64) are stored as they are. Everything else goes
// through Encode and Decode.
package kvstore
