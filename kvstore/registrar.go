package kvstore

// Registrar is notified of every generated accessor call.
//
// Access is called by getters before the store is read. WithMutation is called
// by setters and must run mutate exactly once, synchronously.
type Registrar interface {
	Access(subject any, key string)
	WithMutation(subject any, key string, mutate func())
}

// NopRegistrar is a Registrar that observes nothing.
type NopRegistrar struct{}

func (NopRegistrar) Access(any, string) {}

func (NopRegistrar) WithMutation(_ any, _ string, mutate func()) {
	mutate()
}
