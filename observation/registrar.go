package observation

import (
	"slices"
	"sync"

	"github.com/kominak/ObservableUserDefault/kvstore"
)

var _ kvstore.Registrar = (*Registrar)(nil)

// Key identifies one property of one subject. Subject must be comparable;
// generated accessors pass their pointer receiver.
type Key struct {
	Subject any
	Name    string
}

// Phase tells an observer whether the mutation is about to happen or is done.
type Phase int

const (
	WillSet Phase = iota
	DidSet
)

func (p Phase) String() string {
	if p == DidSet {
		return "did-set"
	}

	return "will-set"
}

// Event is passed to observers.
type Event struct {
	Key   Key
	Phase Phase
}

// Observer is called for every mutation of an observed property.
type Observer func(Event)

// Registrar records property reads and notifies observers of writes.
// The zero value is ready to use and safe for concurrent use. Observers run
// on the mutating goroutine without any lock held, so they may call back into
// the Registrar.
type Registrar struct {
	mu        sync.Mutex
	nextID    int
	observers map[Key]map[int]Observer
	scopes    map[int]*scope
}

type scope struct {
	seen map[Key]bool
	keys []Key
}

// New creates a Registrar.
func New() *Registrar {
	return &Registrar{}
}

// Access records a read of key on subject in every active Track scope.
func (r *Registrar) Access(subject any, key string) {
	k := Key{Subject: subject, Name: key}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.scopes {
		if s.seen[k] {
			continue
		}

		s.seen[k] = true
		s.keys = append(s.keys, k)
	}
}

// WithMutation notifies WillSet observers, runs mutate, then notifies DidSet
// observers. Observers registered during the mutation are not called for it.
func (r *Registrar) WithMutation(subject any, key string, mutate func()) {
	k := Key{Subject: subject, Name: key}
	observers := r.snapshot(k)

	for _, fn := range observers {
		fn(Event{Key: k, Phase: WillSet})
	}

	mutate()

	for _, fn := range observers {
		fn(Event{Key: k, Phase: DidSet})
	}
}

// Observe registers fn for mutations of key on subject. The returned function
// removes the registration; calling it more than once is harmless.
func (r *Registrar) Observe(subject any, key string, fn Observer) (cancel func()) {
	k := Key{Subject: subject, Name: key}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.observers == nil {
		r.observers = make(map[Key]map[int]Observer)
	}

	if r.observers[k] == nil {
		r.observers[k] = make(map[int]Observer)
	}

	id := r.nextID
	r.nextID++
	r.observers[k][id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		delete(r.observers[k], id)

		if len(r.observers[k]) == 0 {
			delete(r.observers, k)
		}
	}
}

// Track runs fn and returns the properties it read, in first-read order.
// Reads made by other goroutines while fn runs are recorded too.
func (r *Registrar) Track(fn func()) []Key {
	s := &scope{seen: make(map[Key]bool)}

	r.mu.Lock()
	if r.scopes == nil {
		r.scopes = make(map[int]*scope)
	}

	id := r.nextID
	r.nextID++
	r.scopes[id] = s
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.scopes, id)
		r.mu.Unlock()
	}()

	fn()

	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(s.keys)
}

// ObserverCount returns the number of observers registered for key on subject.
func (r *Registrar) ObserverCount(subject any, key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.observers[Key{Subject: subject, Name: key}])
}

// snapshot returns the observers of k ordered by registration.
func (r *Registrar) snapshot(k Key) []Observer {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int, 0, len(r.observers[k]))
	for id := range r.observers[k] {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	out := make([]Observer, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.observers[k][id])
	}

	return out
}
