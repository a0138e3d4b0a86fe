// Package observation implements kvstore.Registrar with property observers
// and access tracking.
//
// Observers registered with Observe are called around every mutation of the
// observed property. Track reports which properties a function read, which is
// how dependent values know what to watch.
package observation
