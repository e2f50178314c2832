// Package services contains stateless domain services for the shipping system.
//
// The package currently provides the operating-window policy: a pure predicate
// deciding whether order mutations (pickup, update, cancellation) are allowed
// at a given wall-clock time. It holds no state and performs no I/O, so it can
// be evaluated anywhere a timestamp is available.
package services
