// Package clock abstracts wall-clock time behind an interface.
//
// Code that depends on Clocker rather than time.Now can be tested with
// a fixed or ticking fake, which matters anywhere TTLs and expiry
// windows drive behavior.
package clock
