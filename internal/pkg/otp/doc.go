// Package otp generates short-lived numeric one-time codes.
//
// Codes prove control of an email address before registration completes
// or a password is reset. They are random (not counter or time based),
// generated from crypto/rand, and compared as strings.
package otp
