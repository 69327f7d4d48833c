// Package hash provides helpers for hashing and verifying secrets.
//
// Password hashing (bcrypt, argon2id) stores only the hash and verifies
// user input against it; HMAC variants produce deterministic digests for
// token hashing and webhook signatures. All implementations sit behind
// a small interface so the scheme can be swapped in configuration.
package hash
