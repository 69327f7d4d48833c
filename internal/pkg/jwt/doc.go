// Package jwt issues and verifies JSON Web Tokens.
//
// It wraps the registered claims with a strongly-typed payload, signs
// with symmetric HS512, and provides context helpers so authenticated
// claims travel with the request.
package jwt
