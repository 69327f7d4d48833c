// Package validator abstracts struct validation for request and domain
// types.
//
// Business code depends on the Validator interface; the concrete
// go-playground/validator v10 implementation, including custom rules,
// lives here.
package validator
