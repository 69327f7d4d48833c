package validator

// Validator validates request and domain structs, returning an error
// describing any failed rules.
type Validator interface {
	Validate(data any) error
}
