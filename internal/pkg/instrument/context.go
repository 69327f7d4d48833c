package instrument

import "context"

// correlationIDKey is the context key under which the request
// correlation ID is stored.
type correlationIDKey struct{}

// SetCorrelationID returns a copy of ctx carrying the given correlation ID.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in ctx, or an empty
// string when none is present.
func GetCorrelationID(ctx context.Context) string {
	if cID, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return cID
	}
	return ""
}
