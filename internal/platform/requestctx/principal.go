// Package requestctx carries the authenticated caller through a request.
package requestctx

import "context"

// Principal is the signed-in identity a request acts on behalf of.
type Principal struct {
	UserID int64
	Email  string
	Name   string
}

// principalContextKey is the context key for the authenticated principal.
type principalContextKey struct{}

// WithPrincipal stores the authenticated principal in context.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the principal stored in context, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	value, ok := ctx.Value(principalContextKey{}).(Principal)
	return value, ok
}
