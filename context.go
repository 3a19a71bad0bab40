package keyed

import "context"

// scopeKey is the context key under which the ambient scope travels through
// a request pipeline.
type scopeKey struct{}

// WithScope returns a context carrying the scope.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFrom extracts the ambient scope from a context, if one was attached
// by WithScope or the HTTP middleware.
func ScopeFrom(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok
}
