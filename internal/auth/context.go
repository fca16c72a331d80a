package auth

import "context"

type contextKey struct{}

// AuthContext carries the authenticated identity for a request. Owner is
// the partition identity every note operation is scoped to.
type AuthContext struct {
	Owner string
	Name  string
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// Owner returns the authenticated owner identity, or "" when the request
// is unauthenticated.
func Owner(ctx context.Context) string {
	ac, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return ac.Owner
}
