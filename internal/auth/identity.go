package auth

import "context"

// Identity is the authenticated caller, carried on the request context
// as a typed value rather than a loose string key.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

// Owns reports whether the identity may act on a resource declared to
// belong to ownerID. Pure comparison; the caller is responsible for
// passing the resource's true owner.
func (id Identity) Owns(ownerID string) bool {
	return id.UserID != "" && id.UserID == ownerID
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the identity set by the auth middleware.
// ok is false on unauthenticated (or optional-auth anonymous) requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
