package domain

import "context"

// Principal is the opaque caller identity supplied by the hosting runtime.
// The core never authenticates it; it only compares it against stored
// owner fields.
type Principal string

func (p Principal) String() string { return string(p) }

// IsZero reports whether no identity was supplied.
func (p Principal) IsZero() bool { return p == "" }

type principalKey struct{}

// WithPrincipal attaches the resolved caller identity to the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// CallerFrom resolves the caller identity from the context. Operations that
// require a caller return ErrUnauthorized when none is attached.
func CallerFrom(ctx context.Context) (Principal, error) {
	p, _ := ctx.Value(principalKey{}).(Principal)
	if p.IsZero() {
		return "", Unauthorizedf("caller identity not supplied")
	}
	return p, nil
}

// RequireOwner is the single ownership check applied by every mutating
// operation: the caller must equal the record's stored owner.
func RequireOwner(caller, owner Principal) error {
	if caller != owner {
		return Unauthorizedf("record belongs to another user")
	}
	return nil
}
