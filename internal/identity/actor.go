package identity

import "context"

// Actor is the caller identity flowing from the auth middleware into the
// services. LocalRole is the primary-store role attribute; it may be empty
// for accounts that only exist in the external store.
type Actor struct {
	ID        int64
	Username  string
	Email     string
	LocalRole string
}

// ResolveActor applies the standard resolution order to an Actor.
func (r *Resolver) ResolveActor(ctx context.Context, a Actor) Role {
	return r.Resolve(ctx, a.ID, a.Email, a.LocalRole)
}
