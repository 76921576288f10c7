package user

import (
	"context"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

// ActorLoader adapts the user repository to the lookups the middleware
// layer needs without importing it.
type ActorLoader struct {
	repo Repository
}

func NewActorLoader(repo Repository) *ActorLoader {
	return &ActorLoader{repo: repo}
}

func (l *ActorLoader) LoadActor(ctx context.Context, userID int64) (identity.Actor, error) {
	u, err := l.repo.GetByID(ctx, userID)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.Actor{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		LocalRole: u.Role,
	}, nil
}

// FindActor resolves a username-or-email identifier to an actor snapshot.
func (l *ActorLoader) FindActor(ctx context.Context, identifier string) (identity.Actor, error) {
	u, err := l.repo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.Actor{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		LocalRole: u.Role,
	}, nil
}

func (l *ActorLoader) EmailForLogin(ctx context.Context, identifier string) (string, error) {
	u, err := l.repo.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}
