package favorite

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	favoriteerrors "github.com/juandiego305/Gestion-candidatos/internal/favorite/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

// UserLookup resolves a user id to an actor snapshot.
type UserLookup interface {
	LoadActor(ctx context.Context, userID int64) (identity.Actor, error)
}

//go:generate mockgen -source=favorite_service.go -destination=mock/favorite_service_mock.go -package=mock
type Service interface {
	Add(ctx context.Context, actor identity.Actor, candidateID int64) (*FavoriteResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]FavoriteResponse, error)
	Remove(ctx context.Context, actor identity.Actor, id int64) error
}

type service struct {
	repo     Repository
	users    UserLookup
	resolver *identity.Resolver
	logger   *zap.Logger
}

func NewService(repo Repository, users UserLookup, resolver *identity.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("favorite.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("favorite.service")
	}
	return &service{repo: repo, users: users, resolver: resolver, logger: l}
}

// Add bookmarks a candidate. Re-adding an existing favorite returns the
// existing row.
func (s *service) Add(ctx context.Context, actor identity.Actor, candidateID int64) (*FavoriteResponse, error) {
	if err := s.requireStaff(ctx, actor); err != nil {
		return nil, err
	}

	target, err := s.users.LoadActor(ctx, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, favoriteerrors.ErrCandidateNotFound
		}
		return nil, err
	}
	if s.resolver.ResolveActor(ctx, target) != identity.RoleCandidate {
		return nil, favoriteerrors.ErrTargetNotCandidate
	}

	if existing, err := s.repo.GetByPair(ctx, actor.ID, candidateID); err == nil {
		return mapToResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &Favorite{RRHHUserID: actor.ID, CandidateID: candidateID}
	if err := s.repo.Create(ctx, f); err != nil {
		if isUniqueViolation(err) {
			if existing, getErr := s.repo.GetByPair(ctx, actor.ID, candidateID); getErr == nil {
				return mapToResponse(existing), nil
			}
		}
		return nil, err
	}

	return mapToResponse(f), nil
}

func (s *service) List(ctx context.Context, actor identity.Actor) ([]FavoriteResponse, error) {
	if err := s.requireStaff(ctx, actor); err != nil {
		return nil, err
	}

	favorites, err := s.repo.ListByRRHH(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		out[i] = *mapToResponse(&favorites[i])
	}
	return out, nil
}

func (s *service) Remove(ctx context.Context, actor identity.Actor, id int64) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return favoriteerrors.ErrFavoriteNotFound
		}
		return err
	}
	if f.RRHHUserID != actor.ID {
		return favoriteerrors.ErrFavoriteNotFound
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) requireStaff(ctx context.Context, actor identity.Actor) error {
	switch s.resolver.ResolveActor(ctx, actor) {
	case identity.RoleRRHH, identity.RoleAdmin:
		return nil
	}
	return favoriteerrors.ErrNotStaff
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(f *Favorite) *FavoriteResponse {
	return &FavoriteResponse{
		ID:          f.ID,
		RRHHUserID:  f.RRHHUserID,
		CandidateID: f.CandidateID,
		CreatedAt:   f.CreatedAt,
	}
}
