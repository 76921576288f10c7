package user

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	usererrors "github.com/juandiego305/Gestion-candidatos/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	CreateWithRole(ctx context.Context, actor identity.Actor, req CreateWithRoleRequest) (*UserResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]UserResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id int64) (*UserResponse, error)
	UpdateRole(ctx context.Context, actor identity.Actor, id int64, req UpdateRoleRequest) (*UserResponse, error)
}

type service struct {
	repo     Repository
	resolver *identity.Resolver
	store    identity.Store
	logger   *zap.Logger
}

func NewService(repo Repository, resolver *identity.Resolver, store identity.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, resolver: resolver, store: store, logger: l}
}

// Register creates a public account. The requested role, if any, is ignored:
// self-registration always yields a candidate.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      string(identity.RoleCandidate),
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("role", u.Role),
	)

	return mapToResponse(u), nil
}

func (s *service) CreateWithRole(ctx context.Context, actor identity.Actor, req CreateWithRoleRequest) (*UserResponse, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	role := identity.NormalizeRole(req.Role)
	switch role {
	case identity.RoleAdmin, identity.RoleRRHH, identity.RoleCandidate:
	default:
		return nil, usererrors.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      string(role),
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapRepositoryError(err)
	}

	// Mirror the role into the external store; sync lag is tolerated.
	if err := s.store.UpdateRole(ctx, u.Email, role); err != nil {
		s.logger.Warn("identity store role sync failed",
			zap.Int64("user_id", u.ID),
			zap.String("role", string(role)),
			zap.Error(err),
		)
	}

	return mapToResponse(u), nil
}

func (s *service) List(ctx context.Context, actor identity.Actor) ([]UserResponse, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = *mapToResponse(&users[i])
	}
	return out, nil
}

// GetByID allows admins to read any user and everyone else only themselves.
func (s *service) GetByID(ctx context.Context, actor identity.Actor, id int64) (*UserResponse, error) {
	if actor.ID != id {
		if err := s.requireAdmin(ctx, actor); err != nil {
			return nil, err
		}
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	return mapToResponse(u), nil
}

func (s *service) UpdateRole(ctx context.Context, actor identity.Actor, id int64, req UpdateRoleRequest) (*UserResponse, error) {
	if err := s.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}

	role := identity.NormalizeRole(req.Role)
	switch role {
	case identity.RoleAdmin, identity.RoleRRHH, identity.RoleCandidate:
	default:
		return nil, usererrors.ErrInvalidRole
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, string(role)); err != nil {
		return nil, err
	}
	u.Role = string(role)

	if err := s.store.UpdateRole(ctx, u.Email, role); err != nil {
		s.logger.Warn("identity store role sync failed",
			zap.Int64("user_id", id),
			zap.String("role", string(role)),
			zap.Error(err),
		)
	}

	return mapToResponse(u), nil
}

func (s *service) requireAdmin(ctx context.Context, actor identity.Actor) error {
	if s.resolver.ResolveActor(ctx, actor) != identity.RoleAdmin {
		return usererrors.ErrNotAdmin
	}
	return nil
}

func mapToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
