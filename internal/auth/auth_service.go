package auth

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/juandiego305/Gestion-candidatos/internal/auth/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/user"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPair, AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error)
	GetMe(ctx context.Context, userID int64) (*AuthResponse, error)
}

type service struct {
	users    user.Repository
	resolver *identity.Resolver
	logger   *zap.Logger
}

func NewService(users user.Repository, resolver *identity.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, resolver: resolver, logger: l}
}

// Login authenticates by username or email. The role in the response and in
// the tokens comes from the resolver; an unreachable identity store with no
// local role falls back to candidate rather than locking the user out of the
// least-privileged surface.
func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPair, AuthResponse, error) {
	u, err := s.users.GetByUsernameOrEmail(ctx, req.Identifier())
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserInactive
	}

	role := s.resolveRole(ctx, u)
	pair, err := s.tokenPair(u, role)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.Int64("user_id", u.ID),
		zap.String("role", string(role)),
	)

	return pair, mapToResponse(u, role), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPair, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return TokenPair{}, AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, int64(rawID))
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrUserNotFound
	}

	role := s.resolveRole(ctx, u)
	pair, err := s.tokenPair(u, role)
	if err != nil {
		return TokenPair{}, AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return pair, mapToResponse(u, role), nil
}

func (s *service) GetMe(ctx context.Context, userID int64) (*AuthResponse, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	role := s.resolveRole(ctx, u)
	resp := mapToResponse(u, role)
	return &resp, nil
}

func (s *service) resolveRole(ctx context.Context, u *user.User) identity.Role {
	role := s.resolver.Resolve(ctx, u.ID, u.Email, u.Role)
	if role == identity.RoleUnknown {
		role = identity.RoleCandidate
	}
	return role
}

func (s *service) tokenPair(u *user.User, role identity.Role) (TokenPair, error) {
	access, err := generateToken(u, role, accessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := generateToken(u, role, refreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generateToken(u *user.User, role identity.Role, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"sub":      strconv.FormatInt(u.ID, 10),
		"email":    u.Email,
		"username": u.Username,
		"rol":      string(role),
		"exp":      time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(u *user.User, role identity.Role) AuthResponse {
	return AuthResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     string(role),
	}
}
