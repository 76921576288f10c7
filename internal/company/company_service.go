package company

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	companyerrors "github.com/juandiego305/Gestion-candidatos/internal/company/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/scope"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
)

// OwnerPromoter raises the local role of a company's new owner.
type OwnerPromoter interface {
	UpdateRole(ctx context.Context, id int64, role string) error
}

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id int64) (*CompanyResponse, error)
	ListMine(ctx context.Context, actor identity.Actor) ([]CompanyResponse, error)
	Update(ctx context.Context, actor identity.Actor, id int64, req UpdateCompanyRequest) (*CompanyResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id int64) error
	UploadLogo(ctx context.Context, actor identity.Actor, id int64, filename, contentType string, data []byte) (*CompanyResponse, error)
}

type service struct {
	repo     Repository
	promoter OwnerPromoter
	resolver *identity.Resolver
	checker  *scope.Checker
	gateway  *storage.Gateway
	logger   *zap.Logger
}

func NewService(
	repo Repository,
	promoter OwnerPromoter,
	resolver *identity.Resolver,
	checker *scope.Checker,
	gateway *storage.Gateway,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		repo:     repo,
		promoter: promoter,
		resolver: resolver,
		checker:  checker,
		gateway:  gateway,
		logger:   l,
	}
}

// Create registers a company and makes the caller its owner. The owner is
// promoted to admin locally and, best effort, in the external identity store.
func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateCompanyRequest) (*CompanyResponse, error) {
	c := &Company{
		Name:        req.Name,
		NIT:         req.NIT,
		OwnerID:     actor.ID,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, mapRepositoryError(err)
	}

	if err := s.promoter.UpdateRole(ctx, actor.ID, string(identity.RoleAdmin)); err != nil {
		s.logger.Warn("owner promotion failed locally, ownership still authorizes",
			zap.Int64("user_id", actor.ID),
			zap.Int64("company_id", c.ID),
			zap.Error(err),
		)
	}
	if err := s.resolver.PromoteToAdmin(ctx, actor.ID, actor.Email); err != nil {
		s.logger.Warn("owner promotion sync to identity store failed",
			zap.Int64("user_id", actor.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("company created",
		zap.Int64("company_id", c.ID),
		zap.Int64("owner_id", actor.ID),
	)

	return mapToResponse(c), nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id int64) (*CompanyResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	ok, err := s.checker.AuthorizedForCompany(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, companyerrors.ErrCompanyAccessDenied
	}

	return mapToResponse(c), nil
}

func (s *service) ListMine(ctx context.Context, actor identity.Actor) ([]CompanyResponse, error) {
	companies, err := s.repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = *mapToResponse(&companies[i])
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id int64, req UpdateCompanyRequest) (*CompanyResponse, error) {
	c, err := s.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Address != "" {
		c.Address = req.Address
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.Email != "" {
		c.Email = req.Email
	}
	if req.Description != "" {
		c.Description = req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToResponse(c), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id int64) error {
	c, err := s.requireOwned(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if key, ok := storage.KeyFromPublicURL(c.LogoURL, storage.BucketLogos); ok {
		if err := s.gateway.Remove(ctx, storage.BucketLogos, key); err != nil {
			s.logger.Warn("logo cleanup failed",
				zap.Int64("company_id", id),
				zap.Error(err),
			)
		}
	}
	return nil
}

// UploadLogo stores the new image and swaps the reference, removing the old
// object when one exists.
func (s *service) UploadLogo(ctx context.Context, actor identity.Actor, id int64, filename, contentType string, data []byte) (*CompanyResponse, error) {
	c, err := s.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	publicURL, err := s.gateway.Replace(ctx, storage.BucketLogos, c.ID, c.LogoURL, filename, data, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLogoURL(ctx, id, publicURL); err != nil {
		return nil, mapRepositoryError(err)
	}
	c.LogoURL = publicURL

	return mapToResponse(c), nil
}

func (s *service) requireOwned(ctx context.Context, actor identity.Actor, id int64) (*Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	if c.OwnerID != actor.ID {
		return nil, companyerrors.ErrNotCompanyOwner
	}
	return c, nil
}

func mapToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		NIT:         c.NIT,
		OwnerID:     c.OwnerID,
		Address:     c.Address,
		Phone:       c.Phone,
		Email:       c.Email,
		Description: c.Description,
		LogoURL:     c.LogoURL,
		CreatedAt:   c.CreatedAt,
	}
}
