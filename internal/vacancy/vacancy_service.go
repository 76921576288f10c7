package vacancy

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/scope"
	vacancyerrors "github.com/juandiego305/Gestion-candidatos/internal/vacancy/errors"
)

//go:generate mockgen -source=vacancy_service.go -destination=mock/vacancy_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateVacancyRequest) (*VacancyResponse, error)
	Publish(ctx context.Context, actor identity.Actor, id int64) (*VacancyResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id int64) (*VacancyResponse, error)
	List(ctx context.Context, actor identity.Actor) ([]VacancyResponse, error)
	Update(ctx context.Context, actor identity.Actor, id int64, req UpdateVacancyRequest) (*VacancyResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id int64) error
}

type service struct {
	repo     Repository
	resolver *identity.Resolver
	checker  *scope.Checker
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, resolver *identity.Resolver, checker *scope.Checker, logger ...*zap.Logger) Service {
	l := zap.L().Named("vacancy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacancy.service")
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		checker:  checker,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateVacancyRequest) (*VacancyResponse, error) {
	owner, err := s.checker.IsOwner(ctx, actor.ID, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, vacancyerrors.ErrNotVacancyOwner
	}

	v := &Vacancy{
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
		Status:       StatusDraft,
		ExpiresAt:    req.ExpiresAt,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vacancy created",
		zap.Int64("vacancy_id", v.ID),
		zap.Int64("company_id", v.CompanyID),
	)

	return mapToResponse(v), nil
}

// Publish moves a vacancy to Publicada. The expiration must be strictly in
// the future at the moment of publishing.
func (s *service) Publish(ctx context.Context, actor identity.Actor, id int64) (*VacancyResponse, error) {
	v, err := s.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if v.ExpiresAt == nil {
		return nil, vacancyerrors.ErrMissingExpiration
	}
	if !v.ExpiresAt.After(s.now()) {
		return nil, vacancyerrors.ErrExpirationNotFuture
	}

	v.Status = StatusPublished
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vacancy published",
		zap.Int64("vacancy_id", v.ID),
		zap.Time("expires_at", *v.ExpiresAt),
	)

	return mapToResponse(v), nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id int64) (*VacancyResponse, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
		return nil, err
	}

	switch s.resolver.ResolveActor(ctx, actor) {
	case identity.RoleAdmin, identity.RoleRRHH:
		ok, err := s.checker.AuthorizedForVacancy(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, vacancyerrors.ErrVacancyAccessDenied
		}
	default:
		// Candidates only ever see open vacancies.
		if !v.Open(s.now()) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
	}

	return mapToResponse(v), nil
}

// List is role-scoped: admins see vacancies of companies they own, RRHH the
// vacancies they are assigned to, everyone else what is open to apply.
func (s *service) List(ctx context.Context, actor identity.Actor) ([]VacancyResponse, error) {
	var (
		vacancies []Vacancy
		err       error
	)

	switch s.resolver.ResolveActor(ctx, actor) {
	case identity.RoleAdmin:
		vacancies, err = s.repo.ListByOwner(ctx, actor.ID)
	case identity.RoleRRHH:
		vacancies, err = s.repo.ListAssigned(ctx, actor.ID)
	default:
		vacancies, err = s.repo.ListOpen(ctx, s.now())
	}
	if err != nil {
		return nil, err
	}

	out := make([]VacancyResponse, len(vacancies))
	for i := range vacancies {
		out[i] = *mapToResponse(&vacancies[i])
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id int64, req UpdateVacancyRequest) (*VacancyResponse, error) {
	v, err := s.requireOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		v.Title = req.Title
	}
	if req.Description != "" {
		v.Description = req.Description
	}
	if req.Requirements != "" {
		v.Requirements = req.Requirements
	}
	if req.Location != "" {
		v.Location = req.Location
	}
	if req.Salary != "" {
		v.Salary = req.Salary
	}
	if req.ExpiresAt != nil {
		if v.Status == StatusPublished && !req.ExpiresAt.After(s.now()) {
			return nil, vacancyerrors.ErrExpirationNotFuture
		}
		v.ExpiresAt = req.ExpiresAt
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return mapToResponse(v), nil
}

func (s *service) Delete(ctx context.Context, actor identity.Actor, id int64) error {
	if _, err := s.requireOwned(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) requireOwned(ctx context.Context, actor identity.Actor, id int64) (*Vacancy, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
		return nil, err
	}

	owner, err := s.checker.IsOwner(ctx, actor.ID, v.CompanyID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, vacancyerrors.ErrNotVacancyOwner
	}
	return v, nil
}

func mapToResponse(v *Vacancy) *VacancyResponse {
	return &VacancyResponse{
		ID:           v.ID,
		CompanyID:    v.CompanyID,
		Title:        v.Title,
		Description:  v.Description,
		Requirements: v.Requirements,
		Location:     v.Location,
		Salary:       v.Salary,
		Status:       v.Status,
		ExpiresAt:    v.ExpiresAt,
		CreatedAt:    v.CreatedAt,
	}
}
