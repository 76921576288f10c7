package assignment

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	assignmenterrors "github.com/juandiego305/Gestion-candidatos/internal/assignment/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/scope"
	vacancyerrors "github.com/juandiego305/Gestion-candidatos/internal/vacancy/errors"
)

// Directory resolves a username-or-email identifier to an actor snapshot.
type Directory interface {
	FindActor(ctx context.Context, identifier string) (identity.Actor, error)
}

// VacancyCompany resolves which company a vacancy belongs to.
type VacancyCompany interface {
	CompanyID(ctx context.Context, vacancyID int64) (int64, error)
}

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	Assign(ctx context.Context, actor identity.Actor, req AssignRequest) (*AssignmentResponse, error)
	ListByVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) ([]AssignmentResponse, error)
	Remove(ctx context.Context, actor identity.Actor, id int64) error
}

type service struct {
	repo      Repository
	directory Directory
	vacancies VacancyCompany
	resolver  *identity.Resolver
	checker   *scope.Checker
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	directory Directory,
	vacancies VacancyCompany,
	resolver *identity.Resolver,
	checker *scope.Checker,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		vacancies: vacancies,
		resolver:  resolver,
		checker:   checker,
		logger:    l,
	}
}

// Assign links an RRHH user to a vacancy. The caller must resolve to the
// admin role and own the vacancy's company; the target must resolve to the
// RRHH role and belong to that same company, by ownership or by the identity
// store's association. Repeating an existing assignment returns the existing
// row.
func (s *service) Assign(ctx context.Context, actor identity.Actor, req AssignRequest) (*AssignmentResponse, error) {
	companyID, err := s.vacancies.CompanyID(ctx, req.VacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
		return nil, err
	}

	if s.resolver.ResolveActor(ctx, actor) != identity.RoleAdmin {
		return nil, assignmenterrors.ErrAssignerNotAdmin
	}

	owner, err := s.checker.IsOwner(ctx, actor.ID, companyID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, assignmenterrors.ErrNotVacancyOwner
	}

	target, err := s.directory.FindActor(ctx, strings.TrimSpace(req.RRHH))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmenterrors.ErrRRHHNotFound
		}
		return nil, err
	}

	if s.resolver.ResolveActor(ctx, target) != identity.RoleRRHH {
		return nil, assignmenterrors.ErrTargetNotRRHH
	}

	match, err := s.belongsToCompany(ctx, target, companyID)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, assignmenterrors.ErrCompanyMismatch
	}

	if existing, err := s.repo.GetByVacancyAndUser(ctx, req.VacancyID, target.ID); err == nil {
		return mapToResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	a := &VacancyAssignment{
		VacancyID:  req.VacancyID,
		RRHHUserID: target.ID,
		AssignedBy: actor.ID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		// A concurrent call may have inserted the pair first; converge on it.
		if isUniqueViolation(err) {
			if existing, getErr := s.repo.GetByVacancyAndUser(ctx, req.VacancyID, target.ID); getErr == nil {
				return mapToResponse(existing), nil
			}
		}
		return nil, err
	}

	s.logger.Info("rrhh assigned to vacancy",
		zap.Int64("vacancy_id", req.VacancyID),
		zap.Int64("rrhh_user_id", target.ID),
		zap.Int64("assigned_by", actor.ID),
	)

	return mapToResponse(a), nil
}

// belongsToCompany accepts the union of ownership and the identity store's
// company association, so sync lag between the two never rejects a valid
// assignment.
func (s *service) belongsToCompany(ctx context.Context, target identity.Actor, companyID int64) (bool, error) {
	owns, err := s.checker.IsOwner(ctx, target.ID, companyID)
	if err != nil {
		return false, err
	}
	if owns {
		return true, nil
	}

	if externalID, ok := s.resolver.CompanyID(ctx, target.ID, target.Email); ok && externalID == companyID {
		return true, nil
	}
	return false, nil
}

func (s *service) ListByVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) ([]AssignmentResponse, error) {
	ok, err := s.checker.AuthorizedForVacancy(ctx, actor, vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
		return nil, err
	}
	if !ok {
		return nil, vacancyerrors.ErrVacancyAccessDenied
	}

	assignments, err := s.repo.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}

	out := make([]AssignmentResponse, len(assignments))
	for i := range assignments {
		out[i] = *mapToResponse(&assignments[i])
	}
	return out, nil
}

func (s *service) Remove(ctx context.Context, actor identity.Actor, id int64) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return assignmenterrors.ErrAssignmentNotFound
		}
		return err
	}

	companyID, err := s.vacancies.CompanyID(ctx, a.VacancyID)
	if err != nil {
		return err
	}
	owner, err := s.checker.IsOwner(ctx, actor.ID, companyID)
	if err != nil {
		return err
	}
	if !owner {
		return assignmenterrors.ErrNotVacancyOwner
	}

	return s.repo.Delete(ctx, id)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(a *VacancyAssignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:         a.ID,
		VacancyID:  a.VacancyID,
		RRHHUserID: a.RRHHUserID,
		AssignedBy: a.AssignedBy,
		CreatedAt:  a.CreatedAt,
	}
}
