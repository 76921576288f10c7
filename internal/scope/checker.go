package scope

import (
	"context"

	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

// CompanyOwnership answers who owns a company in the primary store.
type CompanyOwnership interface {
	OwnerID(ctx context.Context, companyID int64) (int64, error)
}

// VacancyCompany resolves which company a vacancy belongs to.
type VacancyCompany interface {
	CompanyID(ctx context.Context, vacancyID int64) (int64, error)
}

// AssignmentReader reports whether an RRHH user has an explicit assignment
// row for a vacancy.
type AssignmentReader interface {
	IsAssigned(ctx context.Context, vacancyID, userID int64) (bool, error)
}

// Checker decides whether a user is authorized over a company or vacancy.
// Membership is the union of primary-store ownership and the identity store's
// company association; application writes additionally require an assignment
// row.
type Checker struct {
	resolver    *identity.Resolver
	ownership   CompanyOwnership
	vacancies   VacancyCompany
	assignments AssignmentReader
	logger      *zap.Logger
}

func NewChecker(
	resolver *identity.Resolver,
	ownership CompanyOwnership,
	vacancies VacancyCompany,
	assignments AssignmentReader,
	logger ...*zap.Logger,
) *Checker {
	l := zap.L().Named("scope")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scope")
	}
	return &Checker{
		resolver:    resolver,
		ownership:   ownership,
		vacancies:   vacancies,
		assignments: assignments,
		logger:      l,
	}
}

// IsOwner reports whether userID owns companyID. Missing companies are not
// owned by anyone.
func (c *Checker) IsOwner(ctx context.Context, userID, companyID int64) (bool, error) {
	ownerID, err := c.ownership.OwnerID(ctx, companyID)
	if err != nil {
		return false, err
	}
	return ownerID == userID, nil
}

// AuthorizedForCompany reports whether the actor may operate within
// companyID: the actor owns it, or the identity store associates the actor
// with it.
func (c *Checker) AuthorizedForCompany(ctx context.Context, actor identity.Actor, companyID int64) (bool, error) {
	owner, err := c.IsOwner(ctx, actor.ID, companyID)
	if err != nil {
		return false, err
	}
	if owner {
		return true, nil
	}

	if externalID, ok := c.resolver.CompanyID(ctx, actor.ID, actor.Email); ok && externalID == companyID {
		return true, nil
	}
	return false, nil
}

// AuthorizedForVacancy applies AuthorizedForCompany to the vacancy's company.
func (c *Checker) AuthorizedForVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) (bool, error) {
	companyID, err := c.vacancies.CompanyID(ctx, vacancyID)
	if err != nil {
		return false, err
	}
	return c.AuthorizedForCompany(ctx, actor, companyID)
}

// CanManageVacancyApplications gates writes on individual applications.
// Admins qualify by owning the vacancy's company; RRHH users need an explicit
// assignment row, company membership is not enough.
func (c *Checker) CanManageVacancyApplications(ctx context.Context, actor identity.Actor, vacancyID int64) (bool, error) {
	role := c.resolver.ResolveActor(ctx, actor)

	switch role {
	case identity.RoleAdmin:
		companyID, err := c.vacancies.CompanyID(ctx, vacancyID)
		if err != nil {
			return false, err
		}
		return c.IsOwner(ctx, actor.ID, companyID)
	case identity.RoleRRHH:
		return c.assignments.IsAssigned(ctx, vacancyID, actor.ID)
	default:
		return false, nil
	}
}
