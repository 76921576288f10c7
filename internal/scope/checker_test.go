package scope

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

type fakeIdentityStore struct {
	GetByIDFunc    func(ctx context.Context, id string) (*identity.Record, error)
	GetByEmailFunc func(ctx context.Context, email string) (*identity.Record, error)
	UpdateRoleFunc func(ctx context.Context, email string, role identity.Role) error
}

func (f *fakeIdentityStore) GetByID(ctx context.Context, id string) (*identity.Record, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeIdentityStore) GetByEmail(ctx context.Context, email string) (*identity.Record, error) {
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (f *fakeIdentityStore) UpdateRole(ctx context.Context, email string, role identity.Role) error {
	if f.UpdateRoleFunc != nil {
		return f.UpdateRoleFunc(ctx, email, role)
	}
	return nil
}

type fakeOwnership struct {
	OwnerIDFunc func(ctx context.Context, companyID int64) (int64, error)
}

func (f *fakeOwnership) OwnerID(ctx context.Context, companyID int64) (int64, error) {
	return f.OwnerIDFunc(ctx, companyID)
}

type fakeVacancies struct {
	CompanyIDFunc func(ctx context.Context, vacancyID int64) (int64, error)
}

func (f *fakeVacancies) CompanyID(ctx context.Context, vacancyID int64) (int64, error) {
	return f.CompanyIDFunc(ctx, vacancyID)
}

type fakeAssignments struct {
	IsAssignedFunc func(ctx context.Context, vacancyID, userID int64) (bool, error)
}

func (f *fakeAssignments) IsAssigned(ctx context.Context, vacancyID, userID int64) (bool, error) {
	return f.IsAssignedFunc(ctx, vacancyID, userID)
}

func identityRecord(role string, company string) *identity.Record {
	return &identity.Record{
		ID:      "7",
		Email:   "rrhh@acme.test",
		Role:    role,
		Company: json.RawMessage(company),
	}
}

func newTestChecker(store identity.Store, ownership CompanyOwnership, vacancies VacancyCompany, assignments AssignmentReader) *Checker {
	resolver := identity.NewResolver(store, nil, zap.NewNop())
	return NewChecker(resolver, ownership, vacancies, assignments, zap.NewNop())
}

func TestIsOwner(t *testing.T) {
	ownership := &fakeOwnership{
		OwnerIDFunc: func(ctx context.Context, companyID int64) (int64, error) {
			return 42, nil
		},
	}
	checker := newTestChecker(&fakeIdentityStore{}, ownership, nil, nil)

	owner, err := checker.IsOwner(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = checker.IsOwner(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.False(t, owner)
}

func TestAuthorizedForCompanyOwnerWins(t *testing.T) {
	ownership := &fakeOwnership{
		OwnerIDFunc: func(ctx context.Context, companyID int64) (int64, error) {
			return 42, nil
		},
	}
	store := &fakeIdentityStore{
		GetByIDFunc: func(ctx context.Context, id string) (*identity.Record, error) {
			return nil, errors.New("identity store down")
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*identity.Record, error) {
			return nil, errors.New("identity store down")
		},
	}
	checker := newTestChecker(store, ownership, nil, nil)

	actor := identity.Actor{ID: 42, Email: "owner@acme.test"}
	ok, err := checker.AuthorizedForCompany(context.Background(), actor, 1)
	require.NoError(t, err)
	assert.True(t, ok, "ownership must authorize even when the identity store is unreachable")
}

func TestAuthorizedForCompanyExternalMatch(t *testing.T) {
	ownership := &fakeOwnership{
		OwnerIDFunc: func(ctx context.Context, companyID int64) (int64, error) {
			return 99, nil
		},
	}

	cases := []struct {
		name    string
		company string
		want    bool
	}{
		{"integer company id", `3`, true},
		{"numeric string", `"3"`, true},
		{"nested object", `{"id": 3}`, true},
		{"other company", `8`, false},
		{"null association", `null`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeIdentityStore{
				GetByIDFunc: func(ctx context.Context, id string) (*identity.Record, error) {
					return identityRecord("rrhh", tc.company), nil
				},
			}
			checker := newTestChecker(store, ownership, nil, nil)

			actor := identity.Actor{ID: 7, Email: "rrhh@acme.test"}
			ok, err := checker.AuthorizedForCompany(context.Background(), actor, 3)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestCanManageVacancyApplicationsAdminOwner(t *testing.T) {
	ownership := &fakeOwnership{
		OwnerIDFunc: func(ctx context.Context, companyID int64) (int64, error) {
			return 42, nil
		},
	}
	vacancies := &fakeVacancies{
		CompanyIDFunc: func(ctx context.Context, vacancyID int64) (int64, error) {
			return 3, nil
		},
	}
	checker := newTestChecker(&fakeIdentityStore{}, ownership, vacancies, nil)

	owner := identity.Actor{ID: 42, LocalRole: "admin"}
	ok, err := checker.CanManageVacancyApplications(context.Background(), owner, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	stranger := identity.Actor{ID: 7, LocalRole: "admin"}
	ok, err = checker.CanManageVacancyApplications(context.Background(), stranger, 10)
	require.NoError(t, err)
	assert.False(t, ok, "an admin who does not own the company gets no write access")
}

func TestCanManageVacancyApplicationsRRHHNeedsAssignment(t *testing.T) {
	ownership := &fakeOwnership{
		OwnerIDFunc: func(ctx context.Context, companyID int64) (int64, error) {
			return 42, nil
		},
	}
	vacancies := &fakeVacancies{
		CompanyIDFunc: func(ctx context.Context, vacancyID int64) (int64, error) {
			return 3, nil
		},
	}

	for _, assigned := range []bool{true, false} {
		assignments := &fakeAssignments{
			IsAssignedFunc: func(ctx context.Context, vacancyID, userID int64) (bool, error) {
				return assigned, nil
			},
		}
		checker := newTestChecker(&fakeIdentityStore{}, ownership, vacancies, assignments)

		rrhh := identity.Actor{ID: 7, LocalRole: "rrhh", Email: "rrhh@acme.test"}
		ok, err := checker.CanManageVacancyApplications(context.Background(), rrhh, 10)
		require.NoError(t, err)
		assert.Equal(t, assigned, ok, "company membership alone must not grant application writes")
	}
}

func TestCanManageVacancyApplicationsCandidateDenied(t *testing.T) {
	checker := newTestChecker(&fakeIdentityStore{}, nil, nil, nil)

	candidate := identity.Actor{ID: 5, LocalRole: "candidato"}
	ok, err := checker.CanManageVacancyApplications(context.Background(), candidate, 10)
	require.NoError(t, err)
	assert.False(t, ok)
}
