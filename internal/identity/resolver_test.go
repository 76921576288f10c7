package identity

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingStore struct {
	byIDCalls    int
	byEmailCalls int
	getByIDFn    func(ctx context.Context, id string) (*Record, error)
	getByEmailFn func(ctx context.Context, email string) (*Record, error)
	updatedRoles map[string]Role
}

func (s *countingStore) GetByID(ctx context.Context, id string) (*Record, error) {
	s.byIDCalls++
	if s.getByIDFn == nil {
		return nil, nil
	}
	return s.getByIDFn(ctx, id)
}

func (s *countingStore) GetByEmail(ctx context.Context, email string) (*Record, error) {
	s.byEmailCalls++
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s *countingStore) UpdateRole(ctx context.Context, email string, role Role) error {
	if s.updatedRoles == nil {
		s.updatedRoles = map[string]Role{}
	}
	s.updatedRoles[email] = role
	return nil
}

func TestResolve_LocalRoleWins(t *testing.T) {
	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			return &Record{ID: id, Role: "admin"}, nil
		},
	}
	r := NewResolver(store, nil, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "rrhh")
	assert.Equal(t, RoleRRHH, role)
	assert.Zero(t, store.byIDCalls, "external store must not be consulted when the local role is set")
}

func TestResolve_CacheHitSkipsStore(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("identity:role:7").SetVal("rrhh")

	store := &countingStore{}
	r := NewResolver(store, rdb, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "")
	assert.Equal(t, RoleRRHH, role)
	assert.Zero(t, store.byIDCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_StoreLookupPopulatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("identity:role:7").RedisNil()
	mock.ExpectSet("identity:role:7", "admin", 60*time.Second).SetVal("OK")

	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			assert.Equal(t, "7", id)
			return &Record{ID: id, Role: "Administrador"}, nil
		},
	}
	r := NewResolver(store, rdb, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "")
	assert.Equal(t, RoleAdmin, role)
	assert.Equal(t, 1, store.byIDCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_FallsBackToEmailLookup(t *testing.T) {
	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			return nil, assert.AnError
		},
		getByEmailFn: func(ctx context.Context, email string) (*Record, error) {
			assert.Equal(t, "laura@mail.test", email)
			return &Record{Role: "reclutador"}, nil
		},
	}
	r := NewResolver(store, nil, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "")
	assert.Equal(t, RoleRRHH, role)
	assert.Equal(t, 1, store.byEmailCalls)
}

func TestResolve_StoreDownDeniesByDefault(t *testing.T) {
	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			return nil, assert.AnError
		},
		getByEmailFn: func(ctx context.Context, email string) (*Record, error) {
			return nil, assert.AnError
		},
	}
	r := NewResolver(store, nil, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "")
	assert.Equal(t, RoleUnknown, role)
}

func TestResolve_NoMirroredRowIsUnknown(t *testing.T) {
	r := NewResolver(&countingStore{}, nil, zap.NewNop())

	role := r.Resolve(context.Background(), 7, "laura@mail.test", "")
	assert.Equal(t, RoleUnknown, role)
}

func TestCompanyID(t *testing.T) {
	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			return &Record{ID: id, Company: json.RawMessage(`{"empresa_id": 2}`)}, nil
		},
	}
	r := NewResolver(store, nil, zap.NewNop())

	id, ok := r.CompanyID(context.Background(), 7, "laura@mail.test")
	require.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestCompanyID_StoreDown(t *testing.T) {
	store := &countingStore{
		getByIDFn: func(ctx context.Context, id string) (*Record, error) {
			return nil, assert.AnError
		},
		getByEmailFn: func(ctx context.Context, email string) (*Record, error) {
			return nil, assert.AnError
		},
	}
	r := NewResolver(store, nil, zap.NewNop())

	_, ok := r.CompanyID(context.Background(), 7, "laura@mail.test")
	assert.False(t, ok)
}

func TestPromoteToAdmin_InvalidatesCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("identity:role:7").SetVal(1)

	store := &countingStore{}
	r := NewResolver(store, rdb, zap.NewNop())

	err := r.PromoteToAdmin(context.Background(), 7, "laura@mail.test")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, store.updatedRoles["laura@mail.test"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
