package favorite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	favoriteerrors "github.com/juandiego305/Gestion-candidatos/internal/favorite/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

type fakeRepo struct {
	CreateFunc     func(ctx context.Context, f *Favorite) error
	GetByPairFunc  func(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*Favorite, error)
	ListByRRHHFunc func(ctx context.Context, rrhhUserID int64) ([]Favorite, error)
	DeleteFunc     func(ctx context.Context, id int64) error
}

func (f *fakeRepo) Create(ctx context.Context, fav *Favorite) error { return f.CreateFunc(ctx, fav) }
func (f *fakeRepo) GetByPair(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error) {
	return f.GetByPairFunc(ctx, rrhhUserID, candidateID)
}
func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Favorite, error) {
	return f.GetByIDFunc(ctx, id)
}
func (f *fakeRepo) ListByRRHH(ctx context.Context, rrhhUserID int64) ([]Favorite, error) {
	return f.ListByRRHHFunc(ctx, rrhhUserID)
}
func (f *fakeRepo) Delete(ctx context.Context, id int64) error { return f.DeleteFunc(ctx, id) }

type fakeUsers struct {
	byID map[int64]identity.Actor
}

func (f *fakeUsers) LoadActor(ctx context.Context, userID int64) (identity.Actor, error) {
	a, ok := f.byID[userID]
	if !ok {
		return identity.Actor{}, gorm.ErrRecordNotFound
	}
	return a, nil
}

type fakeIdentityStore struct{}

func (fakeIdentityStore) GetByID(ctx context.Context, id string) (*identity.Record, error) {
	return nil, nil
}
func (fakeIdentityStore) GetByEmail(ctx context.Context, email string) (*identity.Record, error) {
	return nil, nil
}
func (fakeIdentityStore) UpdateRole(ctx context.Context, email string, role identity.Role) error {
	return nil
}

func newTestService(repo Repository, users UserLookup) Service {
	resolver := identity.NewResolver(fakeIdentityStore{}, nil, zap.NewNop())
	return NewService(repo, users, resolver, zap.NewNop())
}

func rrhhActor() identity.Actor {
	return identity.Actor{ID: 7, Username: "maria", LocalRole: "rrhh"}
}

func candidateUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]identity.Actor{
		5: {ID: 5, Username: "laura", LocalRole: "candidato"},
	}}
}

func TestAddFavorite(t *testing.T) {
	repo := &fakeRepo{
		GetByPairFunc: func(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, f *Favorite) error {
			f.ID = 1
			return nil
		},
	}
	svc := newTestService(repo, candidateUsers())

	resp, err := svc.Add(context.Background(), rrhhActor(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.RRHHUserID)
	assert.Equal(t, int64(5), resp.CandidateID)
}

func TestAddFavoriteIdempotent(t *testing.T) {
	existing := &Favorite{ID: 9, RRHHUserID: 7, CandidateID: 5}
	repo := &fakeRepo{
		GetByPairFunc: func(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error) {
			return existing, nil
		},
		CreateFunc: func(ctx context.Context, f *Favorite) error {
			t.Fatal("no insert for an existing pair")
			return nil
		},
	}
	svc := newTestService(repo, candidateUsers())

	resp, err := svc.Add(context.Background(), rrhhActor(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
}

func TestAddFavoriteAsAdmin(t *testing.T) {
	repo := &fakeRepo{
		GetByPairFunc: func(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, f *Favorite) error {
			f.ID = 2
			return nil
		},
	}
	svc := newTestService(repo, candidateUsers())

	resp, err := svc.Add(context.Background(), identity.Actor{ID: 3, Username: "ana", LocalRole: "admin"}, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.RRHHUserID)
	assert.Equal(t, int64(5), resp.CandidateID)
}

func TestAddFavoriteDeniedForCandidate(t *testing.T) {
	svc := newTestService(&fakeRepo{}, candidateUsers())

	_, err := svc.Add(context.Background(), identity.Actor{ID: 5, LocalRole: "candidato"}, 5)
	assert.ErrorIs(t, err, favoriteerrors.ErrNotStaff)
}

func TestAddFavoriteRejectsNonCandidateTarget(t *testing.T) {
	users := &fakeUsers{byID: map[int64]identity.Actor{
		8: {ID: 8, Username: "pedro", LocalRole: "rrhh"},
	}}
	svc := newTestService(&fakeRepo{}, users)

	_, err := svc.Add(context.Background(), rrhhActor(), 8)
	assert.ErrorIs(t, err, favoriteerrors.ErrTargetNotCandidate)
}

func TestRemoveForeignFavoriteHidden(t *testing.T) {
	repo := &fakeRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*Favorite, error) {
			return &Favorite{ID: id, RRHHUserID: 99, CandidateID: 5}, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			t.Fatal("must not delete another user's favorite")
			return nil
		},
	}
	svc := newTestService(repo, candidateUsers())

	err := svc.Remove(context.Background(), rrhhActor(), 3)
	assert.ErrorIs(t, err, favoriteerrors.ErrFavoriteNotFound)
}
