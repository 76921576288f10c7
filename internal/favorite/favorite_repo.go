package favorite

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=favorite_repo.go -destination=mock/favorite_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, f *Favorite) error
	GetByPair(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error)
	GetByID(ctx context.Context, id int64) (*Favorite, error)
	ListByRRHH(ctx context.Context, rrhhUserID int64) ([]Favorite, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Favorite) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetByPair(ctx context.Context, rrhhUserID, candidateID int64) (*Favorite, error) {
	var f Favorite
	err := r.db.WithContext(ctx).
		Where("rrhh_user_id = ? AND candidate_id = ?", rrhhUserID, candidateID).
		First(&f).Error
	return &f, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Favorite, error) {
	var f Favorite
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *repository) ListByRRHH(ctx context.Context, rrhhUserID int64) ([]Favorite, error) {
	var favorites []Favorite
	err := r.db.WithContext(ctx).
		Where("rrhh_user_id = ?", rrhhUserID).
		Order("id DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Favorite{}, "id = ?", id).Error
}
