package company

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByID(ctx context.Context, id int64) (*Company, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Company, error)
	Update(ctx context.Context, c *Company) error
	UpdateLogoURL(ctx context.Context, id int64, logoURL string) error
	Delete(ctx context.Context, id int64) error
	OwnerID(ctx context.Context, id int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) UpdateLogoURL(ctx context.Context, id int64, logoURL string) error {
	return r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		Update("logo_url", logoURL).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}

// OwnerID is the ownership lookup the authorization layer builds on. A
// missing company yields owner 0, which matches no user.
func (r *repository) OwnerID(ctx context.Context, id int64) (int64, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Select("owner_id").
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.OwnerID, nil
}
