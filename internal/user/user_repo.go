package user

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&u).Error
	return &u, err
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).Order("id DESC").Find(&users).Error
	return users, err
}

func (r *repository) UpdateRole(ctx context.Context, id int64, role string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("role", role).Error
}
