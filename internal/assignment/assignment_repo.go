package assignment

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *VacancyAssignment) error
	GetByVacancyAndUser(ctx context.Context, vacancyID, rrhhUserID int64) (*VacancyAssignment, error)
	GetByID(ctx context.Context, id int64) (*VacancyAssignment, error)
	ListByVacancy(ctx context.Context, vacancyID int64) ([]VacancyAssignment, error)
	Delete(ctx context.Context, id int64) error
	IsAssigned(ctx context.Context, vacancyID, userID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *VacancyAssignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByVacancyAndUser(ctx context.Context, vacancyID, rrhhUserID int64) (*VacancyAssignment, error) {
	var a VacancyAssignment
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ? AND rrhh_user_id = ?", vacancyID, rrhhUserID).
		First(&a).Error
	return &a, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*VacancyAssignment, error) {
	var a VacancyAssignment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) ListByVacancy(ctx context.Context, vacancyID int64) ([]VacancyAssignment, error) {
	var assignments []VacancyAssignment
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ?", vacancyID).
		Order("id").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&VacancyAssignment{}, "id = ?", id).Error
}

// IsAssigned is the narrow check the authorization layer builds on.
func (r *repository) IsAssigned(ctx context.Context, vacancyID, userID int64) (bool, error) {
	_, err := r.GetByVacancyAndUser(ctx, vacancyID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
