package application

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByCandidateAndVacancy(ctx context.Context, candidateID, vacancyID int64) (*Application, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]Application, error)
	ListByVacancy(ctx context.Context, vacancyID int64) ([]Application, error)
	Update(ctx context.Context, a *Application) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Application, error) {
	var a Application
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) GetByCandidateAndVacancy(ctx context.Context, candidateID, vacancyID int64) (*Application, error) {
	var a Application
	err := r.db.WithContext(ctx).
		Where("candidate_id = ? AND vacancy_id = ?", candidateID, vacancyID).
		First(&a).Error
	return &a, err
}

func (r *repository) ListByCandidate(ctx context.Context, candidateID int64) ([]Application, error) {
	var apps []Application
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("id DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) ListByVacancy(ctx context.Context, vacancyID int64) ([]Application, error) {
	var apps []Application
	err := r.db.WithContext(ctx).
		Where("vacancy_id = ?", vacancyID).
		Order("id DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) Update(ctx context.Context, a *Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}
