package vacancy

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vacancy_repo.go -destination=mock/vacancy_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, v *Vacancy) error
	GetByID(ctx context.Context, id int64) (*Vacancy, error)
	Update(ctx context.Context, v *Vacancy) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error)
	ListAssigned(ctx context.Context, rrhhUserID int64) ([]Vacancy, error)
	ListOpen(ctx context.Context, now time.Time) ([]Vacancy, error)
	CompanyID(ctx context.Context, vacancyID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Vacancy) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Vacancy, error) {
	var v Vacancy
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vacancy) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Vacancy{}, "id = ?", id).Error
}

// ListByOwner returns every vacancy of companies owned by ownerID.
func (r *repository) ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error) {
	var vacancies []Vacancy
	err := r.db.WithContext(ctx).
		Joins("JOIN empresas ON empresas.id = vacantes.company_id").
		Where("empresas.owner_id = ?", ownerID).
		Order("vacantes.id DESC").
		Find(&vacancies).Error
	return vacancies, err
}

// ListAssigned returns vacancies with an assignment row for rrhhUserID.
func (r *repository) ListAssigned(ctx context.Context, rrhhUserID int64) ([]Vacancy, error) {
	var vacancies []Vacancy
	err := r.db.WithContext(ctx).
		Joins("JOIN asignaciones ON asignaciones.vacancy_id = vacantes.id").
		Where("asignaciones.rrhh_user_id = ?", rrhhUserID).
		Order("vacantes.id DESC").
		Find(&vacancies).Error
	return vacancies, err
}

// ListOpen returns published vacancies that have not expired.
func (r *repository) ListOpen(ctx context.Context, now time.Time) ([]Vacancy, error) {
	var vacancies []Vacancy
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at > ?", StatusPublished, now).
		Order("id DESC").
		Find(&vacancies).Error
	return vacancies, err
}

func (r *repository) CompanyID(ctx context.Context, vacancyID int64) (int64, error) {
	var v Vacancy
	err := r.db.WithContext(ctx).
		Select("company_id").
		First(&v, "id = ?", vacancyID).Error
	if err != nil {
		return 0, err
	}
	return v.CompanyID, nil
}
