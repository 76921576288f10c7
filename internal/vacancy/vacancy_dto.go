package vacancy

import "time"

type CreateVacancyRequest struct {
	CompanyID    int64      `json:"empresa_id" binding:"required"`
	Title        string     `json:"titulo" binding:"required"`
	Description  string     `json:"descripcion"`
	Requirements string     `json:"requisitos"`
	Location     string     `json:"ubicacion"`
	Salary       string     `json:"salario"`
	ExpiresAt    *time.Time `json:"fecha_expiracion"`
}

type UpdateVacancyRequest struct {
	Title        string     `json:"titulo"`
	Description  string     `json:"descripcion"`
	Requirements string     `json:"requisitos"`
	Location     string     `json:"ubicacion"`
	Salary       string     `json:"salario"`
	ExpiresAt    *time.Time `json:"fecha_expiracion"`
}

type VacancyResponse struct {
	ID           int64      `json:"id"`
	CompanyID    int64      `json:"empresa_id"`
	Title        string     `json:"titulo"`
	Description  string     `json:"descripcion"`
	Requirements string     `json:"requisitos"`
	Location     string     `json:"ubicacion"`
	Salary       string     `json:"salario"`
	Status       string     `json:"estado"`
	ExpiresAt    *time.Time `json:"fecha_expiracion"`
	CreatedAt    time.Time  `json:"created_at"`
}
