package vacancy

import "time"

const (
	StatusDraft     = "Borrador"
	StatusPublished = "Publicada"
)

type Vacancy struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID    int64      `gorm:"not null;index" json:"empresa_id"`
	Title        string     `gorm:"size:255;not null" json:"titulo"`
	Description  string     `gorm:"type:text" json:"descripcion"`
	Requirements string     `gorm:"type:text" json:"requisitos"`
	Location     string     `gorm:"size:255" json:"ubicacion"`
	Salary       string     `gorm:"size:64" json:"salario"`
	Status       string     `gorm:"size:32;not null;default:'Borrador'" json:"estado"`
	ExpiresAt    *time.Time `json:"fecha_expiracion"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Vacancy) TableName() string {
	return "vacantes"
}

// Open reports whether candidates may still apply: published and not expired.
func (v *Vacancy) Open(now time.Time) bool {
	if v.Status != StatusPublished {
		return false
	}
	return v.ExpiresAt != nil && v.ExpiresAt.After(now)
}
