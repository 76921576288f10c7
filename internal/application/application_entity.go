package application

import (
	"fmt"
	"time"
)

// Application tracks one candidate's submission to one vacancy. CompanyID is
// denormalized from the vacancy so company-level listings need no join.
type Application struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CandidateID int64     `gorm:"not null;uniqueIndex:uq_application_candidate_vacancy" json:"candidato_id"`
	VacancyID   int64     `gorm:"not null;uniqueIndex:uq_application_candidate_vacancy" json:"vacante_id"`
	CompanyID   int64     `gorm:"not null;index" json:"empresa_id"`
	Status      string    `gorm:"size:64;not null;default:'Postulado'" json:"estado"`
	CVURL       string    `gorm:"size:512" json:"cv_url"`
	Comments    string    `gorm:"type:text" json:"comentarios"`
	AppliedAt   time.Time `gorm:"autoCreateTime" json:"fecha_postulacion"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Application) TableName() string {
	return "postulaciones"
}

// AppendComment adds a timestamped line to the comment log. The log is
// append-only; nothing ever rewrites earlier lines.
func (a *Application) AppendComment(at time.Time, line string) {
	entry := fmt.Sprintf("[%s] %s", at.Format("2006-01-02 15:04"), line)
	if a.Comments == "" {
		a.Comments = entry
		return
	}
	a.Comments += "\n" + entry
}
