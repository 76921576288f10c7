package assignment

import "time"

// VacancyAssignment grants one RRHH user write access to one vacancy's
// applications. The pair is unique.
type VacancyAssignment struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VacancyID  int64     `gorm:"column:vacancy_id;not null;uniqueIndex:uq_assignment_vacancy_user" json:"vacante_id"`
	RRHHUserID int64     `gorm:"column:rrhh_user_id;not null;uniqueIndex:uq_assignment_vacancy_user" json:"rrhh_user_id"`
	AssignedBy int64     `gorm:"column:assigned_by;not null" json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (VacancyAssignment) TableName() string {
	return "asignaciones"
}
