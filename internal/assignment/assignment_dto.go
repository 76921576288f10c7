package assignment

import "time"

type AssignRequest struct {
	VacancyID int64  `json:"vacante_id" binding:"required"`
	RRHH      string `json:"rrhh" binding:"required"`
}

type AssignmentResponse struct {
	ID         int64     `json:"id"`
	VacancyID  int64     `json:"vacante_id"`
	RRHHUserID int64     `json:"rrhh_user_id"`
	AssignedBy int64     `json:"assigned_by"`
	CreatedAt  time.Time `json:"created_at"`
}
