package application

import "time"

// ApplyRequest carries the multipart apply form after the handler has read
// the CV into memory.
type ApplyRequest struct {
	VacancyID   int64
	Filename    string
	ContentType string
	CV          []byte
}

type ChangeStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

type AnnotateRequest struct {
	Note string `json:"nota" binding:"required"`
}

type ApplicationResponse struct {
	ID          int64     `json:"id"`
	CandidateID int64     `json:"candidato_id"`
	VacancyID   int64     `json:"vacante_id"`
	CompanyID   int64     `json:"empresa_id"`
	Status      string    `json:"estado"`
	CVURL       string    `json:"cv_url"`
	Comments    string    `json:"comentarios"`
	AppliedAt   time.Time `json:"fecha_postulacion"`
}
