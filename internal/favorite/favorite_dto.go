package favorite

import "time"

type AddFavoriteRequest struct {
	CandidateID int64 `json:"candidato_id" binding:"required"`
}

type FavoriteResponse struct {
	ID          int64     `json:"id"`
	RRHHUserID  int64     `json:"rrhh_user_id"`
	CandidateID int64     `json:"candidato_id"`
	CreatedAt   time.Time `json:"created_at"`
}
