package favorite

import "time"

// Favorite lets an RRHH user bookmark a candidate. The pair is unique.
type Favorite struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RRHHUserID  int64     `gorm:"column:rrhh_user_id;not null;uniqueIndex:uq_favorite_rrhh_candidate" json:"rrhh_user_id"`
	CandidateID int64     `gorm:"column:candidate_id;not null;uniqueIndex:uq_favorite_rrhh_candidate" json:"candidato_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favoritos"
}
