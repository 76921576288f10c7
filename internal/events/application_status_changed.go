package events

import "time"

const ApplicationStatusChangedTopic = "recruitment.application.status.v1"

type ApplicationStatusChangedEvent struct {
	EventType     string    `json:"event_type"`
	ApplicationID int64     `json:"application_id"`
	VacancyID     int64     `json:"vacancy_id"`
	CompanyID     int64     `json:"company_id"`
	CandidateID   int64     `json:"candidate_id"`
	FromStatus    string    `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	ChangedBy     int64     `json:"changed_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
