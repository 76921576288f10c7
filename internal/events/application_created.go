package events

import "time"

const ApplicationCreatedTopic = "recruitment.application.lifecycle.v1"

type ApplicationCreatedEvent struct {
	EventType     string    `json:"event_type"`
	ApplicationID int64     `json:"application_id"`
	VacancyID     int64     `json:"vacancy_id"`
	CompanyID     int64     `json:"company_id"`
	CandidateID   int64     `json:"candidate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
