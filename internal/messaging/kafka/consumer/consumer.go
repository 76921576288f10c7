package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/company"
	"github.com/juandiego305/Gestion-candidatos/internal/events"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/user"
	"github.com/juandiego305/Gestion-candidatos/internal/vacancy"
)

// The consumer only reads; narrow lookups keep it decoupled from the full
// repository surfaces.
type VacancyLookup interface {
	GetByID(ctx context.Context, id int64) (*vacancy.Vacancy, error)
}

type CompanyLookup interface {
	GetByID(ctx context.Context, id int64) (*company.Company, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// OwnerAlerts turns application lifecycle events into "new application"
// notices for the vacancy's company owner. Candidate-facing mail is sent
// in-process by the application service; this path covers the staff side
// only, so the two never duplicate each other.
type OwnerAlerts struct {
	vacancies  VacancyLookup
	companies  CompanyLookup
	users      UserLookup
	dispatcher *notification.Dispatcher
}

func NewOwnerAlerts(vacancies VacancyLookup, companies CompanyLookup, users UserLookup, dispatcher *notification.Dispatcher) *OwnerAlerts {
	return &OwnerAlerts{
		vacancies:  vacancies,
		companies:  companies,
		users:      users,
		dispatcher: dispatcher,
	}
}

func (a *OwnerAlerts) Notify(ctx context.Context, event events.ApplicationCreatedEvent) error {
	v, err := a.vacancies.GetByID(ctx, event.VacancyID)
	if err != nil {
		return err
	}

	c, err := a.companies.GetByID(ctx, event.CompanyID)
	if err != nil {
		return err
	}

	owner, err := a.users.GetByID(ctx, c.OwnerID)
	if err != nil {
		return err
	}

	candidateName := "un candidato"
	if candidate, err := a.users.GetByID(ctx, event.CandidateID); err == nil {
		candidateName = candidate.FullName()
	}

	a.dispatcher.Enqueue(notification.Notification{
		Event:     notification.EventNewApplication,
		Recipient: owner.Email,
		Context: notification.TemplateContext{
			CandidateName: candidateName,
			VacancyTitle:  v.Title,
			CompanyName:   c.Name,
		},
	})

	return nil
}

func ConsumeApplicationLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	alerts *OwnerAlerts,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.application_lifecycle")
	log.Info("application lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("application lifecycle consumer stopped")
				return
			}
			log.Error("fetch application lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.ApplicationCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode application_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := alerts.Notify(ctx, event); err != nil {
			log.Error("notify company owner failed",
				zap.Int64("application_id", event.ApplicationID),
				zap.Int64("vacancy_id", event.VacancyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit application lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("company owner notified of new application",
			zap.Int64("application_id", event.ApplicationID),
			zap.Int64("vacancy_id", event.VacancyID),
		)
	}
}
