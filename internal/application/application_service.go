package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	applicationerrors "github.com/juandiego305/Gestion-candidatos/internal/application/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/events"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/messaging/kafka"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/scope"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/contextutil"
	"github.com/juandiego305/Gestion-candidatos/internal/storage"
	"github.com/juandiego305/Gestion-candidatos/internal/vacancy"
	vacancyerrors "github.com/juandiego305/Gestion-candidatos/internal/vacancy/errors"
)

// VacancyReader is the read surface the lifecycle needs from vacancies.
type VacancyReader interface {
	GetByID(ctx context.Context, id int64) (*vacancy.Vacancy, error)
}

// CandidateDirectory resolves a candidate id to an actor snapshot for
// notification addressing.
type CandidateDirectory interface {
	LoadActor(ctx context.Context, userID int64) (identity.Actor, error)
}

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actor identity.Actor, req ApplyRequest) (*ApplicationResponse, error)
	ChangeStatus(ctx context.Context, actor identity.Actor, id int64, req ChangeStatusRequest) (*ApplicationResponse, error)
	Annotate(ctx context.Context, actor identity.Actor, id int64, req AnnotateRequest) (*ApplicationResponse, error)
	GetByID(ctx context.Context, actor identity.Actor, id int64) (*ApplicationResponse, error)
	ListMine(ctx context.Context, actor identity.Actor) ([]ApplicationResponse, error)
	ListByVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) ([]ApplicationResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	vacancies  VacancyReader
	candidates CandidateDirectory
	outbox     kafka.OutboxRepository
	resolver   *identity.Resolver
	checker    *scope.Checker
	gateway    *storage.Gateway
	dispatcher *notification.Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	vacancies VacancyReader,
	candidates CandidateDirectory,
	outbox kafka.OutboxRepository,
	resolver *identity.Resolver,
	checker *scope.Checker,
	gateway *storage.Gateway,
	dispatcher *notification.Dispatcher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("application.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		vacancies:  vacancies,
		candidates: candidates,
		outbox:     outbox,
		resolver:   resolver,
		checker:    checker,
		gateway:    gateway,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

// Apply is the lifecycle entry transition. The CV upload must succeed before
// any row exists; the confirmation email is enqueued only after commit and
// its failure never surfaces to the caller.
func (s *service) Apply(ctx context.Context, actor identity.Actor, req ApplyRequest) (*ApplicationResponse, error) {
	if s.resolver.ResolveActor(ctx, actor) != identity.RoleCandidate {
		return nil, applicationerrors.ErrNotCandidate
	}

	v, err := s.vacancies.GetByID(ctx, req.VacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vacancyerrors.ErrVacancyNotFound
		}
		return nil, err
	}
	if !v.Open(s.now()) {
		return nil, applicationerrors.ErrVacancyNotOpen
	}

	// Reject duplicates before touching the object store so a repeat apply
	// never re-uploads the CV.
	if _, err := s.repo.GetByCandidateAndVacancy(ctx, actor.ID, req.VacancyID); err == nil {
		return nil, applicationerrors.ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(req.CV) == 0 {
		return nil, applicationerrors.ErrMissingCV
	}

	cvURL, err := s.gateway.Upload(ctx, storage.BucketCVs, actor.ID, req.Filename, req.CV, req.ContentType)
	if err != nil {
		return nil, err
	}

	a := &Application{
		CandidateID: actor.ID,
		VacancyID:   v.ID,
		CompanyID:   v.CompanyID,
		Status:      StatusApplied,
		CVURL:       cvURL,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, a); err != nil {
			return err
		}
		return s.createOutboxEvent(ctx, tx, a.ID, "application.created", events.ApplicationCreatedTopic,
			events.ApplicationCreatedEvent{
				EventType:     "application.created",
				ApplicationID: a.ID,
				VacancyID:     a.VacancyID,
				CompanyID:     a.CompanyID,
				CandidateID:   a.CandidateID,
				OccurredAt:    s.now(),
			})
	})
	if err != nil {
		if isDuplicateApplication(err) {
			return nil, applicationerrors.ErrAlreadyApplied
		}
		return nil, err
	}

	s.logger.Info("application created",
		zap.Int64("application_id", a.ID),
		zap.Int64("vacancy_id", a.VacancyID),
		zap.Int64("candidate_id", a.CandidateID),
	)

	s.dispatcher.Enqueue(notification.Notification{
		Event:     notification.EventApplicationReceived,
		Recipient: actor.Email,
		Context: notification.TemplateContext{
			CandidateName: actor.Username,
			VacancyTitle:  v.Title,
		},
	})

	return mapToResponse(a), nil
}

// ChangeStatus applies one guarded transition, appends the audit line and
// enqueues exactly one notification for the target state after commit.
func (s *service) ChangeStatus(ctx context.Context, actor identity.Actor, id int64, req ChangeStatusRequest) (*ApplicationResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationerrors.ErrApplicationNotFound
		}
		return nil, err
	}

	if err := s.requireManage(ctx, actor, a.VacancyID); err != nil {
		return nil, err
	}

	target := strings.TrimSpace(req.Status)
	if !IsValidStatus(target) {
		return nil, applicationerrors.ErrInvalidStatus
	}
	if !isAllowedStatusTransition(a.Status, target) {
		return nil, applicationerrors.ErrInvalidStatusTransition
	}

	previous := a.Status
	a.Status = target
	a.AppendComment(s.now(), fmt.Sprintf("Estado cambiado de %s a %s por %s", previous, target, actor.Username))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Update(ctx, a); err != nil {
			return err
		}
		return s.createOutboxEvent(ctx, tx, a.ID, "application.status_changed", events.ApplicationStatusChangedTopic,
			events.ApplicationStatusChangedEvent{
				EventType:     "application.status_changed",
				ApplicationID: a.ID,
				VacancyID:     a.VacancyID,
				CompanyID:     a.CompanyID,
				CandidateID:   a.CandidateID,
				FromStatus:    previous,
				ToStatus:      target,
				ChangedBy:     actor.ID,
				OccurredAt:    s.now(),
			})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("application status changed",
		zap.Int64("application_id", a.ID),
		zap.String("from", previous),
		zap.String("to", target),
		zap.Int64("changed_by", actor.ID),
	)

	s.notifyCandidate(ctx, a, target)

	return mapToResponse(a), nil
}

// Annotate appends a free-text note without changing state. No notification
// and no event: notes are internal to the staff.
func (s *service) Annotate(ctx context.Context, actor identity.Actor, id int64, req AnnotateRequest) (*ApplicationResponse, error) {
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, applicationerrors.ErrEmptyNote
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationerrors.ErrApplicationNotFound
		}
		return nil, err
	}

	if err := s.requireManage(ctx, actor, a.VacancyID); err != nil {
		return nil, err
	}

	a.AppendComment(s.now(), fmt.Sprintf("%s: %s", actor.Username, note))
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return mapToResponse(a), nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id int64) (*ApplicationResponse, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationerrors.ErrApplicationNotFound
		}
		return nil, err
	}

	if a.CandidateID != actor.ID {
		if err := s.requireManage(ctx, actor, a.VacancyID); err != nil {
			return nil, err
		}
	}

	return mapToResponse(a), nil
}

func (s *service) ListMine(ctx context.Context, actor identity.Actor) ([]ApplicationResponse, error) {
	apps, err := s.repo.ListByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return mapAll(apps), nil
}

func (s *service) ListByVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) ([]ApplicationResponse, error) {
	if err := s.requireManage(ctx, actor, vacancyID); err != nil {
		return nil, err
	}

	apps, err := s.repo.ListByVacancy(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	return mapAll(apps), nil
}

func (s *service) requireManage(ctx context.Context, actor identity.Actor, vacancyID int64) error {
	ok, err := s.checker.CanManageVacancyApplications(ctx, actor, vacancyID)
	if err != nil {
		return err
	}
	if !ok {
		return applicationerrors.ErrCannotManage
	}
	return nil
}

func (s *service) createOutboxEvent(ctx context.Context, tx *gorm.DB, applicationID int64, eventType, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ev := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "postulacion",
		AggregateID:   fmt.Sprintf("%d", applicationID),
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(ev); err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, ev)
}

// notifyCandidate enqueues the email for the new state. Best effort: a full
// queue or SMTP failure never rolls back the transition.
func (s *service) notifyCandidate(ctx context.Context, a *Application, status string) {
	event, ok := notification.ForStatus(status)
	if !ok {
		return
	}

	candidate, err := s.candidates.LoadActor(ctx, a.CandidateID)
	if err != nil {
		s.logger.Warn("candidate lookup for notification failed",
			zap.Int64("application_id", a.ID),
			zap.Int64("candidate_id", a.CandidateID),
			zap.Error(err),
		)
		return
	}

	tc := notification.TemplateContext{CandidateName: candidate.Username}
	if v, err := s.vacancies.GetByID(ctx, a.VacancyID); err == nil {
		tc.VacancyTitle = v.Title
	}

	s.dispatcher.Enqueue(notification.Notification{
		Event:     event,
		Recipient: candidate.Email,
		Context:   tc,
	})
}

func isDuplicateApplication(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_application_candidate_vacancy"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_application_candidate_vacancy")
}

func mapAll(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, len(apps))
	for i := range apps {
		out[i] = *mapToResponse(&apps[i])
	}
	return out
}

func mapToResponse(a *Application) *ApplicationResponse {
	return &ApplicationResponse{
		ID:          a.ID,
		CandidateID: a.CandidateID,
		VacancyID:   a.VacancyID,
		CompanyID:   a.CompanyID,
		Status:      a.Status,
		CVURL:       a.CVURL,
		Comments:    a.Comments,
		AppliedAt:   a.AppliedAt,
	}
}
