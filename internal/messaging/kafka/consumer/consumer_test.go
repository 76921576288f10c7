package consumer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/company"
	"github.com/juandiego305/Gestion-candidatos/internal/events"
	"github.com/juandiego305/Gestion-candidatos/internal/notification"
	"github.com/juandiego305/Gestion-candidatos/internal/user"
	"github.com/juandiego305/Gestion-candidatos/internal/vacancy"
)

type fakeVacancies struct {
	getByIDFn func(ctx context.Context, id int64) (*vacancy.Vacancy, error)
}

func (f *fakeVacancies) GetByID(ctx context.Context, id int64) (*vacancy.Vacancy, error) {
	return f.getByIDFn(ctx, id)
}

type fakeCompanies struct {
	getByIDFn func(ctx context.Context, id int64) (*company.Company, error)
}

func (f *fakeCompanies) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	return f.getByIDFn(ctx, id)
}

type fakeUsers struct {
	getByIDFn func(ctx context.Context, id int64) (*user.User, error)
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return f.getByIDFn(ctx, id)
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func TestOwnerAlerts_Notify(t *testing.T) {
	vacancies := &fakeVacancies{
		getByIDFn: func(ctx context.Context, id int64) (*vacancy.Vacancy, error) {
			assert.Equal(t, int64(3), id)
			return &vacancy.Vacancy{ID: 3, Title: "Backend Go", CompanyID: 2}, nil
		},
	}
	companies := &fakeCompanies{
		getByIDFn: func(ctx context.Context, id int64) (*company.Company, error) {
			assert.Equal(t, int64(2), id)
			return &company.Company{ID: 2, Name: "Acme", OwnerID: 1}, nil
		},
	}
	users := &fakeUsers{
		getByIDFn: func(ctx context.Context, id int64) (*user.User, error) {
			switch id {
			case 1:
				return &user.User{ID: 1, Email: "owner@acme.test"}, nil
			case 5:
				return &user.User{ID: 5, FirstName: "Laura", LastName: "Gómez", Email: "laura@mail.test"}, nil
			}
			return nil, assert.AnError
		},
	}

	mailer := &recordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, 16, 1, zap.NewNop())
	alerts := NewOwnerAlerts(vacancies, companies, users, dispatcher)

	err := alerts.Notify(context.Background(), events.ApplicationCreatedEvent{
		EventType:     "application.created",
		ApplicationID: 9,
		VacancyID:     3,
		CompanyID:     2,
		CandidateID:   5,
		OccurredAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
	dispatcher.Close()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "owner@acme.test", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "Backend Go")
	assert.Contains(t, mailer.sent[0].body, "Laura Gómez")
}

func TestOwnerAlerts_VacancyLookupFails(t *testing.T) {
	vacancies := &fakeVacancies{
		getByIDFn: func(ctx context.Context, id int64) (*vacancy.Vacancy, error) {
			return nil, assert.AnError
		},
	}

	mailer := &recordingMailer{}
	dispatcher := notification.NewDispatcher(mailer, 16, 1, zap.NewNop())
	alerts := NewOwnerAlerts(vacancies, nil, nil, dispatcher)

	err := alerts.Notify(context.Background(), events.ApplicationCreatedEvent{VacancyID: 99})
	assert.Error(t, err)
	dispatcher.Close()
	assert.Empty(t, mailer.sent)
}
