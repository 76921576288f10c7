package application_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/juandiego305/Gestion-candidatos/internal/application"
	applicationerrors "github.com/juandiego305/Gestion-candidatos/internal/application/errors"
	"github.com/juandiego305/Gestion-candidatos/internal/identity"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeApplicationService struct {
	applyFn        func(ctx context.Context, actor identity.Actor, req application.ApplyRequest) (*application.ApplicationResponse, error)
	changeStatusFn func(ctx context.Context, actor identity.Actor, id int64, req application.ChangeStatusRequest) (*application.ApplicationResponse, error)
}

func (f *fakeApplicationService) Apply(ctx context.Context, actor identity.Actor, req application.ApplyRequest) (*application.ApplicationResponse, error) {
	return f.applyFn(ctx, actor, req)
}
func (f *fakeApplicationService) ChangeStatus(ctx context.Context, actor identity.Actor, id int64, req application.ChangeStatusRequest) (*application.ApplicationResponse, error) {
	return f.changeStatusFn(ctx, actor, id, req)
}
func (f *fakeApplicationService) Annotate(ctx context.Context, actor identity.Actor, id int64, req application.AnnotateRequest) (*application.ApplicationResponse, error) {
	return nil, nil
}
func (f *fakeApplicationService) GetByID(ctx context.Context, actor identity.Actor, id int64) (*application.ApplicationResponse, error) {
	return nil, nil
}
func (f *fakeApplicationService) ListMine(ctx context.Context, actor identity.Actor) ([]application.ApplicationResponse, error) {
	return nil, nil
}
func (f *fakeApplicationService) ListByVacancy(ctx context.Context, actor identity.Actor, vacancyID int64) ([]application.ApplicationResponse, error) {
	return nil, nil
}

func multipartApply(t *testing.T, vacancyID, filename string, cv []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("vacante_id", vacancyID))
	fw, err := mw.CreateFormFile("cv", filename)
	require.NoError(t, err)
	_, err = fw.Write(cv)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestApplicationHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		actor := identity.Actor{ID: 5, Username: "laura", Email: "laura@mail.test", LocalRole: "candidato"}
		svc := &fakeApplicationService{
			applyFn: func(ctx context.Context, a identity.Actor, req application.ApplyRequest) (*application.ApplicationResponse, error) {
				assert.Equal(t, actor.ID, a.ID)
				assert.Equal(t, int64(3), req.VacancyID)
				assert.Equal(t, "cv.pdf", req.Filename)
				assert.Equal(t, []byte("pdf-bytes"), req.CV)
				return &application.ApplicationResponse{ID: 9, VacancyID: 3, CandidateID: 5, Status: application.StatusApplied}, nil
			},
		}

		h := application.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body, contentType := multipartApply(t, "3", "cv.pdf", []byte("pdf-bytes"))
		c.Request = httptest.NewRequest(http.MethodPost, "/postulaciones", body)
		c.Request.Header.Set("Content-Type", contentType)
		c.Set("actor", actor)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got application.ApplicationResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, int64(9), got.ID)
		assert.Equal(t, application.StatusApplied, got.Status)
	})

	t.Run("negative missing cv", func(t *testing.T) {
		h := application.NewHandler(&fakeApplicationService{}, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("vacante_id", "3"))
		require.NoError(t, mw.Close())
		c.Request = httptest.NewRequest(http.MethodPost, "/postulaciones", &buf)
		c.Request.Header.Set("Content-Type", mw.FormDataContentType())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("negative duplicate maps to conflict", func(t *testing.T) {
		svc := &fakeApplicationService{
			applyFn: func(ctx context.Context, a identity.Actor, req application.ApplyRequest) (*application.ApplicationResponse, error) {
				return nil, applicationerrors.ErrAlreadyApplied
			},
		}

		h := application.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body, contentType := multipartApply(t, "3", "cv.pdf", []byte("pdf"))
		c.Request = httptest.NewRequest(http.MethodPost, "/postulaciones", body)
		c.Request.Header.Set("Content-Type", contentType)
		c.Set("actor", identity.Actor{ID: 5, LocalRole: "candidato"})

		h.Apply(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, "Ya te has postulado a esta vacante", env.Error.Message)
	})
}

func TestApplicationHandler_ChangeStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeApplicationService{
			changeStatusFn: func(ctx context.Context, a identity.Actor, id int64, req application.ChangeStatusRequest) (*application.ApplicationResponse, error) {
				assert.Equal(t, int64(9), id)
				assert.Equal(t, application.StatusInReview, req.Status)
				return &application.ApplicationResponse{ID: id, Status: req.Status}, nil
			},
		}

		h := application.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/postulaciones/9/estado", strings.NewReader(`{"estado":"En revisión"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		c.Set("actor", identity.Actor{ID: 2, LocalRole: "rrhh"})

		h.ChangeStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative invalid id", func(t *testing.T) {
		h := application.NewHandler(&fakeApplicationService{}, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/postulaciones/abc/estado", strings.NewReader(`{"estado":"En revisión"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.ChangeStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative illegal transition", func(t *testing.T) {
		svc := &fakeApplicationService{
			changeStatusFn: func(ctx context.Context, a identity.Actor, id int64, req application.ChangeStatusRequest) (*application.ApplicationResponse, error) {
				return nil, applicationerrors.ErrInvalidStatusTransition
			},
		}

		h := application.NewHandler(svc, zap.NewNop())
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/postulaciones/9/estado", strings.NewReader(`{"estado":"Contratado"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: "9"}}
		c.Set("actor", identity.Actor{ID: 2, LocalRole: "rrhh"})

		h.ChangeStatus(c)

		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
